package jobs

import (
	"context"
	"errors"
	"time"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/lifecycle"
	"voltrent-backend/internal/logger"
)

// ExpireHeldRentals releases holds whose deposit was not paid within the hold
// window. A rental confirmed between the listing and the expiry attempt loses
// the version race and is simply skipped.
func (jr *JobRunner) ExpireHeldRentals() {
	jr.runWithRecovery("ExpireHeldRentals", func() {
		ctx := context.Background()
		holdWindow := time.Duration(jr.config.Pricing.HoldWindowMinutes) * time.Minute
		cutoff := time.Now().UTC().Add(-holdWindow)

		held, err := jr.store.RentalRepository.ListHeldBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list held rentals", "error", err)
			return
		}

		expired := 0
		for _, rental := range held {
			if _, err := jr.services.Rental.ExpireRental(ctx, rental.Code, time.Now().UTC()); err != nil {
				var terr *lifecycle.TransitionError
				if errors.As(err, &terr) {
					logger.Debug("Skipping rental that advanced concurrently", "rental", rental.Code, "code", terr.Code)
					continue
				}
				logger.Error("Failed to expire rental", "rental", rental.Code, "error", err)
				continue
			}
			expired++
		}

		logger.Info("Expired held rentals", "listed", len(held), "expired", expired)
	})
}

// MarkOverdueRentals alerts customers whose ongoing rental is past its end
// time. The rental itself stays ONGOING; the overdue state is resolved by the
// return, where late fees are assessed.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		overdue, err := jr.store.RentalRepository.ListOngoingPastEnd(ctx, now)
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		for _, rental := range overdue {
			customer, err := jr.store.CustomerRepository.GetByID(ctx, rental.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for overdue rental", "rental", rental.Code, "error", err)
				continue
			}

			if customer.PhoneNumber != "" {
				if err := jr.services.SMS.SendOverdueAlert(ctx, customer.PhoneNumber, rental.Code, rental.Window.EndAt); err != nil {
					logger.Error("Failed to send overdue SMS", "rental", rental.Code, "error", err)
				}
			}
			_ = jr.store.NotificationRepository.Create(ctx, &domain.Notification{
				CustomerID: rental.CustomerID,
				Title:      "Rental Overdue",
				Message:    "Rental " + rental.Code + " is past its end time. Please return the vehicle; late fees apply.",
				Attributes: map[string]string{
					"type":        "RENTAL_OVERDUE",
					"rental_code": rental.Code,
				},
			})
		}

		logger.Info("Processed overdue rentals", "count", len(overdue))
	})
}
