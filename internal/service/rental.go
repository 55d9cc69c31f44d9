package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/lifecycle"
	"voltrent-backend/internal/logger"
	"voltrent-backend/internal/pricing"
	"voltrent-backend/internal/repository"

	"github.com/google/uuid"
)

type rentalService struct {
	rentalRepo   repository.RentalRepository
	vehicleRepo  repository.VehicleRepository
	customerRepo repository.CustomerRepository
	ledgerRepo   repository.LedgerRepository
	noteRepo     repository.NotificationRepository
	engine       *pricing.Engine
	paymentSvc   PaymentService
	emailSvc     EmailService
	currency     string
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	customerRepo repository.CustomerRepository,
	ledgerRepo repository.LedgerRepository,
	noteRepo repository.NotificationRepository,
	engine *pricing.Engine,
	paymentSvc PaymentService,
	emailSvc EmailService,
	currency string,
) RentalService {
	return &rentalService{
		rentalRepo:   rentalRepo,
		vehicleRepo:  vehicleRepo,
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
		noteRepo:     noteRepo,
		engine:       engine,
		paymentSvc:   paymentSvc,
		emailSvc:     emailSvc,
		currency:     currency,
	}
}

func (s *rentalService) QuoteRental(ctx context.Context, req QuoteRequest, now time.Time) (*domain.PriceBreakdown, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	window, err := pricing.ValidateWindow(req.RentalType, req.StartAt, req.EndAt, now)
	if err != nil {
		return nil, err
	}

	quote := s.engine.Quote(vehicle.RateCard, window, req.Insurance)
	return &quote, nil
}

func (s *rentalService) CreateRental(ctx context.Context, customerID int32, req QuoteRequest, now time.Time) (*domain.Rental, string, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, "", err
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, "", ErrVehicleUnavailable
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, "", err
	}

	window, err := pricing.ValidateWindow(req.RentalType, req.StartAt, req.EndAt, now)
	if err != nil {
		return nil, "", err
	}

	// The quote is frozen into the rental here; later rate card edits do not
	// touch it.
	quote := s.engine.Quote(vehicle.RateCard, window, req.Insurance)
	code := newRentalCode()

	rental := lifecycle.NewRental(code, customerID, vehicle.ID, vehicle.StationID, window, quote, now)

	payURL, sessionID, err := s.paymentSvc.CreateDepositSession(ctx, quote.DepositRequired, s.currency, code, customer.Email)
	if err != nil {
		return nil, "", fmt.Errorf("create deposit session: %w", err)
	}
	rental.PaymentSessionID = sessionID

	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, "", err
	}
	if err := s.vehicleRepo.UpdateStatus(ctx, vehicle.ID, domain.VehicleStatusReserved); err != nil {
		return nil, "", err
	}

	_ = s.emailSvc.SendRentalHeldNotification(ctx, customer.Email, customer.Name, code, quote.DepositRequired, payURL)
	s.notify(ctx, customerID, rental, "Rental Held",
		fmt.Sprintf("Rental %s is on hold. Pay the deposit of %d to confirm it.", code, quote.DepositRequired),
		"RENTAL_HELD")

	return rental, payURL, nil
}

func (s *rentalService) PayDeposit(ctx context.Context, code string, amount int64, expectedVersion int32, now time.Time) (*domain.Rental, error) {
	rental, err := s.loadForUpdate(ctx, code, expectedVersion, "pay_deposit")
	if err != nil {
		return nil, err
	}

	if err := lifecycle.PayDeposit(rental, amount, now); err != nil {
		return nil, err
	}
	if err := s.update(ctx, rental, "pay_deposit"); err != nil {
		return nil, err
	}

	_ = s.ledgerRepo.CreateTransaction(ctx, &domain.LedgerTransaction{
		CustomerID:  rental.CustomerID,
		RentalID:    &rental.ID,
		Amount:      amount,
		Type:        domain.TransactionTypeDeposit,
		Description: fmt.Sprintf("Deposit for rental %s", rental.Code),
		CreatedOn:   now,
	})

	if customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID); err == nil {
		_ = s.emailSvc.SendRentalConfirmedNotification(ctx, customer.Email, customer.Name, rental.Code, rental.Window.StartAt)
	}
	s.notify(ctx, rental.CustomerID, rental, "Rental Confirmed",
		fmt.Sprintf("Rental %s is confirmed. Pick up the vehicle at your start time.", rental.Code),
		"RENTAL_CONFIRMED")

	return rental, nil
}

func (s *rentalService) CancelRental(ctx context.Context, code string, expectedVersion int32, now time.Time) (*domain.Rental, error) {
	rental, err := s.loadForUpdate(ctx, code, expectedVersion, "cancel")
	if err != nil {
		return nil, err
	}
	refund := rental.State == domain.RentalStateConfirmed && rental.DepositPaid > 0

	if err := lifecycle.Cancel(rental, now); err != nil {
		return nil, err
	}
	if err := s.update(ctx, rental, "cancel"); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.UpdateStatus(ctx, rental.VehicleID, domain.VehicleStatusAvailable); err != nil {
		logger.ErrorContext(ctx, "failed to release vehicle after cancellation", "rental", rental.Code, "error", err)
	}

	var refunded int64
	if refund {
		if err := s.paymentSvc.RefundBySessionID(ctx, rental.PaymentSessionID, rental.DepositPaid); err != nil {
			logger.ErrorContext(ctx, "deposit refund failed", "rental", rental.Code, "error", err)
		} else {
			refunded = rental.DepositPaid
			_ = s.ledgerRepo.CreateTransaction(ctx, &domain.LedgerTransaction{
				CustomerID:  rental.CustomerID,
				RentalID:    &rental.ID,
				Amount:      -rental.DepositPaid,
				Type:        domain.TransactionTypeRefund,
				Description: fmt.Sprintf("Deposit refund for cancelled rental %s", rental.Code),
				CreatedOn:   now,
			})
		}
	}

	if customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID); err == nil {
		_ = s.emailSvc.SendRentalCancelledNotification(ctx, customer.Email, customer.Name, rental.Code, refunded)
	}
	s.notify(ctx, rental.CustomerID, rental, "Rental Cancelled",
		fmt.Sprintf("Rental %s was cancelled.", rental.Code), "RENTAL_CANCELLED")

	return rental, nil
}

func (s *rentalService) CheckIn(ctx context.Context, code string, pickup domain.PickupInfo, expectedVersion int32, now time.Time) (*domain.Rental, error) {
	rental, err := s.loadForUpdate(ctx, code, expectedVersion, "check_in")
	if err != nil {
		return nil, err
	}

	if err := lifecycle.CheckIn(rental, pickup, now); err != nil {
		return nil, err
	}
	if err := s.update(ctx, rental, "check_in"); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.UpdateStatus(ctx, rental.VehicleID, domain.VehicleStatusRented); err != nil {
		logger.ErrorContext(ctx, "failed to mark vehicle rented", "rental", rental.Code, "error", err)
	}
	s.notify(ctx, rental.CustomerID, rental, "Rental Started",
		fmt.Sprintf("Vehicle picked up for rental %s. Return it by %s.", rental.Code, rental.Window.EndAt.Format(time.RFC3339)),
		"RENTAL_ONGOING")

	return rental, nil
}

func (s *rentalService) CheckOut(ctx context.Context, code string, ret domain.ReturnInfo, expectedVersion int32, now time.Time) (*domain.Rental, error) {
	rental, err := s.loadForUpdate(ctx, code, expectedVersion, "check_out")
	if err != nil {
		return nil, err
	}

	kept := pricing.KeepValidFees(ret.ExtraFees)
	for _, fee := range ret.ExtraFees {
		if fee.Amount <= 0 || strings.TrimSpace(fee.Description) == "" {
			logger.Warn("dropping invalid extra fee",
				"rental", rental.Code, "kind", fee.Kind, "amount", fee.Amount, "description", fee.Description)
		}
	}
	ret.ExtraFees = kept

	if err := lifecycle.CheckOut(rental, ret, now); err != nil {
		return nil, err
	}
	// The repository persists the kept fees and the RETURNED state in one
	// transaction; settlement later reads them back from the rental.
	if err := s.update(ctx, rental, "check_out"); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.UpdateStatus(ctx, rental.VehicleID, domain.VehicleStatusAvailable); err != nil {
		logger.ErrorContext(ctx, "failed to release vehicle after return", "rental", rental.Code, "error", err)
	}
	s.notify(ctx, rental.CustomerID, rental, "Vehicle Returned",
		fmt.Sprintf("Rental %s: vehicle returned, settlement in progress.", rental.Code),
		"RENTAL_RETURNED")

	return rental, nil
}

func (s *rentalService) SettleRental(ctx context.Context, code string, expectedVersion int32, now time.Time) (*domain.Rental, error) {
	rental, err := s.loadForUpdate(ctx, code, expectedVersion, "settle")
	if err != nil {
		return nil, err
	}

	var fees []domain.ExtraFee
	if rental.Return != nil {
		fees = rental.Return.ExtraFees
	}
	settlement, _ := pricing.SettleRental(rental.Quote, fees, rental.DepositPaid)

	if err := lifecycle.Settle(rental, settlement, now); err != nil {
		return nil, err
	}
	if err := s.update(ctx, rental, "settle"); err != nil {
		return nil, err
	}

	switch {
	case settlement.FinalAmount > 0:
		_ = s.ledgerRepo.CreateTransaction(ctx, &domain.LedgerTransaction{
			CustomerID:  rental.CustomerID,
			RentalID:    &rental.ID,
			Amount:      settlement.FinalAmount,
			Type:        domain.TransactionTypeSettlementCharge,
			Description: fmt.Sprintf("Final charge for rental %s", rental.Code),
			CreatedOn:   now,
		})
	case settlement.FinalAmount < 0:
		if err := s.paymentSvc.RefundBySessionID(ctx, rental.PaymentSessionID, -settlement.FinalAmount); err != nil {
			logger.ErrorContext(ctx, "settlement refund failed", "rental", rental.Code, "error", err)
		} else {
			_ = s.ledgerRepo.CreateTransaction(ctx, &domain.LedgerTransaction{
				CustomerID:  rental.CustomerID,
				RentalID:    &rental.ID,
				Amount:      settlement.FinalAmount,
				Type:        domain.TransactionTypeRefund,
				Description: fmt.Sprintf("Deposit refund for rental %s", rental.Code),
				CreatedOn:   now,
			})
		}
	}

	if customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID); err == nil {
		_ = s.emailSvc.SendSettlementNotification(ctx, customer.Email, customer.Name, rental.Code, settlement.FinalAmount)
	}
	s.notify(ctx, rental.CustomerID, rental, "Rental Settled",
		fmt.Sprintf("Rental %s settled. Final amount: %d.", rental.Code, settlement.FinalAmount),
		"RENTAL_COMPLETED")

	return rental, nil
}

func (s *rentalService) ExpireRental(ctx context.Context, code string, now time.Time) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.Expire(rental, now); err != nil {
		return nil, err
	}
	if err := s.update(ctx, rental, "expire"); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.UpdateStatus(ctx, rental.VehicleID, domain.VehicleStatusAvailable); err != nil {
		logger.ErrorContext(ctx, "failed to release vehicle after expiry", "rental", rental.Code, "error", err)
	}
	if customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID); err == nil {
		_ = s.emailSvc.SendRentalExpiredNotification(ctx, customer.Email, customer.Name, rental.Code)
	}
	s.notify(ctx, rental.CustomerID, rental, "Hold Expired",
		fmt.Sprintf("Rental %s expired because the deposit was not paid in time.", rental.Code),
		"RENTAL_EXPIRED")

	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, code string) (*domain.Rental, error) {
	return s.rentalRepo.GetByCode(ctx, code)
}

func (s *rentalService) ListRentals(ctx context.Context, customerID int32, state string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.ListByCustomer(ctx, customerID, state, page, pageSize)
}

func (s *rentalService) ListStationRentals(ctx context.Context, stationID int32, state string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.ListByStation(ctx, stationID, state, page, pageSize)
}

// loadForUpdate fetches the rental and rejects the request up front when the
// caller's snapshot is already behind. The repository re-checks the version
// on write, so a race between the load and the update is still caught.
func (s *rentalService) loadForUpdate(ctx context.Context, code string, expectedVersion int32, op string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if rental.Version != expectedVersion {
		return nil, lifecycle.Stale(op, rental.State)
	}
	return rental, nil
}

func (s *rentalService) update(ctx context.Context, rental *domain.Rental, op string) error {
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		if errors.Is(err, domain.ErrStaleVersion) {
			return lifecycle.Stale(op, rental.State)
		}
		return err
	}
	return nil
}

func (s *rentalService) notify(ctx context.Context, customerID int32, rental *domain.Rental, title, message, kind string) {
	note := &domain.Notification{
		CustomerID: customerID,
		Title:      title,
		Message:    message,
		Attributes: map[string]string{
			"type":        kind,
			"rental_code": rental.Code,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.ErrorContext(ctx, "failed to create notification", "rental", rental.Code, "error", err)
	}
}

func newRentalCode() string {
	return "VR-" + strings.ToUpper(uuid.NewString()[:8])
}
