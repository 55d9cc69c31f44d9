// Package lifecycle owns the rental state machine. Transition functions
// validate every precondition before touching the rental, so a failed
// transition leaves the entity exactly as it was. Persistence and optimistic
// locking live in the repository layer; this package only decides whether a
// transition is legal and applies it in memory.
package lifecycle

import (
	"fmt"
	"time"

	"voltrent-backend/internal/domain"
)

type FailureCode string

const (
	CodeInvalidTransition    FailureCode = "invalid_transition"
	CodeInsufficientDeposit  FailureCode = "insufficient_deposit"
	CodeInsufficientEvidence FailureCode = "insufficient_evidence"
	CodeOdometerRegression   FailureCode = "odometer_regression"
	CodeStaleTransition      FailureCode = "stale_transition"
)

// TransitionError is the typed failure of an attempted transition. Every
// transition is total: it either produces the next state or one of these.
type TransitionError struct {
	Code    FailureCode
	From    domain.RentalState
	Op      string
	Message string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s from %s (%s): %s", e.Op, e.From, e.Code, e.Message)
}

func failure(code FailureCode, from domain.RentalState, op, format string, args ...any) error {
	return &TransitionError{Code: code, From: from, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Stale builds the failure surfaced when a transition raced another writer
// and lost the version check.
func Stale(op string, from domain.RentalState) error {
	return failure(CodeStaleTransition, from, op, "rental was modified concurrently, reload and retry")
}

const (
	// MinPickupPhotos is the evidence required to hand a vehicle over.
	MinPickupPhotos = 3
	// MinReturnPhotos is the evidence required to take a vehicle back.
	MinReturnPhotos = 4
)

// NewRental creates a rental in HELD state with the validated window and the
// frozen quote attached. No deposit has been paid yet.
func NewRental(code string, customerID, vehicleID, stationID int32, window domain.RentalWindow, quote domain.PriceBreakdown, now time.Time) *domain.Rental {
	return &domain.Rental{
		Code:        code,
		CustomerID:  customerID,
		VehicleID:   vehicleID,
		StationID:   stationID,
		Window:      window,
		Quote:       quote,
		State:       domain.RentalStateHeld,
		DepositPaid: 0,
		Version:     1,
		CreatedOn:   now,
		UpdatedOn:   now,
	}
}

// PayDeposit moves HELD to CONFIRMED once the customer has paid at least the
// required deposit.
func PayDeposit(r *domain.Rental, amount int64, now time.Time) error {
	const op = "pay_deposit"
	if r.State != domain.RentalStateHeld {
		return failure(CodeInvalidTransition, r.State, op, "deposit can only be paid while the rental is held")
	}
	if amount < r.Quote.DepositRequired {
		return failure(CodeInsufficientDeposit, r.State, op,
			"deposit %d is below the required %d", amount, r.Quote.DepositRequired)
	}

	r.State = domain.RentalStateConfirmed
	r.DepositPaid = amount
	r.UpdatedOn = now
	return nil
}

// Expire moves HELD to EXPIRED. The hold window policy that decides when to
// call this lives with the scheduler, not here.
func Expire(r *domain.Rental, now time.Time) error {
	const op = "expire"
	if r.State != domain.RentalStateHeld {
		return failure(CodeInvalidTransition, r.State, op, "only held rentals expire")
	}

	r.State = domain.RentalStateExpired
	r.UpdatedOn = now
	return nil
}

// Cancel is only reachable before pickup.
func Cancel(r *domain.Rental, now time.Time) error {
	const op = "cancel"
	if r.State != domain.RentalStateHeld && r.State != domain.RentalStateConfirmed {
		return failure(CodeInvalidTransition, r.State, op, "rentals can only be cancelled before pickup")
	}

	r.State = domain.RentalStateCancelled
	r.UpdatedOn = now
	return nil
}

// CheckIn moves CONFIRMED to ONGOING, recording the pickup odometer and
// battery state of charge.
func CheckIn(r *domain.Rental, pickup domain.PickupInfo, now time.Time) error {
	const op = "check_in"
	if r.State != domain.RentalStateConfirmed {
		return failure(CodeInvalidTransition, r.State, op, "pickup requires a confirmed rental")
	}
	if len(pickup.Photos) < MinPickupPhotos {
		return failure(CodeInsufficientEvidence, r.State, op,
			"pickup requires at least %d photos, got %d", MinPickupPhotos, len(pickup.Photos))
	}

	r.State = domain.RentalStateOngoing
	r.Pickup = &pickup
	r.UpdatedOn = now
	return nil
}

// CheckOut moves ONGOING to RETURNED, recording the return evidence. The
// odometer must not regress below the pickup reading.
func CheckOut(r *domain.Rental, ret domain.ReturnInfo, now time.Time) error {
	const op = "check_out"
	if r.State != domain.RentalStateOngoing {
		return failure(CodeInvalidTransition, r.State, op, "return requires an ongoing rental")
	}
	if len(ret.Photos) < MinReturnPhotos {
		return failure(CodeInsufficientEvidence, r.State, op,
			"return requires at least %d photos, got %d", MinReturnPhotos, len(ret.Photos))
	}
	if r.Pickup != nil && ret.OdoKm < r.Pickup.OdoKm {
		return failure(CodeOdometerRegression, r.State, op,
			"return odometer %d is below pickup odometer %d", ret.OdoKm, r.Pickup.OdoKm)
	}

	r.State = domain.RentalStateReturned
	r.Return = &ret
	r.UpdatedOn = now
	return nil
}

// Settle moves RETURNED to COMPLETED once the settlement has been computed
// and any required payment or refund confirmed by the payment collaborator.
func Settle(r *domain.Rental, settlement domain.Settlement, now time.Time) error {
	const op = "settle"
	if r.State != domain.RentalStateReturned {
		return failure(CodeInvalidTransition, r.State, op, "settlement requires a returned rental")
	}

	r.State = domain.RentalStateCompleted
	r.Settlement = &settlement
	r.UpdatedOn = now
	return nil
}
