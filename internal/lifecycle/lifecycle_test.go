package lifecycle

import (
	"errors"
	"testing"
	"time"

	"voltrent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC)

func heldRental() *domain.Rental {
	window := domain.RentalWindow{
		RentalType: domain.RentalTypeDaily,
		StartAt:    testNow.AddDate(0, 0, 1),
		EndAt:      testNow.AddDate(0, 0, 3),
		Days:       3,
	}
	quote := domain.PriceBreakdown{
		BasePrice:       900000,
		InsurancePrice:  90000,
		Taxes:           99000,
		TotalPrice:      1089000,
		DepositRequired: 217800,
	}
	return NewRental("VR-TEST-1", 1, 2, 3, window, quote, testNow)
}

func codeOf(t *testing.T, err error) FailureCode {
	t.Helper()
	var terr *TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransitionError, got %T: %v", err, err)
	}
	return terr.Code
}

func pickupWith(photos int) domain.PickupInfo {
	p := domain.PickupInfo{OdoKm: 12000, SoC: 0.95}
	for i := 0; i < photos; i++ {
		p.Photos = append(p.Photos, "pickup.jpg")
	}
	return p
}

func returnWith(photos int, odoKm int32) domain.ReturnInfo {
	r := domain.ReturnInfo{OdoKm: odoKm, SoC: 0.40}
	for i := 0; i < photos; i++ {
		r.Photos = append(r.Photos, "return.jpg")
	}
	return r
}

func TestNewRental(t *testing.T) {
	r := heldRental()
	assert.Equal(t, domain.RentalStateHeld, r.State)
	assert.Equal(t, int64(0), r.DepositPaid)
	assert.Equal(t, int32(1), r.Version)
}

func TestPayDeposit(t *testing.T) {
	t.Run("Sufficient deposit confirms", func(t *testing.T) {
		r := heldRental()
		err := PayDeposit(r, 217800, testNow)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStateConfirmed, r.State)
		assert.Equal(t, int64(217800), r.DepositPaid)
	})

	t.Run("Short deposit is rejected without mutation", func(t *testing.T) {
		r := heldRental()
		err := PayDeposit(r, 217799, testNow)
		assert.Equal(t, CodeInsufficientDeposit, codeOf(t, err))
		assert.Equal(t, domain.RentalStateHeld, r.State)
		assert.Equal(t, int64(0), r.DepositPaid)
	})

	t.Run("Cannot pay twice", func(t *testing.T) {
		r := heldRental()
		assert.NoError(t, PayDeposit(r, 250000, testNow))
		err := PayDeposit(r, 250000, testNow)
		assert.Equal(t, CodeInvalidTransition, codeOf(t, err))
	})
}

func TestExpire(t *testing.T) {
	t.Run("Held rental expires", func(t *testing.T) {
		r := heldRental()
		assert.NoError(t, Expire(r, testNow))
		assert.Equal(t, domain.RentalStateExpired, r.State)
	})

	t.Run("Confirmed rental does not expire", func(t *testing.T) {
		r := heldRental()
		assert.NoError(t, PayDeposit(r, 217800, testNow))
		err := Expire(r, testNow)
		assert.Equal(t, CodeInvalidTransition, codeOf(t, err))
		assert.Equal(t, domain.RentalStateConfirmed, r.State)
	})
}

func TestCancel(t *testing.T) {
	t.Run("Before pickup", func(t *testing.T) {
		held := heldRental()
		assert.NoError(t, Cancel(held, testNow))
		assert.Equal(t, domain.RentalStateCancelled, held.State)

		confirmed := heldRental()
		assert.NoError(t, PayDeposit(confirmed, 217800, testNow))
		assert.NoError(t, Cancel(confirmed, testNow))
	})

	t.Run("Not after pickup", func(t *testing.T) {
		r := heldRental()
		assert.NoError(t, PayDeposit(r, 217800, testNow))
		assert.NoError(t, CheckIn(r, pickupWith(3), testNow))

		err := Cancel(r, testNow)
		assert.Equal(t, CodeInvalidTransition, codeOf(t, err))
		assert.Equal(t, domain.RentalStateOngoing, r.State)
	})
}

func TestCheckIn(t *testing.T) {
	t.Run("Requires confirmed state", func(t *testing.T) {
		r := heldRental()
		err := CheckIn(r, pickupWith(3), testNow)
		assert.Equal(t, CodeInvalidTransition, codeOf(t, err))
	})

	t.Run("Requires three photos", func(t *testing.T) {
		r := heldRental()
		assert.NoError(t, PayDeposit(r, 217800, testNow))

		err := CheckIn(r, pickupWith(2), testNow)
		assert.Equal(t, CodeInsufficientEvidence, codeOf(t, err))
		assert.Equal(t, domain.RentalStateConfirmed, r.State)
		assert.Nil(t, r.Pickup)
	})

	t.Run("Records pickup evidence", func(t *testing.T) {
		r := heldRental()
		assert.NoError(t, PayDeposit(r, 217800, testNow))
		assert.NoError(t, CheckIn(r, pickupWith(3), testNow))

		assert.Equal(t, domain.RentalStateOngoing, r.State)
		assert.NotNil(t, r.Pickup)
		assert.Equal(t, int32(12000), r.Pickup.OdoKm)
	})
}

func TestCheckOut(t *testing.T) {
	ongoing := func() *domain.Rental {
		r := heldRental()
		assert.NoError(t, PayDeposit(r, 217800, testNow))
		assert.NoError(t, CheckIn(r, pickupWith(3), testNow))
		return r
	}

	t.Run("Requires four photos", func(t *testing.T) {
		r := ongoing()
		err := CheckOut(r, returnWith(3, 12100), testNow)
		assert.Equal(t, CodeInsufficientEvidence, codeOf(t, err))
		assert.Equal(t, domain.RentalStateOngoing, r.State)
	})

	t.Run("Odometer must not regress", func(t *testing.T) {
		r := ongoing()
		err := CheckOut(r, returnWith(4, 11999), testNow)
		assert.Equal(t, CodeOdometerRegression, codeOf(t, err))
		assert.Nil(t, r.Return)
	})

	t.Run("Unchanged odometer is fine", func(t *testing.T) {
		r := ongoing()
		assert.NoError(t, CheckOut(r, returnWith(4, 12000), testNow))
		assert.Equal(t, domain.RentalStateReturned, r.State)
	})
}

func TestSettle(t *testing.T) {
	t.Run("Returned rental completes", func(t *testing.T) {
		r := heldRental()
		assert.NoError(t, PayDeposit(r, 217800, testNow))
		assert.NoError(t, CheckIn(r, pickupWith(3), testNow))
		assert.NoError(t, CheckOut(r, returnWith(4, 12150), testNow))

		settlement := domain.Settlement{TotalCharges: 1089000, DepositApplied: 217800, FinalAmount: 871200}
		assert.NoError(t, Settle(r, settlement, testNow))
		assert.Equal(t, domain.RentalStateCompleted, r.State)
		assert.Equal(t, &settlement, r.Settlement)
	})

	t.Run("Cannot settle before return", func(t *testing.T) {
		r := heldRental()
		err := Settle(r, domain.Settlement{}, testNow)
		assert.Equal(t, CodeInvalidTransition, codeOf(t, err))
	})
}

func TestStale(t *testing.T) {
	err := Stale("check_in", domain.RentalStateConfirmed)
	assert.Equal(t, CodeStaleTransition, codeOf(t, err))
}
