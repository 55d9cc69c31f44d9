package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var rentalCols = []string{
	"id", "code", "customer_id", "vehicle_id", "station_id", "rental_type", "start_at", "end_at", "days",
	"base_price", "insurance_price", "taxes", "total_price", "deposit_required", "hours", "peak_multiplier", "weekend_multiplier", "insurance_selected",
	"state", "deposit_paid", "payment_session_id", "pickup_odo_km", "pickup_soc", "pickup_photos", "return_odo_km", "return_soc", "return_photos",
	"settle_total_charges", "settle_deposit_applied", "settle_final_amount", "version", "created_on", "updated_on",
}

func newHeldRental() *domain.Rental {
	now := time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC)
	return &domain.Rental{
		Code:       "VR-1A2B3C4D",
		CustomerID: 1,
		VehicleID:  2,
		StationID:  3,
		Window: domain.RentalWindow{
			RentalType: domain.RentalTypeDaily,
			StartAt:    now.AddDate(0, 0, 1),
			EndAt:      now.AddDate(0, 0, 3),
			Days:       3,
		},
		Quote: domain.PriceBreakdown{
			BasePrice:                900000,
			InsurancePrice:           90000,
			Taxes:                    99000,
			TotalPrice:               1089000,
			DepositRequired:          217800,
			Hours:                    72,
			PeakMultiplierApplied:    1,
			WeekendMultiplierApplied: 1,
			InsuranceSelected:        true,
		},
		State:     domain.RentalStateHeld,
		Version:   1,
		CreatedOn: now,
		UpdatedOn: now,
	}
}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	rental := newHeldRental()
	mock.ExpectQuery("INSERT INTO rentals").
		WithArgs(rental.Code, rental.CustomerID, rental.VehicleID, rental.StationID,
			string(rental.Window.RentalType), rental.Window.StartAt, rental.Window.EndAt, rental.Window.Days,
			rental.Quote.BasePrice, rental.Quote.InsurancePrice, rental.Quote.Taxes, rental.Quote.TotalPrice, rental.Quote.DepositRequired,
			rental.Quote.Hours, rental.Quote.PeakMultiplierApplied, rental.Quote.WeekendMultiplierApplied, rental.Quote.InsuranceSelected,
			string(rental.State), rental.DepositPaid, rental.PaymentSessionID, rental.Version, rental.CreatedOn, rental.UpdatedOn).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	err = repo.Create(ctx, rental)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), rental.ID)
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows(rentalCols).AddRow(
		1, "VR-1A2B3C4D", 1, 2, 3, "daily", now, now.AddDate(0, 0, 2), 3,
		900000, 90000, 99000, 1089000, 217800, 72.0, 1.0, 1.0, true,
		"HELD", 0, "cs_test_a1", nil, nil, nil, nil, nil, nil,
		nil, nil, nil, 1, now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
		WithArgs(int32(1)).
		WillReturnRows(rows)

	rental, err := repo.GetByID(ctx, 1)
	assert.NoError(t, err)
	assert.NotNil(t, rental)
	assert.Equal(t, domain.RentalStateHeld, rental.State)
	assert.Nil(t, rental.Pickup)
	assert.Nil(t, rental.Settlement)
	assert.Equal(t, int64(1089000), rental.Quote.TotalPrice)
}

func TestRentalRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Version match bumps version", func(t *testing.T) {
		rental := newHeldRental()
		rental.ID = 1
		rental.State = domain.RentalStateConfirmed
		rental.DepositPaid = 217800

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rentals SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Update(ctx, rental)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), rental.Version)
	})

	t.Run("Version mismatch is stale", func(t *testing.T) {
		rental := newHeldRental()
		rental.ID = 1

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rentals SET").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Update(ctx, rental)
		assert.ErrorIs(t, err, domain.ErrStaleVersion)
		assert.Equal(t, int32(1), rental.Version)
	})
}

func TestRentalRepository_UpdateWithReturnFees(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	returnedRental := func() *domain.Rental {
		rental := newHeldRental()
		rental.ID = 1
		rental.State = domain.RentalStateReturned
		rental.DepositPaid = 217800
		rental.Pickup = &domain.PickupInfo{OdoKm: 12000, SoC: 0.95, Photos: []string{"a", "b", "c"}}
		rental.Return = &domain.ReturnInfo{
			OdoKm: 12150, SoC: 0.40, Photos: []string{"a", "b", "c", "d"},
			ExtraFees: []domain.ExtraFee{
				{Kind: domain.ExtraFeeKindCleaning, Amount: 50000, Description: "mud on the floor mats"},
				{Kind: domain.ExtraFeeKindLate, Amount: 30000, Description: "returned 40 minutes late"},
			},
		}
		return rental
	}

	t.Run("State and fees commit together", func(t *testing.T) {
		rental := returnedRental()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rentals SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM rental_extra_fees").
			WithArgs(rental.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		for range rental.Return.ExtraFees {
			mock.ExpectExec("INSERT INTO rental_extra_fees").
				WillReturnResult(sqlmock.NewResult(1, 1))
		}
		mock.ExpectCommit()

		err := repo.Update(ctx, rental)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), rental.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Fee insert failure rolls back the state change", func(t *testing.T) {
		rental := returnedRental()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rentals SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM rental_extra_fees").
			WithArgs(rental.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO rental_extra_fees").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.Update(ctx, rental)
		assert.Error(t, err)
		assert.Equal(t, int32(1), rental.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
