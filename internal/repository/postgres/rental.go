package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"

	"github.com/lib/pq"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, code, customer_id, vehicle_id, station_id, rental_type, start_at, end_at, days,
	base_price, insurance_price, taxes, total_price, deposit_required, hours, peak_multiplier, weekend_multiplier, insurance_selected,
	state, deposit_paid, payment_session_id, pickup_odo_km, pickup_soc, pickup_photos, return_odo_km, return_soc, return_photos,
	settle_total_charges, settle_deposit_applied, settle_final_amount, version, created_on, updated_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (code, customer_id, vehicle_id, station_id, rental_type, start_at, end_at, days,
		base_price, insurance_price, taxes, total_price, deposit_required, hours, peak_multiplier, weekend_multiplier, insurance_selected,
		state, deposit_paid, payment_session_id, version, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		rt.Code, rt.CustomerID, rt.VehicleID, rt.StationID,
		rt.Window.RentalType, rt.Window.StartAt, rt.Window.EndAt, rt.Window.Days,
		rt.Quote.BasePrice, rt.Quote.InsurancePrice, rt.Quote.Taxes, rt.Quote.TotalPrice, rt.Quote.DepositRequired,
		rt.Quote.Hours, rt.Quote.PeakMultiplierApplied, rt.Quote.WeekendMultiplierApplied, rt.Quote.InsuranceSelected,
		rt.State, rt.DepositPaid, rt.PaymentSessionID, rt.Version, rt.CreatedOn, rt.UpdatedOn,
	).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id)
	return r.scanRental(ctx, row)
}

func (r *rentalRepository) GetByCode(ctx context.Context, code string) (*domain.Rental, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE code = $1`, code)
	return r.scanRental(ctx, row)
}

// Update writes the rental back with compare-and-swap on version. Zero rows
// affected means another transition already advanced the row. Any extra fees
// recorded on the return are replaced inside the same transaction, so the
// RETURNED state and its fees commit or roll back together.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET state=$1, deposit_paid=$2,
		pickup_odo_km=$3, pickup_soc=$4, pickup_photos=$5,
		return_odo_km=$6, return_soc=$7, return_photos=$8,
		settle_total_charges=$9, settle_deposit_applied=$10, settle_final_amount=$11,
		version=version+1, updated_on=$12
		WHERE id=$13 AND version=$14`

	var pickupOdo, returnOdo sql.NullInt32
	var pickupSoC, returnSoC sql.NullFloat64
	var pickupPhotos, returnPhotos []string
	if rt.Pickup != nil {
		pickupOdo = sql.NullInt32{Int32: rt.Pickup.OdoKm, Valid: true}
		pickupSoC = sql.NullFloat64{Float64: rt.Pickup.SoC, Valid: true}
		pickupPhotos = rt.Pickup.Photos
	}
	if rt.Return != nil {
		returnOdo = sql.NullInt32{Int32: rt.Return.OdoKm, Valid: true}
		returnSoC = sql.NullFloat64{Float64: rt.Return.SoC, Valid: true}
		returnPhotos = rt.Return.Photos
	}
	var settleTotal, settleDeposit, settleFinal sql.NullInt64
	if rt.Settlement != nil {
		settleTotal = sql.NullInt64{Int64: rt.Settlement.TotalCharges, Valid: true}
		settleDeposit = sql.NullInt64{Int64: rt.Settlement.DepositApplied, Valid: true}
		settleFinal = sql.NullInt64{Int64: rt.Settlement.FinalAmount, Valid: true}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query,
		rt.State, rt.DepositPaid,
		pickupOdo, pickupSoC, pq.Array(pickupPhotos),
		returnOdo, returnSoC, pq.Array(returnPhotos),
		settleTotal, settleDeposit, settleFinal,
		rt.UpdatedOn, rt.ID, rt.Version)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrStaleVersion
	}

	if rt.Return != nil && len(rt.Return.ExtraFees) > 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM rental_extra_fees WHERE rental_id = $1`, rt.ID); err != nil {
			return fmt.Errorf("replace extra fees: %w", err)
		}
		for _, fee := range rt.Return.ExtraFees {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO rental_extra_fees (rental_id, kind, amount, description, created_on) VALUES ($1, $2, $3, $4, $5)`,
				rt.ID, fee.Kind, fee.Amount, fee.Description, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("insert extra fee: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	rt.Version++
	return nil
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID int32, state string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return r.list(ctx, "customer_id", customerID, state, page, pageSize)
}

func (r *rentalRepository) ListByStation(ctx context.Context, stationID int32, state string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return r.list(ctx, "station_id", stationID, state, page, pageSize)
}

func (r *rentalRepository) list(ctx context.Context, column string, id int32, state string, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE ` + column + ` = $1`

	args := []interface{}{id}
	argIdx := 2
	if state != "" {
		query += fmt.Sprintf(" AND state = $%d", argIdx)
		args = append(args, state)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rentals, err := r.queryRentals(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return rentals, count, nil
}

func (r *rentalRepository) ListHeldBefore(ctx context.Context, cutoff time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE state = $1 AND created_on < $2`
	return r.queryRentals(ctx, query, domain.RentalStateHeld, cutoff)
}

func (r *rentalRepository) ListOngoingPastEnd(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE state = $1 AND end_at < $2`
	return r.queryRentals(ctx, query, domain.RentalStateOngoing, now)
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRentalRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) scanRental(ctx context.Context, row *sql.Row) (*domain.Rental, error) {
	rt, err := scanRentalRow(row.Scan)
	if err != nil {
		return nil, err
	}
	if rt.Return != nil {
		fees, err := r.listExtraFees(ctx, rt.ID)
		if err != nil {
			return nil, err
		}
		rt.Return.ExtraFees = fees
	}
	return rt, nil
}

func (r *rentalRepository) listExtraFees(ctx context.Context, rentalID int32) ([]domain.ExtraFee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, amount, description FROM rental_extra_fees WHERE rental_id = $1 ORDER BY id`, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []domain.ExtraFee
	for rows.Next() {
		var fee domain.ExtraFee
		if err := rows.Scan(&fee.Kind, &fee.Amount, &fee.Description); err != nil {
			return nil, err
		}
		fees = append(fees, fee)
	}
	return fees, rows.Err()
}

func scanRentalRow(scan func(dest ...interface{}) error) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var pickupOdo, returnOdo sql.NullInt32
	var pickupSoC, returnSoC sql.NullFloat64
	var pickupPhotos, returnPhotos []string
	var settleTotal, settleDeposit, settleFinal sql.NullInt64

	err := scan(
		&rt.ID, &rt.Code, &rt.CustomerID, &rt.VehicleID, &rt.StationID,
		&rt.Window.RentalType, &rt.Window.StartAt, &rt.Window.EndAt, &rt.Window.Days,
		&rt.Quote.BasePrice, &rt.Quote.InsurancePrice, &rt.Quote.Taxes, &rt.Quote.TotalPrice, &rt.Quote.DepositRequired,
		&rt.Quote.Hours, &rt.Quote.PeakMultiplierApplied, &rt.Quote.WeekendMultiplierApplied, &rt.Quote.InsuranceSelected,
		&rt.State, &rt.DepositPaid, &rt.PaymentSessionID,
		&pickupOdo, &pickupSoC, pq.Array(&pickupPhotos),
		&returnOdo, &returnSoC, pq.Array(&returnPhotos),
		&settleTotal, &settleDeposit, &settleFinal,
		&rt.Version, &rt.CreatedOn, &rt.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}

	if pickupOdo.Valid {
		rt.Pickup = &domain.PickupInfo{OdoKm: pickupOdo.Int32, SoC: pickupSoC.Float64, Photos: pickupPhotos}
	}
	if returnOdo.Valid {
		rt.Return = &domain.ReturnInfo{OdoKm: returnOdo.Int32, SoC: returnSoC.Float64, Photos: returnPhotos}
	}
	if settleTotal.Valid {
		rt.Settlement = &domain.Settlement{
			TotalCharges:   settleTotal.Int64,
			DepositApplied: settleDeposit.Int64,
			FinalAmount:    settleFinal.Int64,
		}
	}
	return rt, nil
}
