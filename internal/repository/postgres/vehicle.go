package postgres

import (
	"context"
	"database/sql"
	"time"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, station_id, model, plate_number, battery_kwh, range_km, status,
	hourly_rate, daily_rate, insurance_rate_pct, tax_rate_pct, deposit_rate_pct, peak_multiplier, weekend_multiplier,
	created_on, updated_on`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (station_id, model, plate_number, battery_kwh, range_km, status,
		hourly_rate, daily_rate, insurance_rate_pct, tax_rate_pct, deposit_rate_pct, peak_multiplier, weekend_multiplier,
		created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		v.StationID, v.Model, v.PlateNumber, v.BatteryKWh, v.RangeKm, v.Status,
		v.RateCard.HourlyRate, v.RateCard.DailyRate, v.RateCard.InsuranceRatePct, v.RateCard.TaxRatePct,
		v.RateCard.DepositRatePct, v.RateCard.PeakMultiplier, v.RateCard.WeekendMultiplier,
		time.Now().UTC(), time.Now().UTC(),
	).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	return scanVehicle(row.Scan)
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET station_id=$1, model=$2, plate_number=$3, battery_kwh=$4, range_km=$5, status=$6,
		hourly_rate=$7, daily_rate=$8, insurance_rate_pct=$9, tax_rate_pct=$10, deposit_rate_pct=$11,
		peak_multiplier=$12, weekend_multiplier=$13, updated_on=$14 WHERE id=$15`
	_, err := r.db.ExecContext(ctx, query,
		v.StationID, v.Model, v.PlateNumber, v.BatteryKWh, v.RangeKm, v.Status,
		v.RateCard.HourlyRate, v.RateCard.DailyRate, v.RateCard.InsuranceRatePct, v.RateCard.TaxRatePct,
		v.RateCard.DepositRatePct, v.RateCard.PeakMultiplier, v.RateCard.WeekendMultiplier,
		time.Now().UTC(), v.ID)
	return err
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE vehicles SET status=$1, updated_on=$2 WHERE id=$3`, status, time.Now().UTC(), id)
	return err
}

func (r *vehicleRepository) ListByStation(ctx context.Context, stationID int32, status domain.VehicleStatus) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE station_id = $1`
	args := []interface{}{stationID}
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows.Scan)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func scanVehicle(scan func(dest ...interface{}) error) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := scan(
		&v.ID, &v.StationID, &v.Model, &v.PlateNumber, &v.BatteryKWh, &v.RangeKm, &v.Status,
		&v.RateCard.HourlyRate, &v.RateCard.DailyRate, &v.RateCard.InsuranceRatePct, &v.RateCard.TaxRatePct,
		&v.RateCard.DepositRatePct, &v.RateCard.PeakMultiplier, &v.RateCard.WeekendMultiplier,
		&v.CreatedOn, &v.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}
