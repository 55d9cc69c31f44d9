package postgres

import (
	"context"
	"database/sql"
	"time"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

type stationRepository struct {
	db *sql.DB
}

func NewStationRepository(db *sql.DB) repository.StationRepository {
	return &stationRepository{db: db}
}

func (r *stationRepository) Create(ctx context.Context, s *domain.Station) error {
	query := `INSERT INTO stations (name, address, city, total_slots, created_on) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, s.Name, s.Address, s.City, s.TotalSlots, time.Now().UTC()).Scan(&s.ID)
}

func (r *stationRepository) GetByID(ctx context.Context, id int32) (*domain.Station, error) {
	s := &domain.Station{}
	query := `SELECT id, name, address, city, total_slots, created_on FROM stations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Address, &s.City, &s.TotalSlots, &s.CreatedOn)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *stationRepository) List(ctx context.Context) ([]domain.Station, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, address, city, total_slots, created_on FROM stations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []domain.Station
	for rows.Next() {
		var s domain.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.City, &s.TotalSlots, &s.CreatedOn); err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}
