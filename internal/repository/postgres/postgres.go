package postgres

import (
	"database/sql"

	"voltrent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.RentalRepository
	repository.VehicleRepository
	repository.StationRepository
	repository.CustomerRepository
	repository.LedgerRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		RentalRepository:       NewRentalRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		StationRepository:      NewStationRepository(db),
		CustomerRepository:     NewCustomerRepository(db),
		LedgerRepository:       NewLedgerRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
