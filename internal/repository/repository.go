package repository

import (
	"context"
	"time"

	"voltrent-backend/internal/domain"
)

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	GetByCode(ctx context.Context, code string) (*domain.Rental, error)
	// Update persists the rental with compare-and-swap on the version column,
	// including any extra fees on the return, atomically. It returns
	// domain.ErrStaleVersion when another writer got there first, and
	// increments rental.Version on success.
	Update(ctx context.Context, rental *domain.Rental) error
	ListByCustomer(ctx context.Context, customerID int32, state string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListByStation(ctx context.Context, stationID int32, state string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListHeldBefore(ctx context.Context, cutoff time.Time) ([]domain.Rental, error)
	ListOngoingPastEnd(ctx context.Context, now time.Time) ([]domain.Rental, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error
	ListByStation(ctx context.Context, stationID int32, status domain.VehicleStatus) ([]domain.Vehicle, error)
}

type StationRepository interface {
	Create(ctx context.Context, station *domain.Station) error
	GetByID(ctx context.Context, id int32) (*domain.Station, error)
	List(ctx context.Context) ([]domain.Station, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

type LedgerRepository interface {
	CreateTransaction(ctx context.Context, tx *domain.LedgerTransaction) error
	ListByRental(ctx context.Context, rentalID int32) ([]domain.LedgerTransaction, error)
	ListByCustomer(ctx context.Context, customerID int32, page, pageSize int32) ([]domain.LedgerTransaction, int32, error)
	GetSummary(ctx context.Context, customerID int32) (*domain.LedgerSummary, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, customerID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, customerID int32) error
}
