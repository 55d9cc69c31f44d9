package service

import (
	"context"
	"errors"
	"time"

	"voltrent-backend/internal/domain"
)

// ErrVehicleUnavailable is returned when a booking targets a vehicle that is
// reserved, rented or in maintenance.
var ErrVehicleUnavailable = errors.New("vehicle is not available for rental")

// ErrEmailTaken is returned when a registration reuses an existing email.
var ErrEmailTaken = errors.New("email is already registered")

// QuoteRequest carries the customer's booking intent. The same request shape
// backs both quoting and rental creation so a displayed quote can be
// reproduced exactly at booking time.
type QuoteRequest struct {
	VehicleID  int32             `json:"vehicle_id"`
	RentalType domain.RentalType `json:"rental_type"`
	StartAt    time.Time         `json:"start_at"`
	EndAt      time.Time         `json:"end_at"`
	Insurance  bool              `json:"insurance"`
}

type RentalService interface {
	QuoteRental(ctx context.Context, req QuoteRequest, now time.Time) (*domain.PriceBreakdown, error)
	// CreateRental places a hold on the vehicle and returns the rental plus
	// the checkout URL for the deposit.
	CreateRental(ctx context.Context, customerID int32, req QuoteRequest, now time.Time) (*domain.Rental, string, error)
	PayDeposit(ctx context.Context, code string, amount int64, expectedVersion int32, now time.Time) (*domain.Rental, error)
	CancelRental(ctx context.Context, code string, expectedVersion int32, now time.Time) (*domain.Rental, error)
	CheckIn(ctx context.Context, code string, pickup domain.PickupInfo, expectedVersion int32, now time.Time) (*domain.Rental, error)
	CheckOut(ctx context.Context, code string, ret domain.ReturnInfo, expectedVersion int32, now time.Time) (*domain.Rental, error)
	SettleRental(ctx context.Context, code string, expectedVersion int32, now time.Time) (*domain.Rental, error)
	// ExpireRental is driven by the hold-window job, not by customers, so it
	// carries no expected version: losing the race just means the customer
	// paid in time.
	ExpireRental(ctx context.Context, code string, now time.Time) (*domain.Rental, error)
	GetRental(ctx context.Context, code string) (*domain.Rental, error)
	ListRentals(ctx context.Context, customerID int32, state string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListStationRentals(ctx context.Context, stationID int32, state string, page, pageSize int32) ([]domain.Rental, int32, error)
}

type CatalogService interface {
	ListStations(ctx context.Context) ([]domain.Station, error)
	GetStation(ctx context.Context, id int32) (*domain.Station, error)
	AddStation(ctx context.Context, station *domain.Station) error
	AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	SetVehicleStatus(ctx context.Context, id int32, status domain.VehicleStatus) error
	ListVehicles(ctx context.Context, stationID int32, status domain.VehicleStatus) ([]domain.Vehicle, error)
}

type CustomerService interface {
	Register(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id int32) (*domain.Customer, error)
}

type LedgerService interface {
	GetRentalTransactions(ctx context.Context, rentalID int32) ([]domain.LedgerTransaction, error)
	GetTransactions(ctx context.Context, customerID, page, pageSize int32) ([]domain.LedgerTransaction, int32, error)
	GetLedgerSummary(ctx context.Context, customerID int32) (*domain.LedgerSummary, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, customerID, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, customerID, notificationID int32) error
}

// PaymentService abstracts the payment gateway. Amounts are in the smallest
// currency unit, matching the rest of the engine.
type PaymentService interface {
	CreateDepositSession(ctx context.Context, amount int64, currency, rentalCode, customerEmail string) (url, sessionID string, err error)
	// RefundBySessionID refunds amount against the payment taken through the
	// session. Cancellations return the whole deposit; settlements return
	// only the part left after charges.
	RefundBySessionID(ctx context.Context, sessionID string, amount int64) error
}

type EmailService interface {
	SendRentalHeldNotification(ctx context.Context, email, name, code string, depositRequired int64, paymentURL string) error
	SendRentalConfirmedNotification(ctx context.Context, email, name, code string, startAt time.Time) error
	SendRentalCancelledNotification(ctx context.Context, email, name, code string, refunded int64) error
	SendRentalExpiredNotification(ctx context.Context, email, name, code string) error
	SendSettlementNotification(ctx context.Context, email, name, code string, finalAmount int64) error
	SendReturnReminder(ctx context.Context, email, name, code string, endAt time.Time) error
}

type SMSService interface {
	SendReturnReminder(ctx context.Context, phone, code string, endAt time.Time) error
	SendOverdueAlert(ctx context.Context, phone, code string, endAt time.Time) error
}
