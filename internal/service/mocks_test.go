package service_test

import (
	"context"
	"time"

	"voltrent-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetByCode(ctx context.Context, code string) (*domain.Rental, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByCustomer(ctx context.Context, customerID int32, state string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, customerID, state, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListByStation(ctx context.Context, stationID int32, state string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, stationID, state, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListHeldBefore(ctx context.Context, cutoff time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListOngoingPastEnd(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockVehicleRepo) ListByStation(ctx context.Context, stationID int32, status domain.VehicleStatus) ([]domain.Vehicle, error) {
	args := m.Called(ctx, stationID, status)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

// MockStationRepo
type MockStationRepo struct {
	mock.Mock
}

func (m *MockStationRepo) Create(ctx context.Context, station *domain.Station) error {
	args := m.Called(ctx, station)
	return args.Error(0)
}
func (m *MockStationRepo) GetByID(ctx context.Context, id int32) (*domain.Station, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}
func (m *MockStationRepo) List(ctx context.Context) ([]domain.Station, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Station), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateTransaction(ctx context.Context, tx *domain.LedgerTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListByRental(ctx context.Context, rentalID int32) ([]domain.LedgerTransaction, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.LedgerTransaction), args.Error(1)
}
func (m *MockLedgerRepo) ListByCustomer(ctx context.Context, customerID int32, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	args := m.Called(ctx, customerID, page, pageSize)
	return args.Get(0).([]domain.LedgerTransaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockLedgerRepo) GetSummary(ctx context.Context, customerID int32) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, customerID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, customerID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, customerID int32) error {
	args := m.Called(ctx, id, customerID)
	return args.Error(0)
}

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreateDepositSession(ctx context.Context, amount int64, currency, rentalCode, customerEmail string) (string, string, error) {
	args := m.Called(ctx, amount, currency, rentalCode, customerEmail)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *MockPaymentService) RefundBySessionID(ctx context.Context, sessionID string, amount int64) error {
	args := m.Called(ctx, sessionID, amount)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalHeldNotification(ctx context.Context, email, name, code string, depositRequired int64, paymentURL string) error {
	args := m.Called(ctx, email, name, code, depositRequired, paymentURL)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalConfirmedNotification(ctx context.Context, email, name, code string, startAt time.Time) error {
	args := m.Called(ctx, email, name, code, startAt)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalCancelledNotification(ctx context.Context, email, name, code string, refunded int64) error {
	args := m.Called(ctx, email, name, code, refunded)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalExpiredNotification(ctx context.Context, email, name, code string) error {
	args := m.Called(ctx, email, name, code)
	return args.Error(0)
}
func (m *MockEmailService) SendSettlementNotification(ctx context.Context, email, name, code string, finalAmount int64) error {
	args := m.Called(ctx, email, name, code, finalAmount)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, email, name, code string, endAt time.Time) error {
	args := m.Called(ctx, email, name, code, endAt)
	return args.Error(0)
}

// MockSMSService
type MockSMSService struct {
	mock.Mock
}

func (m *MockSMSService) SendReturnReminder(ctx context.Context, phone, code string, endAt time.Time) error {
	args := m.Called(ctx, phone, code, endAt)
	return args.Error(0)
}
func (m *MockSMSService) SendOverdueAlert(ctx context.Context, phone, code string, endAt time.Time) error {
	args := m.Called(ctx, phone, code, endAt)
	return args.Error(0)
}
