package domain

import (
	"errors"
	"time"
)

type RentalState string

const (
	RentalStateHeld      RentalState = "HELD"
	RentalStateConfirmed RentalState = "CONFIRMED"
	RentalStateOngoing   RentalState = "ONGOING"
	RentalStateReturned  RentalState = "RETURNED"
	RentalStateCompleted RentalState = "COMPLETED"
	RentalStateCancelled RentalState = "CANCELLED"
	RentalStateExpired   RentalState = "EXPIRED"
)

type RentalType string

const (
	RentalTypeHourly RentalType = "hourly"
	RentalTypeDaily  RentalType = "daily"
)

// ErrStaleVersion is returned by the rental repository when an update carries
// a version that no longer matches the stored row.
var ErrStaleVersion = errors.New("rental version is stale")

// RentalWindow is the validated rental period. Days is only meaningful for
// daily rentals and counts both the start and the end dates.
type RentalWindow struct {
	RentalType RentalType `json:"rental_type"`
	StartAt    time.Time  `json:"start_at"`
	EndAt      time.Time  `json:"end_at"`
	Days       int32      `json:"days,omitempty"`
}

// PickupInfo is the evidence captured when the customer picks up the vehicle.
type PickupInfo struct {
	OdoKm  int32    `json:"odo_km"`
	SoC    float64  `json:"soc"` // battery state of charge, 0..1
	Photos []string `json:"photos"`
}

// ReturnInfo is the evidence captured when the vehicle comes back.
type ReturnInfo struct {
	OdoKm     int32      `json:"odo_km"`
	SoC       float64    `json:"soc"`
	Photos    []string   `json:"photos"`
	ExtraFees []ExtraFee `json:"extra_fees,omitempty"`
}

// Rental is the central entity. It is created in HELD state with a frozen
// price quote and only mutated through lifecycle transitions; the Version
// field backs optimistic locking on every update.
type Rental struct {
	ID          int32          `json:"id"`
	Code        string         `json:"code"`
	CustomerID  int32          `json:"customer_id"`
	VehicleID   int32          `json:"vehicle_id"`
	StationID   int32          `json:"station_id"`
	Window      RentalWindow   `json:"window"`
	Quote       PriceBreakdown `json:"quote"`
	State       RentalState    `json:"state"`
	DepositPaid int64          `json:"deposit_paid"`
	// PaymentSessionID references the checkout session created for the
	// deposit; refunds are issued against it.
	PaymentSessionID string      `json:"payment_session_id,omitempty"`
	Pickup           *PickupInfo `json:"pickup,omitempty"`
	Return           *ReturnInfo `json:"return,omitempty"`
	Settlement       *Settlement `json:"settlement,omitempty"`
	Version          int32       `json:"version"`
	CreatedOn        time.Time   `json:"created_on"`
	UpdatedOn        time.Time   `json:"updated_on"`
}
