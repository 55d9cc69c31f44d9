package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusReserved    VehicleStatus = "RESERVED"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
)

type Vehicle struct {
	ID          int32         `json:"id"`
	StationID   int32         `json:"station_id"`
	Model       string        `json:"model"`
	PlateNumber string        `json:"plate_number"`
	BatteryKWh  float64       `json:"battery_kwh"`
	RangeKm     int32         `json:"range_km"`
	Status      VehicleStatus `json:"status"`
	RateCard    RateCard      `json:"rate_card"`
	CreatedOn   time.Time     `json:"created_on"`
	UpdatedOn   time.Time     `json:"updated_on"`
}

type Station struct {
	ID         int32     `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	TotalSlots int32     `json:"total_slots"`
	CreatedOn  time.Time `json:"created_on"`
}
