package service

import (
	"context"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

type catalogService struct {
	stationRepo repository.StationRepository
	vehicleRepo repository.VehicleRepository
}

func NewCatalogService(stationRepo repository.StationRepository, vehicleRepo repository.VehicleRepository) CatalogService {
	return &catalogService{
		stationRepo: stationRepo,
		vehicleRepo: vehicleRepo,
	}
}

func (s *catalogService) ListStations(ctx context.Context) ([]domain.Station, error) {
	return s.stationRepo.List(ctx)
}

func (s *catalogService) GetStation(ctx context.Context, id int32) (*domain.Station, error) {
	return s.stationRepo.GetByID(ctx, id)
}

func (s *catalogService) AddStation(ctx context.Context, station *domain.Station) error {
	return s.stationRepo.Create(ctx, station)
}

func (s *catalogService) AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if vehicle.Status == "" {
		vehicle.Status = domain.VehicleStatusAvailable
	}
	return s.vehicleRepo.Create(ctx, vehicle)
}

func (s *catalogService) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

// UpdateVehicle writes the catalog fields and rate card. Existing rentals
// keep the quote frozen at booking time, so edits here only affect new quotes.
func (s *catalogService) UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	return s.vehicleRepo.Update(ctx, vehicle)
}

func (s *catalogService) SetVehicleStatus(ctx context.Context, id int32, status domain.VehicleStatus) error {
	return s.vehicleRepo.UpdateStatus(ctx, id, status)
}

func (s *catalogService) ListVehicles(ctx context.Context, stationID int32, status domain.VehicleStatus) ([]domain.Vehicle, error) {
	return s.vehicleRepo.ListByStation(ctx, stationID, status)
}
