package service

import (
	"context"
	"errors"
	"time"

	"github.com/Jarecamang/ParkingPassport/internal/domain"
	"github.com/Jarecamang/ParkingPassport/internal/repository"
)

// SearchFeed receives every audit entry as it is written. The live websocket
// feed implements it; a nil feed disables broadcasting.
type SearchFeed interface {
	BroadcastEntry(entry *domain.SearchEntry)
}

type VehicleService struct {
	vehicleRepo repository.VehicleRepository
	historyRepo repository.SearchHistoryRepository
	feed        SearchFeed
}

func NewVehicleService(vehicleRepo repository.VehicleRepository, historyRepo repository.SearchHistoryRepository, feed SearchFeed) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		historyRepo: historyRepo,
		feed:        feed,
	}
}

type CreateVehicleInput struct {
	PlateNumber string
	Apartment   string
	OwnerName   string
	Notes       string
}

// UpdateVehicleInput carries a partial update; nil fields are left untouched.
type UpdateVehicleInput struct {
	PlateNumber *string
	Apartment   *string
	OwnerName   *string
	Notes       *string
}

type LookupResult struct {
	Allowed bool
	Vehicle *domain.Vehicle
}

func (s *VehicleService) Create(ctx context.Context, input CreateVehicleInput) (*domain.Vehicle, error) {
	plate := domain.NormalizePlate(input.PlateNumber)
	if plate == "" {
		return nil, domain.ErrPlateRequired
	}
	if input.Apartment == "" {
		return nil, domain.ErrApartmentRequired
	}

	vehicle := &domain.Vehicle{
		PlateNumber: plate,
		Apartment:   input.Apartment,
		OwnerName:   input.OwnerName,
		Notes:       input.Notes,
		CreatedAt:   time.Now(),
	}

	// Uniqueness rides on the plate_number index; concurrent creators race
	// in the database, not here.
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.GetAll(ctx)
}

func (s *VehicleService) GetByID(ctx context.Context, id uint) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *VehicleService) Update(ctx context.Context, id uint, input UpdateVehicleInput) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PlateNumber != nil {
		plate := domain.NormalizePlate(*input.PlateNumber)
		if plate == "" {
			return nil, domain.ErrPlateRequired
		}
		vehicle.PlateNumber = plate
	}
	if input.Apartment != nil {
		if *input.Apartment == "" {
			return nil, domain.ErrApartmentRequired
		}
		vehicle.Apartment = *input.Apartment
	}
	if input.OwnerName != nil {
		vehicle.OwnerName = *input.OwnerName
	}
	if input.Notes != nil {
		vehicle.Notes = *input.Notes
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Delete removes a vehicle by id. Deleting an id that is already gone is a
// success; the operation is idempotent.
func (s *VehicleService) Delete(ctx context.Context, id uint) error {
	return s.vehicleRepo.Delete(ctx, id)
}

// Lookup resolves a plate to allow/deny and appends exactly one audit entry
// regardless of the outcome. The audit write is not skippable: if it fails,
// the whole lookup fails.
func (s *VehicleService) Lookup(ctx context.Context, plate string) (*LookupResult, error) {
	normalized := domain.NormalizePlate(plate)
	if normalized == "" {
		return nil, domain.ErrPlateRequired
	}

	vehicle, err := s.vehicleRepo.GetByPlate(ctx, normalized)
	if err != nil && !errors.Is(err, domain.ErrVehicleNotFound) {
		return nil, err
	}

	entry := &domain.SearchEntry{
		PlateNumber: normalized,
		Allowed:     vehicle != nil,
		SearchedAt:  time.Now(),
	}
	if vehicle != nil {
		apartment := vehicle.Apartment
		entry.ApartmentNumber = &apartment
	}

	if err := s.historyRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.BroadcastEntry(entry)
	}

	return &LookupResult{Allowed: vehicle != nil, Vehicle: vehicle}, nil
}

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// History returns the most recent audit entries, newest first.
func (s *VehicleService) History(ctx context.Context, limit int) ([]*domain.SearchEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.historyRepo.GetRecent(ctx, limit)
}
