package postgres

import (
	"context"
	"errors"

	"github.com/Jarecamang/ParkingPassport/internal/domain"
	"gorm.io/gorm"
)

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *vehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	err := r.db.WithContext(ctx).Create(vehicle).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicatePlate
	}
	return err
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uint) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) GetByPlate(ctx context.Context, normalizedPlate string) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := r.db.WithContext(ctx).First(&vehicle, "plate_number = ?", normalizedPlate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	var vehicles []*domain.Vehicle
	err := r.db.WithContext(ctx).Order("id").Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	err := r.db.WithContext(ctx).Save(vehicle).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicatePlate
	}
	return err
}

// Delete is idempotent; removing an id that is already gone is not an error
// at this layer.
func (r *vehicleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Vehicle{}, "id = ?", id).Error
}
