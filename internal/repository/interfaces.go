package repository

import (
	"context"

	"github.com/Jarecamang/ParkingPassport/internal/domain"
	"github.com/google/uuid"
)

type CredentialRepository interface {
	Get(ctx context.Context) (*domain.AdminCredential, error)
	// UpdateHash replaces the singleton credential's hash in a single-row
	// update; the record is never absent mid-change.
	UpdateHash(ctx context.Context, passwordHash string) error
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id uint) (*domain.Vehicle, error)
	GetByPlate(ctx context.Context, normalizedPlate string) (*domain.Vehicle, error)
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id uint) error
}

type SearchHistoryRepository interface {
	Create(ctx context.Context, entry *domain.SearchEntry) error
	GetRecent(ctx context.Context, limit int) ([]*domain.SearchEntry, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) error
}

type Repositories struct {
	Credential    CredentialRepository
	Vehicle       VehicleRepository
	SearchHistory SearchHistoryRepository
	Session       SessionRepository
}
