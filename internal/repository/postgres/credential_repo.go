package postgres

import (
	"context"
	"errors"

	"github.com/Jarecamang/ParkingPassport/internal/domain"
	"gorm.io/gorm"
)

type credentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *credentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Get(ctx context.Context) (*domain.AdminCredential, error) {
	var cred domain.AdminCredential
	err := r.db.WithContext(ctx).First(&cred, "id = ?", domain.AdminCredentialID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) UpdateHash(ctx context.Context, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.AdminCredential{}).
		Where("id = ?", domain.AdminCredentialID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCredentialNotFound
	}
	return nil
}
