package postgres

import (
	"context"

	"github.com/Jarecamang/ParkingPassport/internal/domain"
	"gorm.io/gorm"
)

type searchHistoryRepository struct {
	db *gorm.DB
}

func NewSearchHistoryRepository(db *gorm.DB) *searchHistoryRepository {
	return &searchHistoryRepository{db: db}
}

func (r *searchHistoryRepository) Create(ctx context.Context, entry *domain.SearchEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *searchHistoryRepository) GetRecent(ctx context.Context, limit int) ([]*domain.SearchEntry, error) {
	var entries []*domain.SearchEntry
	err := r.db.WithContext(ctx).
		Order("searched_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
