package postgres

import (
	"github.com/Jarecamang/ParkingPassport/internal/domain"
	"github.com/Jarecamang/ParkingPassport/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Unique-index violations come back as gorm.ErrDuplicatedKey so the
		// vehicle repo can report conflicts without a read-then-write race.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.AdminCredential{},
		&domain.Vehicle{},
		&domain.SearchEntry{},
		&domain.Session{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// SeedAdminCredential inserts the factory-default credential on first boot.
// The insert is a no-op when the singleton row already exists.
func SeedAdminCredential(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(domain.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	cred := domain.AdminCredential{
		ID:           domain.AdminCredentialID,
		PasswordHash: string(hash),
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cred).Error
}

// SeedSampleVehicles populates an empty vehicles table with a few demo rows
// so a fresh install has something to look up. A table with any row at all is
// left alone.
func SeedSampleVehicles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Vehicle{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []domain.Vehicle{
		{PlateNumber: "ABC123", Apartment: "304", OwnerName: "Maria Rodriguez"},
		{PlateNumber: "DEF456", Apartment: "101", OwnerName: "John Smith"},
		{PlateNumber: "GHI789", Apartment: "205", OwnerName: "David Johnson"},
	}
	return db.Create(&samples).Error
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Credential:    NewCredentialRepository(db),
		Vehicle:       NewVehicleRepository(db),
		SearchHistory: NewSearchHistoryRepository(db),
		Session:       NewSessionRepository(db),
	}
}
