package domain

import (
	"strings"
	"time"
)

type Vehicle struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PlateNumber string    `json:"plateNumber" gorm:"uniqueIndex;not null"`
	Apartment   string    `json:"apartment" gorm:"not null"`
	OwnerName   string    `json:"ownerName,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NormalizePlate canonicalizes a plate for storage and lookup. Plates are
// stored uppercase, so an exact match on the normalized form is a
// case-insensitive match.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
