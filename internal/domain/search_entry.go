package domain

import "time"

// SearchEntry is one audit record per plate lookup. Entries are append-only;
// nothing in the system updates or deletes them.
type SearchEntry struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	PlateNumber     string    `json:"plateNumber" gorm:"not null"`
	Allowed         bool      `json:"allowed" gorm:"not null"`
	ApartmentNumber *string   `json:"apartmentNumber,omitempty"`
	SearchedAt      time.Time `json:"searchedAt" gorm:"index;not null"`
}
