package domain

import "time"

// DefaultAdminPassword is the factory credential seeded on first boot. Login
// with it is only honored while the stored hash still verifies against it.
const DefaultAdminPassword = "admin"

// AdminCredentialID is the primary key of the singleton credential row.
const AdminCredentialID uint = 1

type AdminCredential struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	PasswordHash string    `json:"-" gorm:"not null"`
	UpdatedAt    time.Time `json:"-"`
}
