package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Jarecamang/ParkingPassport/internal/api/middleware"
	"github.com/Jarecamang/ParkingPassport/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VehicleBuilder creates test vehicles with a builder pattern
type VehicleBuilder struct {
	plateNumber string
	apartment   string
	ownerName   string
	notes       string
}

// NewVehicleBuilder creates a new VehicleBuilder with default values
func NewVehicleBuilder() *VehicleBuilder {
	return &VehicleBuilder{
		plateNumber: fmt.Sprintf("TST%s", uuid.New().String()[:5]),
		apartment:   "101",
	}
}

// WithPlate sets the plate number
func (b *VehicleBuilder) WithPlate(plate string) *VehicleBuilder {
	b.plateNumber = plate
	return b
}

// WithApartment sets the apartment
func (b *VehicleBuilder) WithApartment(apartment string) *VehicleBuilder {
	b.apartment = apartment
	return b
}

// WithOwner sets the owner name
func (b *VehicleBuilder) WithOwner(owner string) *VehicleBuilder {
	b.ownerName = owner
	return b
}

// Build creates the vehicle in the database with a normalized plate
func (b *VehicleBuilder) Build(t *testing.T, db *gorm.DB) *domain.Vehicle {
	t.Helper()

	vehicle := &domain.Vehicle{
		PlateNumber: domain.NormalizePlate(b.plateNumber),
		Apartment:   b.apartment,
		OwnerName:   b.ownerName,
		Notes:       b.notes,
		CreatedAt:   time.Now(),
	}

	if err := db.Create(vehicle).Error; err != nil {
		t.Fatalf("failed to create vehicle: %v", err)
	}

	return vehicle
}

// SetCredential overwrites the singleton credential with a bcrypt hash of
// the given password.
func SetCredential(t *testing.T, db *gorm.DB, password string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	SetRawCredential(t, db, string(hash))
}

// SetRawCredential overwrites the singleton credential with a literal stored
// value, for legacy-plaintext and malformed-hash scenarios.
func SetRawCredential(t *testing.T, db *gorm.DB, stored string) {
	t.Helper()

	cred := &domain.AdminCredential{
		ID:           domain.AdminCredentialID,
		PasswordHash: stored,
	}
	err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(cred).Error
	if err != nil {
		t.Fatalf("failed to set credential: %v", err)
	}
}

// Login performs a login request and returns the session cookie.
func (ts *TestServer) Login(t *testing.T, password string) *http.Cookie {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"password": password})
	resp, err := http.Post(ts.APIURL("/admin/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned status %d", resp.StatusCode)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}

	t.Fatal("login response did not set a session cookie")
	return nil
}

// AuthedRequest performs a request with the given session cookie attached.
func (ts *TestServer) AuthedRequest(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, ts.APIURL(path), reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}
