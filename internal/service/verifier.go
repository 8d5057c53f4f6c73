package service

import (
	"errors"

	"github.com/Jarecamang/ParkingPassport/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Stored credentials come in three shapes: the factory default, legacy
// plaintext rows written before hashing existed, and bcrypt hashes. Each
// shape is a strategy tried in fixed priority order; the first match wins.
type verifyStrategy struct {
	name    string
	matches func(submitted, stored string) bool
}

var verifyChain = []verifyStrategy{
	{"default-password", matchDefaultPassword},
	{"legacy-plaintext", matchLegacyPlaintext},
	{"hashed", matchHashed},
}

// VerifyPassword reports whether submitted matches the stored credential.
// A mismatch is never an error; the caller decides what rejection means.
func VerifyPassword(submitted string, cred *domain.AdminCredential) bool {
	for _, strategy := range verifyChain {
		if strategy.matches(submitted, cred.PasswordHash) {
			return true
		}
	}
	return false
}

// The default password only works while the stored credential still verifies
// against it; once the admin rotates the password this branch goes dead.
func matchDefaultPassword(submitted, stored string) bool {
	if submitted != domain.DefaultAdminPassword {
		return false
	}
	return hashMatches(domain.DefaultAdminPassword, stored)
}

func matchLegacyPlaintext(submitted, stored string) bool {
	return stored == submitted
}

func matchHashed(submitted, stored string) bool {
	return hashMatches(submitted, stored)
}

// hashMatches runs a bcrypt comparison. When the stored value is not a
// parseable hash the comparison mechanism itself fails, and we fall back to
// raw equality for rows that predate hashing.
func hashMatches(submitted, stored string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted))
	switch {
	case err == nil:
		return true
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false
	default:
		return stored == submitted
	}
}
