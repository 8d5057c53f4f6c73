package service

import (
	"testing"

	"github.com/Jarecamang/ParkingPassport/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestVerifyPassword(t *testing.T) {
	defaultHash := hashOf(t, "admin")
	rotatedHash := hashOf(t, "hunter2-rotated")

	tests := []struct {
		name      string
		submitted string
		stored    string
		want      bool
	}{
		{
			name:      "default password against factory hash",
			submitted: "admin",
			stored:    defaultHash,
			want:      true,
		},
		{
			name:      "default password against legacy raw admin",
			submitted: "admin",
			stored:    "admin",
			want:      true,
		},
		{
			name:      "default password after rotation",
			submitted: "admin",
			stored:    rotatedHash,
			want:      false,
		},
		{
			name:      "legacy plaintext match",
			submitted: "letmein99",
			stored:    "letmein99",
			want:      true,
		},
		{
			name:      "hashed match",
			submitted: "hunter2-rotated",
			stored:    rotatedHash,
			want:      true,
		},
		{
			name:      "hashed mismatch",
			submitted: "wrong-password",
			stored:    rotatedHash,
			want:      false,
		},
		{
			name:      "malformed hash falls back to raw mismatch",
			submitted: "whatever",
			stored:    "not-a-bcrypt-hash",
			want:      false,
		},
		{
			name:      "empty submitted never matches a hash",
			submitted: "",
			stored:    rotatedHash,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred := &domain.AdminCredential{
				ID:           domain.AdminCredentialID,
				PasswordHash: tt.stored,
			}
			assert.Equal(t, tt.want, VerifyPassword(tt.submitted, cred))
		})
	}
}

func TestVerifyPassword_StrategyOrder(t *testing.T) {
	// A raw stored value that bcrypt cannot parse matches through the
	// legacy-plaintext strategy before the hashed fallback is consulted.
	cred := &domain.AdminCredential{PasswordHash: "plain-secret"}
	assert.True(t, VerifyPassword("plain-secret", cred))

	// The default-password branch only fires for the literal default.
	cred = &domain.AdminCredential{PasswordHash: hashOf(t, "admin")}
	assert.False(t, VerifyPassword("Admin", cred))
}
