package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Session is the server-side record behind the admin cookie. The client only
// ever holds a signed token referencing the row ID, so deleting the row is
// sufficient to revoke a token that is replayed verbatim.
type Session struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ExpiresAt time.Time      `json:"expiresAt" gorm:"index;not null"`
	Client    datatypes.JSON `json:"-" gorm:"type:jsonb;default:'{}'"`
	CreatedAt time.Time      `json:"createdAt"`
}

// SessionClient is the connection metadata stored in the session's jsonb
// column.
type SessionClient struct {
	IP        string `json:"ip"`
	UserAgent string `json:"userAgent,omitempty"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
