package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account that can own trips.
// PasswordHash is a bcrypt digest and is never serialized.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthToken is an opaque bearer token stored server-side so logout can
// revoke it. Tokens past ExpiresAt are treated as absent.
type AuthToken struct {
	Token     string
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}
