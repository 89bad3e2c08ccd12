package entity

import (
	"strings"
	"time"
)

// User is the canonical account record shared by both storage engines.
// The password hash never travels with it; see Credentials.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"nombre"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"fecha_registro"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Canonicalize forces UTC millisecond timestamps and re-syncs the createdAt alias.
func (u *User) Canonicalize() {
	u.RegisteredAt = CanonicalTime(u.RegisteredAt)
	u.CreatedAt = u.RegisteredAt
}

// Credentials is what login needs: the user plus its stored bcrypt hash.
type Credentials struct {
	User         User
	PasswordHash string `json:"-"`
}

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID string
	Email  string
}

// NormalizeEmail lower-cases and trims, which is how emails are stored and compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CanonicalTime is the instant representation both engines can round-trip.
func CanonicalTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC().Truncate(time.Millisecond)
}
