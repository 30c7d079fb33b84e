package models

import "time"

// PasswordResetToken is one outstanding reset grant. The bearer token
// itself is never stored; TokenHash is its SHA-256 digest. A grant is
// usable only while UsedAt is nil and ExpiresAt is in the future; rows
// are kept after use for audit, never deleted.
type PasswordResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
