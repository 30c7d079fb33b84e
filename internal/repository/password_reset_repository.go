package repository

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Oasis-NEU/s26-group-3/internal/models"
)

// ErrResetTokenInvalid is the single failure for consume: absent, already
// used and expired all look identical to the caller so the endpoint can't
// be used as an oracle.
var ErrResetTokenInvalid = errors.New("invalid or expired reset token")

// PasswordResetRepository owns the single-use reset grant lifecycle.
// Create mints a fresh bearer token; Consume spends it at most once.
type PasswordResetRepository interface {
	Create(ctx context.Context, userID string) (string, error)
	Consume(ctx context.Context, rawToken string) (string, error)
}

type passwordResetRepository struct {
	db  *sql.DB
	ttl time.Duration
}

func NewPasswordResetRepository(db *sql.DB, ttl time.Duration) PasswordResetRepository {
	return &passwordResetRepository{db: db, ttl: ttl}
}

// Create persists a new grant and returns the raw bearer token. The token
// is two concatenated UUIDs (~256 bits of entropy); only its SHA-256
// digest hits the database, so a leaked table yields nothing spendable.
func (r *passwordResetRepository) Create(ctx context.Context, userID string) (string, error) {
	rawToken := uuid.NewString() + strings.ReplaceAll(uuid.NewString(), "-", "")

	now := timeNowUTC()
	prt := &models.PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: now.Add(r.ttl),
		CreatedAt: now,
	}

	query := `
		INSERT INTO password_reset_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, prt.ID, prt.UserID, prt.TokenHash, prt.ExpiresAt, prt.CreatedAt).Scan(&prt.CreatedAt)
	if err != nil {
		return "", err
	}
	return rawToken, nil
}

// Consume marks the grant used and returns the owning user id. The check
// and the write are one conditional UPDATE, so under concurrent attempts
// on the same token the database lets exactly one caller win; everyone
// else sees ErrResetTokenInvalid. Rows stay behind for audit.
func (r *passwordResetRepository) Consume(ctx context.Context, rawToken string) (string, error) {
	query := `
		UPDATE password_reset_tokens
		SET used_at = $2
		WHERE token_hash = $1
		  AND used_at IS NULL
		  AND expires_at > $2
		RETURNING user_id
	`

	var userID string
	err := r.db.QueryRowContext(ctx, query, hashToken(rawToken), timeNowUTC()).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrResetTokenInvalid
		}
		return "", err
	}
	return userID, nil
}

func hashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
