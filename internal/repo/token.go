package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/driverlog/backend/internal/domain"
)

// TokenRepo defines the persistence operations for opaque bearer tokens.
// Tokens live server-side so logout can revoke them; expiry is enforced
// in SQL so an expired token is indistinguishable from a missing one.
type TokenRepo interface {
	// Create stores a new token.
	Create(ctx context.Context, token domain.AuthToken) error

	// GetUser resolves a token to its user.
	// Returns domain.ErrNotFound for unknown, revoked, or expired tokens.
	GetUser(ctx context.Context, token string) (domain.User, error)

	// Delete revokes a token. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, token string) error
}

// pgTokenRepo is the Postgres implementation of TokenRepo.
type pgTokenRepo struct {
	db db
}

// NewTokenRepo constructs a TokenRepo backed by the provided db connection.
func NewTokenRepo(db db) TokenRepo {
	return &pgTokenRepo{db: db}
}

func (r *pgTokenRepo) Create(ctx context.Context, token domain.AuthToken) error {
	const q = `
		INSERT INTO auth_tokens (token, user_id, expires_at)
		VALUES (@token, @user_id, @expires_at)`

	args := pgx.NamedArgs{
		"token":      token.Token,
		"user_id":    token.UserID,
		"expires_at": token.ExpiresAt,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.TokenRepo.Create: %w", err)
	}
	return nil
}

func (r *pgTokenRepo) GetUser(ctx context.Context, token string) (domain.User, error) {
	const q = `
		SELECT u.id, u.username, u.email, u.password_hash, u.created_at
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.token = @token
		  AND t.expires_at > now()`

	var (
		u  domain.User
		id pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"token": token}).
		Scan(&id, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.TokenRepo.GetUser: %w", translateScanErr(err))
	}
	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}

func (r *pgTokenRepo) Delete(ctx context.Context, token string) error {
	const q = `DELETE FROM auth_tokens WHERE token = @token`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"token": token})
	if err != nil {
		return fmt.Errorf("repo.TokenRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TokenRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}
