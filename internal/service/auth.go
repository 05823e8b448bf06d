// Package service contains the business logic for the driver log API.
// Services validate inputs, enforce ownership and business rules, and
// orchestrate repo calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/repo"
)

// AuthService implements account registration, credential login with opaque
// bearer tokens, and token revocation.
type AuthService struct {
	users  repo.UserRepo
	tokens repo.TokenRepo
	ttl    time.Duration
}

// NewAuthService constructs an AuthService. ttl is how long issued tokens
// stay valid; expired tokens behave exactly like revoked ones.
func NewAuthService(users repo.UserRepo, tokens repo.TokenRepo, ttl time.Duration) *AuthService {
	return &AuthService{users: users, tokens: tokens, ttl: ttl}
}

// Register validates the payload, hashes the password with bcrypt, and
// creates the account. Returns domain.ErrConflict when the username or
// email is already taken.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	fields := domain.FieldErrors{}
	if strings.TrimSpace(username) == "" {
		fields["username"] = "username is required"
	}
	if strings.TrimSpace(email) == "" {
		fields["email"] = "email is required"
	} else if !strings.Contains(email, "@") {
		fields["email"] = "email is not valid"
	}
	if len(password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if len(fields) > 0 {
		return domain.User{}, fields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: hash password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return user, nil
}

// Login checks the credentials and issues a fresh opaque bearer token.
// Unknown usernames and wrong passwords are both reported as
// domain.ErrUnauthorized — callers cannot distinguish the two.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.User{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
		}
		return "", domain.User{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.User{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
	}

	token, err := newToken()
	if err != nil {
		return "", domain.User{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	err = s.tokens.Create(ctx, domain.AuthToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.ttl),
	})
	if err != nil {
		return "", domain.User{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return token, user, nil
}

// Logout revokes a token. Revoking a token that is already gone is not an
// error — logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Delete(ctx, token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("service.AuthService.Logout: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to its user.
// Unknown, revoked, and expired tokens all yield domain.ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	user, err := s.tokens.GetUser(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("service.AuthService.Authenticate: %w", domain.ErrUnauthorized)
		}
		return domain.User{}, fmt.Errorf("service.AuthService.Authenticate: %w", err)
	}
	return user, nil
}

// newToken returns 32 random bytes hex-encoded.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
