package service

import (
	"context"
	"crypto/subtle"
	"log/slog"

	apperrors "github.com/vivass/storefront/pkg/errors"

	"github.com/vivass/storefront/internal/auth"
)

// AuthService authenticates admin panel access. The storefront ships with a
// single shared password compared in constant time; the interface isolates
// that deliberately weak scheme so it can be swapped for real authentication
// without touching the handlers.
type AuthService interface {
	// Login exchanges the admin password for a signed session token.
	Login(ctx context.Context, password string) (string, error)

	// Validate checks a session token and reports whether it grants admin access.
	Validate(ctx context.Context, token string) error
}

// StaticPasswordAuth implements AuthService against a single configured
// password and a non-expiring HS256 token.
type StaticPasswordAuth struct {
	password []byte
	tokens   *auth.TokenManager
	logger   *slog.Logger
}

// NewStaticPasswordAuth creates the static-password auth service.
func NewStaticPasswordAuth(password string, tokens *auth.TokenManager, logger *slog.Logger) *StaticPasswordAuth {
	return &StaticPasswordAuth{
		password: []byte(password),
		tokens:   tokens,
		logger:   logger,
	}
}

// Login compares the password in constant time and issues an admin token on
// an exact match. Any mismatch is Unauthorized; there is no lockout and no
// attempt counter.
func (s *StaticPasswordAuth) Login(ctx context.Context, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), s.password) != 1 {
		s.logger.WarnContext(ctx, "admin login rejected")
		return "", apperrors.Unauthorized("invalid password")
	}

	token, err := s.tokens.GenerateAdminToken()
	if err != nil {
		return "", apperrors.Internal(err)
	}

	s.logger.InfoContext(ctx, "admin login accepted")

	return token, nil
}

// Validate checks the token signature and role.
func (s *StaticPasswordAuth) Validate(_ context.Context, token string) error {
	if token == "" {
		return apperrors.Unauthorized("admin token is required")
	}
	if _, err := s.tokens.ValidateAdminToken(token); err != nil {
		return apperrors.Unauthorized("invalid admin token")
	}
	return nil
}
