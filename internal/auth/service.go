package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

// AdminUserID is the single admin identity stored in sessions.
const AdminUserID = "admin"

// Service checks admin credentials against the configured bcrypt hash.
type Service struct {
	passwordHash string
}

// NewService builds the auth service.
func NewService(passwordHash string) *Service {
	return &Service{passwordHash: passwordHash}
}

// Authenticate verifies the admin password.
func (s *Service) Authenticate(ctx context.Context, password string) error {
	if s.passwordHash == "" {
		return fmt.Errorf("%w: admin login not configured", httpx.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("%w: invalid credentials", httpx.ErrUnauthorized)
		}
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}
