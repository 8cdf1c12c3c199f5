package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(hashOf(t, "gallery-secret"))

	require.NoError(t, svc.Authenticate(context.Background(), "gallery-secret"))

	err := svc.Authenticate(context.Background(), "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrUnauthorized))
}

func TestAuthenticateUnconfigured(t *testing.T) {
	svc := NewService("")

	err := svc.Authenticate(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrUnauthorized))
}
