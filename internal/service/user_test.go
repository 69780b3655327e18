package service

import (
	"context"
	"testing"
	"time"

	"github.com/Re1354/building-management-system/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	s := NewUserService(setupTestDB(t), bcrypt.MinCost)
	return s
}

func TestRegister(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, " Ann ", "Ann@Example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.Equal(t, "admin", u.Role)
	assert.NotEqual(t, "Secret123", u.PasswordHash)
	assert.NotEmpty(t, u.ID)

	_, err = s.Register(ctx, "Other", "ANN@example.com", "Secret123")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	cases := []struct{ name, email, password string }{
		{"", "a@example.com", "Secret123"},
		{"Ann", "not-an-email", "Secret123"},
		{"Ann", "a@example.com", "short1A"},
		{"Ann", "a@example.com", "alllowercase1"},
		{"Ann", "a@example.com", "NoDigitsHere"},
	}
	for _, tc := range cases {
		_, err := s.Register(ctx, tc.name, tc.email, tc.password)
		assert.ErrorIs(t, err, apperr.ErrValidation, "%+v", tc)
	}
}

func TestAuthenticate(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()
	_, err := s.Register(ctx, "Ann", "ann@example.com", "Secret123")
	require.NoError(t, err)

	u, err := s.Authenticate(ctx, "ANN@example.com", "Secret123", "10.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, "10.0.0.1", u.LastLoginIP)

	_, err = s.Authenticate(ctx, "ann@example.com", "Wrong123", "")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = s.Authenticate(ctx, "nobody@example.com", "Secret123", "")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestAuthenticate_LocksAfterRepeatedFailures(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_, err := s.Register(ctx, "Ann", "ann@example.com", "Secret123")
	require.NoError(t, err)

	for i := 0; i < maxFailedLogins; i++ {
		_, err := s.Authenticate(ctx, "ann@example.com", "Wrong123", "")
		require.ErrorIs(t, err, apperr.ErrUnauthorized)
	}

	_, err = s.Authenticate(ctx, "ann@example.com", "Secret123", "")
	require.ErrorIs(t, err, apperr.ErrUnauthorized, "locked account rejects the right password")

	now = now.Add(lockDuration + time.Second)
	_, err = s.Authenticate(ctx, "ann@example.com", "Secret123", "")
	assert.NoError(t, err)
}
