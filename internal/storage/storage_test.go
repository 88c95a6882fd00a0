package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestKeyValueRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	_, ok, err := s.Get("isAuthenticated")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set("isAuthenticated", "true"))
	v, ok, err := s.Get("isAuthenticated")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "true", v)

	require.NoError(t, s.Set("isAuthenticated", "false"))
	v, _, err = s.Get("isAuthenticated")
	require.NoError(t, err)
	require.Equal(t, "false", v)

	require.NoError(t, s.Delete("isAuthenticated"))
	_, ok, err = s.Get("isAuthenticated")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDeleteAbsentKeyIsNoError(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Delete("nope"))
}

func TestCreateUserAndAuthenticate(t *testing.T) {
	s := newTestStorage(t)

	user, err := s.CreateUser("a@b.com", "password123")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", user.Email)
	require.NotEqual(t, "password123", user.PasswordHash)

	got, err := s.Authenticate("a@b.com", "password123")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.CreateUser("a@b.com", "password123")
	require.NoError(t, err)

	_, err = s.CreateUser("a@b.com", "otherpassword")
	require.ErrorIs(t, err, ErrUserExists)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.CreateUser("a@b.com", "password123")
	require.NoError(t, err)

	_, err = s.Authenticate("a@b.com", "wrongpassword")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownAccount(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Authenticate("nobody@b.com", "password123")
	require.ErrorIs(t, err, ErrUserNotFound)
}
