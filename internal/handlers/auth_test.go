package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})
	require.NoError(t, env.A.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Equal(t, "test@example.com", user.Email)
	require.NotEmpty(t, user.ID)
	require.Empty(t, user.PasswordHash)
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	register(t, env, "test@example.com", "password123")

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})
	err := env.A.Register(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusConflict, he.Code)
}

func TestRegisterRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name    string
		payload map[string]string
		message string
	}{
		{
			name:    "invalid email",
			payload: map[string]string{"email": "not-an-email", "password": "password123"},
			message: "Please enter a valid email address.",
		},
		{
			name:    "short password",
			payload: map[string]string{"email": "test@example.com", "password": "short"},
			message: "Password must be at least 8 characters.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", tc.payload)
			err := env.A.Register(c)
			he, ok := err.(*echo.HTTPError)
			require.True(t, ok, "expected HTTPError")
			require.Equal(t, http.StatusBadRequest, he.Code)
			require.Equal(t, tc.message, he.Message)
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	register(t, env, "test@example.com", "password123")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody(t, rec)
	require.NotEmpty(t, resp["access_token"])
	require.Equal(t, "test@example.com", resp["user_id"])

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "accessToken" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)

	require.True(t, env.Store.Auth.IsAuthenticated())
	require.Equal(t, "test@example.com", env.Store.Auth.UserID())
}

func TestLoginUnknownAccount(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	err := env.A.Login(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
	require.Equal(t, "account not found", he.Message)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	register(t, env, "test@example.com", "password123")

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"email":    "test@example.com",
		"password": "wrongpassword",
	})
	err := env.A.Login(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
	require.Equal(t, "invalid email or password", he.Message)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	register(t, env, "test@example.com", "password123")
	login(t, env, "test@example.com", "password123")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/logout", nil)
	require.NoError(t, env.A.Logout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.False(t, env.Store.Auth.IsAuthenticated())
	require.Equal(t, "", env.Store.Auth.UserID())

	var expired *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "accessToken" {
			expired = ck
		}
	}
	require.NotNil(t, expired)
	require.Empty(t, expired.Value)
}

func TestSession(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/session", nil)
	require.NoError(t, env.A.Session(c))
	resp := decodeBody(t, rec)
	require.Equal(t, false, resp["is_authenticated"])

	register(t, env, "test@example.com", "password123")
	login(t, env, "test@example.com", "password123")

	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/session", nil)
	require.NoError(t, env.A.Session(c))
	resp = decodeBody(t, rec)
	require.Equal(t, true, resp["is_authenticated"])
	require.Equal(t, "test@example.com", resp["user_id"])
}
