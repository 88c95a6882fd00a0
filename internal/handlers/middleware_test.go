package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret []byte, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString(secret)
	require.NoError(t, err)
	return s
}

func TestRequireAuthMissingCookie(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil)
	mw := RequireAuth(testJWTSecret)
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, testJWTSecret, "test@example.com")

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil,
		&http.Cookie{Name: "accessToken", Value: token})

	var gotUser string
	mw := RequireAuth(testJWTSecret)
	err := mw(func(c echo.Context) error {
		gotUser = userID(c)
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "test@example.com", gotUser)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, []byte("other-secret"), "test@example.com")

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil,
		&http.Cookie{Name: "accessToken", Value: token})

	mw := RequireAuth(testJWTSecret)
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	env := newTestEnv(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test@example.com",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString(testJWTSecret)
	require.NoError(t, err)

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil,
		&http.Cookie{Name: "accessToken", Value: signed})

	mw := RequireAuth(testJWTSecret)
	handlerErr := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)

	he, ok := handlerErr.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}
