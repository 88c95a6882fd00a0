package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/storage"
	"github.com/Skotchmaster/storefront/internal/store"
)

type testEnv struct {
	T       *testing.T
	E       *echo.Echo
	Store   *store.Store
	Storage *storage.Storage
	A       *AuthHandler
	C       *CartHandler
	W       *WishlistHandler
}

var testJWTSecret = []byte("test-secret")

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	s := store.New(st, store.WithFeedbackDelay(time.Hour))

	env := &testEnv{
		T:       t,
		E:       echo.New(),
		Store:   s,
		Storage: st,
	}
	env.A = &AuthHandler{Store: s, Storage: st, JWTSecret: testJWTSecret}
	env.C = &CartHandler{Store: s}
	env.W = &WishlistHandler{Store: s}
	return env
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func register(t *testing.T, env *testEnv, email, password string) {
	t.Helper()
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", map[string]string{
		"email":    email,
		"password": password,
	})
	require.NoError(t, env.A.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func login(t *testing.T, env *testEnv, email, password string) string {
	t.Helper()
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"email":    email,
		"password": password,
	})
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody(t, rec)
	token, _ := resp["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}
