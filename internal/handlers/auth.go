package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/storage"
	"github.com/Skotchmaster/storefront/internal/store"
)

const accessTokenTTL = 24 * time.Hour

type AuthHandler struct {
	Store     *store.Store
	Storage   *storage.Storage
	JWTSecret []byte
	Producer  *mykafka.Producer
}

func CreateCookie(name string, value string, path string, expTime time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expTime,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "error", err)
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func validCredentials(req credentials) string {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "Please enter a valid email address."
	}
	if len(req.Password) < 8 {
		return "Password must be at least 8 characters."
	}
	return ""
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req credentials
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if msg := validCredentials(req); msg != "" {
		l.Warn("register_error", "status", 400, "reason", msg)
		return echo.NewHTTPError(http.StatusBadRequest, msg)
	}

	user, err := h.Storage.CreateUser(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			l.Warn("register_error", "status", 409, "reason", "user already exists")
			return echo.NewHTTPError(http.StatusConflict, "user already exists")
		}
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":   "user_registered",
		"userID": user.Email,
	})

	l.Info("user registered")
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req credentials
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Storage.Authenticate(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			l.Warn("login_error", "status", 401, "reason", "account not found")
			return echo.NewHTTPError(http.StatusUnauthorized, "account not found")
		case errors.Is(err, storage.ErrInvalidCredentials):
			l.Warn("login_error", "status", 401, "reason", "invalid credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		default:
			l.Error("login_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	accessExp := time.Now().Add(accessTokenTTL)
	claims := jwt.MapClaims{
		"sub": user.Email,
		"exp": accessExp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString(h.JWTSecret)
	if err != nil {
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create access token")
	}

	c.SetCookie(CreateCookie("accessToken", accessToken, "/", accessExp))

	h.Store.Auth.Login(user.Email)

	h.publish(c, map[string]any{
		"type":   "user_logged_in",
		"userID": user.Email,
	})

	l.Info("user logged in")
	return c.JSON(http.StatusOK, map[string]any{
		"user_id":      user.Email,
		"access_token": accessToken,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	userID := h.Store.Auth.UserID()
	h.Store.Auth.Logout()

	c.SetCookie(CreateCookie("accessToken", "", "/", time.Unix(0, 0)))

	if userID != "" {
		h.publish(c, map[string]any{
			"type":   "user_logged_out",
			"userID": userID,
		})
	}

	l.Info("user logged out")
	return c.JSON(http.StatusOK, "logged out")
}

// Session exposes the auth flag the pages gate checkout on.
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"is_authenticated": h.Store.Auth.IsAuthenticated(),
		"user_id":          h.Store.Auth.UserID(),
	})
}
