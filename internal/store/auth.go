package store

import (
	"log/slog"
	"sync"
)

// Durable storage keys. Absent keys mean logged out.
const (
	keyAuthenticated = "isAuthenticated"
	keyUserID        = "userId"
)

// Auth is the mock session: a flag plus the identifier of the signed-in
// user. Both are mirrored into durable storage so the session survives a
// restart. Persistence failures are logged, never surfaced — every auth
// operation is total.
type Auth struct {
	mu     sync.Mutex
	authed bool
	userID string

	kv    KV
	log   *slog.Logger
	after func()
}

func (a *Auth) Login(identifier string) {
	a.mu.Lock()
	a.authed = true
	a.userID = identifier
	if err := a.kv.Set(keyAuthenticated, "true"); err != nil {
		a.log.Error("auth_persist_error", "key", keyAuthenticated, "error", err)
	}
	if err := a.kv.Set(keyUserID, identifier); err != nil {
		a.log.Error("auth_persist_error", "key", keyUserID, "error", err)
	}
	a.mu.Unlock()
	a.after()
}

func (a *Auth) Logout() {
	a.mu.Lock()
	a.authed = false
	a.userID = ""
	if err := a.kv.Delete(keyAuthenticated); err != nil {
		a.log.Error("auth_persist_error", "key", keyAuthenticated, "error", err)
	}
	if err := a.kv.Delete(keyUserID); err != nil {
		a.log.Error("auth_persist_error", "key", keyUserID, "error", err)
	}
	a.mu.Unlock()
	a.after()
}

// Rehydrate re-derives the session from durable storage. Called once by
// store.New; calling it again is harmless since storage stays
// authoritative. A flag without an identifier counts as logged out, which
// keeps the authenticated-implies-userID invariant even if the two keys
// got out of sync.
func (a *Auth) Rehydrate() {
	a.mu.Lock()
	flag, _, err := a.kv.Get(keyAuthenticated)
	if err != nil {
		a.log.Error("auth_rehydrate_error", "key", keyAuthenticated, "error", err)
	}
	userID, _, err := a.kv.Get(keyUserID)
	if err != nil {
		a.log.Error("auth_rehydrate_error", "key", keyUserID, "error", err)
	}

	a.authed = flag == "true" && userID != ""
	if a.authed {
		a.userID = userID
	} else {
		a.userID = ""
	}
	a.mu.Unlock()
	a.after()
}

func (a *Auth) IsAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.authed
}

// UserID is empty when logged out.
func (a *Auth) UserID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID
}
