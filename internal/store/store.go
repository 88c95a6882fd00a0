// Package store holds the storefront state: the cart, the wishlist and the
// auth session. A single Store is created at startup and threaded through
// the transport layer; there are no package-level singletons. Cart and
// wishlist live only in memory and reset on restart, auth is mirrored into
// durable key/value storage and rehydrated once at construction.
package store

import (
	"log/slog"
	"sync"
	"time"
)

// KV is the durable key/value storage the auth state is mirrored into.
// Implemented by storage.Storage.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

type Store struct {
	Cart     *Cart
	Wishlist *Wishlist
	Auth     *Auth

	mu     sync.Mutex
	subs   map[int]func()
	nextID int
}

type options struct {
	feedbackDelay time.Duration
	logger        *slog.Logger
}

type Option func(*options)

// WithFeedbackDelay overrides the 820ms shake reset delay. Tests use this
// to keep the reset observable without real waiting.
func WithFeedbackDelay(d time.Duration) Option {
	return func(o *options) { o.feedbackDelay = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New builds the container and rehydrates auth state from kv. Every other
// piece of state starts empty.
func New(kv KV, opts ...Option) *Store {
	o := options{
		feedbackDelay: DefaultFeedbackDelay,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{subs: make(map[int]func())}
	s.Cart = &Cart{
		anim:  newAnimation(s.notifyAll),
		delay: o.feedbackDelay,
		after: s.notifyAll,
	}
	s.Wishlist = &Wishlist{
		anim:  newAnimation(s.notifyAll),
		delay: o.feedbackDelay,
		after: s.notifyAll,
	}
	s.Auth = &Auth{
		kv:    kv,
		log:   o.logger,
		after: s.notifyAll,
	}
	s.Auth.Rehydrate()
	return s
}

// Subscribe registers fn to run after every completed mutation, including
// the delayed animation resets. The returned func unsubscribes.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notifyAll runs outside the store locks so a subscriber can read back
// any derived value without deadlocking.
func (s *Store) notifyAll() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
