package store

import (
	"sync"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
)

// Wishlist is a set of products keyed by identifier. Insertion order is
// kept for listing.
type Wishlist struct {
	mu    sync.Mutex
	items []models.Product

	anim  *animation
	delay time.Duration
	after func()
}

// Toggle removes the product when present. When absent it adds it and sets
// the shake flag; the removal branch never touches the flag.
func (w *Wishlist) Toggle(p models.Product) {
	w.mu.Lock()
	added := true
	kept := w.items[:0]
	for _, it := range w.items {
		if it.ID == p.ID {
			added = false
			continue
		}
		kept = append(kept, it)
	}
	w.items = kept
	if added {
		w.items = append(w.items, p)
	}
	w.mu.Unlock()
	w.after()

	if added {
		w.anim.Set(AnimationShake)
	}
}

// ToggleWithFeedback toggles and schedules the flag reset regardless of
// which branch ran.
func (w *Wishlist) ToggleWithFeedback(p models.Product) {
	w.Toggle(p)
	w.anim.ScheduleReset(w.delay)
}

// Clear empties the set and resets the animation flag immediately. This is
// deliberately asymmetric with Cart.Clear.
func (w *Wishlist) Clear() {
	w.mu.Lock()
	w.items = nil
	w.mu.Unlock()
	w.after()

	w.anim.Clear()
}

func (w *Wishlist) Products() []models.Product {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.Product, len(w.items))
	copy(out, w.items)
	return out
}

func (w *Wishlist) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

func (w *Wishlist) Contains(productID int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, it := range w.items {
		if it.ID == productID {
			return true
		}
	}
	return false
}

func (w *Wishlist) Animation() string {
	return w.anim.Current()
}
