package store

import (
	"sync"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
)

// Cart keeps one line per product identifier in insertion order. Every
// mutation against an absent identifier is a no-op, never an error.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem

	anim  *animation
	delay time.Duration
	after func()
}

// AddItem appends a new line with quantity 1, or bumps the quantity of the
// existing line for the same product.
func (c *Cart) AddItem(p models.Product) {
	c.mu.Lock()
	if it := c.find(p.ID); it != nil {
		it.Quantity++
	} else {
		c.items = append(c.items, models.CartItem{Product: p, Quantity: 1})
	}
	c.mu.Unlock()
	c.after()
}

// AddItemWithFeedback adds the product and arms the shake flag, which
// resets itself after the feedback delay.
func (c *Cart) AddItemWithFeedback(p models.Product) {
	c.AddItem(p)
	c.anim.Arm(AnimationShake, c.delay)
}

func (c *Cart) RemoveItem(productID int) {
	c.mu.Lock()
	kept := c.items[:0]
	for _, it := range c.items {
		if it.ID != productID {
			kept = append(kept, it)
		}
	}
	c.items = kept
	c.mu.Unlock()
	c.after()
}

func (c *Cart) IncrementQuantity(productID int) {
	c.mu.Lock()
	if it := c.find(productID); it != nil {
		it.Quantity++
	}
	c.mu.Unlock()
	c.after()
}

// DecrementQuantity floors at 0 and drops the line when it gets there, so
// no zero-quantity entry ever survives.
func (c *Cart) DecrementQuantity(productID int) {
	c.mu.Lock()
	if it := c.find(productID); it != nil {
		it.Quantity--
		if it.Quantity <= 0 {
			kept := c.items[:0]
			for _, line := range c.items {
				if line.ID != productID {
					kept = append(kept, line)
				}
			}
			c.items = kept
		}
	}
	c.mu.Unlock()
	c.after()
}

// Clear empties the collection. The animation flag is left alone; only the
// wishlist resets its flag on clear.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
	c.after()
}

func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount is the sum of quantities, recomputed on every read.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, it := range c.items {
		count += it.Quantity
	}
	return count
}

// TotalPrice is the sum of price times quantity, recomputed on every read.
func (c *Cart) TotalPrice() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, it := range c.items {
		total += it.Price * it.Quantity
	}
	return total
}

func (c *Cart) Animation() string {
	return c.anim.Current()
}

// caller holds c.mu
func (c *Cart) find(productID int) *models.CartItem {
	for i := range c.items {
		if c.items[i].ID == productID {
			return &c.items[i]
		}
	}
	return nil
}
