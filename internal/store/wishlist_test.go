package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToggleIsOwnInverse(t *testing.T) {
	s := newTestStore(t)
	p := product(7, 100)

	s.Wishlist.Toggle(p)
	require.True(t, s.Wishlist.Contains(7))
	require.Equal(t, 1, s.Wishlist.Count())

	s.Wishlist.Toggle(p)
	require.False(t, s.Wishlist.Contains(7))
	require.Equal(t, 0, s.Wishlist.Count())
}

func TestToggleSetsAnimationOnAddOnly(t *testing.T) {
	s := newTestStore(t, WithFeedbackDelay(time.Hour))

	s.Wishlist.Toggle(product(1, 100))
	require.Equal(t, AnimationShake, s.Wishlist.Animation())

	// removal branch leaves the flag alone
	s.Wishlist.anim.Clear()
	s.Wishlist.Toggle(product(1, 100))
	require.Equal(t, "", s.Wishlist.Animation())
}

func TestWishlistClearResetsAnimation(t *testing.T) {
	s := newTestStore(t, WithFeedbackDelay(time.Hour))

	s.Wishlist.Toggle(product(1, 100))
	require.Equal(t, AnimationShake, s.Wishlist.Animation())

	s.Wishlist.Clear()
	require.Equal(t, 0, s.Wishlist.Count())
	require.Equal(t, "", s.Wishlist.Animation())
}

func TestToggleWithFeedbackScenario(t *testing.T) {
	s := newTestStore(t, WithFeedbackDelay(20*time.Millisecond))
	p := product(7, 100)

	s.Wishlist.ToggleWithFeedback(p)
	require.True(t, s.Wishlist.Contains(7))
	require.Equal(t, AnimationShake, s.Wishlist.Animation())

	require.Eventually(t, func() bool {
		return s.Wishlist.Animation() == ""
	}, time.Second, 5*time.Millisecond)

	s.Wishlist.ToggleWithFeedback(p)
	require.Equal(t, 0, s.Wishlist.Count())
}

func TestToggleWithFeedbackResetsAfterRemovalToo(t *testing.T) {
	s := newTestStore(t, WithFeedbackDelay(20*time.Millisecond))
	p := product(3, 10)

	// leave a stale flag armed, then toggle the removal branch
	s.Wishlist.Toggle(p)
	require.Equal(t, AnimationShake, s.Wishlist.Animation())

	s.Wishlist.ToggleWithFeedback(p)
	require.Eventually(t, func() bool {
		return s.Wishlist.Animation() == ""
	}, time.Second, 5*time.Millisecond)
}

func TestWishlistKeepsInsertionOrder(t *testing.T) {
	s := newTestStore(t)

	s.Wishlist.Toggle(product(5, 10))
	s.Wishlist.Toggle(product(2, 20))
	s.Wishlist.Toggle(product(9, 30))

	items := s.Wishlist.Products()
	require.Len(t, items, 3)
	require.Equal(t, []int{5, 2, 9}, []int{items[0].ID, items[1].ID, items[2].ID})
}
