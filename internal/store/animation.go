package store

import (
	"sync"
	"time"
)

// AnimationShake is the only animation kind the UI knows about.
const AnimationShake = "shake"

// DefaultFeedbackDelay matches the duration of the shake effect in the UI.
const DefaultFeedbackDelay = 820 * time.Millisecond

// animation is a transient UI flag with a cancellable reset timer. Arming
// a new value or a new reset stops the pending timer first, so a stale
// reset can never clear a flag set by a later mutation.
type animation struct {
	mu      sync.Mutex
	current string
	timer   *time.Timer
	notify  func()
}

func newAnimation(notify func()) *animation {
	return &animation{notify: notify}
}

func (a *animation) Current() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Set flips the flag without scheduling a reset. Any pending reset is
// cancelled: the new value belongs to the latest mutation.
func (a *animation) Set(kind string) {
	a.mu.Lock()
	a.stopTimer()
	a.current = kind
	a.mu.Unlock()
	a.notify()
}

// Arm sets the flag and schedules its reset in one step.
func (a *animation) Arm(kind string, after time.Duration) {
	a.mu.Lock()
	a.stopTimer()
	a.current = kind
	a.timer = time.AfterFunc(after, a.reset)
	a.mu.Unlock()
	a.notify()
}

// ScheduleReset arms only the reset, leaving the current value untouched.
// The wishlist schedules a reset even on the removal branch of a toggle,
// which never set the flag.
func (a *animation) ScheduleReset(after time.Duration) {
	a.mu.Lock()
	a.stopTimer()
	a.timer = time.AfterFunc(after, a.reset)
	a.mu.Unlock()
}

// Clear resets immediately and cancels any pending reset.
func (a *animation) Clear() {
	a.mu.Lock()
	a.stopTimer()
	a.current = ""
	a.mu.Unlock()
	a.notify()
}

func (a *animation) reset() {
	a.mu.Lock()
	a.current = ""
	a.timer = nil
	a.mu.Unlock()
	a.notify()
}

// caller holds a.mu
func (a *animation) stopTimer() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
