// Package activity tracks in-flight upstream requests so the UI can
// show a single shared loading indicator. The indicator appears when
// the first request starts and disappears a short delay after the last
// one completes, so back-to-back requests do not flicker it.
package activity

import (
	"sync"
	"time"
)

// DefaultHideDelay is how long the indicator lingers after the last
// request completes.
const DefaultHideDelay = 300 * time.Millisecond

// Tracker counts in-flight requests. Safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	active    int
	visible   bool
	hideDelay time.Duration
	hideTimer *time.Timer
}

// NewTracker creates a tracker with the default hide delay
func NewTracker() *Tracker {
	return NewTrackerWithDelay(DefaultHideDelay)
}

// NewTrackerWithDelay creates a tracker with a custom hide delay
func NewTrackerWithDelay(delay time.Duration) *Tracker {
	return &Tracker{hideDelay: delay}
}

// Begin records the start of a request. The indicator becomes visible
// on the first active request; a pending hide is cancelled.
func (t *Tracker) Begin() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.active++
	if t.hideTimer != nil {
		t.hideTimer.Stop()
		t.hideTimer = nil
	}
	if t.active == 1 {
		t.visible = true
	}
}

// End records the completion of a request. Must be called exactly once
// per Begin, on success and failure alike. When the last request
// completes, the indicator is hidden after the hide delay unless a new
// request begins first.
func (t *Tracker) End() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active > 0 {
		t.active--
	}
	if t.active != 0 {
		return
	}

	if t.hideTimer != nil {
		t.hideTimer.Stop()
	}
	t.hideTimer = time.AfterFunc(t.hideDelay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.active == 0 {
			t.visible = false
			t.hideTimer = nil
		}
	})
}

// Track wraps a function call in a Begin/End pair
func (t *Tracker) Track(fn func() error) error {
	t.Begin()
	defer t.End()
	return fn()
}

// Active returns the number of in-flight requests
func (t *Tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Visible reports whether the loading indicator should be shown
func (t *Tracker) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}
