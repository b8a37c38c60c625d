// Package peer implements the per-peer BGP session state machine
// and the peer-close manager.
//
// Grounded on original_source/src/bgp/bgp_peer_close.h for the close
// manager, with the timer field layout and RFC-section doc-comment
// style carried from a conventional FSM/timer pairing.
package peer

import (
	"sync"
	"time"
)

// Timer is a cancelable scheduled callback, the only kind of suspension
// point timers introduce, extended with an idempotent Cancel: a
// stopped or never-armed Timer is a no-op.
type Timer struct {
	mu      sync.Mutex
	timer   *time.Timer
	running bool
}

// NewTimer returns an unarmed Timer.
func NewTimer() *Timer { return &Timer{} }

// Reset (re)arms the timer to fire fn after d, cancelling any previous
// arming first.
func (t *Timer) Reset(d time.Duration, fn func()) {
	t.Cancel()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = true
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
		fn()
	})
}

// Cancel stops the timer if armed. Idempotent — calling it on an already
// stopped or never-armed Timer is a no-op.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.running = false
}

// Running reports whether the timer is currently armed.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
