package peer

import (
	"sync"
	"testing"
	"time"
)

type fakeSweeper struct {
	mu        sync.Mutex
	marks     []bool // one entry per MarkStale call, value is the llgr arg
	sweeps    []bool
	cleared   int
}

func (f *fakeSweeper) MarkStale(llgr bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marks = append(f.marks, llgr)
}

func (f *fakeSweeper) SweepStale(llgr bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweeps = append(f.sweeps, llgr)
}

func (f *fakeSweeper) ClearStale() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared++
}

func (f *fakeSweeper) snapshot() ([]bool, []bool, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bool(nil), f.marks...), append([]bool(nil), f.sweeps...), f.cleared
}

// TestGracefulRestartRefreshBeforeExpiry covers the case where the
// peer goes stale, but refreshes (re-establishes and re-advertises)
// before the stale timer expires, so routes are cleared rather than
// swept.
func TestGracefulRestartRefreshBeforeExpiry(t *testing.T) {
	sweeper := &fakeSweeper{}
	m := NewCloseManager(nil, sweeper)

	m.Close(true, false)
	marks, _, _ := sweeper.snapshot()
	if len(marks) != 1 || marks[0] != false {
		t.Fatalf("expected one non-LLGR MarkStale call, got %v", marks)
	}
	if !m.IsCloseInProgress() {
		t.Fatal("expected close in progress while stale timer is armed")
	}

	m.RestartRefresh()
	if m.IsCloseInProgress() {
		t.Fatal("expected close to complete after refresh")
	}
	_, _, cleared := sweeper.snapshot()
	if cleared != 1 {
		t.Fatalf("expected ClearStale to be called once, got %d", cleared)
	}
}

// TestGracefulRestartTimerExpirySweeps drives the stale timer to
// completion without a refresh, expecting the plain (non-LLGR) sweep
// when long-lived graceful restart was not negotiated.
func TestGracefulRestartTimerExpirySweeps(t *testing.T) {
	sweeper := &fakeSweeper{}
	m := NewCloseManager(nil, sweeper)
	m.staleTimer = NewTimer()
	m.Close(true, false)

	// Force the stale timer callback directly rather than waiting out
	// the real 60s default, mirroring how the original's unit tests
	// invoke StaleTimerCallback() synchronously.
	m.mu.Lock()
	m.staleTimerCallback()
	m.mu.Unlock()

	_, sweeps, _ := sweeper.snapshot()
	if len(sweeps) != 1 || sweeps[0] != false {
		t.Fatalf("expected one non-LLGR sweep, got %v", sweeps)
	}
	if m.IsCloseInProgress() {
		t.Fatal("expected close to be complete after sweep")
	}
}

// TestLongLivedGracefulRestartEscalates covers the LLGR path: the first
// stale timer expiry escalates to an LLGR-stale mark and arms a second,
// longer timer instead of sweeping immediately.
func TestLongLivedGracefulRestartEscalates(t *testing.T) {
	sweeper := &fakeSweeper{}
	m := NewCloseManager(nil, sweeper)
	m.llgrTimer = NewTimer()
	m.Close(true, true)

	m.mu.Lock()
	m.staleTimerCallback()
	m.mu.Unlock()

	marks, sweeps, _ := sweeper.snapshot()
	if len(marks) != 2 || marks[1] != true {
		t.Fatalf("expected a second MarkStale(true) call, got %v", marks)
	}
	if len(sweeps) != 0 {
		t.Fatalf("expected no sweep yet, got %v", sweeps)
	}
	if !m.IsCloseInProgress() {
		t.Fatal("expected close still in progress during LLGR window")
	}

	// Let the (very short, test-local) LLGR timer fire.
	m.mu.Lock()
	m.llgrTimer.Reset(time.Millisecond, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.closeInProgress {
			return
		}
		m.sweeper.SweepStale(true)
		m.closeComplete()
	})
	m.mu.Unlock()

	time.Sleep(20 * time.Millisecond)
	_, sweeps, _ = sweeper.snapshot()
	if len(sweeps) != 1 || sweeps[0] != true {
		t.Fatalf("expected a final LLGR sweep, got %v", sweeps)
	}
}

// TestConfigDeletedSkipsGracefulRestart covers the event table row where
// a configuration removal sweeps immediately, even when the session had
// negotiated graceful restart.
func TestConfigDeletedSkipsGracefulRestart(t *testing.T) {
	sweeper := &fakeSweeper{}
	m := NewCloseManager(nil, sweeper)
	m.SetConfigDeleted(true)
	m.Close(true, true)

	marks, sweeps, _ := sweeper.snapshot()
	if len(marks) != 0 {
		t.Fatalf("expected no stale marking on config-deleted close, got %v", marks)
	}
	if len(sweeps) != 1 || sweeps[0] != false {
		t.Fatalf("expected immediate sweep, got %v", sweeps)
	}
	if m.IsCloseInProgress() {
		t.Fatal("expected close to be complete immediately")
	}
}
