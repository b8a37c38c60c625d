package peer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTimerFiresAfterDelay(t *testing.T) {
	var fired atomic.Bool
	tm := NewTimer()
	tm.Reset(5*time.Millisecond, func() { fired.Store(true) })
	time.Sleep(30 * time.Millisecond)
	if !fired.Load() {
		t.Fatal("timer did not fire")
	}
	if tm.Running() {
		t.Fatal("timer should no longer be running after firing")
	}
}

func TestTimerCancelBeforeFire(t *testing.T) {
	var fired atomic.Bool
	tm := NewTimer()
	tm.Reset(20*time.Millisecond, func() { fired.Store(true) })
	tm.Cancel()
	time.Sleep(40 * time.Millisecond)
	if fired.Load() {
		t.Fatal("cancelled timer fired anyway")
	}
	if tm.Running() {
		t.Fatal("cancelled timer reports running")
	}
}

func TestTimerCancelIdempotent(t *testing.T) {
	tm := NewTimer()
	tm.Cancel()
	tm.Cancel()
	if tm.Running() {
		t.Fatal("never-armed timer reports running")
	}
}

func TestTimerResetReplacesPreviousArming(t *testing.T) {
	var firstFired, secondFired atomic.Bool
	tm := NewTimer()
	tm.Reset(30*time.Millisecond, func() { firstFired.Store(true) })
	tm.Reset(5*time.Millisecond, func() { secondFired.Store(true) })
	time.Sleep(50 * time.Millisecond)
	if firstFired.Load() {
		t.Fatal("first arming fired despite being replaced")
	}
	if !secondFired.Load() {
		t.Fatal("second arming did not fire")
	}
}
