package peer

import (
	"testing"

	"github.com/contrail/controlnode/bgp"
)

// TestCollisionResolutionLowerIDLoses covers two sessions racing to
// Established: when the peer's router-id is lower than ours, the
// session the Open arrived on wins and the other session is closed with
// a Cease/ConnectionCollision NOTIFICATION.
func TestCollisionResolutionLowerIDLoses(t *testing.T) {
	local := bgpIdentifier(10)
	f := NewFSM(local)

	if tr := f.Step(Event{Kind: EvAdminUp}); tr.Next != Active {
		t.Fatalf("want Active after AdminUp, got %v", tr.Next)
	}
	if tr := f.Step(Event{Kind: EvConnectTimerExpired}); tr.Next != Connect {
		t.Fatalf("want Connect, got %v", tr.Next)
	}

	// A lower-id Open arrives on the active session: we win, so we move
	// forward and close the passive session.
	lowerID := bgpIdentifier(5)
	tr := f.Step(Event{Kind: EvBgpOpen, Session: SessionActive, RemoteID: lowerID})
	if tr.Next != OpenConfirm {
		t.Fatalf("want OpenConfirm when local id is higher, got %v", tr.Next)
	}
	assertCollisionWinEffects(t, tr, SessionPassive)
}

// TestCollisionResolutionOnPassiveSession mirrors the above with the
// winning Open arriving on the passive session instead: the active
// session is the one that must be notified and closed, not a
// hard-coded side.
func TestCollisionResolutionOnPassiveSession(t *testing.T) {
	local := bgpIdentifier(10)
	f := NewFSM(local)
	f.Step(Event{Kind: EvAdminUp})
	f.Step(Event{Kind: EvConnectTimerExpired})

	lowerID := bgpIdentifier(5)
	tr := f.Step(Event{Kind: EvBgpOpen, Session: SessionPassive, RemoteID: lowerID})
	if tr.Next != OpenConfirm {
		t.Fatalf("want OpenConfirm when local id is higher, got %v", tr.Next)
	}
	assertCollisionWinEffects(t, tr, SessionActive)
}

// assertCollisionWinEffects checks that a collision-win Transition closes
// wantLoser and sends it a Cease/ConnectionCollision NOTIFICATION.
func assertCollisionWinEffects(t *testing.T, tr Transition, wantLoser Session) {
	t.Helper()
	var sawClose, sawNotification bool
	for _, e := range tr.Effects {
		switch e.Kind {
		case EffectCloseOtherSession:
			// EffectCloseOtherSession.Session names the winner; the
			// loser is the other one.
			if otherSession(e.Session) != wantLoser {
				t.Fatalf("EffectCloseOtherSession would close %v, want %v", otherSession(e.Session), wantLoser)
			}
			sawClose = true
		case EffectSendNotification:
			if e.Session != wantLoser {
				t.Fatalf("NOTIFICATION sent on %v, want %v", e.Session, wantLoser)
			}
			if e.Code != notifCease || e.Subcode != subcodeConnectionCollision {
				t.Fatalf("want Cease/ConnectionCollision, got code=%d subcode=%d", e.Code, e.Subcode)
			}
			sawNotification = true
		}
	}
	if !sawClose {
		t.Fatal("expected EffectCloseOtherSession on collision win")
	}
	if !sawNotification {
		t.Fatal("expected EffectSendNotification(Cease/ConnectionCollision) on the losing session")
	}
}

// TestCollisionResolutionHigherIDWaits mirrors the losing side: a higher
// remote id moves the FSM to OpenSent, waiting for the other
// session to reach OpenConfirm first.
func TestCollisionResolutionHigherIDWaits(t *testing.T) {
	local := bgpIdentifier(5)
	f := NewFSM(local)
	f.Step(Event{Kind: EvAdminUp})
	f.Step(Event{Kind: EvConnectTimerExpired})

	higherID := bgpIdentifier(10)
	tr := f.Step(Event{Kind: EvBgpOpen, Session: SessionActive, RemoteID: higherID})
	if tr.Next != OpenSent {
		t.Fatalf("want to stay in OpenSent when local id is lower, got %v", tr.Next)
	}
}

// TestDuplicateIDIsFatal covers the event table row where the remote
// peer's advertised router-id matches our own: this always aborts to
// Idle regardless of collision-resolution ordering.
func TestDuplicateIDIsFatal(t *testing.T) {
	local := bgpIdentifier(7)
	f := NewFSM(local)
	f.Step(Event{Kind: EvAdminUp})
	f.Step(Event{Kind: EvConnectTimerExpired})

	tr := f.Step(Event{Kind: EvBgpOpen, Session: SessionActive, RemoteID: local})
	if tr.Next != Idle {
		t.Fatalf("want Idle on duplicate router-id, got %v", tr.Next)
	}
}

// TestEstablishedFlow walks the full happy path to Established.
func TestEstablishedFlow(t *testing.T) {
	f := NewFSM(bgpIdentifier(1))
	f.Step(Event{Kind: EvAdminUp})
	f.Step(Event{Kind: EvConnectTimerExpired})
	tr := f.Step(Event{Kind: EvTcpConnected, Session: SessionActive})
	if tr.Next != OpenSent {
		t.Fatalf("want OpenSent after TcpConnected, got %v", tr.Next)
	}
	tr = f.Step(Event{Kind: EvBgpOpen, Session: SessionActive, RemoteID: bgpIdentifier(2)})
	if tr.Next != OpenConfirm {
		t.Fatalf("want OpenConfirm after receiving peer Open, got %v", tr.Next)
	}
	tr = f.Step(Event{Kind: EvBgpKeepalive, Session: SessionActive})
	if tr.Next != Established {
		t.Fatalf("want Established after Keepalive in OpenConfirm, got %v", tr.Next)
	}
}

// TestHoldTimerExpiryDropsToIdle covers the Established -> Idle path on
// hold-timer expiry, arming a fresh IdleHold
func TestHoldTimerExpiryDropsToIdle(t *testing.T) {
	f := NewFSM(bgpIdentifier(1))
	f.Step(Event{Kind: EvAdminUp})
	f.Step(Event{Kind: EvConnectTimerExpired})
	f.Step(Event{Kind: EvTcpConnected, Session: SessionActive})
	f.Step(Event{Kind: EvBgpOpen, Session: SessionActive, RemoteID: bgpIdentifier(2)})
	f.Step(Event{Kind: EvBgpKeepalive, Session: SessionActive})

	tr := f.Step(Event{Kind: EvHoldTimerExpired})
	if tr.Next != Idle {
		t.Fatalf("want Idle after hold timer expiry, got %v", tr.Next)
	}
	armed := false
	for _, e := range tr.Effects {
		if e.Kind == EffectArmIdleHold {
			armed = true
		}
	}
	if !armed {
		t.Fatal("expected EffectArmIdleHold on Established -> Idle")
	}
}

func bgpIdentifier(v uint32) bgp.Identifier { return bgp.Identifier(v) }
