package peer

import "github.com/contrail/controlnode/bgp"

// State is one of the six BGP FSM states.
type State int

const (
	Idle State = iota
	Active
	Connect
	OpenSent
	OpenConfirm
	Established
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Active:
		return "Active"
	case Connect:
		return "Connect"
	case OpenSent:
		return "OpenSent"
	case OpenConfirm:
		return "OpenConfirm"
	case Established:
		return "Established"
	default:
		return "Unknown"
	}
}

// EventKind names one FSM input event. Administrative and timer events are
// spontaneous; the Tcp*/Bgp* events carry data about the session they
// arrived on.
type EventKind int

const (
	EvAdminUp EventKind = iota
	EvAdminDown
	EvConnectTimerExpired
	EvOpenTimerExpired
	EvTcpConnected       // active session's dial succeeded
	EvTcpConnectFail     // active session's dial failed
	EvTcpPassiveOpen     // a peer dialed us
	EvDuplicateTcpPassiveOpen
	EvBgpOpen
	EvBgpKeepalive
	EvBgpNotification
	EvHoldTimerExpired
	EvTcpClose
	EvBgpUpdate
)

// Session identifies which of the FSM's up-to-two sessions an event
// pertains to.
type Session int

const (
	SessionActive Session = iota
	SessionPassive
)

// Event is one FSM input.
type Event struct {
	Kind    EventKind
	Session Session

	// Populated for EvBgpOpen: the identifier/hold-time the peer
	// advertised, used for collision resolution and hold-time
	// negotiation.
	RemoteID       bgp.Identifier
	RemoteHoldTime uint16

	// PassivePresent is true when OpenTimerExpired fires while a passive
	// session is waiting to be promoted.
	PassivePresent bool
}

// EffectKind tags one element of a Transition's side-effect list. The FSM
// itself never sends bytes or touches timers directly —
// design note, Step is pure and the runtime executes the effects.
type EffectKind int

const (
	EffectArmIdleHold EffectKind = iota
	EffectArmConnectTimer
	EffectArmOpenTimer
	EffectArmHoldTimer
	EffectArmKeepaliveTimer
	EffectCancelAllTimers
	EffectSendOpen
	EffectSendKeepalive
	EffectSendNotification
	EffectCloseSession
	EffectCloseOtherSession
	EffectDialActive
	EffectStartGracefulRestart
)

// Effect is one side effect the runtime must perform as a result of a
// Step call.
type Effect struct {
	Kind    EffectKind
	Session Session // which session a Close/Send effect applies to
	Code    byte    // NOTIFICATION error code, when Kind == EffectSendNotification
	Subcode byte
}

// Transition is the result of Step: the FSM's next state plus the effects
// the runtime must carry out.
type Transition struct {
	Next    State
	Effects []Effect
}

// FSM is the pure per-peer state machine. It holds no I/O handles; Peer
// owns the sessions, timers and wire codec and drives Step.
type FSM struct {
	state State

	// idleHoldAttempt damps reconnection flaps: it counts each
	// close-without-Established since the last AdminUp, and the IdleHold
	// delay doubles (capped) with it.
	idleHoldAttempt int

	localID bgp.Identifier
}

// NewFSM creates an FSM starting in Idle.
func NewFSM(localID bgp.Identifier) *FSM {
	return &FSM{state: Idle, localID: localID}
}

// State returns the current state.
func (f *FSM) State() State { return f.state }

func t(next State, effects ...Effect) Transition {
	return Transition{Next: next, Effects: effects}
}

// Step applies ev to the current state and returns the next state plus
// the effects the runtime must perform, per the event table in
// §4.5 (abbreviated there; this implements every listed cell).
func (f *FSM) Step(ev Event) Transition {
	switch f.state {
	case Idle:
		return f.stepIdle(ev)
	case Active:
		return f.stepActive(ev)
	case Connect:
		return f.stepConnect(ev)
	case OpenSent:
		return f.stepOpenSent(ev)
	case OpenConfirm:
		return f.stepOpenConfirm(ev)
	case Established:
		return f.stepEstablished(ev)
	default:
		return t(f.state)
	}
}

func (f *FSM) stepIdle(ev Event) Transition {
	switch ev.Kind {
	case EvAdminUp:
		f.idleHoldAttempt = 0
		return f.apply(Active, Effect{Kind: EffectArmIdleHold})
	case EvTcpPassiveOpen:
		// IDLE ignores inbound connections until administratively up,
		// per the event table; stays Idle.
		return t(Idle, Effect{Kind: EffectCloseSession, Session: ev.Session})
	default:
		return t(Idle)
	}
}

func (f *FSM) stepActive(ev Event) Transition {
	switch ev.Kind {
	case EvAdminDown:
		return f.toIdle()
	case EvConnectTimerExpired:
		return f.apply(Connect, Effect{Kind: EffectDialActive}, Effect{Kind: EffectArmConnectTimer})
	case EvOpenTimerExpired:
		if ev.PassivePresent {
			return f.apply(OpenSent, Effect{Kind: EffectSendOpen}, Effect{Kind: EffectArmHoldTimer})
		}
		return t(Active)
	case EvTcpPassiveOpen:
		return f.apply(Active, Effect{Kind: EffectArmOpenTimer})
	case EvDuplicateTcpPassiveOpen:
		return f.apply(Active, Effect{Kind: EffectCloseOtherSession, Session: ev.Session}, Effect{Kind: EffectArmOpenTimer})
	case EvBgpOpen:
		return f.handleBgpOpen(ev, OpenConfirm)
	case EvBgpKeepalive, EvBgpNotification, EvBgpUpdate:
		return f.toIdle()
	case EvTcpClose:
		return t(Active)
	default:
		return t(Active)
	}
}

func (f *FSM) stepConnect(ev Event) Transition {
	switch ev.Kind {
	case EvAdminDown:
		return f.toIdle()
	case EvConnectTimerExpired:
		return f.apply(Active, Effect{Kind: EffectArmIdleHold})
	case EvOpenTimerExpired:
		if ev.PassivePresent {
			return f.apply(OpenSent, Effect{Kind: EffectSendOpen}, Effect{Kind: EffectArmHoldTimer})
		}
		return t(Connect)
	case EvTcpConnected:
		return f.apply(OpenSent, Effect{Kind: EffectSendOpen}, Effect{Kind: EffectArmHoldTimer})
	case EvTcpConnectFail:
		return f.apply(Active, Effect{Kind: EffectArmConnectTimer})
	case EvTcpPassiveOpen:
		return f.apply(Connect, Effect{Kind: EffectArmOpenTimer})
	case EvDuplicateTcpPassiveOpen:
		return f.apply(Connect, Effect{Kind: EffectCloseOtherSession, Session: ev.Session}, Effect{Kind: EffectArmOpenTimer})
	case EvBgpOpen:
		return f.handleBgpOpen(ev, OpenConfirm)
	case EvBgpKeepalive, EvBgpNotification, EvBgpUpdate:
		return f.toIdle()
	case EvTcpClose:
		return t(Active)
	default:
		return t(Connect)
	}
}

func (f *FSM) stepOpenSent(ev Event) Transition {
	switch ev.Kind {
	case EvAdminDown:
		return f.toIdle()
	case EvTcpConnected:
		return t(OpenSent)
	case EvBgpOpen:
		return f.handleBgpOpenAtOpenSent(ev)
	case EvBgpNotification:
		return f.toIdle()
	case EvHoldTimerExpired:
		return f.toIdle()
	case EvTcpClose:
		return f.apply(Active, Effect{Kind: EffectArmConnectTimer})
	case EvBgpKeepalive, EvBgpUpdate:
		// RFC 4271 §8.2.2 is ambiguous on whether an UPDATE in OPENSENT
		// is fatal; this core follows the original and treats any
		// unexpected Keepalive/Update here the same as the table's IDLE
		// entries.
		return f.toIdle()
	default:
		return t(OpenSent)
	}
}

func (f *FSM) stepOpenConfirm(ev Event) Transition {
	switch ev.Kind {
	case EvAdminDown:
		return f.toIdle()
	case EvBgpOpen:
		// a duplicate-id Open arriving here is fatal (event table row
		// "BgpOpen with duplicate id").
		if ev.RemoteID == f.localID {
			return f.toIdleDuplicateID(ev.Session)
		}
		return f.toIdle()
	case EvBgpKeepalive:
		return f.apply(Established, Effect{Kind: EffectArmHoldTimer}, Effect{Kind: EffectArmKeepaliveTimer})
	case EvBgpNotification, EvHoldTimerExpired, EvTcpClose, EvBgpUpdate:
		return f.toIdle()
	default:
		return t(OpenConfirm)
	}
}

func (f *FSM) stepEstablished(ev Event) Transition {
	switch ev.Kind {
	case EvAdminDown:
		return f.toIdle()
	case EvBgpKeepalive:
		return f.apply(Established, Effect{Kind: EffectArmHoldTimer})
	case EvBgpUpdate:
		return f.apply(Established, Effect{Kind: EffectArmHoldTimer})
	case EvBgpNotification, EvHoldTimerExpired, EvTcpClose:
		return f.toIdle()
	default:
		return t(Established)
	}
}

// handleBgpOpen implements collision resolution for an Open received
// while in ACTIVE/CONNECT, where up to two sessions may be racing. The
// session the Open arrived on (ev.Session) is the candidate that wins
// or loses. When the local router-id is higher, ev.Session wins: the
// other session is sent a Cease/ConnectionCollision NOTIFICATION and
// closed, and the winner keeps running. When the local router-id is
// lower, the FSM moves to OPENSENT and no session is notified or
// closed here.
func (f *FSM) handleBgpOpen(ev Event, onWin State) Transition {
	if ev.RemoteID == f.localID {
		return f.toIdleDuplicateID(ev.Session)
	}
	// The session carrying the Open from the higher router-id wins.
	if f.localID > ev.RemoteID {
		loser := otherSession(ev.Session)
		return f.apply(onWin,
			Effect{Kind: EffectSendNotification, Session: loser, Code: notifCease, Subcode: subcodeConnectionCollision},
			Effect{Kind: EffectCloseOtherSession, Session: ev.Session},
			Effect{Kind: EffectArmHoldTimer},
		)
	}
	return f.apply(OpenSent)
}

// handleBgpOpenAtOpenSent handles the peer's Open once our own Open is
// out. When the local router-id is higher, ev.Session wins as in
// handleBgpOpen. When it is lower, the session the Open arrived on
// moves to OPENCONFIRM and no other session is notified or closed here.
func (f *FSM) handleBgpOpenAtOpenSent(ev Event) Transition {
	if ev.RemoteID == f.localID {
		return f.toIdleDuplicateID(ev.Session)
	}
	if f.localID > ev.RemoteID {
		loser := otherSession(ev.Session)
		return f.apply(OpenConfirm,
			Effect{Kind: EffectSendNotification, Session: loser, Code: notifCease, Subcode: subcodeConnectionCollision},
			Effect{Kind: EffectCloseOtherSession, Session: ev.Session},
			Effect{Kind: EffectArmHoldTimer},
		)
	}
	return f.apply(OpenConfirm, Effect{Kind: EffectArmHoldTimer})
}

// otherSession returns the session not named by s.
func otherSession(s Session) Session {
	if s == SessionActive {
		return SessionPassive
	}
	return SessionActive
}

func (f *FSM) apply(next State, effects ...Effect) Transition {
	f.state = next
	return t(next, effects...)
}

// toIdle transitions to IDLE, arming the idle-hold timer. Used for every
// non-fatal path back to IDLE (AdminDown, hold-timer expiry, a plain
// NOTIFICATION from the peer, and so on).
func (f *FSM) toIdle() Transition {
	if f.state != Established {
		f.idleHoldAttempt++
	}
	f.state = Idle
	return t(Idle, Effect{Kind: EffectCancelAllTimers}, Effect{Kind: EffectArmIdleHold})
}

// toIdleDuplicateID transitions to IDLE after a fatal duplicate router-id
// collision: the session the Open arrived on is sent a
// Cease/ConnectionCollision NOTIFICATION and closed, and the other
// candidate session (if any) is closed too, since the whole peer resets.
func (f *FSM) toIdleDuplicateID(sess Session) Transition {
	f.state = Idle
	f.idleHoldAttempt++
	return t(Idle,
		Effect{Kind: EffectCancelAllTimers},
		Effect{Kind: EffectSendNotification, Session: sess, Code: notifCease, Subcode: subcodeConnectionCollision},
		Effect{Kind: EffectCloseSession, Session: otherSession(sess)},
		Effect{Kind: EffectArmIdleHold},
	)
}

// NOTIFICATION error code/subcode constants this package needs directly;
// the full taxonomy lives in bgperr.
const (
	notifCease                  = 6
	subcodeConnectionCollision  = 7
)
