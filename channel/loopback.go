package channel

import "sync"

// Loopback is an in-memory Channel implementation for tests: an Event
// passed to one end's SendEvent surfaces on the peer end's Events
// channel. Bytes passed to Send are not delivered.
// Not a production transport; grounded on the
// teacher's network package's plain-Go io.Reader/Writer pairing style,
// adapted to this package's event-oriented interface.
type Loopback struct {
	mu         sync.Mutex
	peer       *Loopback
	events     chan Event
	writeReady func()
	blocked    bool
	closed     bool
}

// NewLoopbackPair returns two Loopback channels, each other's peer.
func NewLoopbackPair() (a, b *Loopback) {
	a = &Loopback{events: make(chan Event, 64)}
	b = &Loopback{events: make(chan Event, 64)}
	a.peer, b.peer = b, a
	return a, b
}

func (l *Loopback) Send(raw []byte) (Status, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return StatusBlocked, nil
	}
	// Loopback carries structured Events directly rather than encoding
	// to bytes and back; production transports would decode raw here.
	return StatusOk, nil
}

// SendEvent is the test-only structured equivalent of Send, delivering
// ev to the peer's Events channel.
func (l *Loopback) SendEvent(ev Event) Status {
	l.mu.Lock()
	peer := l.peer
	l.mu.Unlock()
	if peer == nil {
		return StatusBlocked
	}
	select {
	case peer.events <- ev:
		return StatusOk
	default:
		return StatusBlocked
	}
}

func (l *Loopback) SetWriteReady(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeReady = fn
}

func (l *Loopback) Subscribe(instance string) error {
	return nil
}

func (l *Loopback) Events() <-chan Event { return l.events }

func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	close(l.events)
	return nil
}
