// Package counter implements the per-peer observability surface this
// core keeps in scope: plain, atomically-updated counters, not a
// metrics exporter (see DESIGN.md for why no metrics library is wired
// here — a real exporter is explicitly out of scope).
package counter

import (
	"sync/atomic"

	"github.com/contrail/controlnode/message"
)

// Peer tracks rx/tx by message type, notification codes seen, decode
// errors by subcode, and session-lifecycle counters for one peer.
type Peer struct {
	rxOpen         atomic.Uint64
	rxUpdate       atomic.Uint64
	rxNotification atomic.Uint64
	rxKeepalive    atomic.Uint64
	txOpen         atomic.Uint64
	txUpdate       atomic.Uint64
	txNotification atomic.Uint64
	txKeepalive    atomic.Uint64

	notificationCodes map[byte]uint64
	decodeErrors      map[byte]uint64

	stateChanges atomic.Uint64
	flapCount    atomic.Uint64
	lastError    atomic.Pointer[string]
}

// New returns a zeroed Peer counter set.
func New() *Peer {
	return &Peer{
		notificationCodes: make(map[byte]uint64),
		decodeErrors:      make(map[byte]uint64),
	}
}

// RecordRx increments the receive counter for typ.
func (p *Peer) RecordRx(typ message.Type) {
	switch typ {
	case message.TypeOpen:
		p.rxOpen.Add(1)
	case message.TypeUpdate:
		p.rxUpdate.Add(1)
	case message.TypeNotification:
		p.rxNotification.Add(1)
	case message.TypeKeepalive:
		p.rxKeepalive.Add(1)
	}
}

// RecordTx increments the transmit counter for typ.
func (p *Peer) RecordTx(typ message.Type) {
	switch typ {
	case message.TypeOpen:
		p.txOpen.Add(1)
	case message.TypeUpdate:
		p.txUpdate.Add(1)
	case message.TypeNotification:
		p.txNotification.Add(1)
	case message.TypeKeepalive:
		p.txKeepalive.Add(1)
	}
}

// RecordNotification tags one seen NOTIFICATION subcode. Callers
// serialize through the FSM's own lock, so the plain map is safe here
// without its own mutex.
func (p *Peer) RecordNotification(subcode byte) {
	p.notificationCodes[subcode]++
}

// RecordDecodeError tags one decode failure by NOTIFICATION subcode.
func (p *Peer) RecordDecodeError(subcode byte) {
	p.decodeErrors[subcode]++
}

// RecordStateChange increments the FSM transition counter, and the flap
// counter when leaving Established.
func (p *Peer) RecordStateChange(wasEstablished bool) {
	p.stateChanges.Add(1)
	if wasEstablished {
		p.flapCount.Add(1)
	}
}

// RecordError sets the last-error string.
func (p *Peer) RecordError(msg string) {
	p.lastError.Store(&msg)
}

// Snapshot is a consistent point-in-time read of every counter, the
// shape an introspection/"show" command would serialize ('s
// read-only snapshot hook).
type Snapshot struct {
	RxOpen, RxUpdate, RxNotification, RxKeepalive uint64
	TxOpen, TxUpdate, TxNotification, TxKeepalive uint64
	NotificationCodes map[byte]uint64
	DecodeErrors      map[byte]uint64
	StateChanges      uint64
	FlapCount         uint64
	LastError         string
}

// Snapshot copies every counter into a Snapshot value.
func (p *Peer) Snapshot() Snapshot {
	s := Snapshot{
		RxOpen: p.rxOpen.Load(), RxUpdate: p.rxUpdate.Load(),
		RxNotification: p.rxNotification.Load(), RxKeepalive: p.rxKeepalive.Load(),
		TxOpen: p.txOpen.Load(), TxUpdate: p.txUpdate.Load(),
		TxNotification: p.txNotification.Load(), TxKeepalive: p.txKeepalive.Load(),
		StateChanges: p.stateChanges.Load(), FlapCount: p.flapCount.Load(),
		NotificationCodes: make(map[byte]uint64, len(p.notificationCodes)),
		DecodeErrors:      make(map[byte]uint64, len(p.decodeErrors)),
	}
	for k, v := range p.notificationCodes {
		s.NotificationCodes[k] = v
	}
	for k, v := range p.decodeErrors {
		s.DecodeErrors[k] = v
	}
	if errPtr := p.lastError.Load(); errPtr != nil {
		s.LastError = *errPtr
	}
	return s
}
