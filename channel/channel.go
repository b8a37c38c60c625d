// Package channel defines the compute-agent pub/sub transport surface
// the core consumes and a loopback test double. The real
// production transport is out of scope (see Non-goals); only
// the interface and the in-memory Loopback live here.
package channel

import (
	"net/netip"

	"github.com/contrail/controlnode/bgp"
)

// Status is the result of a Send call -> Ok |
// Blocked").
type Status int

const (
	StatusOk Status = iota
	StatusBlocked
)

// EventKind tags one decoded inbound message.
type EventKind int

const (
	EventSubscribe EventKind = iota
	EventUnsubscribe
	EventAddRoute
	EventDeleteRoute
)

// Event is one decoded inbound message from the channel.
type Event struct {
	Kind     EventKind
	Instance string
	ID       string // peer/session id for Subscribe
	Prefix   netip.Prefix
	Family   bgp.Family
	Label    uint32
	// NextHop and LocalPref are the raw attribute fields an AddRoute
	// event carries; the channel layer holds no attr.Db and does not
	// intern them.
	NextHop   netip.Addr
	LocalPref uint32
}

// Channel is the core's view of the compute-agent pub/sub transport.
type Channel interface {
	// Send transmits b, returning StatusBlocked (never an error) if the
	// channel applies backpressure; callers must then wait for
	// SetWriteReady's callback before retrying.
	Send(b []byte) (Status, error)
	// SetWriteReady registers fn to be called once the channel can
	// accept more Sends after having returned StatusBlocked.
	SetWriteReady(fn func())
	// Subscribe requests the far end start sending AddRoute/DeleteRoute
	// events for instance.
	Subscribe(instance string) error
	// Events returns a channel of decoded inbound events, closed when
	// the transport closes.
	Events() <-chan Event
	// Close tears down the transport.
	Close() error
}
