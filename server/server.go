// Package server composes the control-plane engine's pieces — the
// attribute database, the instance manager / route-target fabric, the
// peer set and the task-group scheduler — into the single runtime
// object a daemon's main() wires up from flag-provided config values.
package server

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/contrail/controlnode/attr"
	"github.com/contrail/controlnode/bgp"
	"github.com/contrail/controlnode/config"
	"github.com/contrail/controlnode/instance"
	"github.com/contrail/controlnode/peer"
	"github.com/contrail/controlnode/sched"
)

// neighborEntry bundles one configured neighbor's runtime state.
type neighborEntry struct {
	cfg     config.NeighborConfig
	peer    *peer.Peer
	closeMg *peer.CloseManager
}

// Server owns every routing instance, every configured neighbor, and
// the scheduler driving config/FSM/membership/show work.
type Server struct {
	DB        *attr.Db
	Instances *instance.InstanceMgr
	Scheduler *sched.Scheduler

	localAS bgp.ASN
	localID bgp.Identifier

	mu        sync.RWMutex
	neighbors map[netip.Addr]*neighborEntry

	listener net.Listener
	log      *logrus.Entry
}

// Config seeds the Server's own protocol identity (ASN/router-id),
// distinct from any one neighbor's.
type Config struct {
	LocalAS         bgp.ASN
	LocalIdentifier bgp.Identifier
}

// New builds a Server with its own attribute database, instance
// manager and scheduler, and a master instance already present
// (instance.New's contract).
func New(cfg Config) *Server {
	db := attr.New()
	return &Server{
		DB:        db,
		Instances: instance.New(db),
		Scheduler: sched.New(sched.DefaultConcurrency),
		localAS:   cfg.LocalAS,
		localID:   cfg.LocalIdentifier,
		neighbors: make(map[netip.Addr]*neighborEntry),
		log:       logrus.WithField("pkg", "server"),
	}
}

// ConfigureInstance creates or updates a routing instance, serialized
// against every other config-group operation.
func (s *Server) ConfigureInstance(ctx context.Context, cfg config.InstanceConfig) error {
	return s.Scheduler.Submit(ctx, sched.GroupConfig, func(context.Context) error {
		return s.Instances.CreateOrUpdate(cfg)
	})
}

// DeleteInstance removes a routing instance by name.
func (s *Server) DeleteInstance(ctx context.Context, name string) error {
	return s.Scheduler.Submit(ctx, sched.GroupConfig, func(context.Context) error {
		return s.Instances.Delete(name)
	})
}

// AddNeighbor configures a peer: builds its runtime peer.Peer wired to
// an active dialer, its CloseManager wired to the instance manager's
// RouteSweeper for its address, and brings it admin-up unless cfg asks
// otherwise. Serialized under bgp::PeerMembership.
func (s *Server) AddNeighbor(ctx context.Context, cfg config.NeighborConfig) error {
	return s.Scheduler.Submit(ctx, sched.GroupPeerMembership, func(context.Context) error {
		s.mu.Lock()
		if _, exists := s.neighbors[cfg.PeerAddress]; exists {
			s.mu.Unlock()
			return fmt.Errorf("server: neighbor %s already configured", cfg.PeerAddress)
		}
		s.mu.Unlock()

		localAS := cfg.LocalAS
		if localAS == 0 {
			localAS = s.localAS
		}
		localID := cfg.LocalIdentifier
		if localID == 0 {
			localID = s.localID
		}

		// entryRef lets the dialer's closure find the neighborEntry it
		// belongs to once it exists; the dial effect only ever fires
		// (asynchronously, after the IdleHold timer) once AdminUp below
		// has run, by which point entryRef is always assigned.
		var entryRef *neighborEntry
		p := peer.New(peer.Config{
			LocalID:   localID,
			LocalAS:   localAS,
			PeerAS:    cfg.PeerAS,
			Address:   cfg.PeerAddress,
			HoldTime:  cfg.HoldTime,
			IsEBGP:    cfg.PeerAS != localAS,
			Graceful:  cfg.GracefulRestart,
			LongLived: cfg.LongLivedGraceful,
		}, s.dialerFor(cfg, &entryRef))

		sweeper := s.Instances.SweeperFor(cfg.PeerAddress)
		closeMg := peer.NewCloseManager(p, sweeper)

		entry := &neighborEntry{cfg: cfg, peer: p, closeMg: closeMg}
		entryRef = entry
		s.mu.Lock()
		s.neighbors[cfg.PeerAddress] = entry
		s.mu.Unlock()

		if !cfg.AdminDown {
			p.AdminUp()
		}
		return nil
	})
}

// RemoveNeighbor tears a neighbor down: marks it config-deleted, forces
// the FSM to Idle and starts the peer-close sweep at once, without
// graceful restart.
func (s *Server) RemoveNeighbor(ctx context.Context, addr netip.Addr) error {
	return s.Scheduler.Submit(ctx, sched.GroupPeerMembership, func(context.Context) error {
		s.mu.Lock()
		entry, ok := s.neighbors[addr]
		if ok {
			delete(s.neighbors, addr)
		}
		s.mu.Unlock()
		if !ok {
			return fmt.Errorf("server: neighbor %s not configured", addr)
		}

		entry.closeMg.SetConfigDeleted(true)
		entry.peer.AdminDown()
		entry.closeMg.Close(false, false)
		return nil
	})
}

// Neighbor returns the runtime peer for addr, for introspection and
// tests.
func (s *Server) Neighbor(addr netip.Addr) (*peer.Peer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.neighbors[addr]
	if !ok {
		return nil, false
	}
	return e.peer, true
}

// Neighbors returns every configured neighbor's address, for
// bgp::ShowCommand-style introspection.
func (s *Server) Neighbors() []netip.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]netip.Addr, 0, len(s.neighbors))
	for addr := range s.neighbors {
		out = append(out, addr)
	}
	return out
}

// dialerFor builds the active-session dialer Peer's connect effect
// invokes. On success it also starts that connection's read loop,
// since this core's Peer only owns sending — decoding inbound bytes
// back into FSM events is the server's job (runtime/FSM
// split carried up one level).
func (s *Server) dialerFor(cfg config.NeighborConfig, entryRef **neighborEntry) func() (peer.Channel, error) {
	if cfg.Passive {
		return nil
	}
	port := cfg.Port
	if port == 0 {
		port = 179
	}
	target := net.JoinHostPort(cfg.PeerAddress.String(), fmt.Sprintf("%d", port))
	return func() (peer.Channel, error) {
		conn, err := net.Dial("tcp", target)
		if err != nil {
			return nil, err
		}
		go s.readLoop(conn, *entryRef, peer.SessionActive)
		return newTCPChannel(conn), nil
	}
}
