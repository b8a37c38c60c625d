package peer

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultGracefulRestartTime mirrors
// PeerCloseManager::kDefaultGracefulRestartTime.
const DefaultGracefulRestartTime = 60 * time.Second

// DefaultLlgrStaleTime is how much longer LLGR-eligible families stay
// marked after the graceful-restart stale timer fires, before they are
// finally swept.
const DefaultLlgrStaleTime = 4 * time.Minute

// RouteSweeper is the set of tables a CloseManager must mark stale, then
// later sweep, on a peer's departure. The instance package implements
// this against every table the peer is a member of (the value
// InstanceMgr.SweeperFor returns), so peer never imports instance or
// table directly.
type RouteSweeper interface {
	// MarkStale flags every path this peer owns in every member table as
	// stale (or LLGR-stale on the second call), keeping them in the table
	// until SweepStale runs or a fresh UPDATE arrives. Best-path selection
	// (table.Path.Compare) does not consult the stale marks: a stale path
	// competes at its normal preference.
	MarkStale(llgr bool)
	// SweepStale removes every path still marked stale/LLGR-stale,
	// because the peer did not refresh them before the timer expired.
	SweepStale(llgr bool)
	// ClearStale removes the stale mark from every path the peer owns,
	// whether or not the peer re-advertised it, ending graceful restart
	// early. Paths the peer did not re-advertise are not swept afterwards.
	ClearStale()
}

// CloseManager sequences a peer's RIB-in/RIB-out teardown so that no
// route lookup or best-path computation observes a half-closed peer.
// Grounded on original_source/src/bgp/bgp_peer_close.h's
// PeerCloseManager: the close/stale-timer/sweep state machine is the
// same shape, re-expressed without the C++ friend-class test hook or
// the tbb recursive mutex.
type CloseManager struct {
	mu sync.Mutex

	peer          *Peer
	sweeper       RouteSweeper
	log           *logrus.Entry

	closeInProgress bool
	configDeleted   bool
	gracefulRestart bool
	longLived       bool

	staleTimer *Timer
	llgrTimer  *Timer
}

// NewCloseManager builds a CloseManager for p. sweeper may be nil until
// the peer is actually registered with an instance membership set.
func NewCloseManager(p *Peer, sweeper RouteSweeper) *CloseManager {
	return &CloseManager{
		peer:       p,
		sweeper:    sweeper,
		log:        logrus.WithFields(logrus.Fields{"pkg": "peer", "component": "close"}),
		staleTimer: NewTimer(),
		llgrTimer:  NewTimer(),
	}
}

// SetConfigDeleted records whether this close was triggered by the
// neighbor's configuration being removed outright, which skips graceful
// restart even if the session had negotiated it: a configuration-driven
// removal always sweeps immediately.
func (m *CloseManager) SetConfigDeleted(deleted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configDeleted = deleted
}

// IsConfigDeleted reports the flag set by SetConfigDeleted.
func (m *CloseManager) IsConfigDeleted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.configDeleted
}

// IsCloseInProgress reports whether a Close has started and has not yet
// reached CloseComplete.
func (m *CloseManager) IsCloseInProgress() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeInProgress
}

// Close begins the peer's teardown sequence: if graceful restart was
// negotiated and this is not a config-driven removal, every owned path
// is marked stale and a timer is armed to sweep it; otherwise paths are
// swept immediately.
func (m *CloseManager) Close(negotiatedGR, negotiatedLLGR bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closeInProgress {
		return
	}
	m.closeInProgress = true
	m.gracefulRestart = negotiatedGR && !m.configDeleted
	m.longLived = negotiatedLLGR && !m.configDeleted

	if m.sweeper == nil {
		m.closeInProgress = false
		return
	}

	if !m.gracefulRestart {
		m.sweeper.SweepStale(false)
		m.closeComplete()
		return
	}

	m.sweeper.MarkStale(false)
	m.startStaleTimer()
}

// startStaleTimer arms the GR stale timer. Callers must hold m.mu.
func (m *CloseManager) startStaleTimer() {
	m.staleTimer.Reset(DefaultGracefulRestartTime, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.staleTimerCallback()
	})
}

// staleTimerCallback fires when the peer failed to re-establish and
// refresh its routes before the GR window closed. It either escalates to
// LLGR stale (if negotiated) or sweeps outright. Callers must hold m.mu.
func (m *CloseManager) staleTimerCallback() {
	if !m.closeInProgress {
		return
	}
	if m.longLived {
		m.sweeper.MarkStale(true)
		m.llgrTimer.Reset(DefaultLlgrStaleTime, func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if !m.closeInProgress {
				return
			}
			m.sweeper.SweepStale(true)
			m.closeComplete()
		})
		return
	}
	m.sweeper.SweepStale(false)
	m.closeComplete()
}

// RestartRefresh is called when the peer re-establishes and begins
// re-advertising its routes before the stale timers expire, clearing the
// stale marks early and cancelling the close ( "a refreshed
// EOR within the restart window ends graceful restart").
func (m *CloseManager) RestartRefresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closeInProgress {
		return
	}
	m.staleTimer.Cancel()
	m.llgrTimer.Cancel()
	if m.sweeper != nil {
		m.sweeper.ClearStale()
	}
	m.closeComplete()
}

// closeComplete marks the close finished. Callers must hold m.mu.
func (m *CloseManager) closeComplete() {
	m.closeInProgress = false
	m.gracefulRestart = false
	m.longLived = false
}
