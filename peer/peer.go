package peer

import (
	"net/netip"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/contrail/controlnode/bgp"
	"github.com/contrail/controlnode/bgperr"
	"github.com/contrail/controlnode/counter"
	"github.com/contrail/controlnode/message"
)

// Defaults mirrored from timer table.
const (
	DefaultHoldTime    = 90 * time.Second
	DefaultConnectTime = 30 * time.Second
	minIdleHoldTime    = 1 * time.Second
	maxIdleHoldTime    = 2 * time.Minute // kMaxIdleHoldTime
)

// Channel is the minimal transport surface Peer needs from a session: a
// byte-oriented send plus close. The server package wraps each TCP
// connection in one; tests substitute an in-memory fake.
type Channel interface {
	Send([]byte) error
	Close() error
}

// Config is the subset of a neighbor's configuration the FSM runtime
// consults directly. The full field list lives in config.NeighborConfig;
// Peer is handed only what it needs to avoid importing config.
type Config struct {
	LocalID    bgp.Identifier
	LocalAS    bgp.ASN
	PeerAS     bgp.ASN
	Address    netip.Addr
	HoldTime   time.Duration
	IsEBGP     bool
	Graceful   bool
	LongLived  bool
}

// session bundles one of the FSM's two candidate TCP connections with its
// codec-facing channel. Peer may hold an active and a passive session
// simultaneously until collision resolution settles on one.
type session struct {
	channel Channel
	remoteID bgp.Identifier
}

// Peer drives an FSM against real timers and a transport channel. It is
// the runtime describes executing the FSM's pure Transition
// effects.
type Peer struct {
	UUID   uuid.UUID
	Config Config

	mu      sync.Mutex
	fsm     *FSM
	active  *session
	passive *session

	idleHold      *Timer
	connectTimer  *Timer
	openTimer     *Timer
	holdTimer     *Timer
	keepaliveTimer *Timer
	staleTimer    *Timer
	llgrTimer     *Timer

	Counters *counter.Peer

	log *logrus.Entry

	// dial is overridable for tests; the server package supplies a real
	// TCP dialer.
	dial func() (Channel, error)
}

// New creates a Peer in Idle. dial supplies the active session's
// connection attempt; it may be nil if this peer is passive-only.
func New(cfg Config, dial func() (Channel, error)) *Peer {
	id := cfg.LocalID
	p := &Peer{
		UUID:     uuid.New(),
		Config:   cfg,
		fsm:      NewFSM(id),
		Counters: counter.New(),
		log:      logrus.WithFields(logrus.Fields{"pkg": "peer", "peer": cfg.Address.String()}),
		dial:     dial,
	}
	p.idleHold = NewTimer()
	p.connectTimer = NewTimer()
	p.openTimer = NewTimer()
	p.holdTimer = NewTimer()
	p.keepaliveTimer = NewTimer()
	p.staleTimer = NewTimer()
	p.llgrTimer = NewTimer()
	return p
}

// State returns the FSM's current state.
func (p *Peer) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fsm.State()
}

// AdminUp drives the FSM out of Idle,
func (p *Peer) AdminUp() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step(Event{Kind: EvAdminUp})
}

// AdminDown forces the FSM to Idle and tears down any open sessions.
func (p *Peer) AdminDown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step(Event{Kind: EvAdminDown})
}

// HandleOpen feeds a received BGP OPEN into the FSM.
func (p *Peer) HandleOpen(sess Session, remoteID bgp.Identifier, remoteHold uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step(Event{Kind: EvBgpOpen, Session: sess, RemoteID: remoteID, RemoteHoldTime: remoteHold})
}

// HandleKeepalive feeds a received BGP KEEPALIVE into the FSM.
func (p *Peer) HandleKeepalive(sess Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step(Event{Kind: EvBgpKeepalive, Session: sess})
}

// HandleUpdate feeds a received BGP UPDATE into the FSM.
func (p *Peer) HandleUpdate(sess Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step(Event{Kind: EvBgpUpdate, Session: sess})
}

// HandleNotification feeds a received BGP NOTIFICATION into the FSM.
func (p *Peer) HandleNotification(sess Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Counters.RecordRx(message.TypeNotification)
	p.step(Event{Kind: EvBgpNotification, Session: sess})
}

// HandlePassiveOpen registers an inbound TCP connection as the passive
// session.
func (p *Peer) HandlePassiveOpen(ch Channel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kind := EvTcpPassiveOpen
	if p.passive != nil {
		kind = EvDuplicateTcpPassiveOpen
	}
	p.passive = &session{channel: ch}
	p.step(Event{Kind: kind, Session: SessionPassive})
}

// HandleTcpClose notifies the FSM that sess's underlying connection
// closed.
func (p *Peer) HandleTcpClose(sess Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeSession(sess)
	p.step(Event{Kind: EvTcpClose, Session: sess})
}

// step applies ev and executes the resulting effects. Callers must hold
// p.mu.
func (p *Peer) step(ev Event) {
	before := p.fsm.State()
	tr := p.fsm.Step(ev)
	if tr.Next != before {
		p.Counters.RecordStateChange(before == Established)
		p.log.WithFields(logrus.Fields{"from": before, "to": tr.Next}).Info("fsm transition")
	}
	for _, eff := range tr.Effects {
		p.runEffect(eff)
	}
}

func (p *Peer) runEffect(eff Effect) {
	switch eff.Kind {
	case EffectArmIdleHold:
		d := p.nextIdleHoldDuration()
		p.idleHold.Reset(d, func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.step(Event{Kind: EvConnectTimerExpired})
		})
	case EffectArmConnectTimer:
		ct := DefaultConnectTime
		p.connectTimer.Reset(ct, func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.step(Event{Kind: EvConnectTimerExpired})
		})
	case EffectArmOpenTimer:
		p.openTimer.Reset(time.Second, func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.step(Event{Kind: EvOpenTimerExpired, PassivePresent: p.passive != nil})
		})
	case EffectArmHoldTimer:
		hd := p.Config.HoldTime
		if hd == 0 {
			hd = DefaultHoldTime
		}
		p.holdTimer.Reset(hd, func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.step(Event{Kind: EvHoldTimerExpired})
		})
	case EffectArmKeepaliveTimer:
		hd := p.Config.HoldTime
		if hd == 0 {
			hd = DefaultHoldTime
		}
		p.keepaliveTimer.Reset(hd/3, p.sendKeepaliveLocked)
	case EffectCancelAllTimers:
		p.connectTimer.Cancel()
		p.openTimer.Cancel()
		p.holdTimer.Cancel()
		p.keepaliveTimer.Cancel()
	case EffectDialActive:
		p.dialActiveLocked()
	case EffectSendOpen:
		p.sendOpenLocked()
	case EffectSendKeepalive:
		p.sendKeepaliveLocked()
	case EffectSendNotification:
		p.sendNotificationLocked(eff.Session, eff.Code, eff.Subcode)
	case EffectCloseSession:
		p.closeSession(eff.Session)
	case EffectCloseOtherSession:
		if eff.Session == SessionActive {
			p.closeSession(SessionPassive)
		} else {
			p.closeSession(SessionActive)
		}
	case EffectStartGracefulRestart:
		// Peer takes no action here; stale marking of this peer's routes
		// is driven by CloseManager.
	}
}

// nextIdleHoldDuration doubles the backoff on each call, capped at
// maxIdleHoldTime.
func (p *Peer) nextIdleHoldDuration() time.Duration {
	d := minIdleHoldTime << uint(p.fsm.idleHoldAttempt)
	if d > maxIdleHoldTime || d <= 0 {
		d = maxIdleHoldTime
	}
	return d
}

func (p *Peer) dialActiveLocked() {
	if p.dial == nil {
		return
	}
	ch, err := p.dial()
	if err != nil {
		p.log.WithError(err).Debug("active dial failed")
		go func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.step(Event{Kind: EvTcpConnectFail, Session: SessionActive})
		}()
		return
	}
	p.active = &session{channel: ch}
	go func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.step(Event{Kind: EvTcpConnected, Session: SessionActive})
	}()
}

func (p *Peer) sendOpenLocked() {
	ch := p.currentChannel()
	if ch == nil {
		return
	}
	open := &message.Open{
		Version:       bgp.CurrentVersion,
		MyAS:          p.Config.LocalAS,
		HoldTime:      holdTimeSeconds(p.Config.HoldTime),
		BgpIdentifier: p.Config.LocalID,
	}
	if err := ch.Send(open.Encode()); err != nil {
		p.Counters.RecordError(err.Error())
		return
	}
	p.Counters.RecordTx(message.TypeOpen)
}

func (p *Peer) sendKeepaliveLocked() {
	ch := p.currentChannel()
	if ch == nil {
		return
	}
	if err := ch.Send(message.EncodeKeepalive()); err != nil {
		p.Counters.RecordError(err.Error())
		return
	}
	p.Counters.RecordTx(message.TypeKeepalive)
}

// sendNotificationLocked encodes and sends a NOTIFICATION for the
// bgperr-classified (code, subcode) pair on sess, then closes sess: a
// sent NOTIFICATION always ends the session it was sent on. The FSM is
// responsible for emitting a separate close effect for any other
// session that also needs to go down (e.g. a full duplicate-id reset).
func (p *Peer) sendNotificationLocked(sess Session, code, subcode byte) {
	cerr := bgperr.Protocol(code, subcode, "fsm-triggered notification")
	p.log.WithError(cerr).Debug("sending notification")
	ch := p.channelFor(sess)
	if ch != nil {
		notif := &message.Notification{Code: code, Subcode: subcode}
		if err := ch.Send(notif.Encode()); err == nil {
			p.Counters.RecordTx(message.TypeNotification)
		}
	}
	p.Counters.RecordNotification(subcode)
	p.closeSession(sess)
}

func holdTimeSeconds(d time.Duration) uint16 {
	if d <= 0 {
		d = DefaultHoldTime
	}
	return uint16(d / time.Second)
}

func (p *Peer) currentChannel() Channel {
	if p.active != nil {
		return p.active.channel
	}
	if p.passive != nil {
		return p.passive.channel
	}
	return nil
}

// channelFor returns the channel for one specific session, or nil if
// that session isn't open.
func (p *Peer) channelFor(sess Session) Channel {
	if sess == SessionActive && p.active != nil {
		return p.active.channel
	}
	if sess == SessionPassive && p.passive != nil {
		return p.passive.channel
	}
	return nil
}

func (p *Peer) closeSession(sess Session) {
	if sess == SessionActive && p.active != nil {
		_ = p.active.channel.Close()
		p.active = nil
	}
	if sess == SessionPassive && p.passive != nil {
		_ = p.passive.channel.Close()
		p.passive = nil
	}
}
