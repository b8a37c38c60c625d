package server

import (
	"encoding/binary"
	"io"
	"net"
	"net/netip"

	"github.com/contrail/controlnode/message"
	"github.com/contrail/controlnode/peer"
	"github.com/contrail/controlnode/table"
)

// tcpChannel adapts a net.Conn to peer.Channel, the raw byte-oriented
// transport the FSM runtime sends encoded BGP messages over: plain
// net.Conn read/write session handling, adapted to this core's
// effects-as-data Peer rather than owning its own read loop inline.
type tcpChannel struct {
	conn net.Conn
}

func newTCPChannel(conn net.Conn) *tcpChannel { return &tcpChannel{conn: conn} }

func (c *tcpChannel) Send(b []byte) error {
	_, err := c.conn.Write(b)
	return err
}

func (c *tcpChannel) Close() error { return c.conn.Close() }

// ListenAndServe accepts inbound BGP TCP sessions on addr and runs
// until the listener is closed. Each accepted connection is matched
// against a configured neighbor by source address and registered as
// that peer's passive session.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go s.acceptConn(conn)
	}
}

// Close stops accepting new inbound sessions. Already-established
// peers are unaffected; callers should RemoveNeighbor each one for a
// full shutdown.
func (s *Server) Close() error {
	s.mu.RLock()
	ln := s.listener
	s.mu.RUnlock()
	if ln == nil {
		return nil
	}
	return ln.Close()
}

func (s *Server) acceptConn(conn net.Conn) {
	remoteAddr, ok := tcpRemoteAddr(conn)
	if !ok {
		conn.Close()
		return
	}

	s.mu.RLock()
	entry, known := s.neighbors[remoteAddr]
	s.mu.RUnlock()
	if !known {
		s.log.WithField("remote", remoteAddr).Warn("rejecting connection from unconfigured neighbor")
		conn.Close()
		return
	}

	ch := newTCPChannel(conn)
	entry.peer.HandlePassiveOpen(ch)
	s.readLoop(conn, entry, peer.SessionPassive)
}

func tcpRemoteAddr(conn net.Conn) (netip.Addr, bool) {
	tcpAddr, ok := conn.RemoteAddr().(*net.TCPAddr)
	if !ok {
		return netip.Addr{}, false
	}
	a, ok := netip.AddrFromSlice(tcpAddr.IP)
	if !ok {
		return netip.Addr{}, false
	}
	return a.Unmap(), true
}

// readLoop decodes BGP messages off conn until it closes or an error
// occurs, dispatching each to entry.peer and, for UPDATE, into the
// neighbor's configured instance tables.
func (s *Server) readLoop(conn net.Conn, entry *neighborEntry, sess peer.Session) {
	defer func() {
		entry.peer.HandleTcpClose(sess)
	}()
	for {
		raw, err := readMessage(conn)
		if err != nil {
			return
		}
		hdr, body, err := message.DecodeHeader(raw)
		if err != nil {
			s.log.WithError(err).Debug("malformed message header")
			return
		}
		s.dispatch(entry, sess, hdr.Type, body)
	}
}

// readMessage reads one complete BGP message off r: the fixed 19-byte
// header (16-byte marker + 2-byte length + 1-byte type), then however
// many more bytes the length field declares, per RFC 4271 §4.1. The
// returned slice is handed whole to message.DecodeHeader, which owns
// marker/length/type validation.
func readMessage(r io.Reader) ([]byte, error) {
	raw := make([]byte, 19, message.MaxMessageLength)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, err
	}
	total := int(binary.BigEndian.Uint16(raw[16:18]))
	if total < 19 || total > message.MaxMessageLength {
		return nil, io.ErrUnexpectedEOF
	}
	raw = raw[:total]
	if total > 19 {
		if _, err := io.ReadFull(r, raw[19:]); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

func (s *Server) dispatch(entry *neighborEntry, sess peer.Session, typ message.Type, body []byte) {
	switch typ {
	case message.TypeOpen:
		open, err := message.DecodeOpen(body)
		if err != nil {
			s.log.WithError(err).Debug("malformed OPEN")
			return
		}
		entry.peer.HandleOpen(sess, open.BgpIdentifier, open.HoldTime)
	case message.TypeKeepalive:
		entry.peer.HandleKeepalive(sess)
	case message.TypeNotification:
		entry.peer.HandleNotification(sess)
	case message.TypeUpdate:
		entry.peer.HandleUpdate(sess)
		s.applyUpdate(entry, body)
	}
}

// applyUpdate decodes an UPDATE's NLRI/withdrawals and applies them to
// the neighbor's configured instance's per-family tables, tagging each
// inserted path with the peer identity path selection needs.
func (s *Server) applyUpdate(entry *neighborEntry, body []byte) {
	u, err := message.DecodeUpdate(body, s.DB)
	if err != nil {
		s.log.WithError(err).Debug("malformed UPDATE")
		return
	}
	inst, ok := s.Instances.Get(entry.cfg.Instance)
	if !ok {
		return
	}
	peerInfo := &table.PeerInfo{
		RouterID: entry.cfg.LocalIdentifier,
		Address:  entry.cfg.PeerAddress,
		IsEBGP:   entry.cfg.PeerAS != entry.cfg.LocalAS,
	}

	for _, key := range u.Withdrawn {
		tbl := inst.Table(key.Family())
		tbl.RemovePath(key, &table.Path{Peer: peerInfo, Source: table.SourceBgpXmpp})
	}
	if u.Attr == nil {
		return
	}
	for _, key := range u.NLRI {
		tbl := inst.Table(key.Family())
		tbl.AddPath(key, &table.Path{
			Peer:   peerInfo,
			Source: table.SourceBgpXmpp,
			Attr:   u.Attr,
			Label:  u.Labels[key.String()],
		})
	}
}
