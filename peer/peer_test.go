package peer

import (
	"net/netip"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contrail/controlnode/bgp"
	"github.com/contrail/controlnode/message"
)

// fakeChannel records every encoded message sent through it.
type fakeChannel struct {
	mu     sync.Mutex
	sent   [][]byte
	closed bool
}

func (c *fakeChannel) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, b)
	return nil
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeChannel) messages() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.sent))
	copy(out, c.sent)
	return out
}

func newTestPeer(dial func() (Channel, error)) *Peer {
	cfg := Config{
		LocalID:  bgp.Identifier(0x0a000001),
		LocalAS:  65001,
		PeerAS:   65002,
		Address:  netip.MustParseAddr("192.0.2.1"),
		HoldTime: 3 * time.Second,
	}
	return New(cfg, dial)
}

func TestAdminUpDialsAndSendsOpen(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPeer(func() (Channel, error) { return ch, nil })

	p.AdminUp()
	require.Eventually(t, func() bool { return p.State() == OpenSent }, 3*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return len(ch.messages()) > 0 }, 3*time.Second, 5*time.Millisecond)

	msgs := ch.messages()
	hdr, body, err := message.DecodeHeader(msgs[0])
	require.NoError(t, err)
	assert.Equal(t, message.TypeOpen, hdr.Type)
	open, err := message.DecodeOpen(body)
	require.NoError(t, err)
	assert.Equal(t, bgp.ASN(65001), open.MyAS)

	snap := p.Counters.Snapshot()
	assert.Equal(t, uint64(1), snap.TxOpen)
}

func TestNotificationClosesOnlyItsOwnSession(t *testing.T) {
	active := &fakeChannel{}
	passive := &fakeChannel{}
	p := newTestPeer(func() (Channel, error) { return active, nil })

	p.mu.Lock()
	p.active = &session{channel: active}
	p.passive = &session{channel: passive}
	p.mu.Unlock()

	p.mu.Lock()
	p.sendNotificationLocked(SessionPassive, 6, 7)
	p.mu.Unlock()

	assert.False(t, active.closed)
	assert.True(t, passive.closed)
	snap := p.Counters.Snapshot()
	assert.Equal(t, uint64(1), snap.NotificationCodes[7])
	assert.Equal(t, uint64(1), snap.TxNotification)
}

func TestHandleNotificationRecordsRx(t *testing.T) {
	p := newTestPeer(nil)
	p.HandleNotification(SessionActive)
	snap := p.Counters.Snapshot()
	assert.Equal(t, uint64(1), snap.RxNotification)
	assert.Equal(t, Idle, p.State())
}
