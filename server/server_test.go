package server

import (
	"context"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/contrail/controlnode/bgp"
	"github.com/contrail/controlnode/config"
	"github.com/contrail/controlnode/peer"
)

const (
	assertTimeout = 4 * time.Second
	assertTick    = 5 * time.Millisecond
)

func TestConfigureInstanceCreatesInstance(t *testing.T) {
	s := New(Config{LocalAS: 65001, LocalIdentifier: 0x0a000001})
	err := s.ConfigureInstance(context.Background(), config.InstanceConfig{
		Name:            "red",
		AddressFamilies: []bgp.Family{bgp.FamilyInet},
	})
	require.NoError(t, err)

	_, ok := s.Instances.Get("red")
	require.True(t, ok)
}

func TestAddNeighborAdminDownStaysIdle(t *testing.T) {
	s := New(Config{LocalAS: 65001, LocalIdentifier: 0x0a000001})
	addr := netip.MustParseAddr("198.51.100.7")
	err := s.AddNeighbor(context.Background(), config.NeighborConfig{
		Instance:    bgp.MasterInstance,
		PeerAddress: addr,
		PeerAS:      65002,
		AdminDown:   true,
		Passive:     true,
	})
	require.NoError(t, err)

	p, ok := s.Neighbor(addr)
	require.True(t, ok)
	require.Equal(t, peer.Idle, p.State())
}

func TestRemoveNeighborUnknownErrors(t *testing.T) {
	s := New(Config{LocalAS: 65001, LocalIdentifier: 0x0a000001})
	err := s.RemoveNeighbor(context.Background(), netip.MustParseAddr("203.0.113.1"))
	require.Error(t, err)
}

func TestListenAndServeAcceptsConfiguredNeighbor(t *testing.T) {
	s := New(Config{LocalAS: 65001, LocalIdentifier: 0x0a000001})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ln.Close()
	addr := ln.Addr().String()

	go s.ListenAndServe(addr)
	t.Cleanup(func() { s.Close() })

	host, _, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	peerAddr := netip.MustParseAddr(host)

	require.NoError(t, s.AddNeighbor(context.Background(), config.NeighborConfig{
		Instance:    bgp.MasterInstance,
		PeerAddress: peerAddr,
		PeerAS:      65002,
		Passive:     true,
	}))

	var conn net.Conn
	require.Eventually(t, func() bool {
		c, dialErr := net.Dial("tcp", addr)
		if dialErr != nil {
			return false
		}
		conn = c
		return true
	}, assertTimeout, assertTick)
	defer conn.Close()

	p, ok := s.Neighbor(peerAddr)
	require.True(t, ok)
	require.Eventually(t, func() bool {
		return p.State() != peer.Idle
	}, assertTimeout, assertTick)
}
