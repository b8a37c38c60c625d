package instance

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contrail/controlnode/attr"
	"github.com/contrail/controlnode/bgp"
	"github.com/contrail/controlnode/config"
	"github.com/contrail/controlnode/table"
)

const (
	assertTimeout = time.Second
	assertTick    = 5 * time.Millisecond
)

func TestParseRouteTargetRoundTrip(t *testing.T) {
	v, err := ParseRouteTarget("target:64512:100")
	require.NoError(t, err)
	assert.Equal(t, "target:64512:100", FormatRouteTarget(v))
	assert.True(t, v.IsRouteTarget())
}

func TestParseRouteTargetRejectsMalformed(t *testing.T) {
	_, err := ParseRouteTarget("64512:100")
	require.Error(t, err)
}

func TestCreateOrUpdateReplicatesExistingVPNRoutes(t *testing.T) {
	db := attr.New()
	mgr := New(db)

	require.NoError(t, mgr.CreateOrUpdate(config.InstanceConfig{
		Name:            "red",
		ExportRTSet:     []string{"target:64512:1"},
		AddressFamilies: []bgp.Family{bgp.FamilyInet, bgp.FamilyInetVPN},
	}))
	red, _ := mgr.Get("red")

	rt, err := ParseRouteTarget("target:64512:1")
	require.NoError(t, err)
	spec := attr.Spec{
		Origin:         attr.OriginIGP,
		NextHop:        netip.MustParseAddr("10.0.0.1"),
		ExtCommunities: attr.WithValues([]attr.ExtCommunityValue{rt}),
	}
	a := db.Locate(spec)
	prefix := netip.MustParsePrefix("192.0.2.0/24")
	redVPN := red.Table(bgp.FamilyInetVPN)
	vpnKey := table.InetVPNKey{RD: table.RD{0, 1, 0, 0, 0, 0, 0, 1}, Prefix: prefix}
	redVPN.AddPath(vpnKey, &table.Path{
		Source: table.SourceBgpXmpp,
		Attr:   a,
	})
	require.Eventually(t, func() bool { return redVPN.Lookup(vpnKey) != nil }, assertTimeout, assertTick)

	require.NoError(t, mgr.CreateOrUpdate(config.InstanceConfig{
		Name:            "blue",
		ImportRTSet:     []string{"target:64512:1"},
		AddressFamilies: []bgp.Family{bgp.FamilyInet},
	}))
	blue, _ := mgr.Get("blue")

	require.Eventually(t, func() bool {
		return blue.Table(bgp.FamilyInet).Lookup(table.InetKey{Prefix: prefix}) != nil
	}, assertTimeout, assertTick)
}

func TestSweeperMarkSweepClear(t *testing.T) {
	db := attr.New()
	mgr := New(db)
	require.NoError(t, mgr.CreateOrUpdate(config.InstanceConfig{
		Name:            "red",
		AddressFamilies: []bgp.Family{bgp.FamilyInet},
	}))
	red, _ := mgr.Get("red")

	peerAddr := netip.MustParseAddr("198.51.100.1")
	prefix := netip.MustParsePrefix("203.0.113.0/24")
	a := db.Locate(attr.Spec{Origin: attr.OriginIGP})
	tbl := red.Table(bgp.FamilyInet)
	tbl.AddPath(table.InetKey{Prefix: prefix}, &table.Path{
		Peer:   &table.PeerInfo{Address: peerAddr},
		Source: table.SourceBgpXmpp,
		Attr:   a,
	})

	sweeper := mgr.SweeperFor(peerAddr)

	require.Eventually(t, func() bool {
		r := tbl.Lookup(table.InetKey{Prefix: prefix})
		return r != nil && r.Best() != nil
	}, assertTimeout, assertTick)

	sweeper.MarkStale(false)
	require.Eventually(t, func() bool {
		r := tbl.Lookup(table.InetKey{Prefix: prefix})
		return r != nil && r.Best() != nil && r.Best().IsStale()
	}, assertTimeout, assertTick)

	sweeper.ClearStale()
	require.Eventually(t, func() bool {
		r := tbl.Lookup(table.InetKey{Prefix: prefix})
		return r != nil && r.Best() != nil && !r.Best().IsStale()
	}, assertTimeout, assertTick)

	sweeper.MarkStale(false)
	require.Eventually(t, func() bool {
		r := tbl.Lookup(table.InetKey{Prefix: prefix})
		return r != nil && r.Best() != nil && r.Best().IsStale()
	}, assertTimeout, assertTick)

	sweeper.SweepStale(false)
	require.Eventually(t, func() bool {
		r := tbl.Lookup(table.InetKey{Prefix: prefix})
		return r == nil
	}, assertTimeout, assertTick)
}
