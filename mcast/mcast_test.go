package mcast

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/contrail/controlnode/attr"
	"github.com/contrail/controlnode/bgp"
	"github.com/contrail/controlnode/table"
)

const (
	assertTimeout = time.Second
	assertTick    = 5 * time.Millisecond
)

func rdFor(n byte) table.RD { return table.RD{0, 1, 0, 0, 0, 0, 0, n} }

func joinKey(sg table.SG, rdIndex byte, router string) table.ErmVPNKey {
	return table.ErmVPNKey{
		RD:     rdFor(rdIndex),
		Source: sg.Source,
		Group:  sg.Group,
		Router: netip.MustParseAddr(router),
	}
}

func newTestMgr(t *testing.T) (*McastMgr, *table.Table, *attr.Db) {
	db := attr.New()
	tbl := table.New("master.erm-vpn", bgp.FamilyErmVPN, 4)
	t.Cleanup(tbl.Close)
	return New(tbl, db, 4), tbl, db
}

func addLeaf(tbl *table.Table, db *attr.Db, key table.ErmVPNKey, label uint32) {
	a := db.Locate(attr.Spec{Origin: attr.OriginIGP})
	tbl.AddPath(key, &table.Path{Source: table.SourceBgpXmpp, Attr: a, Label: label})
}

func TestTreeConvergesWithOutputLists(t *testing.T) {
	mgr, tbl, db := newTestMgr(t)
	sg := table.SG{Source: netip.MustParseAddr("10.0.0.1"), Group: netip.MustParseAddr("224.1.1.1")}

	keys := []table.ErmVPNKey{
		joinKey(sg, 1, "198.51.100.1"),
		joinKey(sg, 2, "198.51.100.2"),
		joinKey(sg, 3, "198.51.100.3"),
	}
	for i, k := range keys {
		addLeaf(tbl, db, k, uint32(100+i))
	}

	require.Eventually(t, func() bool {
		e, ok := mgr.Lookup(sg)
		if !ok {
			return false
		}
		for _, k := range keys {
			f, found := e.forwarders[k.String()]
			if !found || len(e.neighbours(f)) == 0 {
				return false
			}
		}
		return true
	}, assertTimeout, assertTick)

	e, ok := mgr.Lookup(sg)
	require.True(t, ok)
	root := e.forwarders[keys[0].String()]
	child := e.forwarders[keys[1].String()]
	require.Len(t, e.neighbours(root), 2)
	require.Len(t, e.neighbours(child), 1)
	require.NotNil(t, root.path.Attr.OList())
}

func TestSingleForwarderGetsNoOutputList(t *testing.T) {
	mgr, tbl, db := newTestMgr(t)
	sg := table.SG{Source: netip.MustParseAddr("10.0.0.2"), Group: netip.MustParseAddr("224.1.1.2")}
	key := joinKey(sg, 1, "198.51.100.9")
	addLeaf(tbl, db, key, 200)

	require.Eventually(t, func() bool {
		_, ok := mgr.Lookup(sg)
		return ok
	}, assertTimeout, assertTick)

	e, _ := mgr.Lookup(sg)
	require.Eventually(t, func() bool {
		f := e.forwarders[key.String()]
		return f != nil && f.path.Attr.OList() == nil
	}, assertTimeout, assertTick)
}

func TestLastForwarderLeavingDropsEntry(t *testing.T) {
	mgr, tbl, db := newTestMgr(t)
	sg := table.SG{Source: netip.MustParseAddr("10.0.0.3"), Group: netip.MustParseAddr("224.1.1.3")}
	key := joinKey(sg, 1, "198.51.100.5")
	addLeaf(tbl, db, key, 300)

	require.Eventually(t, func() bool {
		_, ok := mgr.Lookup(sg)
		return ok
	}, assertTimeout, assertTick)

	tbl.RemovePath(key, &table.Path{Source: table.SourceBgpXmpp})

	require.Eventually(t, func() bool {
		_, ok := mgr.Lookup(sg)
		return !ok
	}, assertTimeout, assertTick)
}

func TestTreeShapeIndependentOfJoinOrder(t *testing.T) {
	sg := table.SG{Source: netip.MustParseAddr("10.0.0.4"), Group: netip.MustParseAddr("224.1.1.4")}
	keys := []table.ErmVPNKey{
		joinKey(sg, 1, "198.51.100.11"),
		joinKey(sg, 2, "198.51.100.12"),
		joinKey(sg, 3, "198.51.100.13"),
		joinKey(sg, 4, "198.51.100.14"),
		joinKey(sg, 5, "198.51.100.15"),
	}

	buildDegrees := func(order []int) map[string]int {
		mgr, tbl, db := newTestMgr(t)
		for _, i := range order {
			addLeaf(tbl, db, keys[i], uint32(100+i))
		}
		require.Eventually(t, func() bool {
			e, ok := mgr.Lookup(sg)
			return ok && len(e.forwarders) == len(order)
		}, assertTimeout, assertTick)

		e, _ := mgr.Lookup(sg)
		out := make(map[string]int, len(order))
		for ks, f := range e.forwarders {
			out[ks] = len(e.neighbours(f))
		}
		return out
	}

	inOrder := buildDegrees([]int{0, 1, 2, 3, 4})
	reverseOrder := buildDegrees([]int{4, 3, 2, 1, 0})
	require.Equal(t, inOrder, reverseOrder)
}
