package table

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contrail/controlnode/attr"
	"github.com/contrail/controlnode/bgp"
)

func waitForNotify(t *testing.T, ch <-chan UpdateInfo) UpdateInfo {
	t.Helper()
	select {
	case u := <-ch:
		return u
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for table notification")
		return UpdateInfo{}
	}
}

func attrWithLocalPref(db *attr.Db, lp uint32) *attr.Attr {
	return db.Locate(attr.Spec{Origin: attr.OriginIGP, LocalPref: lp, NextHop: netip.MustParseAddr("10.0.0.9")})
}

// TestBestPathChange covers a best-path change notification firing when
// a higher local-preference path settles.
func TestBestPathChange(t *testing.T) {
	db := attr.New()
	tbl := New("default.inet", bgp.FamilyInet, 4)
	defer tbl.Close()

	notifications := make(chan UpdateInfo, 16)
	tbl.AddListener(ListenerFunc(func(u UpdateInfo) { notifications <- u }))

	key := InetKey{Prefix: netip.MustParsePrefix("192.0.2.0/24")}
	peerA := &PeerInfo{RouterID: 1, Address: netip.MustParseAddr("1.1.1.1")}
	peerB := &PeerInfo{RouterID: 2, Address: netip.MustParseAddr("2.2.2.2")}

	p1 := &Path{Peer: peerA, Source: SourceBgpXmpp, Attr: attrWithLocalPref(db, 100)}
	tbl.AddPath(key, p1)
	u := waitForNotify(t, notifications)
	require.Equal(t, p1, u.Route.Best())

	p2 := &Path{Peer: peerB, Source: SourceBgpXmpp, Attr: attrWithLocalPref(db, 200)}
	tbl.AddPath(key, p2)
	u = waitForNotify(t, notifications)
	assert.Same(t, p2, u.Route.Best())

	tbl.RemovePath(key, p2)
	u = waitForNotify(t, notifications)
	assert.Same(t, p1, u.Route.Best())
}

func TestRouteSortedInvariant(t *testing.T) {
	db := attr.New()
	r := &Route{Key: InetKey{Prefix: netip.MustParsePrefix("10.0.0.0/8")}}
	lps := []uint32{50, 200, 100, 10}
	for _, lp := range lps {
		r.insert(&Path{Source: SourceBgpXmpp, Attr: attrWithLocalPref(db, lp)}, false)
	}
	for i := 1; i < len(r.Paths); i++ {
		assert.LessOrEqual(t, r.Paths[i-1].Compare(r.Paths[i], false), 0)
	}
	assert.Equal(t, uint32(200), r.Best().Attr.LocalPref())
}

func TestLookupBestInet4UsesBartTrie(t *testing.T) {
	db := attr.New()
	tbl := New("default.inet", bgp.FamilyInet, 2)
	defer tbl.Close()

	key := InetKey{Prefix: netip.MustParsePrefix("10.1.0.0/16")}
	tbl.AddPath(key, &Path{Source: SourceStaticRoute, Attr: attrWithLocalPref(db, 100)})
	require.Eventually(t, func() bool {
		_, ok := tbl.LookupBestInet4(netip.MustParseAddr("10.1.2.3"))
		return ok
	}, time.Second, time.Millisecond)
}
