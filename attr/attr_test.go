package attr

import (
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contrail/controlnode/bgp"
)

func testSpec() Spec {
	return Spec{
		Origin:    OriginIGP,
		NextHop:   netip.MustParseAddr("10.0.0.1"),
		LocalPref: 100,
		ASPath:    &ASPath{Segments: []Segment{{Type: SegmentSequence, ASNs: []bgp.ASN{65001}}}},
	}
}

// TestInterningDedup checks that locating the same content via two
// different call sites yields the identical handle, and that the Db
// holds exactly one entry for it.
func TestInterningDedup(t *testing.T) {
	db := New()
	a := db.Locate(testSpec())
	b := db.Locate(testSpec())
	require.True(t, a == b, "equal content must intern to the same handle")
	assert.Equal(t, 1, db.Size())
	assert.Equal(t, 2, a.RefCount())

	diff := cmp.Diff(a.ASPath(), b.ASPath())
	assert.Empty(t, diff)
}

func TestReleaseDestroysOnZero(t *testing.T) {
	db := New()
	a := db.Locate(testSpec())
	db.Release(a)
	assert.Equal(t, 0, db.Size())

	// A fresh Locate of equal content must build a new canonical object,
	// not resurrect the destroyed one.
	b := db.Locate(testSpec())
	assert.Equal(t, 1, db.Size())
	assert.True(t, a.Equal(b))
}

func TestCanonicalEqualityIffHandleEqual(t *testing.T) {
	db := New()
	a := db.Locate(testSpec())
	other := testSpec()
	other.LocalPref = 200
	c := db.Locate(other)
	assert.False(t, a == c)
	assert.False(t, a.Equal(c))
}

func TestASPathAddIdempotence(t *testing.T) {
	p := &ASPath{}
	p1 := p.Add(65001)
	assert.Equal(t, bgp.ASN(65001), p1.AsLeftMost())
	assert.True(t, p1.AsLeftMostMatch(65001))

	p2 := p1.Add(65002)
	assert.Equal(t, bgp.ASN(65002), p2.AsLeftMost())
	assert.Contains(t, []int{p1.AsCount(), p1.AsCount() + 1}, p2.AsCount())
}

func TestAsPathLoopDetection(t *testing.T) {
	p := &ASPath{Segments: []Segment{{Type: SegmentSequence, ASNs: []bgp.ASN{1, 2, 1, 3, 1}}}}
	assert.True(t, p.AsPathLoop(1, 2))
	assert.False(t, p.AsPathLoop(1, 3))
}

func TestAsSetCountsAsOne(t *testing.T) {
	p := &ASPath{Segments: []Segment{
		{Type: SegmentSet, ASNs: []bgp.ASN{1, 2, 3}},
		{Type: SegmentSequence, ASNs: []bgp.ASN{4, 5}},
	}}
	assert.Equal(t, 3, p.AsCount())
}

// TestReplacePMSITunnelChangesIdentity guards against compare/hash
// silently ignoring the PMSI tunnel fields: two specs differing only in
// PMSI tunnel type/label must intern to distinct handles, so
// ReplacePMSITunnel actually produces a new canonical Attr instead of
// handing back the pre-existing one with stale PMSI values.
func TestReplacePMSITunnelChangesIdentity(t *testing.T) {
	db := New()
	a := db.Locate(testSpec())

	b := db.ReplacePMSITunnel(a, 6, 100)
	require.False(t, a == b, "replacing PMSI tunnel fields must yield a distinct handle")
	typ, label := b.PMSITunnel()
	assert.Equal(t, uint8(6), typ)
	assert.Equal(t, uint32(100), label)

	// A second identical replacement must intern to the same handle as b.
	c := db.ReplacePMSITunnel(a, 6, 100)
	assert.True(t, b == c)
}

// TestHasSourceRDDistinguishesZeroRD guards against compare treating an
// absent source RD as equal to an explicit, all-zero one.
func TestHasSourceRDDistinguishesZeroRD(t *testing.T) {
	db := New()
	withoutRD := db.Locate(testSpec())

	withZeroRD := db.ReplaceSourceRD(withoutRD, [8]byte{})
	assert.False(t, withoutRD == withZeroRD, "HasSourceRD must distinguish an explicit zero RD from no RD at all")
}
