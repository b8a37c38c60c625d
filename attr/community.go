package attr

import (
	"encoding/binary"
	"sort"
)

// Community is the canonical RFC 1997 COMMUNITIES value. Comparison and
// hashing use set semantics (order doesn't distinguish two communities),
// but the original wire sequence is retained for faithful re-encoding.
type Community struct {
	Values []uint32 // wire order, as received/built
}

func (c *Community) sorted() []uint32 {
	if c == nil {
		return nil
	}
	out := append([]uint32(nil), c.Values...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (c *Community) equal(o *Community) bool {
	a, b := c.sorted(), o.sorted()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (c *Community) compare(o *Community) int {
	a, b := c.sorted(), o.sorted()
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (c *Community) hash() uint64 {
	var h uint64
	for _, v := range c.sorted() {
		h = hashCombine(h, uint64(v))
	}
	return h
}

// ExtCommunityType is the two-byte type prefix of an extended community:
// it selects how the remaining six bytes are interpreted.
type ExtCommunityType uint16

const (
	ExtCommunityRouteTarget   ExtCommunityType = 0x0002
	ExtCommunityOriginVN      ExtCommunityType = 0x8004
	ExtCommunityTunnelEncap   ExtCommunityType = 0x030c
	ExtCommunitySecurityGroup ExtCommunityType = 0x8008
	ExtCommunityMacMobility   ExtCommunityType = 0x0006
)

// ExtCommunityValue is one 8-byte opaque extended-community value.
type ExtCommunityValue [8]byte

// Type returns the first two bytes that classify this value.
func (v ExtCommunityValue) Type() ExtCommunityType {
	return ExtCommunityType(binary.BigEndian.Uint16(v[0:2]))
}

// RouteTarget builds an extended community of type route-target from an
// AS and a 4-byte local value, matching the `target:ASN:value` textual
// convention used throughout the spec's scenarios.
func RouteTarget(asn uint16, value uint32) ExtCommunityValue {
	var v ExtCommunityValue
	binary.BigEndian.PutUint16(v[0:2], uint16(ExtCommunityRouteTarget))
	binary.BigEndian.PutUint16(v[2:4], asn)
	binary.BigEndian.PutUint32(v[4:8], value)
	return v
}

// IsRouteTarget reports whether v is a route-target extended community.
func (v ExtCommunityValue) IsRouteTarget() bool {
	return v.Type() == ExtCommunityRouteTarget
}

// ExtCommunity is the canonical extended-communities value: an ordered
// sequence of 8-byte opaque values typed by their first two bytes.
type ExtCommunity struct {
	Values []ExtCommunityValue
}

func (e *ExtCommunity) sorted() []ExtCommunityValue {
	if e == nil {
		return nil
	}
	out := append([]ExtCommunityValue(nil), e.Values...)
	sort.Slice(out, func(i, j int) bool {
		for k := 0; k < 8; k++ {
			if out[i][k] != out[j][k] {
				return out[i][k] < out[j][k]
			}
		}
		return false
	})
	return out
}

func (e *ExtCommunity) equal(o *ExtCommunity) bool {
	a, b := e.sorted(), o.sorted()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (e *ExtCommunity) compare(o *ExtCommunity) int {
	a, b := e.sorted(), o.sorted()
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			for k := 0; k < 8; k++ {
				if a[i][k] != b[i][k] {
					return int(a[i][k]) - int(b[i][k])
				}
			}
		}
	}
	return 0
}

func (e *ExtCommunity) hash() uint64 {
	var h uint64
	for _, v := range e.sorted() {
		h = hashCombine(h, xxhashSum(v[:]))
	}
	return h
}

// RouteTargets returns the subset of values that are route-targets, used
// by the route-target fabric to decide replication.
func (e *ExtCommunity) RouteTargets() []ExtCommunityValue {
	if e == nil {
		return nil
	}
	var out []ExtCommunityValue
	for _, v := range e.Values {
		if v.IsRouteTarget() {
			out = append(out, v)
		}
	}
	return out
}

// WithValues returns a new ExtCommunity whose Values is vals; used by
// AttrDb.ReplaceExtCommunities to build the spec for re-interning.
func WithValues(vals []ExtCommunityValue) *ExtCommunity {
	return &ExtCommunity{Values: append([]ExtCommunityValue(nil), vals...)}
}
