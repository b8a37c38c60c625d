package table

import (
	"net/netip"

	"github.com/contrail/controlnode/attr"
	"github.com/contrail/controlnode/bgp"
)

// Source is a path's origination tag, kept in ascending preference
// order; None is a zero-value sentinel that never wins against a real
// source, matching BgpPath::PathSource in
// original_source/src/bgp/bgp_path.h, which additionally names
// "Aggregate", inserted between StaticRoute and Local per the ordering
// the data model lists it in — see DESIGN.md.
type Source int

const (
	SourceNone Source = iota
	SourceBgpXmpp
	SourceServiceChain
	SourceStaticRoute
	SourceAggregate
	SourceLocal
)

// Flags is a bitset of per-path conditions.
type Flags uint32

const (
	FlagAsPathLooped Flags = 1 << iota
	FlagNoNeighborAs
	FlagStale
	FlagLlgrStale
	FlagNoTunnelEncap
)

// infeasibleMask mirrors BgpPath::INFEASIBLE_MASK.
const infeasibleMask = FlagAsPathLooped | FlagNoNeighborAs | FlagNoTunnelEncap

// PeerInfo is the minimal, weak-reference view of a peer that a Path
// needs for sorting and export: a lookup handle, never an owning
// reference back to the peer itself.
type PeerInfo struct {
	RouterID Identifier
	Address  netip.Addr
	IsEBGP   bool
}

// Identifier re-exports bgp.Identifier so callers of this package rarely
// need to import bgp directly for the common case.
type Identifier = bgp.Identifier

// Path is one candidate path within a Route's sorted path list.
type Path struct {
	Peer    *PeerInfo // nil for static/aggregate/local paths
	PathID  uint32
	Source  Source
	Attr    *attr.Attr
	Flags   Flags
	Label   uint32

	// Replication back-reference, set only on secondary (replicated)
	// paths.
	replicated bool
	srcTable   string
	srcKey     RouteKey
}

// IsFeasible mirrors BgpPath::IsFeasible.
func (p *Path) IsFeasible() bool { return p.Flags&infeasibleMask == 0 }

// IsStale reports the GR stale bit.
func (p *Path) IsStale() bool { return p.Flags&FlagStale != 0 }

// IsLlgrStale reports the LLGR stale bit.
func (p *Path) IsLlgrStale() bool { return p.Flags&FlagLlgrStale != 0 }

// IsReplicated reports whether this is a secondary path created by the
// route-target fabric; replicated paths never replicate further.
func (p *Path) IsReplicated() bool { return p.replicated }

// ReplicationSource returns the (table name, route key) this secondary
// path was replicated from.
func (p *Path) ReplicationSource() (table string, key RouteKey) {
	return p.srcTable, p.srcKey
}

// MakeSecondary marks p as a secondary path with the given source
// back-reference.
func MakeSecondary(p *Path, srcTable string, srcKey RouteKey) *Path {
	np := *p
	np.replicated = true
	np.srcTable = srcTable
	np.srcKey = srcKey
	return &np
}

// replicationIdentity is the de-duplication key for "the same source":
// table, route key, peer, path-id, and source tag together.
type replicationIdentity struct {
	srcTable string
	srcKey   string
	peer     netip.Addr
	pathID   uint32
	source   Source
}

func (p *Path) replicationIdentity() replicationIdentity {
	var peerAddr netip.Addr
	if p.Peer != nil {
		peerAddr = p.Peer.Address
	}
	var keyStr string
	if p.srcKey != nil {
		keyStr = p.srcKey.String()
	}
	return replicationIdentity{
		srcTable: p.srcTable, srcKey: keyStr,
		peer: peerAddr, pathID: p.PathID, source: p.Source,
	}
}

// Compare implements the strict total ordering used for path selection,
// lower return value meaning p is preferred. allowECMP controls the
// final tie-break step: when true, two paths equal through every
// preceding step (modulo next-hop) compare equal rather than being
// broken further by next-hop.
func (p *Path) Compare(o *Path, allowECMP bool) int {
	// 1. Origin of source peer: locally-originated (no peer) beats
	//    received (has peer).
	if (p.Peer == nil) != (o.Peer == nil) {
		if p.Peer == nil {
			return -1
		}
		return 1
	}

	// 2. Path source tag, higher Source enum value wins => invert.
	if p.Source != o.Source {
		if p.Source > o.Source {
			return -1
		}
		return 1
	}

	// 3. Local preference, higher wins => invert.
	if lp, olp := p.Attr.LocalPref(), o.Attr.LocalPref(); lp != olp {
		if lp > olp {
			return -1
		}
		return 1
	}

	// 4. AS-path length, shorter wins.
	if c := asCount(p.Attr) - asCount(o.Attr); c != 0 {
		return c
	}

	// 5. Origin: IGP < EGP < INCOMPLETE.
	if c := int(p.Attr.Origin()) - int(o.Attr.Origin()); c != 0 {
		return c
	}

	// 6. MED, only compared when the left-most AS matches.
	if leftMost(p.Attr) == leftMost(o.Attr) {
		if med, omed := p.Attr.MED(), o.Attr.MED(); med != omed {
			if med < omed {
				return -1
			}
			return 1
		}
	}

	// 7. EBGP beats IBGP.
	if pe, oe := peerIsEBGP(p), peerIsEBGP(o); pe != oe {
		if pe {
			return -1
		}
		return 1
	}

	// 8. Originator-ID (lower wins), then cluster-list length (shorter
	//    wins).
	if oid, ooid := p.Attr.OriginatorID(), o.Attr.OriginatorID(); oid != ooid {
		if oid < ooid {
			return -1
		}
		return 1
	}
	if c := len(p.Attr.ClusterList()) - len(o.Attr.ClusterList()); c != 0 {
		return c
	}

	// 9. Peer router-id, lower wins.
	if c := comparePeerRouterID(p.Peer, o.Peer); c != 0 {
		return c
	}

	// 10. Peer address, lower wins.
	if c := comparePeerAddress(p.Peer, o.Peer); c != 0 {
		return c
	}

	// 11. Path-id, lower wins.
	if p.PathID != o.PathID {
		if p.PathID < o.PathID {
			return -1
		}
		return 1
	}

	// 12. ECMP tie-break.
	if allowECMP {
		return 0
	}
	return compareNextHop(p.Attr, o.Attr)
}

func asCount(a *attr.Attr) int {
	if a == nil || a.ASPath() == nil {
		return 0
	}
	return a.ASPath().AsCount()
}

func leftMost(a *attr.Attr) bgp.ASN {
	if a == nil || a.ASPath() == nil {
		return 0
	}
	return a.ASPath().AsLeftMost()
}

func peerIsEBGP(p *Path) bool {
	return p.Peer != nil && p.Peer.IsEBGP
}

func comparePeerRouterID(a, b *PeerInfo) int {
	var ai, bi bgp.Identifier
	if a != nil {
		ai = a.RouterID
	}
	if b != nil {
		bi = b.RouterID
	}
	if ai == bi {
		return 0
	}
	if ai < bi {
		return -1
	}
	return 1
}

func comparePeerAddress(a, b *PeerInfo) int {
	var aa, ba netip.Addr
	if a != nil {
		aa = a.Address
	}
	if b != nil {
		ba = b.Address
	}
	if aa == ba {
		return 0
	}
	if !aa.IsValid() {
		return -1
	}
	if !ba.IsValid() {
		return 1
	}
	return aa.Compare(ba)
}

func compareNextHop(a, b *attr.Attr) int {
	an, bn := a.NextHop(), b.NextHop()
	if an == bn {
		return 0
	}
	if !an.IsValid() {
		return -1
	}
	if !bn.IsValid() {
		return 1
	}
	return an.Compare(bn)
}
