package instance

import (
	"net/netip"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/contrail/controlnode/attr"
	"github.com/contrail/controlnode/bgp"
	"github.com/contrail/controlnode/peer"
	"github.com/contrail/controlnode/table"
)

// RTargetFabric implements table.Replicator: it watches every vpn-family
// table for settled paths, and for each route-target the path carries,
// pushes (or withdraws) a secondary path into every instance whose
// import set contains that target. De-duplication of
// repeated replication into the same destination is left to the
// destination table's own path-identity matching in Route.insert.
type RTargetFabric struct {
	mgr *InstanceMgr
	log *logrus.Entry
}

func newRTargetFabric(mgr *InstanceMgr) *RTargetFabric {
	return &RTargetFabric{
		mgr: mgr,
		log: logrus.WithFields(logrus.Fields{"pkg": "instance", "component": "rtarget-fabric"}),
	}
}

// Replicate is table.Replicator's settle hook: for every route-target
// addedPath carries, look up the importing instances and insert a
// secondary path into each.
func (f *RTargetFabric) Replicate(srcTable string, key table.RouteKey, route *table.Route, addedPath *table.Path) {
	destFamily, destKey, ok := vpnToUnicast(key)
	if !ok {
		return
	}
	ec := addedPath.Attr.ExtCommunities()
	for _, rt := range ec.RouteTargets() {
		for _, inst := range f.mgr.Importers(rt) {
			f.pushInto(inst, destFamily, destKey, srcTable, key, addedPath)
		}
	}
}

// Unreplicate is table.Replicator's withdraw hook: mirror Replicate's
// insert with a removal for the same destination set.
func (f *RTargetFabric) Unreplicate(srcTable string, key table.RouteKey, removedPath *table.Path) {
	destFamily, destKey, ok := vpnToUnicast(key)
	if !ok {
		return
	}
	ec := removedPath.Attr.ExtCommunities()
	for _, rt := range ec.RouteTargets() {
		for _, inst := range f.mgr.Importers(rt) {
			f.pullFrom(inst, destFamily, destKey, srcTable, key, removedPath)
		}
	}
}

func (f *RTargetFabric) pushInto(inst *Instance, family bgp.Family, destKey table.RouteKey, srcTable string, srcKey table.RouteKey, src *table.Path) {
	if instanceName(srcTable) == inst.Name {
		return // never replicate an instance's own routes back into itself
	}
	destTable := inst.Table(family)
	secondary := table.MakeSecondary(src, srcTable, srcKey)
	destTable.AddPath(destKey, secondary)
}

func (f *RTargetFabric) pullFrom(inst *Instance, family bgp.Family, destKey table.RouteKey, srcTable string, srcKey table.RouteKey, src *table.Path) {
	if instanceName(srcTable) == inst.Name {
		return
	}
	destTable := inst.Table(family)
	secondary := table.MakeSecondary(src, srcTable, srcKey)
	destTable.RemovePath(destKey, secondary)
}

// onRTAdded walks every vpn-family source table and replicates every
// route already carrying rt into inst's matching unicast table.
func (f *RTargetFabric) onRTAdded(inst *Instance, rt attr.ExtCommunityValue) {
	for _, src := range f.mgr.Instances() {
		for _, srcFamily := range []bgp.Family{bgp.FamilyInetVPN, bgp.FamilyInet6VPN} {
			srcTable, ok := src.tables[srcFamily]
			if !ok {
				continue
			}
			srcTable.Walk(func(key table.RouteKey, route *table.Route) bool {
				best := route.Best()
				if best == nil || best.IsReplicated() {
					return true
				}
				if !hasRT(best.Attr.ExtCommunities(), rt) {
					return true
				}
				destFamily, destKey, ok := vpnToUnicast(key)
				if !ok {
					return true
				}
				f.pushInto(inst, destFamily, destKey, srcTable.Name, key, best)
				return true
			})
		}
	}
}

// onRTRemoved withdraws every secondary path inst previously received
// that matched rt.
func (f *RTargetFabric) onRTRemoved(inst *Instance, rt attr.ExtCommunityValue) {
	for _, src := range f.mgr.Instances() {
		for _, srcFamily := range []bgp.Family{bgp.FamilyInetVPN, bgp.FamilyInet6VPN} {
			srcTable, ok := src.tables[srcFamily]
			if !ok {
				continue
			}
			srcTable.Walk(func(key table.RouteKey, route *table.Route) bool {
				best := route.Best()
				if best == nil || best.IsReplicated() {
					return true
				}
				if !hasRT(best.Attr.ExtCommunities(), rt) {
					return true
				}
				destFamily, destKey, ok := vpnToUnicast(key)
				if !ok {
					return true
				}
				f.pullFrom(inst, destFamily, destKey, srcTable.Name, key, best)
				return true
			})
		}
	}
}

func hasRT(ec *attr.ExtCommunity, rt attr.ExtCommunityValue) bool {
	for _, v := range ec.RouteTargets() {
		if v == rt {
			return true
		}
	}
	return false
}

func instanceName(tableName string) string {
	if i := strings.IndexByte(tableName, '.'); i >= 0 {
		return tableName[:i]
	}
	return tableName
}

// vpnToUnicast strips the route-distinguisher from a vpn-family key,
// returning the unicast family/key an importing instance's table
// stores secondary paths under. ok is false for any family this fabric
// doesn't replicate (evpn/erm-vpn/enet/rtarget carry their own
// membership semantics, not plain RT-based replication).
func vpnToUnicast(key table.RouteKey) (bgp.Family, table.RouteKey, bool) {
	switch k := key.(type) {
	case table.InetVPNKey:
		return bgp.FamilyInet, table.InetKey{Prefix: k.Prefix}, true
	case table.Inet6VPNKey:
		return bgp.FamilyInet6, table.Inet6Key{Prefix: k.Prefix}, true
	default:
		return bgp.Family{}, nil, false
	}
}

// peerSweeper adapts InstanceMgr into peer.RouteSweeper for one peer
// identity, so peer.CloseManager never imports instance or table.
type peerSweeper struct {
	mgr      *InstanceMgr
	peerAddr netip.Addr
}

var _ peer.RouteSweeper = (*peerSweeper)(nil)

// SweeperFor returns the RouteSweeper a peer's CloseManager should use,
// scoped to every path owned by addr across every instance table.
func (m *InstanceMgr) SweeperFor(addr netip.Addr) peer.RouteSweeper {
	return &peerSweeper{mgr: m, peerAddr: addr}
}

func (s *peerSweeper) forEachOwnedPath(fn func(tbl *table.Table, key table.RouteKey, p *table.Path)) {
	for _, inst := range s.mgr.Instances() {
		for _, tbl := range inst.Tables() {
			tbl.Walk(func(key table.RouteKey, route *table.Route) bool {
				for _, p := range route.Paths {
					if p.Peer != nil && p.Peer.Address == s.peerAddr {
						fn(tbl, key, p)
					}
				}
				return true
			})
		}
	}
}

// MarkStale flags every path owned by this peer with Stale (or
// LlgrStale on escalation), re-inserting through the owning table's
// partition so the mutation stays serialized with concurrent lookups.
func (s *peerSweeper) MarkStale(llgr bool) {
	flag := table.FlagStale
	if llgr {
		flag = table.FlagLlgrStale
	}
	s.forEachOwnedPath(func(tbl *table.Table, key table.RouteKey, p *table.Path) {
		if p.IsReplicated() {
			return
		}
		updated := *p
		updated.Flags |= flag
		tbl.AddPath(key, &updated)
	})
}

// SweepStale removes every path still carrying the relevant stale flag,
// because the peer did not refresh it before the corresponding timer
// expired.
func (s *peerSweeper) SweepStale(llgr bool) {
	flag := table.FlagStale
	if llgr {
		flag = table.FlagLlgrStale
	}
	s.forEachOwnedPath(func(tbl *table.Table, key table.RouteKey, p *table.Path) {
		if p.Flags&flag != 0 {
			tbl.RemovePath(key, p)
		}
	})
}

// ClearStale removes both stale bits from every owned path, ending
// graceful restart early because the peer refreshed in time.
func (s *peerSweeper) ClearStale() {
	s.forEachOwnedPath(func(tbl *table.Table, key table.RouteKey, p *table.Path) {
		if p.Flags&(table.FlagStale|table.FlagLlgrStale) == 0 {
			return
		}
		updated := *p
		updated.Flags &^= table.FlagStale | table.FlagLlgrStale
		tbl.AddPath(key, &updated)
	})
}
