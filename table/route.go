package table

import "sort"

// Route is logically a (prefix, path-list) pair. The path
// list is kept sorted by Path.Compare; the head is the best path.
type Route struct {
	Key   RouteKey
	Paths []*Path
}

// Best returns the head of the sorted path list, or nil if the route has
// no paths at all (: "eligible for deletion at the next
// partition scan").
func (r *Route) Best() *Path {
	if len(r.Paths) == 0 {
		return nil
	}
	return r.Paths[0]
}

// BestFeasible returns the best path that is feasible, or nil if none is
// — "a route with no feasible path advertises nothing".
func (r *Route) BestFeasible() *Path {
	for _, p := range r.Paths {
		if p.IsFeasible() {
			return p
		}
	}
	return nil
}

// insert inserts p into the sorted path list, replacing any existing path
// with the same identity (peer, path-id, source, replication identity).
// Returns whether the best path changed.
func (r *Route) insert(p *Path, allowECMP bool) (bestChanged bool) {
	before := r.Best()
	r.removeMatching(p)
	idx := sort.Search(len(r.Paths), func(i int) bool {
		return r.Paths[i].Compare(p, allowECMP) >= 0
	})
	r.Paths = append(r.Paths, nil)
	copy(r.Paths[idx+1:], r.Paths[idx:])
	r.Paths[idx] = p
	return !samePath(before, r.Best())
}

// removePath removes the path matching the given identity, returning
// whether the best path changed.
func (r *Route) removePath(peer *PeerInfo, source Source, pathID uint32) (bestChanged bool) {
	before := r.Best()
	out := r.Paths[:0]
	for _, existing := range r.Paths {
		if matchesIdentity(existing, peer, source, pathID) {
			continue
		}
		out = append(out, existing)
	}
	r.Paths = out
	return !samePath(before, r.Best())
}

func (r *Route) removeMatching(p *Path) {
	out := r.Paths[:0]
	for _, existing := range r.Paths {
		if matchesIdentity(existing, p.Peer, p.Source, p.PathID) {
			continue
		}
		out = append(out, existing)
	}
	r.Paths = out
}

func matchesIdentity(p *Path, peer *PeerInfo, source Source, pathID uint32) bool {
	if p.Source != source || p.PathID != pathID {
		return false
	}
	return peerEqual(p.Peer, peer)
}

func peerEqual(a, b *PeerInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Address == b.Address
}

func samePath(a, b *Path) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b
}

// Empty reports whether the route has no paths and is eligible for
// deletion at the next partition scan.
func (r *Route) Empty() bool { return len(r.Paths) == 0 }
