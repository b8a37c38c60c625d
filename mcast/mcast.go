// Package mcast implements the multicast distribution-tree manager: for
// each (source, group) entry arriving in an erm-vpn-style table, it
// maintains a deterministic k-ary distribution tree over the set of
// subscribed leaves and computes per-leaf output-lists.
//
// Grounded on original_source/src/bgp/mcast/bgp_mcast.{h,cc}
// (McastManager/McastSGEntry/McastForwarder and the sorted-forwarder
// k-ary tree build), re-expressed against this core's table.Table
// (table.Listener, partition-owned routes) rather than the original's
// BgpTable/DBTablePartBase.
package mcast

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/contrail/controlnode/attr"
	"github.com/contrail/controlnode/table"
)

// DefaultDegree is the k-ary tree fan-out calls "typical 4".
const DefaultDegree = 4

// McastForwarder is one leaf: a single settled route entry in an
// erm-vpn table advertising a (source, group) join.
type McastForwarder struct {
	Key  table.ErmVPNKey
	path *table.Path // the settled best path this forwarder was built from
}

// link is one parent/child pair of the built tree; the original tree
// is undirected, so a link implies an olist entry on both ends.
type link struct {
	a, b *McastForwarder
}

// McastSgEntry owns the forwarder set for one (source, group) and the
// tree currently built over it.
type McastSgEntry struct {
	SG table.SG

	mu         sync.Mutex
	forwarders map[string]*McastForwarder // keyed by ErmVPNKey.String()
	links      []link
}

func newSgEntry(sg table.SG) *McastSgEntry {
	return &McastSgEntry{SG: sg, forwarders: make(map[string]*McastForwarder)}
}

func (e *McastSgEntry) upsert(f *McastForwarder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.forwarders[f.Key.String()] = f
}

func (e *McastSgEntry) remove(key table.ErmVPNKey) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.forwarders, key.String())
}

func (e *McastSgEntry) empty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.forwarders) == 0
}

// neighbours returns f's current tree neighbours, for olist emission.
func (e *McastSgEntry) neighbours(f *McastForwarder) []*McastForwarder {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []*McastForwarder
	for _, l := range e.links {
		if l.a == f {
			out = append(out, l.b)
		} else if l.b == f {
			out = append(out, l.a)
		}
	}
	return out
}

// rebuild sorts forwarders by route-distinguisher and arranges them
// into a k-ary tree: the parent of sorted index i (i >= 1) is
// (i-1)/degree. With <= 1 forwarder every link is flushed and no tree
// is built.
func (e *McastSgEntry) rebuild(degree int) []*McastForwarder {
	e.mu.Lock()
	defer e.mu.Unlock()

	sorted := make([]*McastForwarder, 0, len(e.forwarders))
	for _, f := range e.forwarders {
		sorted = append(sorted, f)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return rdLess(sorted[i].Key.RD, sorted[j].Key.RD)
	})

	e.links = nil
	if len(sorted) <= 1 {
		return sorted
	}
	for i := 1; i < len(sorted); i++ {
		parent := (i - 1) / degree
		e.links = append(e.links, link{a: sorted[parent], b: sorted[i]})
	}
	return sorted
}

func rdLess(a, b table.RD) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// olistFor builds the output-list attribute value for f from its
// current tree neighbours. A forwarder with no neighbours (an orphaned
// tree of one) gets a nil olist.
func (e *McastSgEntry) olistFor(f *McastForwarder) *attr.OList {
	neighbours := e.neighbours(f)
	if len(neighbours) == 0 {
		return nil
	}
	entries := make([]attr.OListEntry, 0, len(neighbours))
	for _, n := range neighbours {
		entries = append(entries, attr.OListEntry{
			Address: n.Key.Router,
			Label:   n.path.Label,
		})
	}
	return &attr.OList{Entries: entries}
}

// McastMgr owns every McastSgEntry for one erm-vpn family table,
// rebuilding the affected tree whenever that table's leaf set changes.
// Recomputed output-list attributes are emitted through the
// partition's notify path so the export pipeline picks them up.
type McastMgr struct {
	table  *table.Table
	db     *attr.Db
	degree int

	mu      sync.Mutex
	entries map[table.SG]*McastSgEntry
	workq   chan table.SG
	queued  map[table.SG]bool

	log *logrus.Entry
}

var _ table.Listener = (*McastMgr)(nil)

// New creates a McastMgr over t (an erm-vpn family table) and starts
// its drain goroutine. degree <= 0 defaults to DefaultDegree.
func New(t *table.Table, db *attr.Db, degree int) *McastMgr {
	if degree <= 0 {
		degree = DefaultDegree
	}
	m := &McastMgr{
		table:   t,
		db:      db,
		degree:  degree,
		entries: make(map[table.SG]*McastSgEntry),
		workq:   make(chan table.SG, 1024),
		queued:  make(map[table.SG]bool),
		log:     logrus.WithFields(logrus.Fields{"pkg": "mcast", "table": t.Name}),
	}
	t.AddListener(m)
	go m.drain()
	return m
}

// Notify implements table.Listener: every settled change to t updates
// the owning McastSgEntry's forwarder set and queues it for a tree
// rebuild.
func (m *McastMgr) Notify(u table.UpdateInfo) {
	key, ok := u.Key.(table.ErmVPNKey)
	if !ok {
		return
	}
	sg := key.SG()
	entry := m.entryFor(sg)

	if u.Route != nil && u.Route.Best() != nil {
		entry.upsert(&McastForwarder{Key: key, path: u.Route.Best()})
	} else {
		entry.remove(key)
	}
	m.enqueue(sg)
}

func (m *McastMgr) entryFor(sg table.SG) *McastSgEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[sg]
	if !ok {
		e = newSgEntry(sg)
		m.entries[sg] = e
	}
	return e
}

func (m *McastMgr) enqueue(sg table.SG) {
	m.mu.Lock()
	if m.queued[sg] {
		m.mu.Unlock()
		return
	}
	m.queued[sg] = true
	m.mu.Unlock()
	m.workq <- sg
}

func (m *McastMgr) drain() {
	for sg := range m.workq {
		m.mu.Lock()
		delete(m.queued, sg)
		e, ok := m.entries[sg]
		m.mu.Unlock()
		if !ok {
			continue
		}
		m.rebuildAndExport(e)
	}
}

// rebuildAndExport rebuilds e's tree and re-inserts every forwarder's
// path with its recomputed olist attribute, so the table's own
// Replicator/Listener chain carries the updated attribute onward.
func (m *McastMgr) rebuildAndExport(e *McastSgEntry) {
	forwarders := e.rebuild(m.degree)
	for _, f := range forwarders {
		ol := e.olistFor(f)
		newAttr := m.db.ReplaceOList(f.path.Attr, ol)
		if newAttr == f.path.Attr {
			continue
		}
		updated := *f.path
		updated.Attr = newAttr
		f.path = &updated
		m.table.AddPath(f.Key, &updated)
	}
	if e.empty() {
		m.mu.Lock()
		delete(m.entries, e.SG)
		m.mu.Unlock()
	}
}

// Lookup returns the tree entry for sg, or (nil, false) if nothing is
// currently joined to it.
func (m *McastMgr) Lookup(sg table.SG) (*McastSgEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[sg]
	return e, ok
}
