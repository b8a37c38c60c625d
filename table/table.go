package table

import (
	"net/netip"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/gaissmai/bart"
	"github.com/sirupsen/logrus"

	"github.com/contrail/controlnode/bgp"
)

// DBOp is the kind of request queued onto a partition.
type DBOp int

const (
	OpAddOrChange DBOp = iota
	OpDelete
)

// DBRequest is one entry on a partition's per-partition work queue.
type DBRequest struct {
	Op   DBOp
	Key  RouteKey
	Path *Path // AddOrChange: the path to insert; Delete: identity to remove
}

// UpdateInfo describes a settled best-path change delivered to listeners.
type UpdateInfo struct {
	Table string
	Key   RouteKey
	Route *Route // nil Best() means "withdraw everything for this key"
}

// Listener receives settled route notifications from a partition's drain
// cycle — the table export path, the multicast tree manager, etc.
type Listener interface {
	Notify(u UpdateInfo)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(UpdateInfo)

func (f ListenerFunc) Notify(u UpdateInfo) { f(u) }

// Replicator is consulted after a path settles into a route, so the
// route-target fabric (instance.RTargetFabric) can push secondary paths
// into importing instances without Table importing instance. Table
// only ever calls this; it never imports the instance package,
// avoiding a dependency cycle.
type Replicator interface {
	// Replicate is called after addedPath settles into route, for every
	// non-replicated AddOrChange.
	Replicate(srcTable string, key RouteKey, route *Route, addedPath *Path)
	// Unreplicate is called after removedPath is withdrawn, so the
	// fabric can withdraw any secondary paths it derived from it.
	Unreplicate(srcTable string, key RouteKey, removedPath *Path)
}

const defaultPartitions = 8

// Table is the per (family, instance) route container.
type Table struct {
	Name       string // "<instance>.<family>", used in log fields and replication back-references
	Family     bgp.Family
	partitions []*partition

	mu         sync.RWMutex
	listeners  []Listener
	replicator Replicator

	log *logrus.Entry
}

// New creates a Table with the given number of partitions (a power of
// two; typical 4 or 8). Each partition runs its own drain goroutine for
// the life of the Table; call Close to stop them.
func New(name string, family bgp.Family, partitions int) *Table {
	if partitions <= 0 {
		partitions = defaultPartitions
	}
	t := &Table{
		Name:   name,
		Family: family,
		log:    logrus.WithFields(logrus.Fields{"pkg": "table", "table": name}),
	}
	t.partitions = make([]*partition, partitions)
	for i := range t.partitions {
		t.partitions[i] = newPartition(t, i)
	}
	return t
}

// PartitionCount returns the number of partitions this table was built
// with.
func (t *Table) PartitionCount() int { return len(t.partitions) }

// AddListener registers l to receive settled-route notifications.
func (t *Table) AddListener(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

// SetReplicator wires the route-target fabric into this table.
func (t *Table) SetReplicator(r Replicator) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replicator = r
}

func (t *Table) notify(u UpdateInfo) {
	t.mu.RLock()
	ls := append([]Listener(nil), t.listeners...)
	t.mu.RUnlock()
	for _, l := range ls {
		l.Notify(u)
	}
}

func (t *Table) replicate(key RouteKey, route *Route, added *Path) {
	t.mu.RLock()
	r := t.replicator
	t.mu.RUnlock()
	if r != nil && added != nil && !added.IsReplicated() {
		r.Replicate(t.Name, key, route, added)
	}
}

func (t *Table) unreplicate(key RouteKey, removed *Path) {
	t.mu.RLock()
	r := t.replicator
	t.mu.RUnlock()
	if r != nil && removed != nil && !removed.IsReplicated() {
		r.Unreplicate(t.Name, key, removed)
	}
}

// partitionIndex hashes key to a partition,
// "hash(prefix) mod P". Uses the same xxhash the attribute database
// interns content on, rather than a second hash family for what is
// otherwise an identical "stable digest of a byte string" need.
func (t *Table) partitionIndex(key RouteKey) int {
	return int(xxhash.Sum64(key.Bytes()) % uint64(len(t.partitions)))
}

// Enqueue posts req onto the partition that owns req.Key, returning
// immediately; the partition goroutine applies it asynchronously.
func (t *Table) Enqueue(req DBRequest) {
	p := t.partitions[t.partitionIndex(req.Key)]
	p.reqs <- req
}

// AddPath is a convenience wrapper around Enqueue for the common insert
// case.
func (t *Table) AddPath(key RouteKey, path *Path) {
	t.Enqueue(DBRequest{Op: OpAddOrChange, Key: key, Path: path})
}

// RemovePath is a convenience wrapper around Enqueue for the common
// withdraw case. Only Peer, Source and PathID of path are consulted.
func (t *Table) RemovePath(key RouteKey, path *Path) {
	t.Enqueue(DBRequest{Op: OpDelete, Key: key, Path: path})
}

// Lookup returns the route stored for key, or nil. Safe to call from any
// goroutine; it takes the owning partition's mutex.
func (t *Table) Lookup(key RouteKey) *Route {
	p := t.partitions[t.partitionIndex(key)]
	return p.lookup(key)
}

// Walk invokes fn for every route in the table, partition by partition.
// It is the "safe iterator that never reorders or blocks writers for more
// than one partition at a time" describes for the
// introspection hook.
func (t *Table) Walk(fn func(RouteKey, *Route) bool) {
	for _, p := range t.partitions {
		if !p.walk(fn) {
			return
		}
	}
}

// Close stops every partition's drain goroutine. It does not check
// whether routes remain; IsEmpty reports that.
func (t *Table) Close() {
	for _, p := range t.partitions {
		close(p.reqs)
	}
}

// IsEmpty reports whether every partition holds zero routes.
func (t *Table) IsEmpty() bool {
	for _, p := range t.partitions {
		if p.size() > 0 {
			return false
		}
	}
	return true
}

// partition is one shard of a Table, driven by its own goroutine.
type partition struct {
	table *Table
	idx   int

	reqs chan DBRequest

	mu     sync.Mutex
	routes map[string]*Route
	// inet4/inet6 get an additional LPM-capable index; see lookupTrie.
	trie4 *bart.Table[*Route]
	trie6 *bart.Table[*Route]
}

func newPartition(t *Table, idx int) *partition {
	p := &partition{
		table:  t,
		idx:    idx,
		reqs:   make(chan DBRequest, 1024),
		routes: make(map[string]*Route),
	}
	if t.Family == bgp.FamilyInet {
		p.trie4 = new(bart.Table[*Route])
	} else if t.Family == bgp.FamilyInet6 {
		p.trie6 = new(bart.Table[*Route])
	}
	go p.run()
	return p
}

// run drains the partition's queue in arrival order; every request
// touching a route is applied before that route's settled notification is
// fired, and §5's ordering guarantees.
func (p *partition) run() {
	for req := range p.reqs {
		p.apply(req)
	}
}

func (p *partition) apply(req DBRequest) {
	p.mu.Lock()
	keyStr := req.Key.String()
	route, ok := p.routes[keyStr]
	if !ok {
		route = &Route{Key: req.Key}
		p.routes[keyStr] = route
	}

	var added *Path
	var removed *Path
	switch req.Op {
	case OpAddOrChange:
		route.insert(req.Path, false)
		added = req.Path
	case OpDelete:
		if req.Path != nil {
			route.removePath(req.Path.Peer, req.Path.Source, req.Path.PathID)
			removed = req.Path
		}
	}

	if route.Empty() {
		delete(p.routes, keyStr)
		p.trieDelete(req.Key)
	} else {
		p.trieInsert(req.Key, route)
	}
	p.mu.Unlock()

	p.table.notify(UpdateInfo{Table: p.table.Name, Key: req.Key, Route: route})
	if added != nil {
		p.table.replicate(req.Key, route, added)
	}
	if removed != nil {
		p.table.unreplicate(req.Key, removed)
	}
}

func (p *partition) trieInsert(key RouteKey, route *Route) {
	switch k := key.(type) {
	case InetKey:
		if p.trie4 != nil {
			p.trie4.Update(k.Prefix, func(_ *Route, _ bool) *Route { return route })
		}
	case Inet6Key:
		if p.trie6 != nil {
			p.trie6.Update(k.Prefix, func(_ *Route, _ bool) *Route { return route })
		}
	}
}

func (p *partition) trieDelete(key RouteKey) {
	switch k := key.(type) {
	case InetKey:
		if p.trie4 != nil {
			p.trie4.GetAndDelete(k.Prefix)
		}
	case Inet6Key:
		if p.trie6 != nil {
			p.trie6.GetAndDelete(k.Prefix)
		}
	}
}

func (p *partition) lookup(key RouteKey) *Route {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.routes[key.String()]
}

// LookupBestInet4 performs a longest-prefix match against the inet
// partition's BART trie — the one place this Table exercises
// github.com/gaissmai/bart directly, satisfying next-hop
// resolution shape for IPv4 without hand-rolling a trie.
func (t *Table) LookupBestInet4(addr netip.Addr) (*Route, bool) {
	p := t.partitions[t.partitionIndex(InetKey{Prefix: netip.PrefixFrom(addr, addr.BitLen())})]
	if p.trie4 == nil {
		return nil, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.trie4.Lookup(addr)
}

func (p *partition) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.routes)
}

func (p *partition) walk(fn func(RouteKey, *Route) bool) bool {
	p.mu.Lock()
	routes := make([]*Route, 0, len(p.routes))
	for _, r := range p.routes {
		routes = append(routes, r)
	}
	p.mu.Unlock()
	for _, r := range routes {
		if !fn(r.Key, r) {
			return false
		}
	}
	return true
}
