// Package attr implements the canonical path-attribute interning store.
// Path attributes are deduplicated into process-wide, reference-counted
// canonical objects so identical attribute sets share a single instance
// and attribute-equality is a pointer compare.
//
// Grounded on original_source/src/bgp/bgp_attr.{h,cc} (BgpAttr, BgpAttrDB)
// and bgp_aspath.{h,cc} (AsPathSpec, AsPathDB); redesigned
// as an Arc-style shared-ownership side table instead of intrusive
// refcounting, and as a closed struct instead of a BgpAttribute hierarchy.
package attr

import (
	"net/netip"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/contrail/controlnode/bgp"
)

// Origin is the well-known ORIGIN path attribute.
type Origin uint8

const (
	OriginIGP Origin = iota
	OriginEGP
	OriginIncomplete
)

// Spec is the uninterned, caller-built value handed to AttrDb.Locate. It
// mirrors BgpAttrSpec in the original: a plain value type with no identity
// of its own until it is interned.
type Spec struct {
	Origin          Origin
	NextHop         netip.Addr
	MED             uint32
	LocalPref       uint32
	AtomicAggregate bool
	AggregatorAS    bgp.ASN
	AggregatorAddr  netip.Addr
	OriginatorID    bgp.Identifier
	ClusterList     []bgp.Identifier
	ASPath          *ASPath
	Community       *Community
	ExtCommunities  *ExtCommunity
	SourceRD        [8]byte
	HasSourceRD     bool
	ESI             [10]byte
	LabelBlockLo    uint32
	LabelBlockHi    uint32
	HasLabelBlock   bool
	PMSITunnelType  uint8
	PMSILabel       uint32
	OList           *OList
}

// OList is the multicast output-list attribute: per-leaf neighbour
// (address, label, tunnel-encap) entries emitted by the tree manager.
type OList struct {
	Entries []OListEntry
}

// OListEntry is one neighbour entry within an OList.
type OListEntry struct {
	Address    netip.Addr
	Label      uint32
	TunnelEncap string
}

func (o *OList) equal(p *OList) bool {
	if o == p {
		return true
	}
	if o == nil || p == nil || len(o.Entries) != len(p.Entries) {
		return false
	}
	for i := range o.Entries {
		if o.Entries[i] != p.Entries[i] {
			return false
		}
	}
	return true
}

func (o *OList) compare(p *OList) int {
	if o == p {
		return 0
	}
	if o == nil {
		return -1
	}
	if p == nil {
		return 1
	}
	if len(o.Entries) != len(p.Entries) {
		return len(o.Entries) - len(p.Entries)
	}
	for i := range o.Entries {
		if o.Entries[i] != p.Entries[i] {
			if c := compareAddr(o.Entries[i].Address, p.Entries[i].Address); c != 0 {
				return c
			}
			if c := compareUint(o.Entries[i].Label, p.Entries[i].Label); c != 0 {
				return c
			}
			if o.Entries[i].TunnelEncap < p.Entries[i].TunnelEncap {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Attr is the canonical, interned path-attribute aggregate.
// Two Attr handles are == iff every field compares equal; AttrDb
// guarantees a single *Attr exists per distinct content at any instant.
type Attr struct {
	db *Db

	origin          Origin
	nextHop         netip.Addr
	med             uint32
	localPref       uint32
	atomicAggregate bool
	aggregatorAS    bgp.ASN
	aggregatorAddr  netip.Addr
	originatorID    bgp.Identifier
	clusterList     []bgp.Identifier
	asPath          *ASPath
	community       *Community
	extCommunities  *ExtCommunity
	sourceRD        [8]byte
	hasSourceRD     bool
	esi             [10]byte
	labelBlockLo    uint32
	labelBlockHi    uint32
	hasLabelBlock   bool
	pmsiTunnelType  uint8
	pmsiLabel       uint32
	olist           *OList

	key  uint64 // content hash, used as the interning table bucket
	mu   sync.Mutex
	refs int
}

// Accessors — read-only views of the canonical content.
func (a *Attr) Origin() Origin                { return a.origin }
func (a *Attr) NextHop() netip.Addr           { return a.nextHop }
func (a *Attr) MED() uint32                   { return a.med }
func (a *Attr) LocalPref() uint32             { return a.localPref }
func (a *Attr) AtomicAggregate() bool         { return a.atomicAggregate }
func (a *Attr) AggregatorAS() bgp.ASN         { return a.aggregatorAS }
func (a *Attr) OriginatorID() bgp.Identifier  { return a.originatorID }
func (a *Attr) ClusterList() []bgp.Identifier { return a.clusterList }
func (a *Attr) ASPath() *ASPath               { return a.asPath }
func (a *Attr) Community() *Community         { return a.community }
func (a *Attr) ExtCommunities() *ExtCommunity { return a.extCommunities }
func (a *Attr) SourceRD() ([8]byte, bool)     { return a.sourceRD, a.hasSourceRD }
func (a *Attr) LabelBlock() (lo, hi uint32, ok bool) {
	return a.labelBlockLo, a.labelBlockHi, a.hasLabelBlock
}
func (a *Attr) OList() *OList { return a.olist }
func (a *Attr) PMSITunnel() (typ uint8, label uint32) {
	return a.pmsiTunnelType, a.pmsiLabel
}

// RefCount returns the current handle count, chiefly for tests asserting
// the reference count never goes negative.
func (a *Attr) RefCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.refs
}

// Equal reports canonical equality: true iff a and o were handed out by
// the same Db for semantically equal content. Since a Db never has two
// live entries with equal content, pointer identity already implies this,
// but Equal also holds across two different Dbs holding coincidentally
// equal content (used by the replicated-path round-trip property).
func (a *Attr) Equal(o *Attr) bool {
	if a == o {
		return true
	}
	if a == nil || o == nil {
		return false
	}
	return a.compare(o) == 0
}

// Less implements the strict total ordering over Attr, mirroring
// BgpAttr::CompareTo field-for-field.
func (a *Attr) Less(o *Attr) bool { return a.compare(o) < 0 }

func (a *Attr) compare(o *Attr) int {
	if c := int(a.origin) - int(o.origin); c != 0 {
		return c
	}
	if c := compareAddr(a.nextHop, o.nextHop); c != 0 {
		return c
	}
	if c := compareUint(a.med, o.med); c != 0 {
		return c
	}
	if c := compareUint(a.localPref, o.localPref); c != 0 {
		return c
	}
	if a.atomicAggregate != o.atomicAggregate {
		if !a.atomicAggregate {
			return -1
		}
		return 1
	}
	if c := compareUint(uint32(a.aggregatorAS), uint32(o.aggregatorAS)); c != 0 {
		return c
	}
	if c := compareAddr(a.aggregatorAddr, o.aggregatorAddr); c != 0 {
		return c
	}
	if c := compareUint(uint32(a.originatorID), uint32(o.originatorID)); c != 0 {
		return c
	}
	if c := compareClusterList(a.clusterList, o.clusterList); c != 0 {
		return c
	}
	if c := a.olist.compare(o.olist); c != 0 {
		return c
	}
	if c := bytesCompare(a.esi[:], o.esi[:]); c != 0 {
		return c
	}
	if a.hasSourceRD != o.hasSourceRD {
		if !a.hasSourceRD {
			return -1
		}
		return 1
	}
	if c := bytesCompare(a.sourceRD[:], o.sourceRD[:]); c != 0 {
		return c
	}
	if c := compareLabelBlock(a, o); c != 0 {
		return c
	}
	if c := compareUint(uint32(a.pmsiTunnelType), uint32(o.pmsiTunnelType)); c != 0 {
		return c
	}
	if c := compareUint(a.pmsiLabel, o.pmsiLabel); c != 0 {
		return c
	}
	if c := a.asPath.compare(o.asPath); c != 0 {
		return c
	}
	if c := a.community.compare(o.community); c != 0 {
		return c
	}
	if c := a.extCommunities.compare(o.extCommunities); c != 0 {
		return c
	}
	return 0
}

func compareLabelBlock(a, o *Attr) int {
	if a.hasLabelBlock != o.hasLabelBlock {
		if !a.hasLabelBlock {
			return -1
		}
		return 1
	}
	if c := compareUint(a.labelBlockLo, o.labelBlockLo); c != 0 {
		return c
	}
	return compareUint(a.labelBlockHi, o.labelBlockHi)
}

func compareClusterList(a, b []bgp.Identifier) int {
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

func compareUint(a, b uint32) int {
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

func compareAddr(a, b netip.Addr) int {
	if a == b {
		return 0
	}
	if !a.IsValid() {
		return -1
	}
	if !b.IsValid() {
		return 1
	}
	return a.Compare(b)
}

func bytesCompare(a, b []byte) int {
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

func (a *Attr) hash() uint64 {
	h := hashCombine(0, uint64(a.origin))
	if a.nextHop.IsValid() {
		h = hashCombine(h, xxhashSum([]byte(a.nextHop.String())))
	}
	h = hashCombine(h, uint64(a.med))
	h = hashCombine(h, uint64(a.localPref))
	if a.atomicAggregate {
		h = hashCombine(h, 1)
	}
	h = hashCombine(h, uint64(a.aggregatorAS))
	if a.aggregatorAddr.IsValid() {
		h = hashCombine(h, xxhashSum([]byte(a.aggregatorAddr.String())))
	}
	h = hashCombine(h, uint64(a.originatorID))
	for _, c := range a.clusterList {
		h = hashCombine(h, uint64(c))
	}
	h = hashCombine(h, a.asPath.hash())
	h = hashCombine(h, a.community.hash())
	h = hashCombine(h, a.extCommunities.hash())
	h = hashCombine(h, xxhashSum(a.esi[:]))
	if a.hasSourceRD {
		h = hashCombine(h, xxhashSum(a.sourceRD[:]))
	}
	if a.hasLabelBlock {
		h = hashCombine(h, uint64(a.labelBlockLo))
		h = hashCombine(h, uint64(a.labelBlockHi))
	}
	h = hashCombine(h, uint64(a.pmsiTunnelType))
	h = hashCombine(h, uint64(a.pmsiLabel))
	return h
}

func fromSpec(db *Db, s Spec) *Attr {
	return &Attr{
		db:              db,
		origin:          s.Origin,
		nextHop:         s.NextHop,
		med:             s.MED,
		localPref:       s.LocalPref,
		atomicAggregate: s.AtomicAggregate,
		aggregatorAS:    s.AggregatorAS,
		aggregatorAddr:  s.AggregatorAddr,
		originatorID:    s.OriginatorID,
		clusterList:     append([]bgp.Identifier(nil), s.ClusterList...),
		asPath:          s.ASPath,
		community:       s.Community,
		extCommunities:  s.ExtCommunities,
		sourceRD:        s.SourceRD,
		hasSourceRD:     s.HasSourceRD,
		esi:             s.ESI,
		labelBlockLo:    s.LabelBlockLo,
		labelBlockHi:    s.LabelBlockHi,
		hasLabelBlock:   s.HasLabelBlock,
		pmsiTunnelType:  s.PMSITunnelType,
		pmsiLabel:       s.PMSILabel,
		olist:           s.OList,
	}
}

func (a *Attr) toSpec() Spec {
	return Spec{
		Origin: a.origin, NextHop: a.nextHop, MED: a.med, LocalPref: a.localPref,
		AtomicAggregate: a.atomicAggregate, AggregatorAS: a.aggregatorAS, AggregatorAddr: a.aggregatorAddr,
		OriginatorID: a.originatorID, ClusterList: append([]bgp.Identifier(nil), a.clusterList...),
		ASPath: a.asPath, Community: a.community, ExtCommunities: a.extCommunities,
		SourceRD: a.sourceRD, HasSourceRD: a.hasSourceRD, ESI: a.esi,
		LabelBlockLo: a.labelBlockLo, LabelBlockHi: a.labelBlockHi, HasLabelBlock: a.hasLabelBlock,
		PMSITunnelType: a.pmsiTunnelType, PMSILabel: a.pmsiLabel, OList: a.olist,
	}
}

// Db is the per-process (in practice, per-Server) attribute interning
// store (AttrDb in). The zero value is not usable; use New.
type Db struct {
	mu      sync.Mutex
	entries map[uint64][]*Attr
	log     *logrus.Entry
}

// New creates an empty attribute database.
func New() *Db {
	return &Db{
		entries: make(map[uint64][]*Attr),
		log:     logrus.WithField("pkg", "attr"),
	}
}

// Locate interns s, returning a handle to the canonical instance — created
// if absent. Concurrency: Locate races safely against Release of an equal
// value; see the Db.release comment for the resolution discipline.
func (db *Db) Locate(s Spec) *Attr {
	cand := fromSpec(db, s)
	cand.key = cand.hash()

	db.mu.Lock()
	defer db.mu.Unlock()
	bucket := db.entries[cand.key]
	for _, existing := range bucket {
		if existing.compare(cand) == 0 {
			existing.mu.Lock()
			existing.refs++
			existing.mu.Unlock()
			return existing
		}
	}
	cand.refs = 1
	db.entries[cand.key] = append(bucket, cand)
	return cand
}

// Release drops one reference to a. When the count reaches zero, a is
// removed from the Db and may no longer be cloned ( "No handle
// may be cloned after the count has reached zero").
func (db *Db) Release(a *Attr) {
	if a == nil {
		return
	}
	a.mu.Lock()
	a.refs--
	destroy := a.refs == 0
	a.mu.Unlock()
	if !destroy {
		return
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	bucket := db.entries[a.key]
	for i, e := range bucket {
		if e == a {
			// Re-check under the Db lock: a concurrent Locate may have
			// incremented refs between our unlock above and taking db.mu.
			a.mu.Lock()
			stillZero := a.refs == 0
			a.mu.Unlock()
			if !stillZero {
				return
			}
			bucket[i] = bucket[len(bucket)-1]
			db.entries[a.key] = bucket[:len(bucket)-1]
			if len(db.entries[a.key]) == 0 {
				delete(db.entries, a.key)
			}
			return
		}
	}
}

// Clone returns a new handle to the same canonical content, incrementing
// the refcount. Panics if a has already been released to zero, matching
// the "no handle may be cloned after the count has reached zero"
// invariant — callers always hold a live handle when cloning.
func (db *Db) Clone(a *Attr) *Attr {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.refs == 0 {
		panic("attr: Clone of a released handle")
	}
	a.refs++
	return a
}

// Size returns the number of distinct canonical entries, for tests.
func (db *Db) Size() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, b := range db.entries {
		n += len(b)
	}
	return n
}

// Replace clones a's spec, applies mutate, and re-interns the result —
// the generic form behind every replace_<field> entry point this core
// exposes (ReplaceNextHop, ReplaceLocalPref, ReplaceExtCommunities,
// ReplaceCommunity, ReplaceOriginatorID, ReplaceSourceRD, ReplaceESI,
// ReplaceOList, ReplacePMSITunnel, ReplaceLabelBlock, ReplaceASPath),
// grounded on BgpAttrDB::ReplaceXxxAndLocate in
// original_source/src/bgp/bgp_attr.cc.
func (db *Db) Replace(a *Attr, mutate func(*Spec)) *Attr {
	s := a.toSpec()
	mutate(&s)
	return db.Locate(s)
}

func (db *Db) ReplaceNextHop(a *Attr, nh netip.Addr) *Attr {
	return db.Replace(a, func(s *Spec) { s.NextHop = nh })
}

func (db *Db) ReplaceLocalPref(a *Attr, lp uint32) *Attr {
	return db.Replace(a, func(s *Spec) { s.LocalPref = lp })
}

func (db *Db) ReplaceExtCommunities(a *Attr, ec *ExtCommunity) *Attr {
	return db.Replace(a, func(s *Spec) { s.ExtCommunities = ec })
}

func (db *Db) ReplaceCommunity(a *Attr, c *Community) *Attr {
	return db.Replace(a, func(s *Spec) { s.Community = c })
}

func (db *Db) ReplaceOriginatorID(a *Attr, id bgp.Identifier) *Attr {
	return db.Replace(a, func(s *Spec) { s.OriginatorID = id })
}

func (db *Db) ReplaceSourceRD(a *Attr, rd [8]byte) *Attr {
	return db.Replace(a, func(s *Spec) { s.SourceRD = rd; s.HasSourceRD = true })
}

func (db *Db) ReplaceESI(a *Attr, esi [10]byte) *Attr {
	return db.Replace(a, func(s *Spec) { s.ESI = esi })
}

func (db *Db) ReplaceOList(a *Attr, ol *OList) *Attr {
	return db.Replace(a, func(s *Spec) { s.OList = ol })
}

func (db *Db) ReplacePMSITunnel(a *Attr, typ uint8, label uint32) *Attr {
	return db.Replace(a, func(s *Spec) { s.PMSITunnelType = typ; s.PMSILabel = label })
}

func (db *Db) ReplaceLabelBlock(a *Attr, lo, hi uint32) *Attr {
	return db.Replace(a, func(s *Spec) { s.LabelBlockLo = lo; s.LabelBlockHi = hi; s.HasLabelBlock = true })
}

// ReplaceASPathAdd returns a new Attr with asn prepended to the AS-path
// (AsPathSpec::Add).
func (db *Db) ReplaceASPathAdd(a *Attr, asn bgp.ASN) *Attr {
	return db.Replace(a, func(s *Spec) {
		base := s.ASPath
		if base == nil {
			base = &ASPath{}
		}
		s.ASPath = base.Add(asn)
	})
}

// ReplaceASPathReplace returns a new Attr with every occurrence of old
// replaced by asn in the AS-path (AsPathSpec::Replace).
func (db *Db) ReplaceASPathReplace(a *Attr, old, asn bgp.ASN) *Attr {
	return db.Replace(a, func(s *Spec) {
		if s.ASPath != nil {
			s.ASPath = s.ASPath.Replace(old, asn)
		}
	})
}
