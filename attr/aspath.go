package attr

import (
	"bytes"
	"encoding/binary"

	"github.com/contrail/controlnode/bgp"
)

// SegmentType tags an AS-path segment.
type SegmentType uint8

const (
	// SegmentSet is an unordered AS_SET segment; it contributes 1 to the
	// path length regardless of how many ASNs it holds, matching
	// AsPathSpec::AsCount in original_source/src/bgp/bgp_aspath.h.
	SegmentSet SegmentType = 1
	// SegmentSequence is an ordered AS_SEQUENCE segment; it contributes
	// its length to the path length.
	SegmentSequence SegmentType = 2
)

// Segment is one element of an AS-path.
type Segment struct {
	Type SegmentType
	ASNs []bgp.ASN
}

func (s Segment) equal(o Segment) bool {
	if s.Type != o.Type || len(s.ASNs) != len(o.ASNs) {
		return false
	}
	for i := range s.ASNs {
		if s.ASNs[i] != o.ASNs[i] {
			return false
		}
	}
	return true
}

func (s Segment) compare(o Segment) int {
	if s.Type != o.Type {
		return int(s.Type) - int(o.Type)
	}
	if len(s.ASNs) != len(o.ASNs) {
		return len(s.ASNs) - len(o.ASNs)
	}
	for i := range s.ASNs {
		if s.ASNs[i] != o.ASNs[i] {
			if s.ASNs[i] < o.ASNs[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// ASPath is the canonical, interned AS_PATH value. It is immutable once
// constructed; AsPathSpec.Add/Replace return a new interned value rather
// than mutating this one.
type ASPath struct {
	Segments []Segment
}

// maxSegmentLen mirrors AsPathSpec::Add's "< 255" prepend cutoff in
// original_source/src/bgp/bgp_aspath.cc.
const maxSegmentLen = 255

// Add returns a new AS-path with asn prepended to the left-most segment.
// If that segment is already an AS_SEQUENCE shorter than 255 entries, asn
// is prepended into it in place; otherwise a fresh leading AS_SEQUENCE
// segment holding just asn is inserted ahead of the existing segments.
func (p *ASPath) Add(asn bgp.ASN) *ASPath {
	np := &ASPath{}
	if len(p.Segments) > 0 && p.Segments[0].Type == SegmentSequence && len(p.Segments[0].ASNs) < maxSegmentLen {
		head := make([]bgp.ASN, 0, len(p.Segments[0].ASNs)+1)
		head = append(head, asn)
		head = append(head, p.Segments[0].ASNs...)
		np.Segments = append(np.Segments, Segment{Type: SegmentSequence, ASNs: head})
		np.Segments = append(np.Segments, p.Segments[1:]...)
		return np
	}
	np.Segments = append(np.Segments, Segment{Type: SegmentSequence, ASNs: []bgp.ASN{asn}})
	np.Segments = append(np.Segments, p.Segments...)
	return np
}

// Replace returns a new AS-path with every occurrence of old replaced by
// asn, matching AsPathSpec::Replace.
func (p *ASPath) Replace(old, asn bgp.ASN) *ASPath {
	np := &ASPath{Segments: make([]Segment, len(p.Segments))}
	for i, seg := range p.Segments {
		ns := Segment{Type: seg.Type, ASNs: make([]bgp.ASN, len(seg.ASNs))}
		for j, a := range seg.ASNs {
			if a == old {
				a = asn
			}
			ns.ASNs[j] = a
		}
		np.Segments[i] = ns
	}
	return np
}

// AsLeftMostMatch is true iff the first segment's first AS equals asn.
func (p *ASPath) AsLeftMostMatch(asn bgp.ASN) bool {
	if len(p.Segments) == 0 || len(p.Segments[0].ASNs) == 0 {
		return false
	}
	return p.Segments[0].ASNs[0] == asn
}

// AsLeftMost returns the left-most AS, or 0 if the path is empty or the
// first segment is an AS_SET (an AS_SET has no "left-most" AS).
func (p *ASPath) AsLeftMost() bgp.ASN {
	if len(p.Segments) == 0 || p.Segments[0].Type == SegmentSet || len(p.Segments[0].ASNs) == 0 {
		return 0
	}
	return p.Segments[0].ASNs[0]
}

// AsPathLoop counts occurrences of asn anywhere in the path and reports
// whether that count exceeds max.
func (p *ASPath) AsPathLoop(asn bgp.ASN, max int) bool {
	count := 0
	for _, seg := range p.Segments {
		for _, a := range seg.ASNs {
			if a == asn {
				count++
				if count > max {
					return true
				}
			}
		}
	}
	return false
}

// AsCount is the AS-path length used by path selection step 4: an AS_SET
// segment counts as 1 regardless of its cardinality, an AS_SEQUENCE
// segment counts its length, resolved per
// original_source/src/bgp/bgp_aspath.h AsPath::AsCount; see DESIGN.md.
func (p *ASPath) AsCount() int {
	n := 0
	for _, seg := range p.Segments {
		if seg.Type == SegmentSet {
			n++
		} else {
			n += len(seg.ASNs)
		}
	}
	return n
}

func (p *ASPath) equal(o *ASPath) bool {
	if p == o {
		return true
	}
	if p == nil || o == nil {
		return false
	}
	if len(p.Segments) != len(o.Segments) {
		return false
	}
	for i := range p.Segments {
		if !p.Segments[i].equal(o.Segments[i]) {
			return false
		}
	}
	return true
}

func (p *ASPath) compare(o *ASPath) int {
	if p == o {
		return 0
	}
	if p == nil {
		return -1
	}
	if o == nil {
		return 1
	}
	if len(p.Segments) != len(o.Segments) {
		return len(p.Segments) - len(o.Segments)
	}
	for i := range p.Segments {
		if c := p.Segments[i].compare(o.Segments[i]); c != 0 {
			return c
		}
	}
	return 0
}

func (p *ASPath) hash() uint64 {
	var buf bytes.Buffer
	if p != nil {
		for _, seg := range p.Segments {
			buf.WriteByte(byte(seg.Type))
			for _, a := range seg.ASNs {
				var b [4]byte
				binary.BigEndian.PutUint32(b[:], uint32(a))
				buf.Write(b[:])
			}
			buf.WriteByte(0xff)
		}
	}
	return xxhashSum(buf.Bytes())
}
