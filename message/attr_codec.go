package message

import (
	"encoding/binary"
	"net/netip"

	"github.com/contrail/controlnode/attr"
	"github.com/contrail/controlnode/bgp"
	"github.com/contrail/controlnode/bgperr"
)

// Path attribute type codes, RFC 4271 §5 and RFC 4760/4360 extensions.
const (
	attrOrigin          = 1
	attrASPath          = 2
	attrNextHop         = 3
	attrMED             = 4
	attrLocalPref       = 5
	attrAtomicAggregate = 6
	attrAggregator      = 7
	attrCommunity       = 8
	attrOriginatorID    = 9
	attrClusterList     = 10
	attrMPReachNLRI     = 14
	attrMPUnreachNLRI   = 15
	attrExtCommunities  = 16
	attrPMSITunnel      = 22
)

// attribute flag bits (RFC 4271 §4.3).
const (
	flagOptional   = 1 << 7
	flagTransitive = 1 << 6
	flagPartial    = 1 << 5
	flagExtLength  = 1 << 4
)

// decodedAttrs accumulates the flags(1)|code(1)|length(1|2)|value
// attribute list into an attr.Spec plus whatever MP-reach/unreach NLRI
// payloads were present, since those carry routes rather than pure
// attribute content.
type decodedAttrs struct {
	spec          attr.Spec
	mpReach       []byte
	mpReachFamily bgp.Family
	mpUnreach     []byte
	mpUnreachFamily bgp.Family
	hasMPReach    bool
	hasMPUnreach  bool
}

// DecodeAttributes parses the UPDATE path-attribute list into a Spec
// ready for attr.Db.Locate, grounded on
// original_source/src/bgp/bgp_attr.cc's per-type decode switch.
func DecodeAttributes(b []byte) (*decodedAttrs, error) {
	d := &decodedAttrs{}
	for len(b) > 0 {
		if len(b) < 3 {
			return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubMalformedAttributeList,
				"truncated attribute header", nil)
		}
		flags, code := b[0], b[1]
		var length int
		var value []byte
		if flags&flagExtLength != 0 {
			if len(b) < 4 {
				return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubAttribLengthError,
					"truncated extended-length attribute header", nil)
			}
			length = int(binary.BigEndian.Uint16(b[2:4]))
			b = b[4:]
		} else {
			length = int(b[2])
			b = b[3:]
		}
		if len(b) < length {
			return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubAttribLengthError,
				"attribute value truncated", nil)
		}
		value, b = b[:length], b[length:]
		if err := d.apply(code, flags, value); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *decodedAttrs) apply(code, flags byte, v []byte) error {
	switch code {
	case attrOrigin:
		if len(v) != 1 || v[0] > byte(attr.OriginIncomplete) {
			return bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubInvalidOrigin, "invalid ORIGIN value", nil)
		}
		d.spec.Origin = attr.Origin(v[0])
	case attrASPath:
		path, err := decodeASPath(v)
		if err != nil {
			return err
		}
		d.spec.ASPath = path
	case attrNextHop:
		if len(v) != 4 {
			return bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubInvalidNextHop, "NEXT_HOP must be 4 bytes", nil)
		}
		addr, ok := netip.AddrFromSlice(v)
		if !ok {
			return bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubInvalidNextHop, "malformed NEXT_HOP", nil)
		}
		d.spec.NextHop = addr
	case attrMED:
		if len(v) != 4 {
			return bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubAttribLengthError, "MED must be 4 bytes", nil)
		}
		d.spec.MED = binary.BigEndian.Uint32(v)
	case attrLocalPref:
		if len(v) != 4 {
			return bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubAttribLengthError, "LOCAL_PREF must be 4 bytes", nil)
		}
		d.spec.LocalPref = binary.BigEndian.Uint32(v)
	case attrAtomicAggregate:
		d.spec.AtomicAggregate = true
	case attrAggregator:
		if len(v) == 6 {
			d.spec.AggregatorAS = bgp.ASN(binary.BigEndian.Uint16(v[0:2]))
			addr, _ := netip.AddrFromSlice(v[2:6])
			d.spec.AggregatorAddr = addr
		} else if len(v) == 8 {
			d.spec.AggregatorAS = bgp.ASN(binary.BigEndian.Uint32(v[0:4]))
			addr, _ := netip.AddrFromSlice(v[4:8])
			d.spec.AggregatorAddr = addr
		}
	case attrCommunity:
		if len(v)%4 != 0 {
			return bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubOptionalAttribError, "COMMUNITIES length not a multiple of 4", nil)
		}
		vals := make([]uint32, 0, len(v)/4)
		for i := 0; i < len(v); i += 4 {
			vals = append(vals, binary.BigEndian.Uint32(v[i:i+4]))
		}
		d.spec.Community = &attr.Community{Values: vals}
	case attrOriginatorID:
		if len(v) != 4 {
			return bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubOptionalAttribError, "ORIGINATOR_ID must be 4 bytes", nil)
		}
		d.spec.OriginatorID = bgp.Identifier(binary.BigEndian.Uint32(v))
	case attrClusterList:
		if len(v)%4 != 0 {
			return bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubOptionalAttribError, "CLUSTER_LIST length not a multiple of 4", nil)
		}
		for i := 0; i < len(v); i += 4 {
			d.spec.ClusterList = append(d.spec.ClusterList, bgp.Identifier(binary.BigEndian.Uint32(v[i:i+4])))
		}
	case attrExtCommunities:
		if len(v)%8 != 0 {
			return bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubOptionalAttribError, "EXTENDED_COMMUNITIES length not a multiple of 8", nil)
		}
		vals := make([]attr.ExtCommunityValue, 0, len(v)/8)
		for i := 0; i < len(v); i += 8 {
			var ev attr.ExtCommunityValue
			copy(ev[:], v[i:i+8])
			vals = append(vals, ev)
		}
		d.spec.ExtCommunities = attr.WithValues(vals)
	case attrPMSITunnel:
		if len(v) < 5 {
			return bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubOptionalAttribError, "PMSI_TUNNEL too short", nil)
		}
		d.spec.PMSITunnelType = v[1]
		d.spec.PMSILabel = uint32(v[2])<<16 | uint32(v[3])<<8 | uint32(v[4])
	case attrMPReachNLRI:
		f, ok := parseMPFamily(v)
		if !ok {
			return bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubOptionalAttribError, "malformed MP_REACH_NLRI", nil)
		}
		d.hasMPReach = true
		d.mpReachFamily = f
		d.mpReach = v
	case attrMPUnreachNLRI:
		if len(v) < 3 {
			return bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubOptionalAttribError, "malformed MP_UNREACH_NLRI", nil)
		}
		d.hasMPUnreach = true
		d.mpUnreachFamily = bgp.Family{AFI: bgp.AFI(binary.BigEndian.Uint16(v[0:2])), SAFI: bgp.SAFI(v[2])}
		d.mpUnreach = v[3:]
	default:
		if flags&flagOptional == 0 {
			return bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubUnrecognizedWellKnownAttrib,
				"unrecognized well-known attribute", nil)
		}
		// Unknown optional attributes are accepted and dropped; a fuller
		// implementation would round-trip them via the OList/Unknown
		// variant describes for unrecognized optional-
		// transitive attributes.
	}
	return nil
}

func parseMPFamily(v []byte) (bgp.Family, bool) {
	if len(v) < 3 {
		return bgp.Family{}, false
	}
	return bgp.Family{AFI: bgp.AFI(binary.BigEndian.Uint16(v[0:2])), SAFI: bgp.SAFI(v[2])}, true
}

func decodeASPath(v []byte) (*attr.ASPath, error) {
	path := &attr.ASPath{}
	for len(v) > 0 {
		if len(v) < 2 {
			return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubMalformedASPath, "truncated AS_PATH segment", nil)
		}
		segType, segLen := attr.SegmentType(v[0]), int(v[1])
		v = v[2:]
		if len(v) < segLen*4 {
			return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubMalformedASPath, "AS_PATH segment truncated", nil)
		}
		asns := make([]bgp.ASN, segLen)
		for i := 0; i < segLen; i++ {
			asns[i] = bgp.ASN(binary.BigEndian.Uint32(v[i*4 : i*4+4]))
		}
		path.Segments = append(path.Segments, attr.Segment{Type: segType, ASNs: asns})
		v = v[segLen*4:]
	}
	return path, nil
}

// EncodeAttributes serializes a itemized Spec back into the
// flags|code|length|value wire form. ORIGIN, MULTI_EXIT_DISC and
// LOCAL_PREF are always emitted; the other attributes only when the
// Spec populates them.
func EncodeAttributes(s attr.Spec) []byte {
	var out []byte
	out = appendAttr(out, flagTransitive, attrOrigin, []byte{byte(s.Origin)})
	if s.ASPath != nil {
		out = appendAttr(out, flagTransitive, attrASPath, encodeASPath(s.ASPath))
	}
	if s.NextHop.IsValid() {
		nh := s.NextHop.As4()
		out = appendAttr(out, flagTransitive, attrNextHop, nh[:])
	}
	medBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(medBuf, s.MED)
	out = appendAttr(out, flagOptional, attrMED, medBuf)

	lpBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lpBuf, s.LocalPref)
	out = appendAttr(out, flagTransitive, attrLocalPref, lpBuf)

	if s.AtomicAggregate {
		out = appendAttr(out, flagTransitive, attrAtomicAggregate, nil)
	}
	if s.Community != nil {
		var cv []byte
		for _, c := range s.Community.Values {
			b := make([]byte, 4)
			binary.BigEndian.PutUint32(b, c)
			cv = append(cv, b...)
		}
		out = appendAttr(out, flagOptional|flagTransitive, attrCommunity, cv)
	}
	if s.ExtCommunities != nil {
		var ev []byte
		for _, v := range s.ExtCommunities.Values {
			ev = append(ev, v[:]...)
		}
		out = appendAttr(out, flagOptional|flagTransitive, attrExtCommunities, ev)
	}
	if s.OriginatorID != 0 {
		oid := make([]byte, 4)
		binary.BigEndian.PutUint32(oid, uint32(s.OriginatorID))
		out = appendAttr(out, flagOptional, attrOriginatorID, oid)
	}
	if len(s.ClusterList) > 0 {
		var cl []byte
		for _, id := range s.ClusterList {
			b := make([]byte, 4)
			binary.BigEndian.PutUint32(b, uint32(id))
			cl = append(cl, b...)
		}
		out = appendAttr(out, flagOptional, attrClusterList, cl)
	}
	if s.PMSITunnelType != 0 || s.PMSILabel != 0 {
		v := []byte{0, s.PMSITunnelType, byte(s.PMSILabel >> 16), byte(s.PMSILabel >> 8), byte(s.PMSILabel)}
		out = appendAttr(out, flagOptional|flagTransitive, attrPMSITunnel, v)
	}
	return out
}

func encodeASPath(p *attr.ASPath) []byte {
	var out []byte
	for _, seg := range p.Segments {
		out = append(out, byte(seg.Type), byte(len(seg.ASNs)))
		for _, asn := range seg.ASNs {
			b := make([]byte, 4)
			binary.BigEndian.PutUint32(b, uint32(asn))
			out = append(out, b...)
		}
	}
	return out
}

func appendAttr(out []byte, flags, code byte, value []byte) []byte {
	if len(value) > 255 {
		flags |= flagExtLength
		out = append(out, flags, code, byte(len(value)>>8), byte(len(value)))
	} else {
		out = append(out, flags, code, byte(len(value)))
	}
	return append(out, value...)
}
