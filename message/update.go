package message

import (
	"encoding/binary"
	"net/netip"

	"github.com/contrail/controlnode/attr"
	"github.com/contrail/controlnode/bgp"
	"github.com/contrail/controlnode/bgperr"
	"github.com/contrail/controlnode/table"
)

// Update is the decoded result of one UPDATE message: the set of
// withdrawn keys, the set of reachable keys sharing one attribute set,
// and (for labeled families) the per-NLRI label.
type Update struct {
	Withdrawn []table.RouteKey
	NLRI      []table.RouteKey
	Labels    map[string]uint32 // keyed by RouteKey.String(), only for labeled families
	Attr      *attr.Attr        // nil when Update carries only withdrawals
}

// DecodeUpdate parses body (the bytes after the fixed header) into an
// Update, interning the attached attribute set into db. Grounded on
// original_source/src/bgp/bgp_attr.cc's attribute decode switch and the
// per-family NLRI shapes bgp_route.cc's specializations define.
func DecodeUpdate(body []byte, db *attr.Db) (*Update, error) {
	if len(body) < 2 {
		return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubMalformedAttributeList,
			"UPDATE shorter than withdrawn-length field", nil)
	}
	withdrawnLen := int(binary.BigEndian.Uint16(body[0:2]))
	body = body[2:]
	if len(body) < withdrawnLen {
		return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubInvalidNetworkField,
			"withdrawn routes field truncated", nil)
	}
	withdrawn, err := decodeInetNLRI(body[:withdrawnLen])
	if err != nil {
		return nil, err
	}
	body = body[withdrawnLen:]

	if len(body) < 2 {
		return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubMalformedAttributeList,
			"UPDATE shorter than path-attribute-length field", nil)
	}
	attrLen := int(binary.BigEndian.Uint16(body[0:2]))
	body = body[2:]
	if len(body) < attrLen {
		return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubAttribLengthError,
			"path attribute field truncated", nil)
	}
	attrBytes, nlriBytes := body[:attrLen], body[attrLen:]

	decoded, err := DecodeAttributes(attrBytes)
	if err != nil {
		return nil, err
	}

	u := &Update{Withdrawn: withdrawnKeys(withdrawn), Labels: map[string]uint32{}}

	var reach []table.RouteKey
	reach = append(reach, inetKeysFromPrefixes(mustDecodeInet(nlriBytes))...)

	if decoded.hasMPUnreach {
		keys, err := decodeMPNLRI(decoded.mpUnreachFamily, decoded.mpUnreach, u.Labels)
		if err != nil {
			return nil, err
		}
		u.Withdrawn = append(u.Withdrawn, keys...)
	}
	if decoded.hasMPReach {
		keys, nextHop, err := decodeMPReach(decoded.mpReachFamily, decoded.mpReach, u.Labels)
		if err != nil {
			return nil, err
		}
		reach = append(reach, keys...)
		if nextHop.IsValid() {
			decoded.spec.NextHop = nextHop
		}
	}
	u.NLRI = reach

	if len(reach) > 0 {
		u.Attr = db.Locate(decoded.spec)
	}
	return u, nil
}

func withdrawnKeys(prefixes []netip.Prefix) []table.RouteKey {
	return inetKeysFromPrefixes(prefixes)
}

func inetKeysFromPrefixes(prefixes []netip.Prefix) []table.RouteKey {
	out := make([]table.RouteKey, 0, len(prefixes))
	for _, p := range prefixes {
		if p.Addr().Is4() {
			out = append(out, table.InetKey{Prefix: p})
		} else {
			out = append(out, table.Inet6Key{Prefix: p})
		}
	}
	return out
}

func mustDecodeInet(b []byte) []netip.Prefix {
	p, _ := decodeInetNLRI(b)
	return p
}

// decodeInetNLRI parses the classic (non-MP) NLRI encoding: a sequence
// of (length(1)|prefix(variable, IPv4-shaped)) entries.
func decodeInetNLRI(b []byte) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for len(b) > 0 {
		bits := int(b[0])
		b = b[1:]
		nbytes := (bits + 7) / 8
		if nbytes > 4 || len(b) < nbytes {
			return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubInvalidNetworkField,
				"malformed NLRI prefix length", nil)
		}
		var addrBytes [4]byte
		copy(addrBytes[:], b[:nbytes])
		b = b[nbytes:]
		addr := netip.AddrFrom4(addrBytes)
		out = append(out, netip.PrefixFrom(addr, bits))
	}
	return out, nil
}

// decodeMPReach parses an MP_REACH_NLRI value: AFI(2)|SAFI(1)|nh-
// len(1)|nh|reserved(1)|nlri. For labeled families (SAFI 128, inet-vpn)
// each NLRI entry is label(3)|RD(8)|prefix, matching RFC 3107/4364.
func decodeMPReach(f bgp.Family, v []byte, labels map[string]uint32) ([]table.RouteKey, netip.Addr, error) {
	if len(v) < 5 {
		return nil, netip.Addr{}, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubOptionalAttribError,
			"MP_REACH_NLRI too short", nil)
	}
	nhLen := int(v[3])
	if len(v) < 4+nhLen+1 {
		return nil, netip.Addr{}, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubOptionalAttribError,
			"MP_REACH_NLRI next-hop truncated", nil)
	}
	var nextHop netip.Addr
	if nhLen == 4 {
		var a [4]byte
		copy(a[:], v[4:8])
		nextHop = netip.AddrFrom4(a)
	} else if nhLen == 16 {
		var a [16]byte
		copy(a[:], v[4:20])
		nextHop = netip.AddrFrom16(a)
	}
	rest := v[4+nhLen+1:] // skip next-hop and the 1-byte reserved/SNPA-count field
	keys, err := decodeFamilyNLRI(f, rest, labels)
	return keys, nextHop, err
}

func decodeMPNLRI(f bgp.Family, v []byte, labels map[string]uint32) ([]table.RouteKey, error) {
	return decodeFamilyNLRI(f, v, labels)
}

func decodeFamilyNLRI(f bgp.Family, b []byte, labels map[string]uint32) ([]table.RouteKey, error) {
	switch f {
	case bgp.FamilyInet:
		prefixes, err := decodeInetNLRI(b)
		return inetKeysFromPrefixes(prefixes), err
	case bgp.FamilyInet6:
		return decodeInet6NLRI(b)
	case bgp.FamilyInetVPN:
		return decodeLabeledVPN(b, labels, false)
	case bgp.FamilyInet6VPN:
		return decodeLabeledVPN(b, labels, true)
	case bgp.FamilyRTarget:
		return decodeRTargetNLRI(b)
	default:
		// Other families (evpn, erm-vpn, enet) are not decoded: their
		// NLRI yields no route keys.
		return nil, nil
	}
}

func decodeInet6NLRI(b []byte) ([]table.RouteKey, error) {
	var out []table.RouteKey
	for len(b) > 0 {
		bits := int(b[0])
		b = b[1:]
		nbytes := (bits + 7) / 8
		if nbytes > 16 || len(b) < nbytes {
			return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubInvalidNetworkField,
				"malformed IPv6 NLRI prefix length", nil)
		}
		var addrBytes [16]byte
		copy(addrBytes[:], b[:nbytes])
		b = b[nbytes:]
		out = append(out, table.Inet6Key{Prefix: netip.PrefixFrom(netip.AddrFrom16(addrBytes), bits)})
	}
	return out, nil
}

// decodeLabeledVPN parses RFC 3107/4364 label(3)|RD(8)|prefix entries.
func decodeLabeledVPN(b []byte, labels map[string]uint32, v6 bool) ([]table.RouteKey, error) {
	var out []table.RouteKey
	addrBytes := 4
	if v6 {
		addrBytes = 16
	}
	for len(b) > 0 {
		if len(b) < 1 {
			return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubInvalidNetworkField, "truncated labeled-VPN NLRI", nil)
		}
		totalBits := int(b[0])
		b = b[1:]
		label := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
		b = b[3:]
		rdBits := 64
		var rd table.RD
		copy(rd[:], b[:8])
		b = b[8:]
		prefixBits := totalBits - rdBits - 24
		if prefixBits < 0 {
			return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubInvalidNetworkField, "negative prefix length in labeled-VPN NLRI", nil)
		}
		nbytes := (prefixBits + 7) / 8
		if nbytes > addrBytes || len(b) < nbytes {
			return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubInvalidNetworkField, "labeled-VPN NLRI prefix truncated", nil)
		}
		var buf [16]byte
		copy(buf[:], b[:nbytes])
		b = b[nbytes:]

		var key table.RouteKey
		if v6 {
			k := table.Inet6VPNKey{RD: rd, Prefix: netip.PrefixFrom(netip.AddrFrom16(buf), prefixBits)}
			key = k
		} else {
			var a4 [4]byte
			copy(a4[:], buf[:4])
			k := table.InetVPNKey{RD: rd, Prefix: netip.PrefixFrom(netip.AddrFrom4(a4), prefixBits)}
			key = k
		}
		labels[key.String()] = label
		out = append(out, key)
	}
	return out, nil
}

func decodeRTargetNLRI(b []byte) ([]table.RouteKey, error) {
	var out []table.RouteKey
	for len(b) > 0 {
		if len(b) < 1 {
			return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubInvalidNetworkField, "truncated route-target NLRI", nil)
		}
		bits := int(b[0])
		b = b[1:]
		nbytes := (bits + 7) / 8
		if len(b) < nbytes || nbytes > 12 {
			return nil, bgperr.Decode(bgperr.CodeUpdateMessage, bgperr.SubInvalidNetworkField, "malformed route-target NLRI", nil)
		}
		var buf [12]byte
		copy(buf[:], b[:nbytes])
		b = b[nbytes:]
		k := table.RTargetKey{OriginAS: binary.BigEndian.Uint32(buf[0:4])}
		copy(k.Target[:], buf[4:12])
		out = append(out, k)
	}
	return out, nil
}

// EncodeUpdate serializes an Update into a complete UPDATE message.
// Only the classic withdrawn-routes and NLRI prefix fields are
// produced; no MP_REACH_NLRI or MP_UNREACH_NLRI attribute is encoded,
// so labeled, VPN and rtarget routes are not sent through it.
func EncodeUpdate(withdrawn []netip.Prefix, nlri []netip.Prefix, spec attr.Spec) []byte {
	body := encodePrefixList(withdrawn)
	lenField := make([]byte, 2)
	binary.BigEndian.PutUint16(lenField, uint16(len(body)))
	out := append(lenField, body...)

	attrBytes := EncodeAttributes(spec)
	attrLenField := make([]byte, 2)
	binary.BigEndian.PutUint16(attrLenField, uint16(len(attrBytes)))
	out = append(out, attrLenField...)
	out = append(out, attrBytes...)
	out = append(out, encodePrefixList(nlri)...)
	return EncodeHeader(TypeUpdate, out)
}

func encodePrefixList(prefixes []netip.Prefix) []byte {
	var out []byte
	for _, p := range prefixes {
		out = append(out, byte(p.Bits()))
		nbytes := (p.Bits() + 7) / 8
		if p.Addr().Is4() {
			b := p.Addr().As4()
			out = append(out, b[:nbytes]...)
		} else {
			b := p.Addr().As16()
			out = append(out, b[:nbytes]...)
		}
	}
	return out
}
