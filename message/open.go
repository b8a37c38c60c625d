package message

import (
	"encoding/binary"

	"github.com/contrail/controlnode/bgp"
	"github.com/contrail/controlnode/bgperr"
)

// 4.2.  OPEN Message Format
//    After a TCP connection is established, the first message sent by
//    each side is an OPEN message. If the OPEN message is acceptable,
//    a KEEPALIVE message confirming the OPEN is sent back.
type Open struct {
	Version       bgp.Version
	MyAS          bgp.ASN // 16-bit on the wire unless AS4 capability is present
	HoldTime      uint16
	BgpIdentifier bgp.Identifier
	Capabilities  []Capability
}

// ParamType is an OPEN optional-parameter type (RFC 4271 §4.2 / RFC
// 5492).
const paramTypeCapability = 2

// CapabilityCode identifies one OPEN capability this core must encode
// and decode.
type CapabilityCode byte

const (
	CapMultiprotocol        CapabilityCode = 1
	CapRouteRefresh         CapabilityCode = 2
	CapGracefulRestart      CapabilityCode = 64
	CapFourOctetAS          CapabilityCode = 65
	CapEnhancedRouteRefresh CapabilityCode = 70
	CapLongLivedGraceful    CapabilityCode = 71
	CapAddPath              CapabilityCode = 69
)

// Capability is one decoded capability advertisement.
type Capability struct {
	Code  CapabilityCode
	Value []byte
}

// MultiprotocolValue decodes a CapMultiprotocol capability's value into
// an AFI/SAFI pair.
func MultiprotocolValue(v []byte) (bgp.Family, bool) {
	if len(v) < 4 {
		return bgp.Family{}, false
	}
	afi := binary.BigEndian.Uint16(v[0:2])
	safi := v[3]
	return bgp.Family{AFI: bgp.AFI(afi), SAFI: bgp.SAFI(safi)}, true
}

// EncodeMultiprotocol builds the 4-byte value of a CapMultiprotocol
// capability.
func EncodeMultiprotocol(f bgp.Family) []byte {
	v := make([]byte, 4)
	binary.BigEndian.PutUint16(v[0:2], uint16(f.AFI))
	v[2] = 0
	v[3] = byte(f.SAFI)
	return v
}

// GracefulRestartValue decodes a CapGracefulRestart capability's value:
// a 2-byte (restart-flag(1)|time(12)) field followed by zero or more
// (AFI(2)|SAFI(1)|flags(1)) per-family entries.
type GracefulRestartValue struct {
	RestartState bool
	RestartTime  uint16
	Families     []bgp.Family
}

func DecodeGracefulRestart(v []byte) (GracefulRestartValue, bool) {
	if len(v) < 2 {
		return GracefulRestartValue{}, false
	}
	word := binary.BigEndian.Uint16(v[0:2])
	out := GracefulRestartValue{
		RestartState: word&0x8000 != 0,
		RestartTime:  word & 0x0FFF,
	}
	rest := v[2:]
	for len(rest) >= 4 {
		afi := binary.BigEndian.Uint16(rest[0:2])
		safi := rest[3]
		out.Families = append(out.Families, bgp.Family{AFI: bgp.AFI(afi), SAFI: bgp.SAFI(safi)})
		rest = rest[4:]
	}
	return out, true
}

func EncodeGracefulRestart(v GracefulRestartValue) []byte {
	buf := make([]byte, 2, 2+4*len(v.Families))
	word := v.RestartTime & 0x0FFF
	if v.RestartState {
		word |= 0x8000
	}
	binary.BigEndian.PutUint16(buf[0:2], word)
	for _, f := range v.Families {
		entry := make([]byte, 4)
		binary.BigEndian.PutUint16(entry[0:2], uint16(f.AFI))
		entry[2] = 0
		entry[3] = byte(f.SAFI)
		buf = append(buf, entry...)
	}
	return buf
}

// FourOctetASValue decodes a CapFourOctetAS capability's value.
func FourOctetASValue(v []byte) (bgp.ASN, bool) {
	if len(v) < 4 {
		return 0, false
	}
	return bgp.ASN(binary.BigEndian.Uint32(v[0:4])), true
}

func EncodeFourOctetAS(asn bgp.ASN) []byte {
	v := make([]byte, 4)
	binary.BigEndian.PutUint32(v, uint32(asn))
	return v
}

// DecodeOpen parses body (the bytes after the fixed header) into an
// Open message.
func DecodeOpen(body []byte) (*Open, error) {
	if len(body) < 10 {
		return nil, bgperr.Decode(bgperr.CodeOpenMessage, bgperr.SubUnsupportedVersion,
			"OPEN shorter than fixed fields", nil)
	}
	o := &Open{
		Version:       bgp.Version(body[0]),
		MyAS:          bgp.ASN(binary.BigEndian.Uint16(body[1:3])),
		HoldTime:      binary.BigEndian.Uint16(body[3:5]),
		BgpIdentifier: bgp.Identifier(binary.BigEndian.Uint32(body[5:9])),
	}
	optLen := int(body[9])
	rest := body[10:]
	if len(rest) < optLen {
		return nil, bgperr.Decode(bgperr.CodeOpenMessage, bgperr.SubUnsupportedOptionalParam,
			"optional parameters length exceeds message", nil)
	}
	caps, err := decodeParameters(rest[:optLen])
	if err != nil {
		return nil, err
	}
	o.Capabilities = caps
	return o, nil
}

func decodeParameters(b []byte) ([]Capability, error) {
	var caps []Capability
	for len(b) > 0 {
		if len(b) < 2 {
			return nil, bgperr.Decode(bgperr.CodeOpenMessage, bgperr.SubUnsupportedOptionalParam,
				"truncated optional parameter", nil)
		}
		ptype, plen := b[0], int(b[1])
		if len(b) < 2+plen {
			return nil, bgperr.Decode(bgperr.CodeOpenMessage, bgperr.SubUnsupportedOptionalParam,
				"optional parameter value truncated", nil)
		}
		value := b[2 : 2+plen]
		if ptype == paramTypeCapability {
			more, err := decodeCapabilities(value)
			if err != nil {
				return nil, err
			}
			caps = append(caps, more...)
		}
		b = b[2+plen:]
	}
	return caps, nil
}

func decodeCapabilities(b []byte) ([]Capability, error) {
	var caps []Capability
	for len(b) > 0 {
		if len(b) < 2 {
			return nil, bgperr.Decode(bgperr.CodeOpenMessage, bgperr.SubUnsupportedOptionalParam,
				"truncated capability", nil)
		}
		code, clen := CapabilityCode(b[0]), int(b[1])
		if len(b) < 2+clen {
			return nil, bgperr.Decode(bgperr.CodeOpenMessage, bgperr.SubUnsupportedOptionalParam,
				"capability value truncated", nil)
		}
		caps = append(caps, Capability{Code: code, Value: append([]byte(nil), b[2:2+clen]...)})
		b = b[2+clen:]
	}
	return caps, nil
}

// Encode serializes o into an OPEN message body (the fixed fields plus
// a single capability-bearing optional parameter).
func (o *Open) Encode() []byte {
	body := make([]byte, 0, 10)
	body = append(body, byte(o.Version))
	as16 := make([]byte, 2)
	binary.BigEndian.PutUint16(as16, uint16(o.MyAS))
	body = append(body, as16...)
	hold := make([]byte, 2)
	binary.BigEndian.PutUint16(hold, o.HoldTime)
	body = append(body, hold...)
	id := make([]byte, 4)
	binary.BigEndian.PutUint32(id, uint32(o.BgpIdentifier))
	body = append(body, id...)

	var caps []byte
	for _, c := range o.Capabilities {
		caps = append(caps, byte(c.Code), byte(len(c.Value)))
		caps = append(caps, c.Value...)
	}
	var params []byte
	if len(caps) > 0 {
		params = append(params, paramTypeCapability, byte(len(caps)))
		params = append(params, caps...)
	}
	body = append(body, byte(len(params)))
	body = append(body, params...)
	return body
}

// Validate checks o against the local side's expectations, returning
// the NOTIFICATION to send when invalid ( OPEN Message
// Error Handling).
func (o *Open) Validate(localHoldTime uint16) error {
	if o.Version != bgp.CurrentVersion {
		return bgperr.Protocol(bgperr.CodeOpenMessage, bgperr.SubUnsupportedVersion, "unsupported BGP version")
	}
	if o.HoldTime > 0 && o.HoldTime < 3 {
		return bgperr.Protocol(bgperr.CodeOpenMessage, bgperr.SubUnacceptableHoldTime, "hold time below 3 seconds")
	}
	_ = localHoldTime
	return nil
}

// NegotiatedHoldTime returns the smaller of the local and remote hold
// times, per RFC 4271 §4.2.
func NegotiatedHoldTime(local, remote uint16) uint16 {
	if local < remote {
		return local
	}
	return remote
}
