// Package message implements the RFC 4271 wire codec: the 16-byte
// marker header, OPEN (with capability negotiation), UPDATE (NLRI plus
// path attributes, feeding attr.Db.Locate directly), NOTIFICATION and
// KEEPALIVE.
//
// Grounded on original_source/src/bgp/bgp_attr.cc's attribute decode
// switch for the flags(1)|code(1)|length(1|2)|value codec, with the
// header-field doc-comment style and byte-slicing-via-small-stream-helper
// approach carried from conventional BGP wire-codec packages.
package message

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/contrail/controlnode/bgperr"
)

// Type is the 1-octet BGP message type.
type Type byte

const (
	TypeOpen         Type = 1
	TypeUpdate       Type = 2
	TypeNotification Type = 3
	TypeKeepalive    Type = 4
)

func (t Type) String() string {
	switch t {
	case TypeOpen:
		return "OPEN"
	case TypeUpdate:
		return "UPDATE"
	case TypeNotification:
		return "NOTIFICATION"
	case TypeKeepalive:
		return "KEEPALIVE"
	default:
		return fmt.Sprintf("type(%d)", byte(t))
	}
}

// markerSize is the 16-byte all-ones marker every message begins with.
const markerSize = 16

// headerSize is the fixed marker+length+type prefix every message
// carries.
const headerSize = markerSize + 2 + 1

// MinMessageLength and MaxMessageLength bound the BGP Length field.
const (
	MinMessageLength = 19
	MaxMessageLength = 4096
)

// Header is the decoded fixed-size message prefix.
type Header struct {
	Length uint16
	Type   Type
}

var marker = bytes.Repeat([]byte{0xFF}, markerSize)

// EncodeHeader writes the marker, the total length (header + len(body)),
// and typ, followed by body.
func EncodeHeader(typ Type, body []byte) []byte {
	total := headerSize + len(body)
	buf := make([]byte, 0, total)
	buf = append(buf, marker...)
	lenField := make([]byte, 2)
	binary.BigEndian.PutUint16(lenField, uint16(total))
	buf = append(buf, lenField...)
	buf = append(buf, byte(typ))
	buf = append(buf, body...)
	return buf
}

// DecodeHeader validates the marker and length field and returns the
// parsed Header plus the message body (everything after the 19-byte
// fixed prefix).
func DecodeHeader(raw []byte) (Header, []byte, error) {
	if len(raw) < headerSize {
		return Header{}, nil, bgperr.Decode(bgperr.CodeMessageHeader, bgperr.SubBadMessageLength,
			"message shorter than fixed header", nil)
	}
	if !bytes.Equal(raw[:markerSize], marker) {
		return Header{}, nil, bgperr.Decode(bgperr.CodeMessageHeader, bgperr.SubConnectionNotSynchronized,
			"marker is not all-ones", nil)
	}
	length := binary.BigEndian.Uint16(raw[markerSize : markerSize+2])
	if length < MinMessageLength || length > MaxMessageLength {
		return Header{}, nil, bgperr.Decode(bgperr.CodeMessageHeader, bgperr.SubBadMessageLength,
			fmt.Sprintf("length %d out of range", length), nil)
	}
	if int(length) > len(raw) {
		return Header{}, nil, bgperr.Decode(bgperr.CodeMessageHeader, bgperr.SubBadMessageLength,
			"length field exceeds buffered bytes", nil)
	}
	typ := Type(raw[markerSize+2])
	switch typ {
	case TypeOpen, TypeUpdate, TypeNotification, TypeKeepalive:
	default:
		return Header{}, nil, bgperr.Decode(bgperr.CodeMessageHeader, bgperr.SubBadMessageType,
			fmt.Sprintf("unknown message type %d", typ), nil)
	}
	return Header{Length: length, Type: typ}, raw[headerSize:length], nil
}
