package message

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contrail/controlnode/attr"
	"github.com/contrail/controlnode/bgp"
)

func TestHeaderRoundTrip(t *testing.T) {
	raw := EncodeHeader(TypeKeepalive, nil)
	hdr, body, err := DecodeHeader(raw)
	require.NoError(t, err)
	assert.Equal(t, TypeKeepalive, hdr.Type)
	assert.Empty(t, body)
}

func TestDecodeHeaderRejectsBadMarker(t *testing.T) {
	raw := EncodeHeader(TypeKeepalive, nil)
	raw[0] = 0x00
	_, _, err := DecodeHeader(raw)
	require.Error(t, err)
}

func TestOpenRoundTrip(t *testing.T) {
	o := &Open{
		Version:       bgp.CurrentVersion,
		MyAS:          65001,
		HoldTime:      90,
		BgpIdentifier: bgp.Identifier(0x0a000001),
		Capabilities: []Capability{
			{Code: CapFourOctetAS, Value: EncodeFourOctetAS(65001)},
			{Code: CapMultiprotocol, Value: EncodeMultiprotocol(bgp.FamilyInet)},
		},
	}
	raw := o.Encode()
	decoded, err := DecodeOpen(raw)
	require.NoError(t, err)
	assert.Equal(t, o.MyAS, decoded.MyAS)
	assert.Equal(t, o.HoldTime, decoded.HoldTime)
	assert.Equal(t, o.BgpIdentifier, decoded.BgpIdentifier)
	require.Len(t, decoded.Capabilities, 2)

	asn, ok := FourOctetASValue(decoded.Capabilities[0].Value)
	require.True(t, ok)
	assert.Equal(t, bgp.ASN(65001), asn)

	family, ok := MultiprotocolValue(decoded.Capabilities[1].Value)
	require.True(t, ok)
	assert.Equal(t, bgp.FamilyInet, family)
}

func TestOpenRejectsUnsupportedVersion(t *testing.T) {
	o := &Open{Version: 5}
	err := o.Validate(90)
	require.Error(t, err)
}

func TestUpdateDecodesClassicInetNLRI(t *testing.T) {
	spec := attr.Spec{
		Origin:    attr.OriginIGP,
		LocalPref: 100,
		NextHop:   netip.MustParseAddr("10.0.0.1"),
		ASPath:    &attr.ASPath{Segments: []attr.Segment{{Type: attr.SegmentSequence, ASNs: []bgp.ASN{65001}}}},
	}
	prefix := netip.MustParsePrefix("192.0.2.0/24")
	raw := EncodeUpdate(nil, []netip.Prefix{prefix}, spec)

	_, body, err := DecodeHeader(raw)
	require.NoError(t, err)

	db := attr.New()
	u, err := DecodeUpdate(body, db)
	require.NoError(t, err)
	require.Len(t, u.NLRI, 1)
	assert.Equal(t, prefix.String(), u.NLRI[0].String())
	require.NotNil(t, u.Attr)
	assert.Equal(t, uint32(100), u.Attr.LocalPref())
	assert.Equal(t, netip.MustParseAddr("10.0.0.1"), u.Attr.NextHop())
}

func TestUpdateDecodesWithdrawnOnly(t *testing.T) {
	prefix := netip.MustParsePrefix("203.0.113.0/24")
	raw := EncodeUpdate([]netip.Prefix{prefix}, nil, attr.Spec{})

	_, body, err := DecodeHeader(raw)
	require.NoError(t, err)

	db := attr.New()
	u, err := DecodeUpdate(body, db)
	require.NoError(t, err)
	require.Len(t, u.Withdrawn, 1)
	assert.Nil(t, u.Attr)
}

func TestNotificationRoundTrip(t *testing.T) {
	n := &Notification{Code: 6, Subcode: 7}
	raw := n.Encode()
	_, body, err := DecodeHeader(raw)
	require.NoError(t, err)
	decoded, err := DecodeNotification(body)
	require.NoError(t, err)
	assert.Equal(t, n.Code, decoded.Code)
	assert.Equal(t, n.Subcode, decoded.Subcode)
}
