// Package table implements the partitioned route tables and path
// selection. One Table exists per (address family, routing
// instance); each Table shards its routes across a fixed number of
// partitions for parallelism.
//
// Grounded on original_source/src/bgp/bgp_route.cc (generic BgpRoute) and
// its per-family specializations (inet_table.cc, inet6_table.cc,
// l3vpn/*, evpn/evpn_table.cc, enet/enet_table.cc,
// inetmcast/inetmcast_table.cc); the Adj-RIB-In/Loc-RIB/Adj-RIB-Out
// terminology used in the doc comments below follows RFC 4271 §3.2.
package table

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/contrail/controlnode/bgp"
)

// RouteKey is the opaque prefix value plus its family tag.
// Each address family has its own RouteKey type, all defined in this
// file; wire decoding of NLRI lives in the message package.
type RouteKey interface {
	Family() bgp.Family
	// Bytes is the canonical, comparable encoding used as the partition
	// index key and as the sort key within a partition.
	Bytes() []byte
	String() string
}

// Less gives RouteKeys of the same family a deterministic order, for
// callers that need a deterministic walk order.
func Less(a, b RouteKey) bool {
	return bytes.Compare(a.Bytes(), b.Bytes()) < 0
}

// InetKey is the "inet" (IPv4 unicast) route key: a plain prefix,
// RFC 4271 §4.3 NLRI encoding.
type InetKey struct{ Prefix netip.Prefix }

func (k InetKey) Family() bgp.Family { return bgp.FamilyInet }
func (k InetKey) String() string     { return k.Prefix.String() }
func (k InetKey) Bytes() []byte {
	addr := k.Prefix.Addr().As4()
	return append([]byte{byte(k.Prefix.Bits())}, addr[:]...)
}

// Inet6Key is the) route key.
type Inet6Key struct{ Prefix netip.Prefix }

func (k Inet6Key) Family() bgp.Family { return bgp.FamilyInet6 }
func (k Inet6Key) String() string     { return k.Prefix.String() }
func (k Inet6Key) Bytes() []byte {
	addr := k.Prefix.Addr().As16()
	return append([]byte{byte(k.Prefix.Bits())}, addr[:]...)
}

// RD is an 8-byte route distinguisher.
type RD [8]byte

func (r RD) String() string {
	asn := binary.BigEndian.Uint16(r[0:2])
	val := binary.BigEndian.Uint32(r[4:8])
	return fmt.Sprintf("%d:%d", asn, val)
}

// InetVPNKey is the "inet-vpn" route key: an RD-prefixed IPv4 prefix
// (RFC 4364).
type InetVPNKey struct {
	RD     RD
	Prefix netip.Prefix
}

func (k InetVPNKey) Family() bgp.Family { return bgp.FamilyInetVPN }
func (k InetVPNKey) String() string     { return k.RD.String() + ":" + k.Prefix.String() }
func (k InetVPNKey) Bytes() []byte {
	addr := k.Prefix.Addr().As4()
	b := append([]byte{}, k.RD[:]...)
	b = append(b, byte(k.Prefix.Bits()))
	return append(b, addr[:]...)
}

// Inet6VPNKey is the "inet6-vpn" route key.
type Inet6VPNKey struct {
	RD     RD
	Prefix netip.Prefix
}

func (k Inet6VPNKey) Family() bgp.Family { return bgp.FamilyInet6VPN }
func (k Inet6VPNKey) String() string     { return k.RD.String() + ":" + k.Prefix.String() }
func (k Inet6VPNKey) Bytes() []byte {
	addr := k.Prefix.Addr().As16()
	b := append([]byte{}, k.RD[:]...)
	b = append(b, byte(k.Prefix.Bits()))
	return append(b, addr[:]...)
}

// RTargetKey is the route-target NLRI: AS(4) || target(8).
type RTargetKey struct {
	OriginAS uint32
	Target   [8]byte
}

func (k RTargetKey) Family() bgp.Family { return bgp.FamilyRTarget }
func (k RTargetKey) String() string {
	return fmt.Sprintf("%d:target:%x", k.OriginAS, k.Target)
}
func (k RTargetKey) Bytes() []byte {
	var b [12]byte
	binary.BigEndian.PutUint32(b[0:4], k.OriginAS)
	copy(b[4:12], k.Target[:])
	return b[:]
}

// EVPNKey is the "evpn" key: RD + MAC + optional IP, within a route
// type (this core only needs MAC/IP advertisement routes).
type EVPNKey struct {
	RD       RD
	ESI      [10]byte
	ETag     uint32
	MAC      [6]byte
	IP       netip.Addr // zero Addr when the route carries no IP
}

func (k EVPNKey) Family() bgp.Family { return bgp.FamilyEVPN }
func (k EVPNKey) String() string {
	if k.IP.IsValid() {
		return fmt.Sprintf("%s:%x:%s", k.RD, k.MAC, k.IP)
	}
	return fmt.Sprintf("%s:%x", k.RD, k.MAC)
}
func (k EVPNKey) Bytes() []byte {
	b := append([]byte{}, k.RD[:]...)
	b = append(b, k.ESI[:]...)
	var et [4]byte
	binary.BigEndian.PutUint32(et[:], k.ETag)
	b = append(b, et[:]...)
	b = append(b, k.MAC[:]...)
	if k.IP.IsValid() {
		ip16 := k.IP.As16()
		b = append(b, ip16[:]...)
	}
	return b
}

// ErmVPNKey is the "erm-vpn" multicast key: RD + (source, group) plus
// the originating router's address, which the multicast tree manager
// treats as the leaf identity.
type ErmVPNKey struct {
	RD     RD
	Source netip.Addr
	Group  netip.Addr
	Router netip.Addr
}

func (k ErmVPNKey) Family() bgp.Family { return bgp.FamilyErmVPN }
func (k ErmVPNKey) String() string {
	return fmt.Sprintf("%s:(%s,%s):%s", k.RD, k.Source, k.Group, k.Router)
}
func (k ErmVPNKey) Bytes() []byte {
	b := append([]byte{}, k.RD[:]...)
	s, g, r := k.Source.As16(), k.Group.As16(), k.Router.As16()
	b = append(b, s[:]...)
	b = append(b, g[:]...)
	b = append(b, r[:]...)
	return b
}

// SG is the (source, group) multicast identity an ErmVPNKey belongs to,
// used by the McastMgr to bucket leaves into McastSgEntry objects.
func (k ErmVPNKey) SG() SG { return SG{Source: k.Source, Group: k.Group} }

// SG identifies a multicast distribution-tree entry.
type SG struct {
	Source netip.Addr
	Group  netip.Addr
}

func (sg SG) String() string { return fmt.Sprintf("(%s,%s)", sg.Source, sg.Group) }

// EnetKey is the "enet" (per-instance layer-2) key: a bare MAC+IP pair,
// no RD (enet routes live within a single instance's table, not the
// VPN fabric).
type EnetKey struct {
	MAC [6]byte
	IP  netip.Addr
}

func (k EnetKey) Family() bgp.Family { return bgp.FamilyEnet }
func (k EnetKey) String() string {
	if k.IP.IsValid() {
		return fmt.Sprintf("%x:%s", k.MAC, k.IP)
	}
	return fmt.Sprintf("%x", k.MAC)
}
func (k EnetKey) Bytes() []byte {
	b := append([]byte{}, k.MAC[:]...)
	if k.IP.IsValid() {
		ip16 := k.IP.As16()
		b = append(b, ip16[:]...)
	}
	return b
}
