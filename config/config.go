// Package config holds the already-decoded configuration structs the
// core consumes from an out-of-scope configuration backend. No parser
// lives here; callers build these directly or decode them from
// whatever schema their deployment uses.
package config

import (
	"net/netip"
	"time"

	"github.com/google/uuid"

	"github.com/contrail/controlnode/bgp"
)

// ServiceChainConfig names a service-chain policy attached to an
// instance.
type ServiceChainConfig struct {
	Name        string
	SourceRT    string
	Destination netip.Prefix
}

// StaticRouteConfig is one statically-configured route an instance
// originates.
type StaticRouteConfig struct {
	Prefix        netip.Prefix
	NextHop       netip.Addr
	CommunityList []string
}

// InstanceConfig describes one routing instance.
type InstanceConfig struct {
	Name               string
	ImportRTSet        []string
	ExportRTSet        []string
	AddressFamilies    []bgp.Family
	VirtualNetworkName string
	VNIndex            int
	StaticRoutes       []StaticRouteConfig
	ServiceChain       []ServiceChainConfig
	PolicyRefs         []string
}

// ProtocolConfig describes the per-instance BGP protocol settings.
type ProtocolConfig struct {
	Instance        string
	LocalAS         bgp.ASN
	LocalIdentifier bgp.Identifier
	HoldTime        time.Duration
	Port            uint16
}

// AddressFamilyAttributes carries per-family negotiation knobs for one
// neighbor (add-path mode, loop-count override, and similar per-family
// settings the original keeps alongside the bare family list).
type AddressFamilyAttributes struct {
	Family       bgp.Family
	AddPath      bool
	LoopCount    int
}

// NeighborConfig describes one configured peer. UUID
// addresses the neighbor over the compute-agent pub/sub channel.
type NeighborConfig struct {
	Name                string
	UUID                uuid.UUID
	Instance            string
	PeerAS              bgp.ASN
	PeerAddress         netip.Addr
	Port                uint16
	HoldTime            time.Duration
	LocalAS             bgp.ASN
	LocalIdentifier     bgp.Identifier
	AuthKeys            []string
	AddressFamilies     []bgp.Family
	FamilyAttributes    []AddressFamilyAttributes
	AdminDown           bool
	Passive             bool
	ASOverride          bool
	GracefulRestart     bool
	LongLivedGraceful   bool
}

// PolicyMatch describes what a policy term matches against
// (PolicyConfig.terms[].match).
type PolicyMatch struct {
	Community string
	Prefix    netip.Prefix
	Protocol  string
}

// PolicyActionKind is one of Accept/Reject/NextTerm.
type PolicyActionKind int

const (
	PolicyAccept PolicyActionKind = iota
	PolicyReject
	PolicyNextTerm
)

// PolicyAction describes what happens when a term's match succeeds,
// with the optional attribute rewrites the original supports.
type PolicyAction struct {
	Kind             PolicyActionKind
	SetCommunity     []string
	SetLocalPref     *uint32
	SetMED           *uint32
}

// PolicyTerm is one match/action pair within a PolicyConfig.
type PolicyTerm struct {
	Match  PolicyMatch
	Action PolicyAction
}

// PolicyConfig names a reusable routing policy.
type PolicyConfig struct {
	Name  string
	Terms []PolicyTerm
}
