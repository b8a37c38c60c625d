package attr

import "github.com/cespare/xxhash/v2"

// xxhashSum is the stable content hash a content-addressed interning
// store needs for expected-O(1) lookup. Every sub-interned component
// folds its own hash into the aggregate Attr hash via this same
// function, so two equal sub-components always fold to the same bits
// no matter which field holds them.
func xxhashSum(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// hashCombine folds a sub-attribute's hash into an aggregate, boost-style.
// Every sub-interned component (AS-path, community, ext-community) is
// folded into the owning Attr's hash this way, ("The hash
// folds sub-attribute hashes of the sub-interned components").
func hashCombine(h uint64, v uint64) uint64 {
	h ^= v + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)
	return h
}
