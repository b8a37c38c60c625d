package instance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/contrail/controlnode/attr"
)

// ParseRouteTarget decodes the "target:asn:value" textual convention
// used for import/export RT sets into the canonical 8-byte extended
// community encoding (attr.RouteTarget).
func ParseRouteTarget(s string) (attr.ExtCommunityValue, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 || parts[0] != "target" {
		return attr.ExtCommunityValue{}, fmt.Errorf("instance: malformed route-target %q", s)
	}
	asn, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return attr.ExtCommunityValue{}, fmt.Errorf("instance: bad route-target asn in %q: %w", s, err)
	}
	val, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return attr.ExtCommunityValue{}, fmt.Errorf("instance: bad route-target value in %q: %w", s, err)
	}
	return attr.RouteTarget(uint16(asn), uint32(val)), nil
}

// FormatRouteTarget renders v back to the "target:asn:value" form.
func FormatRouteTarget(v attr.ExtCommunityValue) string {
	asn := uint16(v[2])<<8 | uint16(v[3])
	val := uint32(v[4])<<24 | uint32(v[5])<<16 | uint32(v[6])<<8 | uint32(v[7])
	return fmt.Sprintf("target:%d:%d", asn, val)
}

func parseRTSet(strs []string) (map[attr.ExtCommunityValue]struct{}, error) {
	out := make(map[attr.ExtCommunityValue]struct{}, len(strs))
	for _, s := range strs {
		rt, err := ParseRouteTarget(s)
		if err != nil {
			return nil, err
		}
		out[rt] = struct{}{}
	}
	return out, nil
}
