package valueobject

import (
	"fmt"
	"strings"
)

// Region is an immutable value object for the insured person's rating region.
type Region struct {
	value string
}

var (
	RegionNortheast = Region{value: "northeast"}
	RegionNorthwest = Region{value: "northwest"}
	RegionSoutheast = Region{value: "southeast"}
	RegionSouthwest = Region{value: "southwest"}
)

// AllRegions lists the rating regions in canonical order.
var AllRegions = []Region{RegionNortheast, RegionNorthwest, RegionSoutheast, RegionSouthwest}

// RegionFromString parses a region, ignoring case and surrounding space.
func RegionFromString(s string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "northeast":
		return RegionNortheast, nil
	case "northwest":
		return RegionNorthwest, nil
	case "southeast":
		return RegionSoutheast, nil
	case "southwest":
		return RegionSouthwest, nil
	default:
		return Region{}, &ValidationError{Field: "region", Reason: fmt.Sprintf("unknown region %q", s)}
	}
}

// String returns the canonical lowercase form.
func (r Region) String() string {
	return r.value
}

// IsZero reports whether the value is unset.
func (r Region) IsZero() bool {
	return r.value == ""
}
