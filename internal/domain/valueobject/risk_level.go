package valueobject

import "fmt"

// RiskLevel is an immutable value object classifying a quoted premium.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow      = RiskLevel{value: "LOW"}
	RiskLevelMedium   = RiskLevel{value: "MEDIUM"}
	RiskLevelHigh     = RiskLevel{value: "HIGH"}
	RiskLevelVeryHigh = RiskLevel{value: "VERY_HIGH"}
)

// Premium thresholds separating the levels, in whole currency units.
const (
	mediumRiskThreshold   = 5000
	highRiskThreshold     = 10000
	veryHighRiskThreshold = 20000
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	case "VERY_HIGH":
		return RiskLevelVeryHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromPremium derives the level from a quoted premium.
func RiskLevelFromPremium(p Premium) RiskLevel {
	switch {
	case p.GreaterThanOrEqual(veryHighRiskThreshold):
		return RiskLevelVeryHigh
	case p.GreaterThanOrEqual(highRiskThreshold):
		return RiskLevelHigh
	case p.GreaterThanOrEqual(mediumRiskThreshold):
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// Equal reports whether two levels are the same.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

// IsZero reports whether the value is unset.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}
