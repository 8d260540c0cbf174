package valueobject

import (
	"fmt"
	"strings"
)

// SmokerStatus is an immutable value object for smoking status.
type SmokerStatus struct {
	value string
}

var (
	SmokerYes = SmokerStatus{value: "yes"}
	SmokerNo  = SmokerStatus{value: "no"}
)

// SmokerStatusFromString parses a smoker flag, ignoring case and surrounding
// space.
func SmokerStatusFromString(s string) (SmokerStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return SmokerYes, nil
	case "no":
		return SmokerNo, nil
	default:
		return SmokerStatus{}, &ValidationError{Field: "smoker", Reason: fmt.Sprintf("unknown smoker status %q", s)}
	}
}

// String returns the canonical lowercase form.
func (s SmokerStatus) String() string {
	return s.value
}

// IsSmoker reports whether the status is yes.
func (s SmokerStatus) IsSmoker() bool {
	return s.value == "yes"
}

// IsZero reports whether the value is unset.
func (s SmokerStatus) IsZero() bool {
	return s.value == ""
}
