package valueobject

import (
	"fmt"
	"strings"
)

// Gender is an immutable value object for the insured person's gender.
type Gender struct {
	value string
}

var (
	GenderMale   = Gender{value: "male"}
	GenderFemale = Gender{value: "female"}
)

// GenderFromString parses a gender, ignoring case and surrounding space.
func GenderFromString(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	default:
		return Gender{}, &ValidationError{Field: "gender", Reason: fmt.Sprintf("unknown gender %q", s)}
	}
}

// String returns the canonical lowercase form.
func (g Gender) String() string {
	return g.value
}

// IsZero reports whether the value is unset.
func (g Gender) IsZero() bool {
	return g.value == ""
}
