package valueobject

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Premium is an immutable annual premium amount, held to 2 decimal places.
type Premium struct {
	amount decimal.Decimal
}

// NewPremiumFromFloat builds a Premium, rounding to 2 decimals.
func NewPremiumFromFloat(v float64) (Premium, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Premium{}, &ValidationError{Field: "premium", Reason: "premium is not a finite number"}
	}
	if v < 0 {
		return Premium{}, &ValidationError{Field: "premium", Reason: fmt.Sprintf("premium %v is negative", v)}
	}
	return Premium{amount: decimal.NewFromFloat(v).Round(2)}, nil
}

// NewPremiumFromDecimal builds a Premium from a decimal amount.
func NewPremiumFromDecimal(d decimal.Decimal) (Premium, error) {
	if d.IsNegative() {
		return Premium{}, &ValidationError{Field: "premium", Reason: fmt.Sprintf("premium %s is negative", d)}
	}
	return Premium{amount: d.Round(2)}, nil
}

// Amount returns the decimal amount.
func (p Premium) Amount() decimal.Decimal {
	return p.amount
}

// Float64 returns the amount as a float64.
func (p Premium) Float64() float64 {
	f, _ := p.amount.Float64()
	return f
}

// String renders the amount with exactly 2 decimal places.
func (p Premium) String() string {
	return p.amount.StringFixed(2)
}

// GreaterThanOrEqual compares against a whole-unit threshold.
func (p Premium) GreaterThanOrEqual(threshold int64) bool {
	return p.amount.GreaterThanOrEqual(decimal.NewFromInt(threshold))
}

// IsZero reports whether the amount is zero.
func (p Premium) IsZero() bool {
	return p.amount.IsZero()
}
