package valueobject

import (
	"fmt"
	"math"
)

// Rating bounds accepted by the quoting API. The training corpus samples a
// narrower range; anything inside these bounds is still a quotable profile.
const (
	MinAge      = 18
	MaxAge      = 100
	MinBMI      = 10.0
	MaxBMI      = 50.0
	MaxChildren = 10
)

// RiskProfile is the immutable set of rating attributes for one applicant.
type RiskProfile struct {
	age      int
	gender   Gender
	bmi      float64
	children int
	smoker   SmokerStatus
	region   Region
}

// NewRiskProfile validates the attributes and builds a profile.
func NewRiskProfile(age int, gender Gender, bmi float64, children int, smoker SmokerStatus, region Region) (RiskProfile, error) {
	if age < MinAge || age > MaxAge {
		return RiskProfile{}, &ValidationError{Field: "age", Reason: fmt.Sprintf("age %d outside [%d, %d]", age, MinAge, MaxAge)}
	}
	if gender.IsZero() {
		return RiskProfile{}, &ValidationError{Field: "gender", Reason: "gender is required"}
	}
	if math.IsNaN(bmi) || math.IsInf(bmi, 0) || bmi < MinBMI || bmi > MaxBMI {
		return RiskProfile{}, &ValidationError{Field: "bmi", Reason: fmt.Sprintf("bmi %v outside [%v, %v]", bmi, MinBMI, MaxBMI)}
	}
	if children < 0 || children > MaxChildren {
		return RiskProfile{}, &ValidationError{Field: "children", Reason: fmt.Sprintf("children %d outside [0, %d]", children, MaxChildren)}
	}
	if smoker.IsZero() {
		return RiskProfile{}, &ValidationError{Field: "smoker", Reason: "smoker status is required"}
	}
	if region.IsZero() {
		return RiskProfile{}, &ValidationError{Field: "region", Reason: "region is required"}
	}
	return RiskProfile{
		age:      age,
		gender:   gender,
		bmi:      bmi,
		children: children,
		smoker:   smoker,
		region:   region,
	}, nil
}

// Age returns the applicant age in years.
func (p RiskProfile) Age() int {
	return p.age
}

// Gender returns the applicant gender.
func (p RiskProfile) Gender() Gender {
	return p.gender
}

// BMI returns the body mass index.
func (p RiskProfile) BMI() float64 {
	return p.bmi
}

// Children returns the number of covered dependents.
func (p RiskProfile) Children() int {
	return p.children
}

// Smoker returns the smoking status.
func (p RiskProfile) Smoker() SmokerStatus {
	return p.smoker
}

// Region returns the rating region.
func (p RiskProfile) Region() Region {
	return p.region
}
