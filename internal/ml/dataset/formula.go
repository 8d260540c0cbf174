package dataset

// Formula parameters. The premium a record gets is the closed-form loading
// below, a region multiplier, gaussian noise, and a hard floor, in that order.
const (
	basePremium    = 5000.0
	perYearOver18  = 50.0
	obeseBMILimit  = 30.0
	perObeseBMI    = 200.0
	underBMILimit  = 18.5
	perUnderBMI    = 100.0
	smokerLoad     = 15000.0
	perChildLoad   = 1000.0
	maleLoad       = 500.0
	noiseSigma     = 1000.0
	minimumPremium = 1000.0

	minSampledAge = 18
	maxSampledAge = 64

	smokerRate = 0.2
)

var regionFactors = map[string]float64{
	"northeast": 1.10,
	"northwest": 1.05,
	"southeast": 0.90,
	"southwest": 0.95,
}

// RegionFactor returns the rating multiplier for a region, or 1 for an
// unknown region.
func RegionFactor(region string) float64 {
	if f, ok := regionFactors[region]; ok {
		return f
	}
	return 1.0
}

// BasePremium computes the noise-free premium for one set of attributes.
// Exposed so callers can reason about the target the models approximate.
func BasePremium(age int, gender string, bmi float64, children int, smoker, region string) float64 {
	premium := basePremium
	premium += float64(age-minSampledAge) * perYearOver18

	switch {
	case bmi > obeseBMILimit:
		premium += (bmi - obeseBMILimit) * perObeseBMI
	case bmi < underBMILimit:
		premium += (underBMILimit - bmi) * perUnderBMI
	}

	if smoker == SmokerYes {
		premium += smokerLoad
	}
	premium += float64(children) * perChildLoad
	if gender == GenderMale {
		premium += maleLoad
	}

	return premium * RegionFactor(region)
}
