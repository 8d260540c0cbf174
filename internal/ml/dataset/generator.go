// Package dataset produces the synthetic medical-insurance corpus the premium
// models are trained on. Generation is fully deterministic for a given seed so
// that training runs are reproducible across hosts.
package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Categorical levels used by the generator. These are the only values the
// fitted label encoders will ever accept.
const (
	GenderMale   = "male"
	GenderFemale = "female"

	SmokerYes = "yes"
	SmokerNo  = "no"
)

// Regions lists the rating regions in canonical order.
var Regions = []string{"northeast", "northwest", "southeast", "southwest"}

var genders = []string{GenderMale, GenderFemale}

// Config controls corpus generation.
type Config struct {
	// Rows is the number of records to generate. An explicit zero is kept
	// and yields an empty table; negative values fail Generate.
	Rows int
	// Seed feeds every random draw. Defaults to 42.
	Seed uint64
}

// DefaultConfig returns the canonical generation parameters.
func DefaultConfig() Config {
	return Config{Rows: 1000, Seed: 42}
}

// WithDefaults returns the canonical defaults for a zero config and fills a
// missing seed otherwise. An explicit row count is kept as given, zero
// included.
func (c Config) WithDefaults() Config {
	if c == (Config{}) {
		return DefaultConfig()
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	return c
}

// Record is a single observation: the six rating attributes plus the premium
// the closed-form formula assigned to them.
type Record struct {
	Age      int
	Gender   string
	BMI      float64
	Children int
	Smoker   string
	Region   string
	Premium  float64
}

// Generator produces deterministic synthetic corpora.
type Generator struct {
	cfg Config
}

// NewGenerator creates a Generator for the given config. Zero values fall back
// to the canonical defaults.
func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg.WithDefaults()}
}

// Generate samples the configured number of records. Two calls with the same
// config yield identical tables. Zero rows yields an empty table; a negative
// row count is rejected.
func (g *Generator) Generate() (*Table, error) {
	if g.cfg.Rows < 0 {
		return nil, fmt.Errorf("dataset: row count must not be negative, got %d", g.cfg.Rows)
	}

	src := rand.NewPCG(g.cfg.Seed, g.cfg.Seed)
	rng := rand.New(src)

	bmiDist := distuv.Normal{Mu: 28, Sigma: 6, Src: src}
	childrenDist := distuv.Poisson{Lambda: 1, Src: src}
	noiseDist := distuv.Normal{Mu: 0, Sigma: noiseSigma, Src: src}

	records := make([]Record, g.cfg.Rows)
	for i := range records {
		age := minSampledAge + rng.IntN(maxSampledAge-minSampledAge+1)
		gender := genders[rng.IntN(len(genders))]
		bmi := clamp(bmiDist.Rand(), 15, 50)

		children := int(childrenDist.Rand())
		if children > 5 {
			children = 5
		}

		smoker := SmokerNo
		if rng.Float64() < smokerRate {
			smoker = SmokerYes
		}
		region := Regions[rng.IntN(len(Regions))]

		premium := BasePremium(age, gender, bmi, children, smoker, region)
		premium += noiseDist.Rand()
		if premium < minimumPremium {
			premium = minimumPremium
		}

		records[i] = Record{
			Age:      age,
			Gender:   gender,
			BMI:      bmi,
			Children: children,
			Smoker:   smoker,
			Region:   region,
			Premium:  premium,
		}
	}

	return &Table{Records: records}, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
