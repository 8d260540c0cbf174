package regress

import (
	"fmt"
	"math"
)

// Metrics summarizes regression quality on a held-out sample.
type Metrics struct {
	MAE        float64 `json:"mae"`
	MSE        float64 `json:"mse"`
	RMSE       float64 `json:"rmse"`
	MAPE       float64 `json:"mape"`
	R2         float64 `json:"r2"`
	AdjustedR2 float64 `json:"adjusted_r2"`
}

// Evaluate computes regression metrics for predictions against ground truth.
// AdjustedR2 is 1 - (1-R2)(n-1)/(n-p-1) with n the sample count and p the
// feature count; when n <= p+1 it degrades to plain R2.
func Evaluate(yTrue, yPred []float64, numFeatures int) (Metrics, error) {
	if len(yTrue) == 0 {
		return Metrics{}, fmt.Errorf("regress: no samples to evaluate")
	}
	if len(yTrue) != len(yPred) {
		return Metrics{}, fmt.Errorf("regress: %d truths for %d predictions", len(yTrue), len(yPred))
	}

	n := float64(len(yTrue))
	meanTrue := mean(yTrue)

	var absSum, sqSum, pctSum, ssTot float64
	for i, yt := range yTrue {
		diff := yt - yPred[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff

		denom := math.Abs(yt)
		if denom < 1e-12 {
			denom = 1e-12
		}
		pctSum += math.Abs(diff) / denom

		dt := yt - meanTrue
		ssTot += dt * dt
	}

	m := Metrics{
		MAE:  absSum / n,
		MSE:  sqSum / n,
		MAPE: 100 * pctSum / n,
	}
	m.RMSE = math.Sqrt(m.MSE)

	if ssTot > 0 {
		m.R2 = 1 - sqSum/ssTot
	}

	p := float64(numFeatures)
	if n-p-1 > 0 {
		m.AdjustedR2 = 1 - (1-m.R2)*(n-1)/(n-p-1)
	} else {
		m.AdjustedR2 = m.R2
	}
	return m, nil
}
