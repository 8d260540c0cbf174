// Package regress implements the regression models behind premium
// prediction: ordinary least squares, a CART regression tree, a bagged
// random forest, and squared-loss gradient boosting. All models serialize
// through gob so fitted state survives in artifact bundles.
package regress

import (
	"errors"
	"fmt"
)

// ErrNotFitted is returned by Predict before a successful Fit.
var ErrNotFitted = errors.New("regress: model not fitted")

// Regressor is a trainable regression model. Fit replaces any previous
// state; a fitted model is immutable and safe for concurrent Predict calls.
type Regressor interface {
	Fit(X [][]float64, y []float64) error
	Predict(x []float64) (float64, error)
	PredictBatch(X [][]float64) ([]float64, error)
}

func validateTrainingSet(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("regress: empty training set")
	}
	if len(X) != len(y) {
		return fmt.Errorf("regress: %d feature rows for %d targets", len(X), len(y))
	}
	width := len(X[0])
	if width == 0 {
		return errors.New("regress: zero-width feature rows")
	}
	for i, row := range X {
		if len(row) != width {
			return fmt.Errorf("regress: ragged row %d: got %d features, want %d", i, len(row), width)
		}
	}
	return nil
}

func predictBatch(m Regressor, X [][]float64) ([]float64, error) {
	out := make([]float64, len(X))
	for i, row := range X {
		p, err := m.Predict(row)
		if err != nil {
			return nil, fmt.Errorf("regress: row %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
