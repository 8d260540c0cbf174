package feature

import (
	"fmt"
	"math"
)

// StandardScaler standardizes feature columns to zero mean and unit variance.
// Mean and Std are exported for gob; Std uses the population formula and a
// zero-variance column keeps std 1 so transformation stays defined.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

// NewStandardScaler returns an unfitted scaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fitted reports whether Fit has run.
func (s *StandardScaler) Fitted() bool {
	return s != nil && len(s.Mean) > 0
}

// Fit computes per-column mean and standard deviation over X.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 || len(X[0]) == 0 {
		return fmt.Errorf("feature: cannot fit scaler on empty matrix")
	}
	cols := len(X[0])
	mean := make([]float64, cols)
	std := make([]float64, cols)

	for i, row := range X {
		if len(row) != cols {
			return fmt.Errorf("feature: ragged row %d: got %d columns, want %d", i, len(row), cols)
		}
		for j, v := range row {
			mean[j] += v
		}
	}
	n := float64(len(X))
	for j := range mean {
		mean[j] /= n
	}

	for _, row := range X {
		for j, v := range row {
			d := v - mean[j]
			std[j] += d * d
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / n)
		if std[j] == 0 {
			std[j] = 1
		}
	}

	s.Mean = mean
	s.Std = std
	return nil
}

// TransformRow standardizes a single row without mutating it.
func (s *StandardScaler) TransformRow(row []float64) ([]float64, error) {
	if !s.Fitted() {
		return nil, ErrNotFitted
	}
	if len(row) != len(s.Mean) {
		return nil, fmt.Errorf("feature: expected %d features, got %d", len(s.Mean), len(row))
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out, nil
}

// Transform standardizes every row of X into a new matrix.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.Fitted() {
		return nil, ErrNotFitted
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		scaled, err := s.TransformRow(row)
		if err != nil {
			return nil, fmt.Errorf("feature: row %d: %w", i, err)
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits on X and returns its standardized copy.
func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
