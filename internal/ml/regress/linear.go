package regress

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LinearRegression fits ordinary least squares with an intercept term.
type LinearRegression struct {
	Weights   []float64
	Intercept float64
}

// NewLinearRegression returns an unfitted OLS model.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// Fit solves the least-squares problem over the design matrix with a leading
// ones column, via QR factorization.
func (m *LinearRegression) Fit(X [][]float64, y []float64) error {
	if err := validateTrainingSet(X, y); err != nil {
		return err
	}
	rows := len(X)
	cols := len(X[0])

	data := make([]float64, rows*(cols+1))
	for i, row := range X {
		data[i*(cols+1)] = 1
		copy(data[i*(cols+1)+1:(i+1)*(cols+1)], row)
	}
	design := mat.NewDense(rows, cols+1, data)
	target := mat.NewVecDense(rows, append([]float64(nil), y...))

	var qr mat.QR
	qr.Factorize(design)

	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, target); err != nil {
		return fmt.Errorf("regress: least-squares solve: %w", err)
	}

	m.Intercept = coef.AtVec(0)
	weights := make([]float64, cols)
	for j := 0; j < cols; j++ {
		weights[j] = coef.AtVec(j + 1)
	}
	m.Weights = weights
	return nil
}

// Predict returns the linear combination of x with the fitted weights.
func (m *LinearRegression) Predict(x []float64) (float64, error) {
	if len(m.Weights) == 0 {
		return 0, ErrNotFitted
	}
	if len(x) != len(m.Weights) {
		return 0, fmt.Errorf("regress: expected %d features, got %d", len(m.Weights), len(x))
	}
	yhat := m.Intercept
	for j, w := range m.Weights {
		yhat += w * x[j]
	}
	return yhat, nil
}

// PredictBatch predicts every row of X.
func (m *LinearRegression) PredictBatch(X [][]float64) ([]float64, error) {
	return predictBatch(m, X)
}
