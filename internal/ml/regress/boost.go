package regress

// GradientBoost fits an additive ensemble of shallow regression trees on
// squared-loss residuals: each round fits a tree to the current residual and
// adds it scaled by the learning rate.
type GradientBoost struct {
	Base         float64
	Trees        []*RegressionTree
	NumRounds    int
	LearningRate float64
	MaxDepth     int
}

// NewGradientBoost returns an unfitted booster.
func NewGradientBoost(rounds int, learningRate float64, maxDepth int) *GradientBoost {
	return &GradientBoost{NumRounds: rounds, LearningRate: learningRate, MaxDepth: maxDepth}
}

// Fit boosts for the configured number of rounds.
func (m *GradientBoost) Fit(X [][]float64, y []float64) error {
	if err := validateTrainingSet(X, y); err != nil {
		return err
	}
	if m.NumRounds <= 0 {
		m.NumRounds = 200
	}
	if m.LearningRate <= 0 {
		m.LearningRate = 0.1
	}
	if m.MaxDepth <= 0 {
		m.MaxDepth = 5
	}

	base := mean(y)
	current := make([]float64, len(y))
	for i := range current {
		current[i] = base
	}

	residual := make([]float64, len(y))
	trees := make([]*RegressionTree, 0, m.NumRounds)
	for round := 0; round < m.NumRounds; round++ {
		for i := range residual {
			residual[i] = y[i] - current[i]
		}

		tree := NewRegressionTree(m.MaxDepth)
		if err := tree.Fit(X, residual); err != nil {
			return err
		}
		trees = append(trees, tree)

		for i, row := range X {
			p, err := tree.Predict(row)
			if err != nil {
				return err
			}
			current[i] += m.LearningRate * p
		}
	}

	m.Base = base
	m.Trees = trees
	return nil
}

// Predict sums the base value and the scaled tree contributions.
func (m *GradientBoost) Predict(x []float64) (float64, error) {
	if len(m.Trees) == 0 {
		return 0, ErrNotFitted
	}
	yhat := m.Base
	for _, tree := range m.Trees {
		p, err := tree.Predict(x)
		if err != nil {
			return 0, err
		}
		yhat += m.LearningRate * p
	}
	return yhat, nil
}

// PredictBatch predicts every row of X.
func (m *GradientBoost) PredictBatch(X [][]float64) ([]float64, error) {
	return predictBatch(m, X)
}
