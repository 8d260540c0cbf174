// Package ml ties the prediction pipeline together: one trainer over a set
// of named model configs, and an engine facade that serves predictions from
// an immutable artifact set with load-else-train initialization.
package ml

import "github.com/premialabs/premia/internal/ml/regress"

// Canonical model names.
const (
	ModelLinearRegression = "linear_regression"
	ModelDecisionTree     = "decision_tree"
	ModelRandomForest     = "random_forest"
	ModelGradientBoosting = "gradient_boosting"
)

// ModelConfig names a trainable model and how to construct a fresh instance.
type ModelConfig struct {
	Name string
	New  func() regress.Regressor
}

// DefaultConfigs returns the standard model set: OLS, a depth-10 CART tree,
// a 100-tree random forest, and 200 rounds of gradient boosting.
func DefaultConfigs() []ModelConfig {
	return []ModelConfig{
		{Name: ModelLinearRegression, New: func() regress.Regressor { return regress.NewLinearRegression() }},
		{Name: ModelDecisionTree, New: func() regress.Regressor { return regress.NewRegressionTree(10) }},
		{Name: ModelRandomForest, New: func() regress.Regressor { return regress.NewRandomForest(100, 10, 42) }},
		{Name: ModelGradientBoosting, New: func() regress.Regressor { return regress.NewGradientBoost(200, 0.1, 5) }},
	}
}

// Names returns the config names in declaration order.
func Names(configs []ModelConfig) []string {
	names := make([]string, len(configs))
	for i, c := range configs {
		names[i] = c.Name
	}
	return names
}
