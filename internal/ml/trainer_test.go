package ml

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/premialabs/premia/internal/ml/artifact"
	"github.com/premialabs/premia/internal/ml/dataset"
	"github.com/premialabs/premia/internal/ml/feature"
	"github.com/premialabs/premia/internal/ml/regress"
)

// testConfigs keeps fits cheap: OLS plus a shallow tree.
func testConfigs() []ModelConfig {
	return []ModelConfig{
		{Name: ModelLinearRegression, New: func() regress.Regressor { return regress.NewLinearRegression() }},
		{Name: ModelDecisionTree, New: func() regress.Regressor { return regress.NewRegressionTree(4) }},
	}
}

func testDatasetCfg() dataset.Config {
	return dataset.Config{Rows: 120, Seed: 42}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestTrainerTrain(t *testing.T) {
	t.Run("produces a bundle per config and persists everything", func(t *testing.T) {
		dir := t.TempDir()
		store := artifact.NewStore(filepath.Join(dir, "artifacts"))
		snapshot := filepath.Join(dir, "data", "insurance.csv")

		trainer := NewTrainer(testDatasetCfg(), testConfigs(), store, snapshot, quietLogger())
		result, err := trainer.Train(context.Background())
		require.NoError(t, err)

		require.Len(t, result.Bundles, 2)
		assert.Equal(t, 120, result.Rows)
		assert.Positive(t, result.Duration)
		assert.Contains(t, []string{ModelLinearRegression, ModelDecisionTree}, result.BestModel)

		for _, name := range []string{ModelLinearRegression, ModelDecisionTree} {
			b := result.Bundles[name]
			require.NotNil(t, b)
			assert.Equal(t, name, b.ModelName)
			assert.Equal(t, feature.Names, b.FeatureNames)
			assert.True(t, b.Scaler.Fitted())
			assert.Len(t, b.LabelEncoders, 3)
			assert.True(t, store.Exists(name))
		}

		table, err := dataset.ReadCSV(snapshot)
		require.NoError(t, err)
		assert.Equal(t, 120, table.Len())
	})

	t.Run("best model has the highest held-out r2", func(t *testing.T) {
		trainer := NewTrainer(testDatasetCfg(), testConfigs(), nil, "", quietLogger())
		result, err := trainer.Train(context.Background())
		require.NoError(t, err)

		best := result.Bundles[result.BestModel].Metrics.R2
		for _, b := range result.Bundles {
			assert.LessOrEqual(t, b.Metrics.R2, best)
		}
	})

	t.Run("training is deterministic per seed", func(t *testing.T) {
		a, err := NewTrainer(testDatasetCfg(), testConfigs(), nil, "", quietLogger()).Train(context.Background())
		require.NoError(t, err)
		b, err := NewTrainer(testDatasetCfg(), testConfigs(), nil, "", quietLogger()).Train(context.Background())
		require.NoError(t, err)

		assert.Equal(t, a.BestModel, b.BestModel)
		for name, bundle := range a.Bundles {
			assert.Equal(t, bundle.Metrics, b.Bundles[name].Metrics, "metrics diverged for %s", name)
		}
	})

	t.Run("all bundles share one training timestamp", func(t *testing.T) {
		result, err := NewTrainer(testDatasetCfg(), testConfigs(), nil, "", quietLogger()).Train(context.Background())
		require.NoError(t, err)

		trainedAt := result.Bundles[ModelLinearRegression].TrainedAt
		for _, b := range result.Bundles {
			assert.True(t, trainedAt.Equal(b.TrainedAt))
		}
	})

	t.Run("no configs fails", func(t *testing.T) {
		trainer := NewTrainer(testDatasetCfg(), nil, nil, "", quietLogger())
		_, err := trainer.Train(context.Background())
		assert.Error(t, err)
	})

	t.Run("cancelled context aborts the run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		trainer := NewTrainer(testDatasetCfg(), testConfigs(), nil, "", quietLogger())
		_, err := trainer.Train(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
