package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/premialabs/premia/internal/ml/feature"
	"github.com/premialabs/premia/internal/ml/regress"
)

func fittedBundle(t *testing.T, name string) *Bundle {
	t.Helper()

	X := [][]float64{{1, 0}, {2, 1}, {3, 0}, {4, 1}}
	y := []float64{10, 21, 30, 41}

	model := regress.NewLinearRegression()
	require.NoError(t, model.Fit(X, y))

	scaler := feature.NewStandardScaler()
	require.NoError(t, scaler.Fit(X))

	return &Bundle{
		ModelName: name,
		Model:     model,
		Scaler:    scaler,
		LabelEncoders: map[string]*feature.LabelEncoder{
			feature.ColumnGender: feature.FitLabelEncoder(feature.ColumnGender, []string{"female", "male"}),
		},
		Metrics:      regress.Metrics{MAE: 1.5, R2: 0.98},
		FeatureNames: []string{"age", "gender"},
		TrainedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestStoreSaveLoad(t *testing.T) {
	t.Run("a saved bundle loads back intact", func(t *testing.T) {
		store := NewStore(t.TempDir())
		bundle := fittedBundle(t, "linear_regression")

		require.NoError(t, store.Save(bundle))
		require.True(t, store.Exists("linear_regression"))

		loaded, err := store.Load("linear_regression")
		require.NoError(t, err)

		assert.Equal(t, bundle.ModelName, loaded.ModelName)
		assert.Equal(t, bundle.Metrics, loaded.Metrics)
		assert.Equal(t, bundle.FeatureNames, loaded.FeatureNames)
		assert.WithinDuration(t, bundle.TrainedAt, loaded.TrainedAt, time.Second)
		assert.Equal(t, bundle.Scaler.Mean, loaded.Scaler.Mean)

		// The decoded model keeps its fitted weights.
		want, err := bundle.Model.Predict([]float64{2.5, 1})
		require.NoError(t, err)
		got, err := loaded.Model.Predict([]float64{2.5, 1})
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9)
	})

	t.Run("save leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(dir)

		require.NoError(t, store.Save(fittedBundle(t, "random_forest")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "random_forest.gob", entries[0].Name())
	})

	t.Run("bundle without a model name is rejected", func(t *testing.T) {
		store := NewStore(t.TempDir())
		assert.Error(t, store.Save(&Bundle{}))
		assert.Error(t, store.Save(nil))
	})
}

func TestStoreLoadFailures(t *testing.T) {
	t.Run("missing bundle fails with a load error", func(t *testing.T) {
		store := NewStore(t.TempDir())

		_, err := store.Load("linear_regression")
		require.Error(t, err)

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.True(t, strings.HasSuffix(loadErr.Path, "linear_regression.gob"))
	})

	t.Run("corrupt bundle fails with a load error", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(dir)
		path := filepath.Join(dir, "decision_tree.gob")
		require.NoError(t, os.WriteFile(path, []byte("not a gob stream"), 0o644))

		_, err := store.Load("decision_tree")

		var loadErr *LoadError
		assert.ErrorAs(t, err, &loadErr)
	})

	t.Run("truncated bundle fails with a load error", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(dir)
		require.NoError(t, store.Save(fittedBundle(t, "gradient_boosting")))

		path := filepath.Join(dir, "gradient_boosting.gob")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data[:len(data)/2], 0o644))

		_, err = store.Load("gradient_boosting")

		var loadErr *LoadError
		assert.ErrorAs(t, err, &loadErr)
	})
}

func TestStoreLoadAll(t *testing.T) {
	t.Run("loads every requested bundle", func(t *testing.T) {
		store := NewStore(t.TempDir())
		require.NoError(t, store.Save(fittedBundle(t, "linear_regression")))
		require.NoError(t, store.Save(fittedBundle(t, "decision_tree")))

		bundles, err := store.LoadAll([]string{"linear_regression", "decision_tree"})
		require.NoError(t, err)
		assert.Len(t, bundles, 2)
	})

	t.Run("one missing bundle fails the whole load", func(t *testing.T) {
		store := NewStore(t.TempDir())
		require.NoError(t, store.Save(fittedBundle(t, "linear_regression")))

		_, err := store.LoadAll([]string{"linear_regression", "random_forest"})

		var loadErr *LoadError
		assert.ErrorAs(t, err, &loadErr)
	})
}
