package regress

import (
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RandomForest averages bootstrap-trained regression trees. Tree i draws its
// bootstrap sample from a PCG seeded with (Seed, i), so a fitted forest is
// reproducible regardless of goroutine scheduling.
type RandomForest struct {
	Trees    []*RegressionTree
	NumTrees int
	MaxDepth int
	Seed     uint64
}

// NewRandomForest returns an unfitted forest.
func NewRandomForest(numTrees, maxDepth int, seed uint64) *RandomForest {
	return &RandomForest{NumTrees: numTrees, MaxDepth: maxDepth, Seed: seed}
}

// Fit trains the trees concurrently on bootstrap resamples of X and y.
func (f *RandomForest) Fit(X [][]float64, y []float64) error {
	if err := validateTrainingSet(X, y); err != nil {
		return err
	}
	if f.NumTrees <= 0 {
		f.NumTrees = 100
	}
	if f.MaxDepth <= 0 {
		f.MaxDepth = 10
	}

	trees := make([]*RegressionTree, f.NumTrees)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range trees {
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(f.Seed, uint64(i)))
			sampleX, sampleY := bootstrap(X, y, rng)
			tree := NewRegressionTree(f.MaxDepth)
			if err := tree.Fit(sampleX, sampleY); err != nil {
				return err
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	f.Trees = trees
	return nil
}

func bootstrap(X [][]float64, y []float64, rng *rand.Rand) ([][]float64, []float64) {
	n := len(X)
	sampleX := make([][]float64, n)
	sampleY := make([]float64, n)
	for i := 0; i < n; i++ {
		j := rng.IntN(n)
		sampleX[i] = X[j]
		sampleY[i] = y[j]
	}
	return sampleX, sampleY
}

// Predict returns the mean of the tree votes.
func (f *RandomForest) Predict(x []float64) (float64, error) {
	if len(f.Trees) == 0 {
		return 0, ErrNotFitted
	}
	sum := 0.0
	for _, tree := range f.Trees {
		p, err := tree.Predict(x)
		if err != nil {
			return 0, err
		}
		sum += p
	}
	return sum / float64(len(f.Trees)), nil
}

// PredictBatch predicts every row of X.
func (f *RandomForest) PredictBatch(X [][]float64) ([]float64, error) {
	return predictBatch(f, X)
}
