package regress

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// TrainTestSplit shuffles rows with a seeded permutation and splits off the
// requested test fraction. The split is deterministic per seed.
func TrainTestSplit(X [][]float64, y []float64, testFraction float64, seed uint64) (XTrain, XTest [][]float64, yTrain, yTest []float64, err error) {
	if verr := validateTrainingSet(X, y); verr != nil {
		return nil, nil, nil, nil, verr
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, nil, nil, fmt.Errorf("regress: test fraction %v outside (0, 1)", testFraction)
	}

	n := len(X)
	testSize := int(math.Ceil(float64(n) * testFraction))
	if testSize >= n {
		return nil, nil, nil, nil, fmt.Errorf("regress: test fraction %v leaves no training rows", testFraction)
	}

	perm := rand.New(rand.NewPCG(seed, 0)).Perm(n)

	XTest = make([][]float64, 0, testSize)
	yTest = make([]float64, 0, testSize)
	XTrain = make([][]float64, 0, n-testSize)
	yTrain = make([]float64, 0, n-testSize)

	for _, i := range perm[:testSize] {
		XTest = append(XTest, X[i])
		yTest = append(yTest, y[i])
	}
	for _, i := range perm[testSize:] {
		XTrain = append(XTrain, X[i])
		yTrain = append(yTrain, y[i])
	}
	return XTrain, XTest, yTrain, yTest, nil
}
