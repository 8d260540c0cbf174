package regress

import (
	"fmt"
	"sort"
)

// TreeNode is one node of a fitted regression tree. Exported for gob.
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	Value     float64
	Leaf      bool
}

// RegressionTree is a CART regressor. Splits maximize squared-error
// reduction; rows with feature value <= threshold descend left.
type RegressionTree struct {
	Root            *TreeNode
	MaxDepth        int
	MinSamplesSplit int
}

// NewRegressionTree returns an unfitted tree limited to the given depth.
func NewRegressionTree(maxDepth int) *RegressionTree {
	return &RegressionTree{MaxDepth: maxDepth, MinSamplesSplit: 2}
}

// Fit grows the tree on X and y.
func (t *RegressionTree) Fit(X [][]float64, y []float64) error {
	if err := validateTrainingSet(X, y); err != nil {
		return err
	}
	if t.MaxDepth <= 0 {
		t.MaxDepth = 10
	}
	if t.MinSamplesSplit < 2 {
		t.MinSamplesSplit = 2
	}

	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	t.Root = t.build(X, y, idx, 0)
	return nil
}

func (t *RegressionTree) build(X [][]float64, y []float64, idx []int, depth int) *TreeNode {
	if depth >= t.MaxDepth || len(idx) < t.MinSamplesSplit {
		return leafNode(y, idx)
	}
	feature, threshold, ok := bestSplit(X, y, idx)
	if !ok {
		return leafNode(y, idx)
	}

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return leafNode(y, idx)
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      t.build(X, y, left, depth+1),
		Right:     t.build(X, y, right, depth+1),
	}
}

func leafNode(y []float64, idx []int) *TreeNode {
	sum := 0.0
	for _, i := range idx {
		sum += y[i]
	}
	return &TreeNode{Leaf: true, Value: sum / float64(len(idx))}
}

// bestSplit sweeps each feature in sorted order, tracking running sums so
// every candidate threshold is evaluated in O(1). Returns ok=false when no
// split reduces the parent squared error.
func bestSplit(X [][]float64, y []float64, idx []int) (int, float64, bool) {
	n := len(idx)
	width := len(X[idx[0]])

	var totalSum, totalSq float64
	for _, i := range idx {
		totalSum += y[i]
		totalSq += y[i] * y[i]
	}
	parentSSE := totalSq - totalSum*totalSum/float64(n)

	bestGain := 1e-12
	bestFeature := -1
	bestThreshold := 0.0

	order := make([]int, n)
	for f := 0; f < width; f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool {
			va, vb := X[order[a]][f], X[order[b]][f]
			if va == vb {
				return order[a] < order[b]
			}
			return va < vb
		})

		var leftSum, leftSq float64
		for k := 0; k < n-1; k++ {
			i := order[k]
			leftSum += y[i]
			leftSq += y[i] * y[i]

			v, next := X[i][f], X[order[k+1]][f]
			if v == next {
				continue
			}

			nl := float64(k + 1)
			nr := float64(n - k - 1)
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			gain := parentSSE - (leftSq - leftSum*leftSum/nl) - (rightSq - rightSum*rightSum/nr)
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = v + (next-v)/2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

// Predict walks the tree for a single row.
func (t *RegressionTree) Predict(x []float64) (float64, error) {
	if t == nil || t.Root == nil {
		return 0, ErrNotFitted
	}
	node := t.Root
	for !node.Leaf {
		if node.Feature >= len(x) {
			return 0, fmt.Errorf("regress: expected at least %d features, got %d", node.Feature+1, len(x))
		}
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value, nil
}

// PredictBatch predicts every row of X.
func (t *RegressionTree) PredictBatch(X [][]float64) ([]float64, error) {
	return predictBatch(t, X)
}
