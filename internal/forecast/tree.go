// Package forecast fits a gradient-boosted regression on the standardized
// feature matrix and turns raw predictions into calibrated, period-scaled
// purchase forecasts with product-affinity rankings. Fitting is fully
// deterministic: splits scan features and thresholds in a fixed order, so no
// seed is needed for identical reruns.
package forecast

import "sort"

// treeNode is one node of a regression tree. Leaves carry the mean target of
// their samples.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

func (n *treeNode) predict(row []float64) float64 {
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// buildTree grows a depth-bounded regression tree on the index subset using
// greedy squared-error splits. Ties keep the first candidate in feature-then-
// threshold order.
func buildTree(x [][]float64, y []float64, indices []int, depth, maxDepth int) *treeNode {
	sum := 0.0
	for _, i := range indices {
		sum += y[i]
	}
	node := &treeNode{leaf: true, value: sum / float64(len(indices))}
	if depth >= maxDepth || len(indices) < 2 {
		return node
	}

	feature, threshold, ok := bestSplit(x, y, indices)
	if !ok {
		return node
	}

	var left, right []int
	for _, i := range indices {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	node.leaf = false
	node.feature = feature
	node.threshold = threshold
	node.left = buildTree(x, y, left, depth+1, maxDepth)
	node.right = buildTree(x, y, right, depth+1, maxDepth)
	return node
}

// bestSplit finds the (feature, threshold) pair with the largest squared-
// error reduction, using prefix sums over the sorted subset per feature.
func bestSplit(x [][]float64, y []float64, indices []int) (int, float64, bool) {
	n := len(indices)
	var totalSum, totalSq float64
	for _, i := range indices {
		totalSum += y[i]
		totalSq += y[i] * y[i]
	}
	parentSSE := totalSq - totalSum*totalSum/float64(n)

	bestFeature, bestThreshold := -1, 0.0
	bestSSE := parentSSE

	sorted := make([]int, n)
	width := len(x[indices[0]])
	for f := 0; f < width; f++ {
		copy(sorted, indices)
		sort.SliceStable(sorted, func(a, b int) bool { return x[sorted[a]][f] < x[sorted[b]][f] })

		var leftSum, leftSq float64
		for pos := 0; pos < n-1; pos++ {
			v := y[sorted[pos]]
			leftSum += v
			leftSq += v * v
			cur, next := x[sorted[pos]][f], x[sorted[pos+1]][f]
			if cur == next {
				continue
			}
			leftN := float64(pos + 1)
			rightN := float64(n - pos - 1)
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/leftN) + (rightSq - rightSum*rightSum/rightN)
			if sse < bestSSE {
				bestSSE = sse
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}
