// Package cluster partitions the standardized feature matrix with k-means
// and projects the result to 2 dimensions for visualization. Restarts run
// concurrently but the winner is picked by a fixed-order scan, so results
// only depend on the seed.
package cluster

import (
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/legb78/scan2front/internal/errs"
	"github.com/legb78/scan2front/internal/logger"
)

// Partition is one k-means fit: dense labels in [0,k), the centroids in
// standardized feature space and the total inertia.
type Partition struct {
	Labels    []int
	Centroids [][]float64
	Inertia   float64
}

// KMeans clusters rows into k groups, keeping the lowest-inertia result of
// the given number of restarts. Requesting more clusters than rows is a
// FitError.
func KMeans(x [][]float64, k int, seed int64, restarts, maxIter int) (*Partition, error) {
	n := len(x)
	if k < 1 {
		return nil, errs.Fitf("cluster count must be at least 1, got %d", k)
	}
	if k > n {
		return nil, errs.Fitf("cannot form %d clusters from %d rows", k, n)
	}
	if restarts < 1 {
		restarts = 1
	}

	results := make([]*Partition, restarts)
	var g errgroup.Group
	for r := 0; r < restarts; r++ {
		r := r
		g.Go(func() error {
			results[r] = lloyd(x, k, rand.New(rand.NewSource(seed+int64(r))), maxIter)
			return nil
		})
	}
	_ = g.Wait()

	best := results[0]
	for _, res := range results[1:] {
		if res.Inertia < best.Inertia {
			best = res
		}
	}
	logger.Debug("k-means converged: k=%d inertia=%.4f (%d restarts)", k, best.Inertia, restarts)
	return best, nil
}

// lloyd runs one k-means fit to convergence or the iteration cap.
func lloyd(x [][]float64, k int, rng *rand.Rand, maxIter int) *Partition {
	n := len(x)
	dim := len(x[0])

	// Seed centroids from k distinct rows.
	centroids := make([][]float64, k)
	for i, idx := range rng.Perm(n)[:k] {
		centroids[i] = append([]float64(nil), x[idx]...)
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, row := range x {
			c := nearest(row, centroids)
			if c != labels[i] {
				labels[i] = c
				changed = true
			}
		}
		repairEmptyClusters(x, labels, k)
		if !changed && iter > 0 {
			break
		}

		// Recompute centroids as member means.
		for c := range centroids {
			for j := 0; j < dim; j++ {
				centroids[c][j] = 0
			}
		}
		counts := make([]int, k)
		for i, row := range x {
			c := labels[i]
			counts[c]++
			for j, v := range row {
				centroids[c][j] += v
			}
		}
		for c, count := range counts {
			for j := range centroids[c] {
				centroids[c][j] /= float64(count)
			}
		}
	}

	var inertia float64
	for i, row := range x {
		inertia += squaredDistance(row, centroids[labels[i]])
	}
	return &Partition{Labels: labels, Centroids: centroids, Inertia: inertia}
}

// repairEmptyClusters hands each empty cluster the member of the most
// populated cluster that sits farthest from the rest of its group.
func repairEmptyClusters(x [][]float64, labels []int, k int) {
	counts := make([]int, k)
	for _, c := range labels {
		counts[c]++
	}
	for c := 0; c < k; c++ {
		if counts[c] > 0 {
			continue
		}
		largest := 0
		for cc := 1; cc < k; cc++ {
			if counts[cc] > counts[largest] {
				largest = cc
			}
		}
		// Mean of the donor cluster.
		dim := len(x[0])
		mean := make([]float64, dim)
		for i, row := range x {
			if labels[i] == largest {
				for j, v := range row {
					mean[j] += v
				}
			}
		}
		for j := range mean {
			mean[j] /= float64(counts[largest])
		}
		// Farthest donor member moves to the empty cluster.
		farthest, farthestDist := -1, -1.0
		for i, row := range x {
			if labels[i] != largest {
				continue
			}
			if d := squaredDistance(row, mean); d > farthestDist {
				farthest, farthestDist = i, d
			}
		}
		labels[farthest] = c
		counts[largest]--
		counts[c]++
	}
}

func nearest(row []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := squaredDistance(row, centroid); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
