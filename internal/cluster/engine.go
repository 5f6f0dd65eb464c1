package cluster

// Result bundles one clustering fit with its 2D visualization view.
type Result struct {
	Partition  *Partition
	Projection *Projection
}

// Fit partitions the standardized matrix into k clusters and projects points
// and centroids to two dimensions.
func Fit(x [][]float64, k int, seed int64, restarts, maxIter int) (*Result, error) {
	part, err := KMeans(x, k, seed, restarts, maxIter)
	if err != nil {
		return nil, err
	}
	return &Result{
		Partition:  part,
		Projection: Project2D(x, part.Centroids),
	}, nil
}
