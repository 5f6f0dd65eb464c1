package cluster

import "math"

// Projection is the 2D visualization view of a clustered feature space.
type Projection struct {
	Points  [][]float64
	Centers [][]float64
	// ExplainedVariance is the fraction of total variance captured by each
	// of the two components. For spaces already at 2 dimensions or below no
	// reduction happens and fixed values are reported: (1,0) for 1D and
	// (0.5,0.5) for exactly 2D.
	ExplainedVariance [2]float64
}

const (
	powerIterations = 200
	powerTolerance  = 1e-12
)

// Project2D reduces the data and centroids to two principal components.
func Project2D(x, centroids [][]float64) *Projection {
	dim := 0
	if len(x) > 0 {
		dim = len(x[0])
	}
	if dim <= 2 {
		ev := [2]float64{0.5, 0.5}
		if dim == 1 {
			ev = [2]float64{1, 0}
		}
		return &Projection{
			Points:            copyMatrix(x),
			Centers:           copyMatrix(centroids),
			ExplainedVariance: ev,
		}
	}

	means := columnMeans(x)
	cov := covariance(x, means)

	var total float64
	for j := 0; j < dim; j++ {
		total += cov[j][j]
	}

	components := make([][]float64, 2)
	eigenvalues := make([]float64, 2)
	for c := 0; c < 2; c++ {
		vec, val := dominantEigenvector(cov)
		components[c] = vec
		eigenvalues[c] = val
		deflate(cov, vec, val)
	}

	proj := &Projection{
		Points:  projectRows(x, means, components),
		Centers: projectRows(centroids, means, components),
	}
	if total > 0 {
		proj.ExplainedVariance = [2]float64{eigenvalues[0] / total, eigenvalues[1] / total}
	}
	return proj
}

func columnMeans(x [][]float64) []float64 {
	dim := len(x[0])
	means := make([]float64, dim)
	for _, row := range x {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(len(x))
	}
	return means
}

// covariance builds the sample covariance matrix of the centered data.
func covariance(x [][]float64, means []float64) [][]float64 {
	n := len(x)
	dim := len(means)
	cov := make([][]float64, dim)
	for j := range cov {
		cov[j] = make([]float64, dim)
	}
	denom := float64(n - 1)
	if n < 2 {
		denom = 1
	}
	for _, row := range x {
		for a := 0; a < dim; a++ {
			da := row[a] - means[a]
			for b := a; b < dim; b++ {
				cov[a][b] += da * (row[b] - means[b]) / denom
			}
		}
	}
	for a := 0; a < dim; a++ {
		for b := 0; b < a; b++ {
			cov[a][b] = cov[b][a]
		}
	}
	return cov
}

// dominantEigenvector extracts the largest eigenpair by power iteration with
// a fixed start vector, so repeated runs agree bit for bit. The returned
// vector's first nonzero component is made positive to pin the sign.
func dominantEigenvector(m [][]float64) ([]float64, float64) {
	dim := len(m)
	vec := make([]float64, dim)
	for j := range vec {
		vec[j] = 1 + float64(j)
	}
	normalize(vec)

	val := 0.0
	for iter := 0; iter < powerIterations; iter++ {
		next := multiply(m, vec)
		nextVal := norm(next)
		if nextVal == 0 {
			break
		}
		for j := range next {
			next[j] /= nextVal
		}
		if math.Abs(nextVal-val) < powerTolerance {
			vec, val = next, nextVal
			break
		}
		vec, val = next, nextVal
	}

	for _, v := range vec {
		if v != 0 {
			if v < 0 {
				for j := range vec {
					vec[j] = -vec[j]
				}
			}
			break
		}
	}
	return vec, val
}

// deflate removes the extracted eigenpair from the matrix in place.
func deflate(m [][]float64, vec []float64, val float64) {
	for a := range m {
		for b := range m[a] {
			m[a][b] -= val * vec[a] * vec[b]
		}
	}
}

func projectRows(rows [][]float64, means []float64, components [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		p := make([]float64, len(components))
		for c, comp := range components {
			var dot float64
			for j, v := range row {
				dot += (v - means[j]) * comp[j]
			}
			p[c] = dot
		}
		out[i] = p
	}
	return out
}

func multiply(m [][]float64, v []float64) []float64 {
	out := make([]float64, len(m))
	for i, row := range m {
		var sum float64
		for j, x := range row {
			sum += x * v[j]
		}
		out[i] = sum
	}
	return out
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func normalize(v []float64) {
	n := norm(v)
	if n == 0 {
		return
	}
	for j := range v {
		v[j] /= n
	}
}

func copyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
