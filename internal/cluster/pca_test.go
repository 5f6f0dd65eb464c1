package cluster

import (
	"math"
	"testing"
)

func TestProject2DPassThrough1D(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}}
	centroids := [][]float64{{2}}

	proj := Project2D(x, centroids)

	if proj.ExplainedVariance != [2]float64{1, 0} {
		t.Errorf("ExplainedVariance = %v, want [1 0]", proj.ExplainedVariance)
	}
	if len(proj.Points) != 3 {
		t.Fatalf("len(Points) = %d, want 3", len(proj.Points))
	}
	if proj.Points[1][0] != 2 {
		t.Errorf("Points[1] = %v, want the untouched row [2]", proj.Points[1])
	}

	// The copies must be detached from the caller's slices.
	proj.Points[0][0] = 99
	if x[0][0] == 99 {
		t.Error("Project2D aliased the input rows")
	}
}

func TestProject2DPassThrough2D(t *testing.T) {
	x := [][]float64{{1, 4}, {2, 5}}
	centroids := [][]float64{{1.5, 4.5}}

	proj := Project2D(x, centroids)

	if proj.ExplainedVariance != [2]float64{0.5, 0.5} {
		t.Errorf("ExplainedVariance = %v, want [0.5 0.5]", proj.ExplainedVariance)
	}
	if proj.Points[0][0] != 1 || proj.Points[0][1] != 4 {
		t.Errorf("Points[0] = %v, want the untouched row [1 4]", proj.Points[0])
	}
	if proj.Centers[0][0] != 1.5 {
		t.Errorf("Centers[0] = %v, want the untouched centroid", proj.Centers[0])
	}
}

func TestProject2DReducesPlanarData(t *testing.T) {
	// Points vary along two axes and are constant on the third, so two
	// components capture all variance.
	x := [][]float64{
		{0, 0, 7}, {1, 0, 7}, {2, 0, 7},
		{0, 3, 7}, {1, 3, 7}, {2, 3, 7},
	}
	centroids := [][]float64{{1, 1.5, 7}}

	proj := Project2D(x, centroids)

	if len(proj.Points) != 6 || len(proj.Points[0]) != 2 {
		t.Fatalf("points shape = %dx%d, want 6x2", len(proj.Points), len(proj.Points[0]))
	}
	total := proj.ExplainedVariance[0] + proj.ExplainedVariance[1]
	if math.Abs(total-1) > 1e-6 {
		t.Errorf("explained variance sums to %v, want 1 for planar data", total)
	}
	if proj.ExplainedVariance[0] < proj.ExplainedVariance[1] {
		t.Errorf("components out of order: %v", proj.ExplainedVariance)
	}
}

func TestProject2DDeterministic(t *testing.T) {
	x := [][]float64{
		{0.3, 1.2, -0.5, 2.0},
		{1.1, 0.2, 0.5, -1.0},
		{-0.7, 2.2, 1.5, 0.4},
		{2.3, -1.2, 0.1, 1.7},
		{0.0, 0.8, -1.1, 0.2},
	}
	centroids := [][]float64{{0.6, 0.64, 0.1, 0.66}}

	a := Project2D(x, centroids)
	b := Project2D(x, centroids)

	for i := range a.Points {
		if a.Points[i][0] != b.Points[i][0] || a.Points[i][1] != b.Points[i][1] {
			t.Fatalf("projection differs between identical runs at row %d", i)
		}
	}
	if a.ExplainedVariance != b.ExplainedVariance {
		t.Errorf("explained variance differs between identical runs")
	}
}

func TestDominantEigenvectorSignConvention(t *testing.T) {
	// Diagonal matrix: dominant eigenvector is the second axis, reported
	// with a positive leading nonzero component.
	m := [][]float64{
		{1, 0},
		{0, 4},
	}
	vec, val := dominantEigenvector(m)
	if math.Abs(val-4) > 1e-6 {
		t.Errorf("dominant eigenvalue = %v, want 4", val)
	}
	if vec[1] <= 0 {
		t.Errorf("eigenvector = %v, want positive leading nonzero component", vec)
	}
	if math.Abs(vec[0]) > 1e-3 {
		t.Errorf("eigenvector = %v, want aligned with the second axis", vec)
	}
}
