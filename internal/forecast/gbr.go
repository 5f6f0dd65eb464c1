package forecast

import (
	"github.com/legb78/scan2front/internal/errs"
	"github.com/legb78/scan2front/internal/logger"
)

// Params are the fixed regressor hyperparameters.
type Params struct {
	Trees        int
	LearningRate float64
	MaxDepth     int
	Folds        int
}

// Booster is a fitted gradient-boosted regression model: a mean baseline plus
// shrunken regression trees fitted on successive residuals.
type Booster struct {
	baseline     float64
	learningRate float64
	trees        []*treeNode
}

// FitBooster trains a gradient-boosted regressor with squared loss.
func FitBooster(x [][]float64, y []float64, p Params) (*Booster, error) {
	if len(x) == 0 {
		return nil, errs.Fitf("cannot fit a regressor on an empty matrix")
	}
	if len(x) != len(y) {
		return nil, errs.Fitf("feature matrix has %d rows but target has %d", len(x), len(y))
	}

	var sum float64
	for _, v := range y {
		sum += v
	}
	b := &Booster{
		baseline:     sum / float64(len(y)),
		learningRate: p.LearningRate,
		trees:        make([]*treeNode, 0, p.Trees),
	}

	indices := make([]int, len(x))
	for i := range indices {
		indices[i] = i
	}
	preds := make([]float64, len(y))
	for i := range preds {
		preds[i] = b.baseline
	}
	residuals := make([]float64, len(y))

	for t := 0; t < p.Trees; t++ {
		for i := range y {
			residuals[i] = y[i] - preds[i]
		}
		tree := buildTree(x, residuals, indices, 0, p.MaxDepth)
		b.trees = append(b.trees, tree)
		for i, row := range x {
			preds[i] += p.LearningRate * tree.predict(row)
		}
	}
	logger.Debug("Fitted gradient booster: %d trees, depth %d, lr %.3f", p.Trees, p.MaxDepth, p.LearningRate)
	return b, nil
}

// Predict returns the model output for one standardized feature row.
func (b *Booster) Predict(row []float64) float64 {
	out := b.baseline
	for _, tree := range b.trees {
		out += b.learningRate * tree.predict(row)
	}
	return out
}

// PredictAll applies Predict to every row.
func (b *Booster) PredictAll(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = b.Predict(row)
	}
	return out
}

// RSquared is the coefficient of determination of the model's predictions
// against the given target. A zero-variance target yields 0.
func (b *Booster) RSquared(x [][]float64, y []float64) float64 {
	return rSquared(y, b.PredictAll(x))
}

func rSquared(y, preds []float64) float64 {
	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	var ssRes, ssTot float64
	for i, v := range y {
		d := v - preds[i]
		ssRes += d * d
		t := v - mean
		ssTot += t * t
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
