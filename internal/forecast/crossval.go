package forecast

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/legb78/scan2front/internal/errs"
	"github.com/legb78/scan2front/internal/logger"
)

// CVMetrics are the fold-averaged cross-validation scores.
type CVMetrics struct {
	MSE  float64
	RMSE float64
	MAE  float64
	R2   float64
}

// CrossValidate evaluates the regressor with a chronological expanding-window
// split: rows stay in input order, fold i trains on everything before its
// test block and never on anything after it. Folds run concurrently; each
// writes its own slot, and the averages do not depend on scheduling.
func CrossValidate(x [][]float64, y []float64, p Params) (CVMetrics, error) {
	n := len(x)
	testSize := n / (p.Folds + 1)
	if testSize < 1 {
		return CVMetrics{}, errs.Fitf("%d rows are too few for %d chronological folds", n, p.Folds)
	}

	type foldScore struct {
		mse, mae, r2 float64
	}
	scores := make([]foldScore, p.Folds)

	var g errgroup.Group
	for f := 0; f < p.Folds; f++ {
		f := f
		g.Go(func() error {
			trainEnd := n - (p.Folds-f)*testSize
			testEnd := trainEnd + testSize

			model, err := FitBooster(x[:trainEnd], y[:trainEnd], p)
			if err != nil {
				return err
			}
			preds := model.PredictAll(x[trainEnd:testEnd])
			actual := y[trainEnd:testEnd]

			var sse, sae float64
			for i, v := range actual {
				d := v - preds[i]
				sse += d * d
				sae += math.Abs(d)
			}
			m := float64(len(actual))
			scores[f] = foldScore{
				mse: sse / m,
				mae: sae / m,
				r2:  rSquared(actual, preds),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return CVMetrics{}, err
	}

	var out CVMetrics
	for _, s := range scores {
		out.MSE += s.mse
		out.MAE += s.mae
		out.R2 += s.r2
	}
	folds := float64(p.Folds)
	out.MSE /= folds
	out.MAE /= folds
	out.R2 /= folds
	out.RMSE = math.Sqrt(out.MSE)

	logger.Info("Cross-validation: R2=%.4f RMSE=%.2f MAE=%.2f (%d folds)", out.R2, out.RMSE, out.MAE, p.Folds)
	return out, nil
}
