package forecast

import (
	"errors"
	"math"
	"testing"

	"github.com/legb78/scan2front/internal/errs"
)

func TestCrossValidateOnRamp(t *testing.T) {
	x, y := rampData(60)
	m, err := CrossValidate(x, y, testParams)
	if err != nil {
		t.Fatalf("CrossValidate failed: %v", err)
	}

	if m.MSE < 0 || m.MAE < 0 {
		t.Errorf("negative error metrics: %+v", m)
	}
	if math.Abs(m.RMSE-math.Sqrt(m.MSE)) > 1e-9 {
		t.Errorf("RMSE = %v, want sqrt(MSE) = %v", m.RMSE, math.Sqrt(m.MSE))
	}
	// Chronological splits always extrapolate beyond the training range, so
	// the ramp is hard; the metrics must still be finite.
	for name, v := range map[string]float64{"MSE": m.MSE, "RMSE": m.RMSE, "MAE": m.MAE, "R2": m.R2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s = %v, want finite", name, v)
		}
	}
}

func TestCrossValidateDeterministic(t *testing.T) {
	x, y := rampData(36)
	a, err := CrossValidate(x, y, testParams)
	if err != nil {
		t.Fatalf("CrossValidate failed: %v", err)
	}
	b, err := CrossValidate(x, y, testParams)
	if err != nil {
		t.Fatalf("CrossValidate failed: %v", err)
	}
	if a != b {
		t.Errorf("metrics differ between identical runs: %+v vs %+v", a, b)
	}
}

func TestCrossValidateTooFewRows(t *testing.T) {
	x, y := rampData(5)
	_, err := CrossValidate(x, y, testParams)
	var fe *errs.FitError
	if !errors.As(err, &fe) {
		t.Errorf("CrossValidate error = %v, want a FitError", err)
	}
}
