package pipeline

import (
	"github.com/legb78/scan2front/internal/config"
	"github.com/legb78/scan2front/internal/features"
	"github.com/legb78/scan2front/internal/forecast"
	"github.com/legb78/scan2front/internal/logger"
	"github.com/legb78/scan2front/internal/models"
)

// RunForecast produces the purchase forecast report: cross-validates a
// gradient-boosted model on the customer table in input order, refits it on
// all rows, and post-processes the per-customer predictions for the
// configured period.
func RunForecast(cfg *config.Config) (*models.ForecastReport, error) {
	src, err := Load(cfg)
	if err != nil {
		return nil, err
	}
	customers := src.Table.Customers

	prep, err := features.Prepare(customers, src.TS, cfg.Analysis.Features, cfg.Forecast.UseTimeSeries, src.Anchor)
	if err != nil {
		return nil, err
	}

	target := make([]float64, len(customers))
	for i := range customers {
		target[i] = customers[i].TotalSpent
	}

	params := forecast.Params{
		Trees:        cfg.Forecast.Trees,
		LearningRate: cfg.Forecast.LearningRate,
		MaxDepth:     cfg.Forecast.MaxDepth,
		Folds:        cfg.Forecast.Folds,
	}

	cv, err := forecast.CrossValidate(prep.X, target, params)
	if err != nil {
		return nil, err
	}

	// Refit on every row for the actual predictions; the scaler fitted by
	// Prepare already standardized X, so no second transform happens here.
	booster, err := forecast.FitBooster(prep.X, target, params)
	if err != nil {
		return nil, err
	}
	preds := booster.PredictAll(prep.X)
	logger.Info("Refit forecast model on %d customers (CV R² %.4f)", len(customers), cv.R2)

	forecasts, accuracy := forecast.Build(customers, src.TS, src.Table.Profiles, preds, booster.RSquared(prep.X, target), forecast.Options{
		Period:   cfg.Forecast.Period,
		Anchor:   src.Anchor,
		Progress: cfg.Forecast.Progress,
	})

	return &models.ForecastReport{
		Meta:        src.Meta("forecast-purchases"),
		Predictions: forecasts,
		Metrics: models.ModelMetrics{
			Model: "gradient_boosting",
			R2:    cv.R2,
			MSE:   cv.MSE,
			RMSE:  cv.RMSE,
			MAE:   cv.MAE,
		},
		FeaturesUsed:   prep.Names,
		Period:         cfg.Forecast.Period,
		AmountAccuracy: accuracy,
	}, nil
}
