// Package features assembles the numeric feature matrix: column selection,
// synthetic derived columns, mean imputation and standardization. The fitted
// scaler is part of the output because the forecaster must transform later
// rows with the exact same parameters; refitting would silently shift the
// feature space under the model.
package features

import (
	"math"
	"time"

	"github.com/legb78/scan2front/internal/errs"
	"github.com/legb78/scan2front/internal/logger"
	"github.com/legb78/scan2front/internal/models"
)

// getter extracts one feature value. ok is false when the value is undefined
// for the customer (for example a date-derived feature without a parsed
// date); undefined values are imputed with the column mean.
type getter func(c *models.CustomerRecord) (value float64, ok bool)

func baseGetters(anchor time.Time) map[string]getter {
	days := func(t time.Time) (float64, bool) {
		if t.IsZero() {
			return 0, false
		}
		return anchor.Sub(t).Hours() / 24, true
	}
	perPurchase := func(total, count float64) float64 {
		if count == 0 {
			count = 1
		}
		return total / count
	}
	return map[string]getter{
		"age":             func(c *models.CustomerRecord) (float64, bool) { return c.Age, true },
		"points_cumules":  func(c *models.CustomerRecord) (float64, bool) { return c.TotalPoints, true },
		"points_actuels":  func(c *models.CustomerRecord) (float64, bool) { return c.CurrentPoints, true },
		"points_utilises": func(c *models.CustomerRecord) (float64, bool) { return c.UsedPoints, true },
		"nombre_achats":   func(c *models.CustomerRecord) (float64, bool) { return c.PurchaseCount, true },
		"total_achat":     func(c *models.CustomerRecord) (float64, bool) { return c.TotalSpent, true },
		"nombre_produits": func(c *models.CustomerRecord) (float64, bool) { return c.ItemCount, true },
		"points_par_achat": func(c *models.CustomerRecord) (float64, bool) {
			return perPurchase(c.TotalPoints, c.PurchaseCount), true
		},
		"panier_moyen": func(c *models.CustomerRecord) (float64, bool) {
			return perPurchase(c.TotalSpent, c.PurchaseCount), true
		},
		"jours_depuis_inscription": func(c *models.CustomerRecord) (float64, bool) {
			return days(c.RegistrationDate)
		},
		"jours_depuis_dernier_achat": func(c *models.CustomerRecord) (float64, bool) {
			return days(c.LastPurchaseDate)
		},
		"frequence_achat": func(c *models.CustomerRecord) (float64, bool) {
			d, ok := days(c.RegistrationDate)
			if !ok || c.PurchaseCount == 0 {
				return 0, false
			}
			return d / c.PurchaseCount, true
		},
	}
}

// KnownFeature reports whether name is a selectable feature column.
func KnownFeature(name string) bool {
	_, ok := baseGetters(time.Time{})[name]
	return ok
}

// Prepared is the assembled feature matrix with its fitted scaler.
type Prepared struct {
	// Names holds the retained feature names in request order, followed by
	// the time-series columns when those were included.
	Names []string
	// X is the standardized matrix; row i corresponds to customer i of the
	// input slice.
	X [][]float64
	// Raw is the imputed but unscaled matrix, kept for per-cluster
	// statistics.
	Raw [][]float64
	// Scaler holds the per-column fit; reuse it for any later transform in
	// the same run.
	Scaler *Scaler
}

// Prepare selects the requested feature columns (silently dropping unknown
// names), appends the time-series columns when includeTS is set, imputes
// undefined values with the column mean and standardizes every column.
// A request that retains no valid feature is a ConfigError.
func Prepare(customers []models.CustomerRecord, ts map[string]models.TimeSeriesFeatures, requested []string, includeTS bool, anchor time.Time) (*Prepared, error) {
	getters := baseGetters(anchor)

	names := make([]string, 0, len(requested))
	cols := make([]getter, 0, len(requested))
	for _, name := range requested {
		g, ok := getters[name]
		if !ok {
			logger.Warn("Ignoring unknown feature %q", name)
			continue
		}
		names = append(names, name)
		cols = append(cols, g)
	}
	if len(names) == 0 {
		return nil, errs.Configf("none of the requested features %v exist in the data", requested)
	}

	width := len(names)
	if includeTS {
		width += len(models.TimeSeriesFeatureNames)
		names = append(names, models.TimeSeriesFeatureNames...)
	}

	raw := make([][]float64, len(customers))
	for i := range customers {
		row := make([]float64, 0, width)
		for _, g := range cols {
			v, ok := g(&customers[i])
			if !ok {
				v = math.NaN()
			}
			row = append(row, v)
		}
		if includeTS {
			row = append(row, ts[customers[i].ClientID].Vector()...)
		}
		raw[i] = row
	}

	imputeColumnMeans(raw)
	scaler := fitScaler(raw)
	logger.Debug("Prepared %d×%d feature matrix (features: %v)", len(raw), width, names)

	return &Prepared{
		Names:  names,
		X:      scaler.Transform(raw),
		Raw:    raw,
		Scaler: scaler,
	}, nil
}

// imputeColumnMeans replaces NaN cells with the mean of the column's defined
// values, in place. A column with no defined value at all becomes zero.
func imputeColumnMeans(rows [][]float64) {
	if len(rows) == 0 {
		return
	}
	width := len(rows[0])
	for j := 0; j < width; j++ {
		var sum float64
		var n int
		for _, row := range rows {
			if !math.IsNaN(row[j]) {
				sum += row[j]
				n++
			}
		}
		fill := 0.0
		if n > 0 {
			fill = sum / float64(n)
		}
		for _, row := range rows {
			if math.IsNaN(row[j]) {
				row[j] = fill
			}
		}
	}
}

// Scaler holds the per-column standardization parameters fitted on the full
// customer set.
type Scaler struct {
	Means []float64
	Stds  []float64
}

// fitScaler computes per-column mean and population standard deviation.
// Zero-variance columns store a unit deviation so they standardize to all
// zeros instead of dividing by zero.
func fitScaler(rows [][]float64) *Scaler {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	s := &Scaler{Means: make([]float64, width), Stds: make([]float64, width)}
	n := float64(len(rows))
	for j := 0; j < width; j++ {
		var sum float64
		for _, row := range rows {
			sum += row[j]
		}
		mean := sum / n
		var ss float64
		for _, row := range rows {
			d := row[j] - mean
			ss += d * d
		}
		std := math.Sqrt(ss / n)
		if std == 0 {
			std = 1
		}
		s.Means[j] = mean
		s.Stds[j] = std
	}
	return s
}

// Transform standardizes rows with the fitted parameters.
func (s *Scaler) Transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Means[j]) / s.Stds[j]
		}
		out[i] = scaled
	}
	return out
}

// InverseTransform maps standardized rows back to the original feature scale.
func (s *Scaler) InverseTransform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		orig := make([]float64, len(row))
		for j, v := range row {
			orig[j] = v*s.Stds[j] + s.Means[j]
		}
		out[i] = orig
	}
	return out
}
