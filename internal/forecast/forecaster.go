package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/legb78/scan2front/internal/logger"
	"github.com/legb78/scan2front/internal/models"
)

// Period duration factors relative to the monthly base the model predicts.
var periodFactors = map[string]float64{
	"day":     1.0 / 30,
	"week":    1.0 / 4,
	"month":   1,
	"quarter": 3,
}

// periodSpans are the horizons used for the expected purchase date.
var periodSpans = map[string]time.Duration{
	"day":     24 * time.Hour,
	"week":    7 * 24 * time.Hour,
	"month":   30 * 24 * time.Hour,
	"quarter": 90 * 24 * time.Hour,
}

// Accuracy bounds: the reported accuracy is a realism-capped presentation of
// the coefficient of determination, never a statistical claim.
const (
	accuracyFloor = 50
	accuracyCap   = 98
)

// trendWeight converts the monthly trend slope into a percentage nudge.
const trendWeight = 2.0

// fallbackDailyRate stands in for items-per-day when the registration date
// is unknown.
const fallbackDailyRate = 0.01

const (
	topAffinityCategories = 3
	topAffinityProducts   = 2
	maxProductLikelihood  = 0.95
)

// Options control the forecast post-processing stage.
type Options struct {
	Period   string
	Anchor   time.Time
	Progress bool
}

// Build turns raw model predictions into the per-customer forecast list,
// sorted by purchase probability descending. rawPreds[i] belongs to
// customers[i]; fullFitR2 is the refit model's coefficient of determination
// on its training data, which drives the reported accuracy.
func Build(
	customers []models.CustomerRecord,
	ts map[string]models.TimeSeriesFeatures,
	profiles map[string]*models.PurchaseProfile,
	rawPreds []float64,
	fullFitR2 float64,
	opts Options,
) ([]models.CustomerForecast, int) {
	factor := periodFactors[opts.Period]
	expectedDate := opts.Anchor.Add(periodSpans[opts.Period]).Format("2006-01-02")
	modelAccuracy := clampInt(int(math.Round(fullFitR2*100)), accuracyFloor, 100)
	if modelAccuracy > accuracyCap {
		modelAccuracy = accuracyCap
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.Default(int64(len(customers)), "forecasting")
	}

	forecasts := make([]models.CustomerForecast, 0, len(customers))
	for i := range customers {
		c := &customers[i]
		tsf := ts[c.ClientID]

		base := math.Max(0, rawPreds[i])
		adjusted := base * (1 + tsf.Trend*trendWeight/100) * factor
		amount := math.Max(0, adjusted)

		frequency := math.Max(0, dailyItemRate(c, opts.Anchor)*30*factor)
		probability := purchaseProbability(c, opts.Anchor)

		products, categories := affinity(profiles[c.ClientID])
		accuracy := customerAccuracy(modelAccuracy, len(products), tsf.PeriodCount)

		forecasts = append(forecasts, models.CustomerForecast{
			ClientID:            c.ClientID,
			Name:                displayName(c),
			Segment:             segmentLabel(c),
			PredictedAmount:     round2(amount),
			PredictedFrequency:  round2(frequency),
			PurchaseProbability: round2(probability),
			ExpectedDate:        expectedDate,
			Period:              opts.Period,
			AmountAccuracy:      accuracy,
			PredictedProducts:   products,
			LikelyCategories:    categories,
			Insights: &models.TimeSeriesInsights{
				Trend:           trendWord(tsf.Trend),
				AvgPurchase:     round2(tsf.AvgAmount),
				Volatility:      round2(tsf.Volatility),
				PurchaseHistory: tsf.PeriodCount,
			},
		})
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	sort.SliceStable(forecasts, func(a, b int) bool {
		return forecasts[a].PurchaseProbability > forecasts[b].PurchaseProbability
	})
	logger.Info("Built %d customer forecasts for period %q (model accuracy %d%%)", len(forecasts), opts.Period, modelAccuracy)
	return forecasts, modelAccuracy
}

// dailyItemRate is the customer's historical items-per-day since
// registration.
func dailyItemRate(c *models.CustomerRecord, anchor time.Time) float64 {
	if c.RegistrationDate.IsZero() {
		return fallbackDailyRate
	}
	days := anchor.Sub(c.RegistrationDate).Hours() / 24
	if days <= 0 {
		return fallbackDailyRate
	}
	return c.ItemCount / days
}

// purchaseProbability derives the likelihood of a purchase in the period
// from recency versus the expected inter-purchase interval, clamped to
// [0.05, 0.95].
func purchaseProbability(c *models.CustomerRecord, anchor time.Time) float64 {
	daysSinceLast := 365.0
	if !c.LastPurchaseDate.IsZero() {
		daysSinceLast = anchor.Sub(c.LastPurchaseDate).Hours() / 24
	}
	interval := 0.0
	if !c.RegistrationDate.IsZero() && c.PurchaseCount > 0 {
		interval = anchor.Sub(c.RegistrationDate).Hours() / 24 / c.PurchaseCount
	}
	p := 0.1
	if interval > 0 {
		p = 1 - daysSinceLast/(interval*2)
	}
	return math.Min(0.95, math.Max(0.05, p))
}

// customerAccuracy applies the data-quality adjustment to the model
// accuracy: penalize thin product history, reward a deep time series, and
// always land inside [50, 98].
func customerAccuracy(modelAccuracy, productCount, periodCount int) int {
	adjustment := 1.0
	if productCount < 3 {
		adjustment = 0.8
	} else if periodCount > 5 {
		adjustment = 1.1
	}
	return clampInt(int(math.Round(float64(modelAccuracy)*adjustment)), accuracyFloor, accuracyCap)
}

// affinity ranks the customer's historical categories by (count, spend)
// descending and the products inside each the same way. Likelihood is the
// product's share of its category's purchase count.
func affinity(profile *models.PurchaseProfile) ([]models.PredictedProduct, []models.CategoryForecast) {
	if profile == nil {
		return nil, nil
	}

	categories := append([]string(nil), profile.CategoryOrder...)
	sort.SliceStable(categories, func(a, b int) bool {
		ca, cb := profile.Categories[categories[a]], profile.Categories[categories[b]]
		if ca.Count != cb.Count {
			return ca.Count > cb.Count
		}
		return ca.Amount > cb.Amount
	})
	if len(categories) > topAffinityCategories {
		categories = categories[:topAffinityCategories]
	}

	var products []models.PredictedProduct
	var categoryForecasts []models.CategoryForecast
	for _, name := range categories {
		tally := profile.Categories[name]

		productNames := append([]string(nil), tally.ProductOrder...)
		sort.SliceStable(productNames, func(a, b int) bool {
			pa, pb := tally.Products[productNames[a]], tally.Products[productNames[b]]
			if pa.Count != pb.Count {
				return pa.Count > pb.Count
			}
			return pa.Amount > pb.Amount
		})
		if len(productNames) > topAffinityProducts {
			productNames = productNames[:topAffinityProducts]
		}

		cf := models.CategoryForecast{
			Category:      name,
			PurchaseCount: tally.Count,
			TotalSpent:    round2(tally.Amount),
			Products:      make([]models.ProductForecast, 0, len(productNames)),
		}
		for _, pn := range productNames {
			p := tally.Products[pn]
			avgPrice := round2(p.Amount / float64(p.Count))
			cf.Products = append(cf.Products, models.ProductForecast{
				Name:          pn,
				PurchaseCount: p.Count,
				AvgPrice:      avgPrice,
			})
			likelihood := float64(p.Count) / math.Max(1, float64(tally.Count))
			products = append(products, models.PredictedProduct{
				Name:       pn,
				Category:   name,
				Likelihood: round2(math.Min(maxProductLikelihood, likelihood)),
				AvgPrice:   avgPrice,
			})
		}
		categoryForecasts = append(categoryForecasts, cf)
	}
	return products, categoryForecasts
}

func trendWord(trend float64) string {
	switch {
	case trend > 0:
		return "increasing"
	case trend < 0:
		return "decreasing"
	default:
		return "stable"
	}
}

func displayName(c *models.CustomerRecord) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("Client %s", c.ClientID)
}

func segmentLabel(c *models.CustomerRecord) string {
	if c.Status != "" {
		return c.Status
	}
	return "Standard"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
