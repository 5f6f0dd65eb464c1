// Package timeseries derives per-customer trend, seasonality, volatility and
// recency features from the ordered purchase history. Purchases are grouped
// into calendar-month buckets; customers with fewer than 3 buckets carry
// zeroed trend/seasonality/volatility so downstream models never see noise
// fitted on two points.
package timeseries

import (
	"math"
	"sort"
	"time"

	"github.com/legb78/scan2front/internal/dataset"
	"github.com/legb78/scan2front/internal/logger"
	"github.com/legb78/scan2front/internal/models"
)

// trendWindow caps how many trailing buckets feed the fitted trend line.
const trendWindow = 6

// rollingWindow caps how many trailing buckets feed the rolling average.
const rollingWindow = 3

// seasonalityMinPeriods is the minimum bucket count for a seasonality
// estimate; below a full year of data the monthly profile is meaningless.
const seasonalityMinPeriods = 12

type bucket struct {
	key   string // YYYY-MM, lexical order is chronological
	month time.Month
	total float64
	items float64
}

// Extract computes the time-series feature set for every customer in the
// universe. Purchases with unparseable dates are excluded from bucketing;
// customers with no dated purchases get the zero-filled set. Extraction never
// fails.
func Extract(purchases []models.PurchaseRecord, universe []string) map[string]models.TimeSeriesFeatures {
	perClient := make(map[string]map[string]*bucket)
	undated := 0
	for _, p := range purchases {
		t, ok := dataset.ParseDate(p.Date)
		if !ok {
			undated++
			continue
		}
		key := t.Format("2006-01")
		buckets, ok := perClient[p.ClientID]
		if !ok {
			buckets = make(map[string]*bucket)
			perClient[p.ClientID] = buckets
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{key: key, month: t.Month()}
			buckets[key] = b
		}
		b.total += p.Total
		b.items += p.ItemCount
	}
	if undated > 0 {
		logger.Warn("Excluded %d purchases with unparseable dates from time-series bucketing", undated)
	}

	features := make(map[string]models.TimeSeriesFeatures, len(universe))
	for _, clientID := range universe {
		features[clientID] = featuresFor(perClient[clientID])
	}
	return features
}

func featuresFor(byMonth map[string]*bucket) models.TimeSeriesFeatures {
	if len(byMonth) == 0 {
		return models.TimeSeriesFeatures{}
	}

	buckets := make([]*bucket, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].key < buckets[j].key })

	totals := make([]float64, len(buckets))
	var sum, max float64
	for i, b := range buckets {
		totals[i] = b.total
		sum += b.total
		if b.total > max {
			max = b.total
		}
	}
	n := len(totals)
	fs := models.TimeSeriesFeatures{
		LastAmount:  totals[n-1],
		MaxAmount:   max,
		TotalSpent:  sum,
		AvgAmount:   sum / float64(n),
		PeriodCount: n,
	}

	if n < 3 {
		fs.RollingAvg = fs.AvgAmount
		return fs
	}

	fs.RollingAvg = mean(totals[n-min(rollingWindow, n):])
	fs.Trend = olsSlope(totals[n-min(trendWindow, n):])
	fs.Volatility = sampleStd(totals)

	if n >= seasonalityMinPeriods && fs.AvgAmount > 0 {
		fs.Seasonality = sampleStd(monthlyAverages(buckets)) / fs.AvgAmount
	}
	return fs
}

// monthlyAverages computes the mean bucket total per calendar month across
// the months that actually occur.
func monthlyAverages(buckets []*bucket) []float64 {
	var sums, counts [13]float64
	for _, b := range buckets {
		sums[b.month] += b.total
		counts[b.month]++
	}
	avgs := make([]float64, 0, 12)
	for m := time.January; m <= time.December; m++ {
		if counts[m] > 0 {
			avgs = append(avgs, sums[m]/counts[m])
		}
	}
	return avgs
}

// olsSlope fits an ordinary least-squares line to the values against their
// index and returns the slope.
func olsSlope(y []float64) float64 {
	n := float64(len(y))
	if n < 2 {
		return 0
	}
	xMean := (n - 1) / 2
	yMean := mean(y)
	var num, den float64
	for i, v := range y {
		dx := float64(i) - xMean
		num += dx * (v - yMean)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the n-1 standard deviation; 0 for fewer than two values.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
