// Package models defines the domain entities of the loyalty analytics
// pipeline: raw wire records, the normalized per-customer feature table,
// derived time-series features, purchase profiles, and the JSON report
// payloads the binaries emit on stdout.
//
// Terminology:
//   - Customer: one loyalty-program member. The loyalty file defines the
//     customer universe; purchase data is merged onto it.
//   - Purchase profile: the per-customer category → product tally built
//     while scanning transactions, read-only after normalization.
package models

import (
	"errors"
	"time"
)

var errMissingClientID = errors.New("record is missing its client identifier")

// CustomerRecord is one row of the normalized per-customer table: loyalty
// attributes merged with aggregated transaction attributes. Customers without
// any purchase record keep zero-filled transaction fields.
type CustomerRecord struct {
	ClientID       string  `json:"client_id"`
	Name           string  `json:"name,omitempty"`
	Email          string  `json:"email,omitempty"`
	Gender         string  `json:"gender,omitempty"`
	Age            float64 `json:"age"`
	RegisteredAt   string  `json:"registered_at,omitempty"`
	LastPurchaseAt string  `json:"last_purchase_at,omitempty"`
	PurchaseCount  float64 `json:"purchase_count"`
	CurrentPoints  float64 `json:"current_points"`
	TotalPoints    float64 `json:"total_points"`
	UsedPoints     float64 `json:"used_points"`
	Status         string  `json:"status,omitempty"`
	Active         bool    `json:"active"`
	TotalSpent     float64 `json:"total_spent"`
	ItemCount      float64 `json:"item_count"`

	// Parsed date fields. Zero when the source string was absent or did not
	// parse; date-derived features treat zero as missing, never as epoch.
	RegistrationDate time.Time `json:"-"`
	LastPurchaseDate time.Time `json:"-"`
}

// TimeSeriesFeatures summarizes a customer's purchase history over calendar
// months. Customers with fewer than 3 monthly buckets carry zero trend,
// seasonality and volatility, with RollingAvg degraded to the simple mean.
type TimeSeriesFeatures struct {
	RollingAvg  float64 `json:"rolling_avg"`
	Trend       float64 `json:"trend"`
	Seasonality float64 `json:"seasonality"`
	Volatility  float64 `json:"volatility"`
	LastAmount  float64 `json:"last_purchase"`
	MaxAmount   float64 `json:"max_purchase"`
	TotalSpent  float64 `json:"total_spent"`
	AvgAmount   float64 `json:"avg_purchase"`
	PeriodCount int     `json:"purchase_count"`
}

// TimeSeriesFeatureNames lists the time-series feature columns in the order
// they are appended to the feature matrix.
var TimeSeriesFeatureNames = []string{
	"ts_rolling_avg",
	"ts_trend",
	"ts_seasonality",
	"ts_volatility",
	"ts_max_purchase",
	"ts_last_purchase",
	"ts_purchase_count",
	"ts_total_spent",
	"ts_avg_purchase",
}

// Vector returns the feature values in TimeSeriesFeatureNames order.
func (f TimeSeriesFeatures) Vector() []float64 {
	return []float64{
		f.RollingAvg,
		f.Trend,
		f.Seasonality,
		f.Volatility,
		f.MaxAmount,
		f.LastAmount,
		float64(f.PeriodCount),
		f.TotalSpent,
		f.AvgAmount,
	}
}

// ProductTally accumulates purchase count and spend for one product name.
type ProductTally struct {
	Count  int
	Amount float64
}

// CategoryTally accumulates purchase count and spend for one category along
// with the per-product breakdown. Product order preserves first appearance so
// equal-count rankings are reproducible.
type CategoryTally struct {
	Name         string
	Count        int
	Amount       float64
	Products     map[string]*ProductTally
	ProductOrder []string
}

// AddProduct records one line item under the category.
func (c *CategoryTally) AddProduct(name string, cost float64) {
	c.Count++
	c.Amount += cost
	p, ok := c.Products[name]
	if !ok {
		p = &ProductTally{}
		c.Products[name] = p
		c.ProductOrder = append(c.ProductOrder, name)
	}
	p.Count++
	p.Amount += cost
}

// PurchaseProfile is the per-customer nested category → product accumulation.
// The record normalizer is its sole writer; every later stage reads it only.
type PurchaseProfile struct {
	Categories    map[string]*CategoryTally
	CategoryOrder []string
}

// NewPurchaseProfile returns an empty profile ready for accumulation.
func NewPurchaseProfile() *PurchaseProfile {
	return &PurchaseProfile{Categories: make(map[string]*CategoryTally)}
}

// Add records one line item, creating the category tally on first sight.
func (p *PurchaseProfile) Add(category, product string, cost float64) {
	c, ok := p.Categories[category]
	if !ok {
		c = &CategoryTally{Name: category, Products: make(map[string]*ProductTally)}
		p.Categories[category] = c
		p.CategoryOrder = append(p.CategoryOrder, category)
	}
	c.AddProduct(product, cost)
}

// DominantCategory returns the category with the largest accumulated spend.
// Ties keep the first-seen category. The boolean is false for customers with
// no line items at all.
func (p *PurchaseProfile) DominantCategory() (string, bool) {
	best := ""
	bestAmount := 0.0
	for _, name := range p.CategoryOrder {
		c := p.Categories[name]
		if best == "" || c.Amount > bestAmount {
			best = name
			bestAmount = c.Amount
		}
	}
	return best, best != ""
}
