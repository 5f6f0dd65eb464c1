// Package segment turns per-cluster statistics into categorical tags and a
// composite persona label. Every classification is a fixed threshold or an
// ordered rule table evaluated top to bottom, first match wins.
package segment

// Tag vocabulary. Thresholds compare against per-cluster feature means.
const (
	AgeYoung  = "Young"
	AgeAdult  = "Adult"
	AgeSenior = "Senior"

	LoyaltyLow    = "Low"
	LoyaltyMedium = "Medium"
	LoyaltyHigh   = "High"

	FrequencyOccasional = "Occasional"
	FrequencyRegular    = "Regular"
	FrequencyFrequent   = "Frequent"

	SpendingFrugal   = "Frugal"
	SpendingMedium   = "Medium"
	SpendingGenerous = "Generous"
)

// thresholdRule labels values strictly below Below; the first matching rule
// wins and the chain's fallback covers everything else.
type thresholdRule struct {
	Below float64
	Label string
}

type thresholdChain struct {
	rules    []thresholdRule
	fallback string
}

func (c thresholdChain) classify(v float64) string {
	for _, r := range c.rules {
		if v < r.Below {
			return r.Label
		}
	}
	return c.fallback
}

var (
	ageChain = thresholdChain{
		rules:    []thresholdRule{{30, AgeYoung}, {50, AgeAdult}},
		fallback: AgeSenior,
	}
	loyaltyChain = thresholdChain{
		rules:    []thresholdRule{{500, LoyaltyLow}, {1500, LoyaltyMedium}},
		fallback: LoyaltyHigh,
	}
	frequencyChain = thresholdChain{
		rules:    []thresholdRule{{5, FrequencyOccasional}, {10, FrequencyRegular}},
		fallback: FrequencyFrequent,
	}
	spendingChain = thresholdChain{
		rules:    []thresholdRule{{30, SpendingFrugal}, {75, SpendingMedium}},
		fallback: SpendingGenerous,
	}
)

// Tags is a cluster's categorical profile. Fields are empty when the driving
// feature was not part of the requested feature set.
type Tags struct {
	AgeGroup  string
	Loyalty   string
	Frequency string
	Spending  string
}

// personaRule pairs a predicate with its persona label.
type personaRule struct {
	match func(Tags) bool
	label string
}

// personaTable is the full decision table using the spending tag. Order is
// contractual: first match wins.
var personaTable = []personaRule{
	{func(t Tags) bool {
		return t.Loyalty == LoyaltyHigh && t.Frequency == FrequencyFrequent && t.Spending == SpendingGenerous
	}, "Premium Loyal"},
	{func(t Tags) bool {
		return t.Loyalty == LoyaltyHigh && t.Frequency == FrequencyFrequent
	}, "Regular Loyal"},
	{func(t Tags) bool {
		return t.Loyalty == LoyaltyMedium && t.Frequency == FrequencyRegular
	}, "Regular Customer"},
	{func(t Tags) bool {
		return t.Loyalty == LoyaltyLow && t.Frequency == FrequencyOccasional && t.Spending == SpendingGenerous
	}, "High-Potential Occasional"},
	{func(t Tags) bool {
		return t.Loyalty == LoyaltyLow && t.Frequency == FrequencyOccasional
	}, "Occasional Customer"},
	{func(t Tags) bool { return t.Spending == SpendingFrugal }, "Price-Sensitive Customer"},
}

// customerTypeTable is the coarser table used when no basket-size feature is
// available; it falls back on the age group instead.
var customerTypeTable = []personaRule{
	{func(t Tags) bool {
		return t.Loyalty == LoyaltyHigh && t.Frequency == FrequencyFrequent
	}, "Premium Loyal"},
	{func(t Tags) bool {
		return t.Loyalty == LoyaltyMedium && t.Frequency == FrequencyRegular
	}, "Regular Customer"},
	{func(t Tags) bool {
		return t.Loyalty == LoyaltyLow && t.Frequency == FrequencyOccasional && t.AgeGroup == AgeYoung
	}, "Young Occasional"},
	{func(t Tags) bool {
		return t.Loyalty == LoyaltyLow && t.Frequency == FrequencyOccasional
	}, "Occasional Customer"},
}

const personaFallback = "Mixed Customer"

func evaluate(table []personaRule, t Tags) string {
	for _, rule := range table {
		if rule.match(t) {
			return rule.label
		}
	}
	return personaFallback
}

// Persona returns the composite persona label for a fully tagged cluster
// (loyalty, frequency and spending all present).
func Persona(t Tags) string {
	if t.Loyalty == "" || t.Frequency == "" || t.Spending == "" {
		return ""
	}
	return evaluate(personaTable, t)
}

// CustomerType returns the coarser composite label used by the clustering
// report (loyalty, frequency and age group present).
func CustomerType(t Tags) string {
	if t.Loyalty == "" || t.Frequency == "" || t.AgeGroup == "" {
		return ""
	}
	return evaluate(customerTypeTable, t)
}
