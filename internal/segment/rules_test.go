package segment

import "testing"

func TestThresholdChains(t *testing.T) {
	tests := []struct {
		name  string
		chain thresholdChain
		value float64
		want  string
	}{
		{"age below first threshold", ageChain, 29.99, AgeYoung},
		{"age at first threshold", ageChain, 30, AgeAdult},
		{"age at second threshold", ageChain, 50, AgeSenior},
		{"age far above", ageChain, 80, AgeSenior},
		{"loyalty low", loyaltyChain, 499, LoyaltyLow},
		{"loyalty medium boundary", loyaltyChain, 500, LoyaltyMedium},
		{"loyalty high boundary", loyaltyChain, 1500, LoyaltyHigh},
		{"frequency occasional", frequencyChain, 4.9, FrequencyOccasional},
		{"frequency regular boundary", frequencyChain, 5, FrequencyRegular},
		{"frequency frequent boundary", frequencyChain, 10, FrequencyFrequent},
		{"spending frugal", spendingChain, 29, SpendingFrugal},
		{"spending medium boundary", spendingChain, 30, SpendingMedium},
		{"spending generous boundary", spendingChain, 75, SpendingGenerous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.chain.classify(tt.value); got != tt.want {
				t.Errorf("classify(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestPersona(t *testing.T) {
	tests := []struct {
		name string
		tags Tags
		want string
	}{
		{
			"premium loyal",
			Tags{Loyalty: LoyaltyHigh, Frequency: FrequencyFrequent, Spending: SpendingGenerous},
			"Premium Loyal",
		},
		{
			"regular loyal without generous spending",
			Tags{Loyalty: LoyaltyHigh, Frequency: FrequencyFrequent, Spending: SpendingMedium},
			"Regular Loyal",
		},
		{
			"regular customer",
			Tags{Loyalty: LoyaltyMedium, Frequency: FrequencyRegular, Spending: SpendingMedium},
			"Regular Customer",
		},
		{
			"high potential occasional",
			Tags{Loyalty: LoyaltyLow, Frequency: FrequencyOccasional, Spending: SpendingGenerous},
			"High-Potential Occasional",
		},
		{
			"occasional customer",
			Tags{Loyalty: LoyaltyLow, Frequency: FrequencyOccasional, Spending: SpendingMedium},
			"Occasional Customer",
		},
		{
			"price sensitive",
			Tags{Loyalty: LoyaltyMedium, Frequency: FrequencyFrequent, Spending: SpendingFrugal},
			"Price-Sensitive Customer",
		},
		{
			"mixed fallback",
			Tags{Loyalty: LoyaltyHigh, Frequency: FrequencyRegular, Spending: SpendingGenerous},
			"Mixed Customer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Persona(tt.tags); got != tt.want {
				t.Errorf("Persona(%+v) = %q, want %q", tt.tags, got, tt.want)
			}
		})
	}
}

func TestPersonaRequiresAllTags(t *testing.T) {
	if got := Persona(Tags{Loyalty: LoyaltyHigh, Frequency: FrequencyFrequent}); got != "" {
		t.Errorf("Persona without spending tag = %q, want empty", got)
	}
}

func TestCustomerType(t *testing.T) {
	tests := []struct {
		name string
		tags Tags
		want string
	}{
		{
			"premium loyal",
			Tags{Loyalty: LoyaltyHigh, Frequency: FrequencyFrequent, AgeGroup: AgeSenior},
			"Premium Loyal",
		},
		{
			"young occasional",
			Tags{Loyalty: LoyaltyLow, Frequency: FrequencyOccasional, AgeGroup: AgeYoung},
			"Young Occasional",
		},
		{
			"occasional customer",
			Tags{Loyalty: LoyaltyLow, Frequency: FrequencyOccasional, AgeGroup: AgeAdult},
			"Occasional Customer",
		},
		{
			"mixed fallback",
			Tags{Loyalty: LoyaltyHigh, Frequency: FrequencyOccasional, AgeGroup: AgeAdult},
			"Mixed Customer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CustomerType(tt.tags); got != tt.want {
				t.Errorf("CustomerType(%+v) = %q, want %q", tt.tags, got, tt.want)
			}
		})
	}

	if got := CustomerType(Tags{Loyalty: LoyaltyLow, Frequency: FrequencyOccasional}); got != "" {
		t.Errorf("CustomerType without age group = %q, want empty", got)
	}
}
