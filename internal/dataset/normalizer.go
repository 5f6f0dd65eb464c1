package dataset

import (
	"github.com/legb78/scan2front/internal/logger"
	"github.com/legb78/scan2front/internal/models"
)

// Table is the normalized output of the record normalizer: one CustomerRecord
// per loyalty entry, the per-customer purchase profiles, and the dominant
// category per customer. Profiles are built here and read-only afterward.
type Table struct {
	Customers []models.CustomerRecord
	Profiles  map[string]*models.PurchaseProfile
	// DominantCategory maps a customer to the category with the largest
	// accumulated spend; customers without line items are absent.
	DominantCategory map[string]string
}

// Normalize merges loyalty and purchase records into the per-customer table.
// The loyalty slice defines the customer universe; purchase aggregates of
// customers that never bought anything stay zero-filled.
func Normalize(loyalty []models.LoyaltyRecord, purchases []models.PurchaseRecord) *Table {
	type aggregate struct {
		total float64
		items float64
	}
	totals := make(map[string]*aggregate, len(loyalty))
	profiles := make(map[string]*models.PurchaseProfile, len(loyalty))

	for _, p := range purchases {
		agg, ok := totals[p.ClientID]
		if !ok {
			agg = &aggregate{}
			totals[p.ClientID] = agg
		}
		agg.total += p.Total
		agg.items += p.ItemCount

		if len(p.Products) == 0 {
			continue
		}
		profile, ok := profiles[p.ClientID]
		if !ok {
			profile = models.NewPurchaseProfile()
			profiles[p.ClientID] = profile
		}
		for _, item := range p.Products {
			category := item.Category
			if category == "" {
				category = "Other"
			}
			name := item.Name
			if name == "" {
				name = "Unknown"
			}
			profile.Add(category, name, item.Cost)
		}
	}

	customers := make([]models.CustomerRecord, 0, len(loyalty))
	dominant := make(map[string]string)
	for _, l := range loyalty {
		rec := models.CustomerRecord{
			ClientID:       l.ClientID,
			Name:           l.Name,
			Email:          l.Email,
			Gender:         l.Gender,
			Age:            l.Age,
			RegisteredAt:   l.RegisteredAt,
			LastPurchaseAt: l.LastPurchaseAt,
			PurchaseCount:  l.PurchaseCount,
			CurrentPoints:  l.CurrentPoints,
			TotalPoints:    l.TotalPoints,
			UsedPoints:     l.UsedPoints,
			Status:         l.Status,
			Active:         l.Active,
		}
		if t, ok := ParseDate(l.RegisteredAt); ok {
			rec.RegistrationDate = t
		}
		if t, ok := ParseDate(l.LastPurchaseAt); ok {
			rec.LastPurchaseDate = t
		}
		if agg, ok := totals[l.ClientID]; ok {
			rec.TotalSpent = agg.total
			rec.ItemCount = agg.items
		}
		if profile, ok := profiles[l.ClientID]; ok {
			if cat, ok := profile.DominantCategory(); ok {
				dominant[l.ClientID] = cat
			}
		}
		customers = append(customers, rec)
	}

	logger.Info("Normalized %d customers (%d with purchase history)", len(customers), len(totals))
	return &Table{
		Customers:        customers,
		Profiles:         profiles,
		DominantCategory: dominant,
	}
}
