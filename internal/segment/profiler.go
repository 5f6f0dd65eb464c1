package segment

import (
	"math"
	"sort"

	"github.com/legb78/scan2front/internal/models"
)

// Feature columns that drive each categorical tag.
const (
	ageFeature       = "age"
	loyaltyFeature   = "points_cumules"
	frequencyFeature = "nombre_achats"
	spendingFeature  = "panier_moyen"
)

// Gender values as they appear on the wire.
const (
	genderMale   = "Homme"
	genderFemale = "Femme"
)

// topCategoryCount caps the per-cluster category ranking.
const topCategoryCount = 3

// Profile computes the per-cluster statistics, tags and composite labels.
// raw is the imputed, unscaled feature matrix whose columns align with
// featureNames; labels assigns each customer row to a cluster in [0,k).
func Profile(
	customers []models.CustomerRecord,
	profiles map[string]*models.PurchaseProfile,
	labels []int,
	k int,
	featureNames []string,
	raw [][]float64,
) []models.ClusterStats {
	total := len(customers)
	stats := make([]models.ClusterStats, 0, k)

	for c := 0; c < k; c++ {
		var members []int
		for i, l := range labels {
			if l == c {
				members = append(members, i)
			}
		}

		cs := models.ClusterStats{
			ClusterID:      c,
			Size:           len(members),
			Percentage:     round2(float64(len(members)) / float64(total) * 100),
			FeatureMeans:   make(map[string]float64, len(featureNames)),
			FeatureMedians: make(map[string]float64, len(featureNames)),
		}

		values := make([]float64, len(members))
		for j, name := range featureNames {
			for mi, i := range members {
				values[mi] = raw[i][j]
			}
			cs.FeatureMeans[name] = round2(mean(values))
			cs.FeatureMedians[name] = round2(median(values))
		}

		tags := tagsFor(cs.FeatureMeans, featureNames)
		cs.AgeGroup = tags.AgeGroup
		cs.LoyaltyLevel = tags.Loyalty
		cs.Frequency = tags.Frequency
		cs.SpendingLevel = tags.Spending
		cs.CustomerType = CustomerType(tags)
		cs.Persona = Persona(tags)

		fillGender(&cs, customers, members)
		cs.TopCategories = topCategories(customers, profiles, members)

		stats = append(stats, cs)
	}
	return stats
}

// tagsFor derives the categorical tags from the cluster's feature means,
// leaving a tag empty when its feature was not requested.
func tagsFor(means map[string]float64, names []string) Tags {
	requested := make(map[string]bool, len(names))
	for _, n := range names {
		requested[n] = true
	}
	var t Tags
	if requested[ageFeature] {
		t.AgeGroup = ageChain.classify(means[ageFeature])
	}
	if requested[loyaltyFeature] {
		t.Loyalty = loyaltyChain.classify(means[loyaltyFeature])
	}
	if requested[frequencyFeature] {
		t.Frequency = frequencyChain.classify(means[frequencyFeature])
	}
	if requested[spendingFeature] {
		t.Spending = spendingChain.classify(means[spendingFeature])
	}
	return t
}

// fillGender reports the gender split as percentages with a dominant tag,
// only when both categories occur in the cluster.
func fillGender(cs *models.ClusterStats, customers []models.CustomerRecord, members []int) {
	var male, female int
	for _, i := range members {
		switch customers[i].Gender {
		case genderMale:
			male++
		case genderFemale:
			female++
		}
	}
	if male == 0 || female == 0 || len(members) == 0 {
		return
	}
	cs.MalePct = round2(float64(male) / float64(len(members)) * 100)
	cs.FemalePct = round2(float64(female) / float64(len(members)) * 100)
	if cs.MalePct > cs.FemalePct {
		cs.DominantGender = genderMale
	} else {
		cs.DominantGender = genderFemale
	}
}

// topCategories aggregates the members' category spend and returns the top 3
// by spend with their share of the cluster's category total.
func topCategories(customers []models.CustomerRecord, profiles map[string]*models.PurchaseProfile, members []int) []models.CategoryShare {
	spend := make(map[string]float64)
	var order []string
	var total float64
	for _, i := range members {
		profile, ok := profiles[customers[i].ClientID]
		if !ok {
			continue
		}
		for _, name := range profile.CategoryOrder {
			tally := profile.Categories[name]
			if _, seen := spend[name]; !seen {
				order = append(order, name)
			}
			spend[name] += tally.Amount
			total += tally.Amount
		}
	}
	if total == 0 {
		return nil
	}
	sort.SliceStable(order, func(a, b int) bool { return spend[order[a]] > spend[order[b]] })
	if len(order) > topCategoryCount {
		order = order[:topCategoryCount]
	}
	shares := make([]models.CategoryShare, 0, len(order))
	for _, name := range order {
		shares = append(shares, models.CategoryShare{
			Category: name,
			Spend:    round2(spend[name]),
			Share:    round2(spend[name] / total * 100),
		})
	}
	return shares
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

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
