package recommend

import (
	"sort"
	"strings"

	"github.com/legb78/scan2front/internal/models"
)

// supplemental holds category-specific programs that exist only in the
// product mapping, not in the main catalog.
type supplemental struct {
	ID                 string
	Name               string
	Description        string
	Benefits           []string
	ImplementationCost string
}

var supplementalPrograms = map[string]supplemental{
	"extended_warranty": {
		ID:                 "extended_warranty",
		Name:               "Extended Warranty",
		Description:        "Warranty extension on purchased products",
		Benefits:           []string{"Longer protection", "Peace of mind"},
		ImplementationCost: "medium",
	},
	"samples": {
		ID:                 "samples",
		Name:               "Sampling Program",
		Description:        "Free samples based on previous purchases",
		Benefits:           []string{"Discovery of new products", "Purchase incentive"},
		ImplementationCost: "medium",
	},
	"guarantee": {
		ID:                 "guarantee",
		Name:               "Satisfaction Guarantee",
		Description:        "Extended or money-back satisfaction guarantee",
		Benefits:           []string{"Customer reassurance", "Purchase confidence"},
		ImplementationCost: "high",
	},
	"events": {
		ID:                 "events",
		Name:               "Exclusive Events",
		Description:        "Access to sporting events and challenges",
		Benefits:           []string{"Unique experiences", "Sense of belonging"},
		ImplementationCost: "high",
	},
	"premium_service": {
		ID:                 "premium_service",
		Name:               "Premium Service",
		Description:        "Dedicated, personalized customer service",
		Benefits:           []string{"Personal advisor", "Priority handling"},
		ImplementationCost: "very high",
	},
	"partners": {
		ID:                 "partners",
		Name:               "Partner Network",
		Description:        "Cross benefits with complementary partners",
		Benefits:           []string{"Partner discounts", "End-to-end experience"},
		ImplementationCost: "high",
	},
	"coaching": {
		ID:                 "coaching",
		Name:               "Coaching Program",
		Description:        "Personalized health and wellness guidance",
		Benefits:           []string{"Expert advice", "Personal follow-up"},
		ImplementationCost: "high",
	},
}

// categoryMapping associates a normalized category key with its suggested
// programs. Keys are the lower-cased wire category names; lookups go through
// NormalizeCategory so accent and casing quirks in the data cannot miss the
// table.
type categoryMapping struct {
	Programs    []string
	Explanation string
}

var productMapping = map[string]categoryMapping{
	"alimentaire": {
		Programs:    []string{"purchase_points", "cashback", "personalized"},
		Explanation: "High purchase frequency but thin margins",
	},
	"électronique": {
		Programs:    []string{"tiers", "value_rewards", "extended_warranty"},
		Explanation: "High-value products bought infrequently",
	},
	"mode": {
		Programs:    []string{"tiers", "personalized", "vip_club"},
		Explanation: "Status and exclusivity matter in this sector",
	},
	"beauté": {
		Programs:    []string{"purchase_points", "samples", "tiers"},
		Explanation: "Recurring purchases with strong cross-selling potential",
	},
	"maison": {
		Programs:    []string{"cashback", "guarantee", "community"},
		Explanation: "Less frequent, higher-value purchases",
	},
	"sport": {
		Programs:    []string{"gamification", "community", "events"},
		Explanation: "Engaged customers driven by performance and community",
	},
	"luxe": {
		Programs:    []string{"vip_club", "value_rewards", "premium_service"},
		Explanation: "Values exclusivity and personalized service",
	},
	"voyage": {
		Programs:    []string{"purchase_points", "tiers", "partners"},
		Explanation: "Rewards long-term point accumulation",
	},
	"santé/bien-être": {
		Programs:    []string{"subscription", "community", "coaching"},
		Explanation: "Values lasting engagement and personal follow-up",
	},
}

// FallbackExplanation is the placeholder text attached to categories without
// a mapping entry.
const FallbackExplanation = "No category-specific guidance available; broadly effective baseline programs"

// fallbackPrograms are suggested for unmapped categories; the list is never
// empty so every observed category yields a recommendation.
var fallbackPrograms = []string{"purchase_points", "personalized"}

// NormalizeCategory maps a wire category name to its lookup key.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// ForCategories builds the category-driven recommendations for every
// observed category. Categories are emitted in lexical order so reruns
// produce identical payloads.
func ForCategories(observed map[string]bool) []models.CategoryRecommendation {
	categories := make([]string, 0, len(observed))
	for c := range observed {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	out := make([]models.CategoryRecommendation, 0, len(categories))
	for _, category := range categories {
		mapping, ok := productMapping[NormalizeCategory(category)]
		if !ok {
			mapping = categoryMapping{Programs: fallbackPrograms, Explanation: FallbackExplanation}
		}
		rec := models.CategoryRecommendation{
			Category:    category,
			Explanation: mapping.Explanation,
			Programs:    make([]models.ProgramMatch, 0, len(mapping.Programs)),
		}
		for _, id := range mapping.Programs {
			if p, ok := catalogByID[id]; ok {
				rec.Programs = append(rec.Programs, models.ProgramMatch{
					ProgramID:          p.ID,
					Name:               p.Name,
					Description:        p.Description,
					Benefits:           p.Benefits,
					ImplementationCost: p.ImplementationCost,
				})
				continue
			}
			if s, ok := supplementalPrograms[id]; ok {
				rec.Programs = append(rec.Programs, models.ProgramMatch{
					ProgramID:          s.ID,
					Name:               s.Name,
					Description:        s.Description,
					Benefits:           s.Benefits,
					ImplementationCost: s.ImplementationCost,
				})
			}
		}
		out = append(out, rec)
	}
	return out
}
