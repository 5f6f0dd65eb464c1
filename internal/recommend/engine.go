package recommend

import (
	"math"
	"sort"

	"github.com/legb78/scan2front/internal/models"
	"github.com/legb78/scan2front/internal/segment"
)

// Scoring weights: a convex combination, so combined scores stay in [0,1].
const (
	matchWeight         = 0.5
	effectivenessWeight = 0.3
	retentionWeight     = 0.2
)

// maxPrograms caps how many programs a recommendation returns.
const maxPrograms = 3

// TagProfile is the categorical profile a recommendation is scored against.
// It works for a segment or for an individual customer alike. Empty fields
// fall back to the middle-of-the-road defaults before scoring.
type TagProfile struct {
	Loyalty   string
	Frequency string
	Spending  string
	AgeGroup  string
}

func (p TagProfile) withDefaults() TagProfile {
	if p.Loyalty == "" {
		p.Loyalty = segment.LoyaltyMedium
	}
	if p.Frequency == "" {
		p.Frequency = segment.FrequencyRegular
	}
	if p.Spending == "" {
		p.Spending = segment.SpendingMedium
	}
	if p.AgeGroup == "" {
		p.AgeGroup = segment.AgeAdult
	}
	return p
}

// predicates maps each ideal-segment tag to its satisfaction test. Tags
// absent from this table never match, matching the catalog's aspirational
// audience descriptors that no derived profile can express.
var predicates = map[string]func(TagProfile) bool{
	"premium loyal": func(p TagProfile) bool {
		return p.Loyalty == segment.LoyaltyHigh && p.Frequency == segment.FrequencyFrequent
	},
	"regular":          func(p TagProfile) bool { return p.Frequency == segment.FrequencyRegular },
	"big spender":      func(p TagProfile) bool { return p.Spending == segment.SpendingGenerous },
	"budget conscious": func(p TagProfile) bool { return p.Spending == segment.SpendingFrugal },
	"price sensitive":  func(p TagProfile) bool { return p.Spending == segment.SpendingFrugal },
	"young":            func(p TagProfile) bool { return p.AgeGroup == segment.AgeYoung },
	"high-end": func(p TagProfile) bool {
		return p.Spending == segment.SpendingGenerous && p.Loyalty == segment.LoyaltyHigh
	},
	"aspirational": func(p TagProfile) bool {
		return p.Loyalty == segment.LoyaltyMedium && p.Spending == segment.SpendingMedium
	},
	"young urban":        func(p TagProfile) bool { return p.AgeGroup == segment.AgeYoung },
	"all segments":       func(TagProfile) bool { return true },
	"tech-savvy":         func(p TagProfile) bool { return p.AgeGroup == segment.AgeYoung },
	"gamer":              func(p TagProfile) bool { return p.AgeGroup == segment.AgeYoung },
	"engaged":            func(p TagProfile) bool { return p.Loyalty == segment.LoyaltyHigh },
	"ambassador": func(p TagProfile) bool {
		return p.Loyalty == segment.LoyaltyHigh && p.Frequency == segment.FrequencyFrequent
	},
	"recognition-driven": func(TagProfile) bool { return true },
	"multi-brand":        func(TagProfile) bool { return true },
	"mobile": func(p TagProfile) bool {
		return p.AgeGroup == segment.AgeYoung || p.AgeGroup == segment.AgeAdult
	},
}

// MatchFraction returns the fraction of the program's ideal-segment tags the
// profile satisfies, in [0,1].
func MatchFraction(program *Program, profile TagProfile) float64 {
	if len(program.IdealSegments) == 0 {
		return 0
	}
	matched := 0
	for _, tag := range program.IdealSegments {
		if pred, ok := predicates[tag]; ok && pred(profile) {
			matched++
		}
	}
	return float64(matched) / float64(len(program.IdealSegments))
}

// Score combines the match fraction with the program's effectiveness and
// retention rate.
func Score(program *Program, profile TagProfile) float64 {
	return matchWeight*MatchFraction(program, profile) +
		effectivenessWeight*program.Effectiveness +
		retentionWeight*program.RetentionRate
}

// TopPrograms scores every catalog program against the profile and returns
// the top 3, ranked by combined score with catalog order breaking ties.
// Match scores are reported as percentages.
func TopPrograms(profile TagProfile) []models.ProgramMatch {
	profile = profile.withDefaults()

	order := make([]int, len(Catalog))
	scores := make([]float64, len(Catalog))
	for i := range Catalog {
		order[i] = i
		scores[i] = Score(&Catalog[i], profile)
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	n := len(order)
	if n > maxPrograms {
		n = maxPrograms
	}
	out := make([]models.ProgramMatch, 0, n)
	for _, i := range order[:n] {
		p := &Catalog[i]
		out = append(out, models.ProgramMatch{
			ProgramID:          p.ID,
			Name:               p.Name,
			Description:        p.Description,
			Type:               p.Type,
			Benefits:           p.Benefits,
			MatchScore:         math.Round(scores[i]*100*100) / 100,
			ImplementationCost: p.ImplementationCost,
			RetentionRate:      p.RetentionRate,
		})
	}
	return out
}
