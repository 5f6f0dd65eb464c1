package pipeline

import (
	"github.com/legb78/scan2front/internal/cluster"
	"github.com/legb78/scan2front/internal/config"
	"github.com/legb78/scan2front/internal/errs"
	"github.com/legb78/scan2front/internal/features"
	"github.com/legb78/scan2front/internal/logger"
	"github.com/legb78/scan2front/internal/models"
	"github.com/legb78/scan2front/internal/recommend"
	"github.com/legb78/scan2front/internal/segment"
)

// segmentationFeatures drive the recommendation run's clustering. The list
// covers every feature the threshold tags read, so each segment gets a full
// characteristics block.
var segmentationFeatures = []string{
	"age",
	"points_cumules",
	"nombre_achats",
	"panier_moyen",
	"points_par_achat",
}

// RunRecommendation produces the loyalty-program recommendation report:
// segments customers, scores the program catalog against each segment's
// tags, and adds the static category-driven suggestions.
func RunRecommendation(cfg *config.Config) (*models.RecommendationReport, error) {
	src, err := Load(cfg)
	if err != nil {
		return nil, err
	}
	customers := src.Table.Customers

	k := cfg.Analysis.Segments
	if k > len(customers) {
		return nil, errs.Configf("segments (%d) exceeds the number of customers (%d)", k, len(customers))
	}

	prep, err := features.Prepare(customers, src.TS, segmentationFeatures, false, src.Anchor)
	if err != nil {
		return nil, err
	}

	res, err := cluster.Fit(prep.X, k, cfg.Analysis.Seed, cfg.Analysis.Restarts, cfg.Analysis.MaxIterations)
	if err != nil {
		return nil, err
	}

	stats := segment.Profile(customers, src.Table.Profiles, res.Partition.Labels, k, prep.Names, prep.Raw)

	segmentRecs := make([]models.SegmentRecommendation, 0, len(stats))
	for _, cs := range stats {
		profile := recommend.TagProfile{
			Loyalty:   cs.LoyaltyLevel,
			Frequency: cs.Frequency,
			Spending:  cs.SpendingLevel,
			AgeGroup:  cs.AgeGroup,
		}
		segmentRecs = append(segmentRecs, models.SegmentRecommendation{
			SegmentID: cs.ClusterID,
			Persona:   cs.Persona,
			Characteristics: models.SegmentCharacteristics{
				LoyaltyLevel:  cs.LoyaltyLevel,
				Frequency:     cs.Frequency,
				SpendingLevel: cs.SpendingLevel,
				AgeGroup:      cs.AgeGroup,
			},
			Size:       cs.Size,
			Percentage: cs.Percentage,
			Programs:   recommend.TopPrograms(profile),
		})
	}

	observed := make(map[string]bool)
	for _, p := range src.Table.Profiles {
		for _, c := range p.CategoryOrder {
			observed[c] = true
		}
	}
	logger.Info("Scored programs for %d segments and %d product categories", len(segmentRecs), len(observed))

	return &models.RecommendationReport{
		Meta:                   src.Meta("recommend-programs"),
		SegmentRecommendations: segmentRecs,
		ProductRecommendations: recommend.ForCategories(observed),
		Segments:               stats,
	}, nil
}
