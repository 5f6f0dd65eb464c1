package pipeline

import (
	"github.com/legb78/scan2front/internal/cluster"
	"github.com/legb78/scan2front/internal/config"
	"github.com/legb78/scan2front/internal/errs"
	"github.com/legb78/scan2front/internal/features"
	"github.com/legb78/scan2front/internal/logger"
	"github.com/legb78/scan2front/internal/models"
	"github.com/legb78/scan2front/internal/segment"
)

// RunClustering produces the customer segmentation report: k-means over the
// configured features, per-cluster profiles, deterministic member samples and
// the 2D projection for plotting.
func RunClustering(cfg *config.Config) (*models.ClusteringReport, error) {
	src, err := Load(cfg)
	if err != nil {
		return nil, err
	}
	customers := src.Table.Customers

	k := cfg.Analysis.Clusters
	if k > len(customers) {
		return nil, errs.Configf("clusters (%d) exceeds the number of customers (%d)", k, len(customers))
	}

	prep, err := features.Prepare(customers, src.TS, cfg.Analysis.Features, false, src.Anchor)
	if err != nil {
		return nil, err
	}

	res, err := cluster.Fit(prep.X, k, cfg.Analysis.Seed, cfg.Analysis.Restarts, cfg.Analysis.MaxIterations)
	if err != nil {
		return nil, err
	}
	logger.Info("Clustered %d customers into %d groups (inertia %.4f)", len(customers), k, res.Partition.Inertia)

	stats := segment.Profile(customers, src.Table.Profiles, res.Partition.Labels, k, prep.Names, prep.Raw)

	return &models.ClusteringReport{
		Meta:          src.Meta("segment-customers"),
		ClusterStats:  stats,
		SampleClients: sampleClients(customers, res.Partition.Labels, k, cfg.Analysis.SampleSize),
		FeaturesUsed:  prep.Names,
		NumClusters:   k,
		Visualization: visualization(res),
		Inertia:       res.Partition.Inertia,
	}, nil
}

// sampleClients lists up to max members per cluster, in input order, so the
// same inputs always sample the same customers.
func sampleClients(customers []models.CustomerRecord, labels []int, k, max int) []models.CustomerSample {
	counts := make([]int, k)
	samples := make([]models.CustomerSample, 0, k*max)
	for i := range customers {
		l := labels[i]
		if counts[l] >= max {
			continue
		}
		counts[l]++
		samples = append(samples, models.CustomerSample{CustomerRecord: customers[i], Cluster: l})
	}
	return samples
}

func visualization(res *cluster.Result) models.VisualizationData {
	return models.VisualizationData{
		Points:            res.Projection.Points,
		Centers:           res.Projection.Centers,
		ClusterLabels:     res.Partition.Labels,
		ExplainedVariance: res.Projection.ExplainedVariance[:],
	}
}
