// Package pipeline wires the analysis stages into the three report-producing
// runs: clustering, program recommendation and purchase forecasting. Each run
// loads the same normalized customer table and emits one report payload;
// everything that depends on "now" uses the run's injected anchor so reruns
// over identical inputs produce identical reports.
package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/legb78/scan2front/internal/config"
	"github.com/legb78/scan2front/internal/dataset"
	"github.com/legb78/scan2front/internal/logger"
	"github.com/legb78/scan2front/internal/models"
	"github.com/legb78/scan2front/internal/timeseries"
)

// runNamespace scopes the UUIDv5 run identifiers to this pipeline.
var runNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("analytics.scan2front"))

// Source is the loaded and normalized state every run starts from.
type Source struct {
	Table  *dataset.Table
	TS     map[string]models.TimeSeriesFeatures
	Anchor time.Time
	RunID  string
}

// Load reads and normalizes the configured input files and derives the run
// identity. The run id is a UUIDv5 over the input bytes and the
// configuration, so the same inputs and settings always yield the same id.
func Load(cfg *config.Config) (*Source, error) {
	anchor, err := cfg.Anchor()
	if err != nil {
		return nil, err
	}

	loyalty, err := dataset.LoadLoyalty(cfg.Data.LoyaltyPath)
	if err != nil {
		return nil, err
	}
	purchases, err := dataset.LoadPurchases(cfg.Data.PurchasesPath)
	if err != nil {
		return nil, err
	}

	table := dataset.Normalize(loyalty, purchases)
	universe := make([]string, len(table.Customers))
	for i := range table.Customers {
		universe[i] = table.Customers[i].ClientID
	}
	ts := timeseries.Extract(purchases, universe)

	src := &Source{
		Table:  table,
		TS:     ts,
		Anchor: anchor,
		RunID:  runID(cfg),
	}
	logger.Info("Loaded %d customers and %d purchase records", len(table.Customers), len(purchases))
	return src, nil
}

// runID fingerprints the input files and the configuration. Both files were
// just read successfully, so a re-read failure only degrades the fingerprint,
// never the run.
func runID(cfg *config.Config) string {
	loyaltyBytes, _ := os.ReadFile(cfg.Data.LoyaltyPath)
	purchaseBytes, _ := os.ReadFile(cfg.Data.PurchasesPath)

	data := make([]byte, 0, len(loyaltyBytes)+len(purchaseBytes)+256)
	data = append(data, loyaltyBytes...)
	data = append(data, purchaseBytes...)
	data = append(data, fmt.Sprintf("%+v", *cfg)...)
	return uuid.NewSHA1(runNamespace, data).String()
}

// Meta builds the report metadata block for one of the binaries.
func (s *Source) Meta(tool string) models.ReportMeta {
	return models.ReportMeta{
		RunID:       s.RunID,
		GeneratedAt: s.Anchor.UTC().Format(time.RFC3339),
		Tool:        tool,
	}
}
