package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/legb78/scan2front/internal/config"
	"github.com/legb78/scan2front/internal/errs"
	"github.com/legb78/scan2front/internal/logger"
	"github.com/legb78/scan2front/internal/pipeline"
)

var (
	configPath    = flag.String("config", "", "Path to configuration file (optional)")
	loyaltyPath   = flag.String("loyalty", "", "Path to the loyalty records JSON file")
	purchasesPath = flag.String("purchases", "", "Path to the purchase records JSON file")
	segments      = flag.Int("segments", 0, "Number of customer segments (overrides configuration)")
	anchorDate    = flag.String("anchor", "", "Time anchor for date features, RFC 3339 or YYYY-MM-DD (overrides configuration)")
)

func main() {
	flag.Parse()

	// A .env file is optional; its variables feed the LOYALTY_* config keys.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger.Init(cfg.Logging.Level)

	report, err := pipeline.RunRecommendation(cfg)
	if err != nil {
		logger.Error("Recommendation run failed: %v", err)
		os.Exit(errs.ExitCode(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		logger.Error("Failed to encode report: %v", err)
		os.Exit(1)
	}
}

func applyFlags(cfg *config.Config) {
	if *loyaltyPath != "" {
		cfg.Data.LoyaltyPath = *loyaltyPath
	}
	if *purchasesPath != "" {
		cfg.Data.PurchasesPath = *purchasesPath
	}
	if *segments > 0 {
		cfg.Analysis.Segments = *segments
	}
	if *anchorDate != "" {
		cfg.Analysis.AnchorDate = *anchorDate
	}
}
