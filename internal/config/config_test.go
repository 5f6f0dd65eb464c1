package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg, _ := Load("")
	cfg.Data.LoyaltyPath = "loyalty.json"
	cfg.Data.PurchasesPath = "purchases.json"
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := cfg.Analysis.Features; len(got) != 3 || got[0] != "age" {
		t.Errorf("default features = %v, want [age points_cumules nombre_achats]", got)
	}
	if cfg.Analysis.Clusters != 3 || cfg.Analysis.Segments != 5 {
		t.Errorf("default clusters/segments = %d/%d, want 3/5", cfg.Analysis.Clusters, cfg.Analysis.Segments)
	}
	if cfg.Analysis.Seed != 42 || cfg.Analysis.Restarts != 10 || cfg.Analysis.MaxIterations != 300 {
		t.Errorf("default clustering params = %+v", cfg.Analysis)
	}
	if cfg.Forecast.Period != "month" || cfg.Forecast.Trees != 100 || cfg.Forecast.Folds != 5 {
		t.Errorf("default forecast params = %+v", cfg.Forecast)
	}
	if cfg.Forecast.LearningRate != 0.1 || cfg.Forecast.MaxDepth != 3 {
		t.Errorf("default booster params = %+v", cfg.Forecast)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data:
  loyalty_path: /data/loyalty.json
  purchases_path: /data/purchases.json
analysis:
  clusters: 4
  anchor_date: "2024-06-01"
forecast:
  period: week
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Data.LoyaltyPath != "/data/loyalty.json" {
		t.Errorf("LoyaltyPath = %q", cfg.Data.LoyaltyPath)
	}
	if cfg.Analysis.Clusters != 4 {
		t.Errorf("Clusters = %d, want 4", cfg.Analysis.Clusters)
	}
	// Unset keys keep their defaults.
	if cfg.Analysis.Segments != 5 {
		t.Errorf("Segments = %d, want the default 5", cfg.Analysis.Segments)
	}
	if cfg.Forecast.Period != "week" {
		t.Errorf("Period = %q, want week", cfg.Forecast.Period)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate on a complete file config failed: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing loyalty path", func(c *Config) { c.Data.LoyaltyPath = "" }, "loyalty_path"},
		{"missing purchases path", func(c *Config) { c.Data.PurchasesPath = "" }, "purchases_path"},
		{"no features", func(c *Config) { c.Analysis.Features = nil }, "features"},
		{"zero clusters", func(c *Config) { c.Analysis.Clusters = 0 }, "clusters"},
		{"zero segments", func(c *Config) { c.Analysis.Segments = 0 }, "segments"},
		{"negative sample size", func(c *Config) { c.Analysis.SampleSize = -1 }, "sample_size"},
		{"bad anchor", func(c *Config) { c.Analysis.AnchorDate = "junk" }, "anchor"},
		{"bad period", func(c *Config) { c.Forecast.Period = "decade" }, "period"},
		{"zero trees", func(c *Config) { c.Forecast.Trees = 0 }, "trees"},
		{"zero learning rate", func(c *Config) { c.Forecast.LearningRate = 0 }, "learning_rate"},
		{"one fold", func(c *Config) { c.Forecast.Folds = 1 }, "folds"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestAnchor(t *testing.T) {
	cfg := validConfig()

	cfg.Analysis.AnchorDate = "2024-06-01"
	got, err := cfg.Anchor()
	if err != nil {
		t.Fatalf("Anchor failed: %v", err)
	}
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Anchor = %v, want %v", got, want)
	}

	cfg.Analysis.AnchorDate = "2024-06-01T08:30:00Z"
	if _, err := cfg.Anchor(); err != nil {
		t.Errorf("RFC 3339 anchor failed: %v", err)
	}

	cfg.Analysis.AnchorDate = ""
	now, err := cfg.Anchor()
	if err != nil {
		t.Fatalf("empty anchor failed: %v", err)
	}
	if time.Since(now) > time.Minute {
		t.Errorf("empty anchor = %v, want wall-clock time", now)
	}
}
