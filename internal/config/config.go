// Package config loads the pipeline configuration from a YAML file with
// environment overrides. The CLI flags of each binary override individual
// fields after loading, mirroring the analysis tools' command lines.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete pipeline configuration.
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DataConfig locates the two JSON input files.
type DataConfig struct {
	LoyaltyPath   string `mapstructure:"loyalty_path"`
	PurchasesPath string `mapstructure:"purchases_path"`
}

// AnalysisConfig holds the shared feature-selection and clustering settings.
type AnalysisConfig struct {
	// Features is the ordered list of feature columns to select; unknown
	// names are dropped with a warning.
	Features []string `mapstructure:"features"`
	// Clusters is k for the clustering report.
	Clusters int `mapstructure:"clusters"`
	// Segments is k for the recommendation report's segmentation.
	Segments int `mapstructure:"segments"`
	// SampleSize caps the per-cluster member listing.
	SampleSize int `mapstructure:"sample_size"`
	// AnchorDate pins "now" for date-derived features (RFC 3339 or
	// YYYY-MM-DD). Empty means wall-clock time; set it for reproducible
	// reruns.
	AnchorDate    string `mapstructure:"anchor_date"`
	Seed          int64  `mapstructure:"seed"`
	Restarts      int    `mapstructure:"restarts"`
	MaxIterations int    `mapstructure:"max_iterations"`
}

// ForecastConfig holds the purchase-forecasting settings.
type ForecastConfig struct {
	// Period is the forecast horizon: day, week, month or quarter.
	Period        string  `mapstructure:"period"`
	UseTimeSeries bool    `mapstructure:"use_time_series"`
	Trees         int     `mapstructure:"trees"`
	LearningRate  float64 `mapstructure:"learning_rate"`
	MaxDepth      int     `mapstructure:"max_depth"`
	Folds         int     `mapstructure:"folds"`
	// Progress enables the stderr progress bar during fitting and
	// prediction.
	Progress bool `mapstructure:"progress"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the given file plus LOYALTY_* environment
// variables. An empty path loads defaults and environment only, so the
// binaries work without a config file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LOYALTY")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.features", []string{"age", "points_cumules", "nombre_achats"})
	v.SetDefault("analysis.clusters", 3)
	v.SetDefault("analysis.segments", 5)
	v.SetDefault("analysis.sample_size", 10)
	v.SetDefault("analysis.anchor_date", "")
	v.SetDefault("analysis.seed", 42)
	v.SetDefault("analysis.restarts", 10)
	v.SetDefault("analysis.max_iterations", 300)

	v.SetDefault("forecast.period", "month")
	v.SetDefault("forecast.use_time_series", true)
	v.SetDefault("forecast.trees", 100)
	v.SetDefault("forecast.learning_rate", 0.1)
	v.SetDefault("forecast.max_depth", 3)
	v.SetDefault("forecast.folds", 5)
	v.SetDefault("forecast.progress", true)

	v.SetDefault("logging.level", "info")
}

// ValidPeriods are the accepted forecast horizons.
var ValidPeriods = map[string]bool{"day": true, "week": true, "month": true, "quarter": true}

// Validate checks that all configuration values can drive a run.
func (c *Config) Validate() error {
	if c.Data.LoyaltyPath == "" {
		return fmt.Errorf("data.loyalty_path is required")
	}
	if c.Data.PurchasesPath == "" {
		return fmt.Errorf("data.purchases_path is required")
	}
	if len(c.Analysis.Features) == 0 {
		return fmt.Errorf("analysis.features must contain at least one feature name")
	}
	if c.Analysis.Clusters < 1 {
		return fmt.Errorf("analysis.clusters must be at least 1")
	}
	if c.Analysis.Segments < 1 {
		return fmt.Errorf("analysis.segments must be at least 1")
	}
	if c.Analysis.SampleSize < 0 {
		return fmt.Errorf("analysis.sample_size must not be negative")
	}
	if c.Analysis.Restarts < 1 {
		return fmt.Errorf("analysis.restarts must be at least 1")
	}
	if c.Analysis.MaxIterations < 1 {
		return fmt.Errorf("analysis.max_iterations must be at least 1")
	}
	if _, err := c.Anchor(); err != nil {
		return err
	}
	if !ValidPeriods[c.Forecast.Period] {
		return fmt.Errorf("forecast.period must be one of: day, week, month, quarter")
	}
	if c.Forecast.Trees < 1 {
		return fmt.Errorf("forecast.trees must be at least 1")
	}
	if c.Forecast.LearningRate <= 0 {
		return fmt.Errorf("forecast.learning_rate must be positive")
	}
	if c.Forecast.MaxDepth < 1 {
		return fmt.Errorf("forecast.max_depth must be at least 1")
	}
	if c.Forecast.Folds < 2 {
		return fmt.Errorf("forecast.folds must be at least 2")
	}
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	return nil
}

// Anchor returns the run's time anchor: the parsed anchor_date when set,
// wall-clock time otherwise.
func (c *Config) Anchor() (time.Time, error) {
	if c.Analysis.AnchorDate == "" {
		return time.Now(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, c.Analysis.AnchorDate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("analysis.anchor_date %q is not RFC 3339 or YYYY-MM-DD", c.Analysis.AnchorDate)
}
