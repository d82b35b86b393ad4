// Package config defines service configuration and its loader.
//
// Conventions:
// - Defaults come from New; Load layers a YAML file and STARS_ env vars on top.
// - Validation failures wrap ErrInvalidConfig, source failures wrap ErrLoadConfig.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath points at a YAML dataset; empty uses the embedded fixture.
	DatasetPath string `koanf:"dataset_path"`

	// PlanYear labels metrics and responses. Empty takes the dataset's year.
	PlanYear string `koanf:"plan_year"`

	// DefaultSort is the column the dashboard sorts by on first load.
	DefaultSort string `koanf:"default_sort"`

	// DefaultDirection is asc or desc.
	DefaultDirection string `koanf:"default_direction"`

	// SystemMetricsIntervalS is the system metrics refresh period in seconds.
	SystemMetricsIntervalS int `koanf:"system_metrics_interval_s"`
}

// New returns a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":8080",
		DefaultSort:            "overallRating",
		DefaultDirection:       "desc",
		SystemMetricsIntervalS: 10,
	}
}

// SystemMetricsInterval returns SystemMetricsIntervalS as a duration.
func (c *Config) SystemMetricsInterval() time.Duration {
	return time.Duration(c.SystemMetricsIntervalS) * time.Second
}
