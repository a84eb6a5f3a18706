// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and RADAR_ environment variables over the defaults.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/radar/internal/domain/bundle"
	"github.com/okian/radar/internal/domain/position"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath is the Wyscout CSV export loaded at startup.
	DatasetPath string `koanf:"dataset_path"`

	// DefaultMinMinutes is the cohort threshold used when a request names none.
	DefaultMinMinutes float64 `koanf:"default_min_minutes"`

	// MinMinutesFloor and MinMinutesCeiling bound the threshold a request may ask for.
	MinMinutesFloor   float64 `koanf:"min_minutes_floor"`
	MinMinutesCeiling float64 `koanf:"min_minutes_ceiling"`

	// CohortCacheSize caps how many cohort indexes (one per threshold) are kept.
	CohortCacheSize int `koanf:"cohort_cache_size"`

	// CORSAllowedOrigins lists origins allowed to call the API from a browser.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// PositionAliases maps extra raw position codes onto existing buckets.
	PositionAliases map[string]string `koanf:"position_aliases"`

	// Bundles restricts the served bundles. Empty serves the whole catalog.
	Bundles []string `koanf:"bundles"`

	// DocsAssetDir, when set, serves a local ReDoc bundle for /api-docs.
	DocsAssetDir string `koanf:"docs_asset_dir"`

	// DocsRedocScript overrides the src of the ReDoc script on /api-docs.
	DocsRedocScript string `koanf:"docs_redoc_script"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		DatasetPath:        "database.csv",
		DefaultMinMinutes:  500,
		MinMinutesFloor:    0,
		MinMinutesCeiling:  5000,
		CohortCacheSize:    16,
		CORSAllowedOrigins: []string{"*"},
		PositionAliases:    map[string]string{},
	}
}

// Validate checks field ranges and cross-field constraints.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrEmptyAddr)
	}
	if strings.TrimSpace(c.DatasetPath) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrEmptyDatasetPath)
	}
	if c.MinMinutesFloor < 0 || c.MinMinutesFloor > c.MinMinutesCeiling {
		return fmt.Errorf("%w: %w: min_minutes_floor %v must be within [0, %v]",
			ErrInvalidConfig, ErrMinMinutesBounds, c.MinMinutesFloor, c.MinMinutesCeiling)
	}
	if c.DefaultMinMinutes < c.MinMinutesFloor || c.DefaultMinMinutes > c.MinMinutesCeiling {
		return fmt.Errorf("%w: %w: default_min_minutes %v outside [%v, %v]",
			ErrInvalidConfig, ErrMinMinutesBounds, c.DefaultMinMinutes, c.MinMinutesFloor, c.MinMinutesCeiling)
	}
	if c.CohortCacheSize < 1 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidConfig, ErrCohortCacheSize, c.CohortCacheSize)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrLogFormat, c.LogFormat)
	}
	for code, b := range c.PositionAliases {
		if _, err := position.ParseBucket(b); err != nil {
			return fmt.Errorf("%w: %w: %q: %w", ErrInvalidConfig, ErrPositionAlias, code, err)
		}
	}
	for _, k := range c.Bundles {
		if _, err := bundle.Resolve(k); err != nil {
			return fmt.Errorf("%w: %w: %w", ErrInvalidConfig, ErrBundleNotAvailable, err)
		}
	}
	return nil
}
