package service

import (
	"time"

	"github.com/okian/radar/internal/domain/model"
	"github.com/okian/radar/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDatasetPath sets the CSV export loaded by Start and Reload.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.datasetPath = path
		}
	}
}

// WithDataset uses an already loaded dataset instead of reading a file.
func WithDataset(ds *model.Dataset) Option {
	return func(s *Service) {
		s.dataset = ds
	}
}

// WithDefaultMinMinutes sets the threshold used when a request names none.
func WithDefaultMinMinutes(v float64) Option {
	return func(s *Service) {
		if v >= 0 {
			s.defaultMinMinutes = v
		}
	}
}

// WithMinMinutesBounds sets the range a request threshold must fall within.
func WithMinMinutesBounds(floor, ceiling float64) Option {
	return func(s *Service) {
		if floor >= 0 && ceiling >= floor {
			s.minMinutesFloor = floor
			s.minMinutesCeiling = ceiling
		}
	}
}

// WithCohortCacheSize bounds the number of cached cohort indexes.
func WithCohortCacheSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.cohortCacheSize = n
		}
	}
}

// WithPositionAliases adds raw position codes onto existing buckets.
func WithPositionAliases(aliases map[string]string) Option {
	return func(s *Service) {
		s.positionAliases = aliases
	}
}

// WithBundles restricts the served bundles. Empty serves the whole catalog.
func WithBundles(keys []string) Option {
	return func(s *Service) {
		s.bundleKeys = keys
	}
}

// WithSystemMetricsInterval sets how often runtime gauges are refreshed.
func WithSystemMetricsInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.systemMetricsInterval = d
		}
	}
}
