package repository

import (
	"github.com/okian/radar/internal/domain/position"
	"github.com/okian/radar/pkg/logger"
)

// Option applies a configuration option to the CohortStore.
type Option func(*CohortStore)

// WithCapacity bounds the number of cached indexes.
func WithCapacity(n int) Option {
	return func(s *CohortStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithPositionMap replaces the default position map.
func WithPositionMap(pm position.Map) Option {
	return func(s *CohortStore) {
		if len(pm) > 0 {
			s.positions = pm
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *CohortStore) {
		if l != nil {
			s.log = l
		}
	}
}
