package ranking

import (
	"errors"

	"github.com/okian/radar/internal/domain/bundle"
)

// Sentinel kinds for ranking errors.
var (
	// ErrEmptyCohort means the reference population is empty and the percentile
	// is undefined.
	ErrEmptyCohort = errors.New("empty cohort")
	// ErrMissingField aliases the bundle sentinel so callers match one kind.
	ErrMissingField = bundle.ErrMissingField
	// ErrMissingValue means the player has the column but no value in it.
	ErrMissingValue = errors.New("missing metric value")
)
