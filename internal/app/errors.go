package service

import (
	"errors"

	"github.com/okian/radar/internal/domain/bundle"
	"github.com/okian/radar/internal/domain/cohort"
	"github.com/okian/radar/internal/domain/position"
	"github.com/okian/radar/internal/domain/ranking"
)

// Sentinel kinds returned by the service.
var (
	ErrNotStarted        = errors.New("service not started")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInvalidMinMinutes = errors.New("min minutes out of range")
	ErrPlayerNotFound    = errors.New("player not found")

	ErrUnknownPosition = position.ErrUnknownPosition
	ErrUnknownScope    = cohort.ErrUnknownScope
	ErrUnknownBundle   = bundle.ErrUnknownBundle
	ErrMissingField    = bundle.ErrMissingField
	ErrEmptyCohort     = ranking.ErrEmptyCohort
	ErrMissingValue    = ranking.ErrMissingValue
)

// kinds is checked in order; the first match names the error.
var kinds = []struct {
	err  error
	kind string
}{
	{ErrNotStarted, "not_started"},
	{ErrInvalidRequest, "invalid_request"},
	{ErrInvalidMinMinutes, "invalid_min_minutes"},
	{ErrUnknownScope, "unknown_scope"},
	{ErrUnknownBundle, "unknown_bundle"},
	{ErrUnknownPosition, "unknown_position"},
	{ErrPlayerNotFound, "player_not_found"},
	{ErrEmptyCohort, "empty_cohort"},
	{ErrMissingField, "missing_field"},
	{ErrMissingValue, "missing_value"},
}

// ErrorKind returns a stable snake_case name for err, "internal" when unknown.
func ErrorKind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}
