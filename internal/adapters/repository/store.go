// Package repository keeps cohort indexes built from the loaded dataset.
package repository

import (
	"context"

	"github.com/okian/radar/internal/domain/cohort"
	"github.com/okian/radar/internal/domain/model"
)

// Store resolves the cohort index for a minimum-minutes threshold.
type Store interface {
	// Index returns the index for minMinutes, building it on first use.
	// Returned indexes are shared and must not be modified.
	Index(ctx context.Context, minMinutes float64) (*cohort.Index, error)

	// Dataset returns the dataset indexes are built from.
	Dataset() *model.Dataset

	// Len returns the number of cached indexes.
	Len() int
}
