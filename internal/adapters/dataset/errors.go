package dataset

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrMissingColumn   = errors.New("missing required column")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrInvalidRow      = errors.New("invalid row")
	ErrEmptyDataset    = errors.New("empty dataset")

	errNotFinite = errors.New("not a finite number")
)
