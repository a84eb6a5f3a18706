package repository

import "errors"

// Sentinel kinds for cohort store errors.
var (
	ErrNoDataset        = errors.New("no dataset loaded")
	ErrInvalidThreshold = errors.New("invalid minimum minutes")
)
