package config

import (
	"errors"
)

// ErrInvalidConfig wraps every validation failure; ErrLoadConfig wraps failures
// reading the YAML file or environment.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// Validation failures by key. Validate joins each with ErrInvalidConfig.
var (
	ErrEmptyAddr          = errors.New("addr must not be empty")
	ErrEmptyDatasetPath   = errors.New("dataset_path must not be empty")
	ErrMinMinutesBounds   = errors.New("min_minutes bounds out of range")
	ErrCohortCacheSize    = errors.New("cohort_cache_size must be at least 1")
	ErrLogFormat          = errors.New("log_format must be text or json")
	ErrPositionAlias      = errors.New("position alias targets no bucket")
	ErrBundleNotAvailable = errors.New("bundle not in catalog")
)
