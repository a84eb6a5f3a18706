// Package smoke drives a running profile service with real dataset players and
// checks every returned profile for internal consistency.
package smoke

import (
	"time"

	"github.com/okian/radar/pkg/logger"
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL     string        // Base URL of the service
	DatasetPath string        // CSV the targets are sampled from
	Sample      int           // Number of players to profile; 0 profiles all
	Concurrency int           // Maximum in-flight requests
	Timeout     time.Duration // HTTP request timeout
	Scopes      []string      // Scopes to request for every player
	Verbose     bool          // Log every profile
	Logger      logger.Logger // Defaults to the global logger
}

// Target identifies one player to profile.
type Target struct {
	Player string
	Team   string
	League string
}

// Metric mirrors one entry of a profile response.
type Metric struct {
	Field        string  `json:"field"`
	Value        float64 `json:"value"`
	Percentile   float64 `json:"percentile"`
	Adverse      bool    `json:"adverse"`
	Tier         int     `json:"tier"`
	TierLabel    string  `json:"tier_label"`
	Color        string  `json:"color"`
	CohortMedian float64 `json:"cohort_median"`
	Sample       int     `json:"sample"`
}

// Profile mirrors the profile response.
type Profile struct {
	Player       string   `json:"player"`
	Team         string   `json:"team"`
	League       string   `json:"league"`
	Bucket       string   `json:"bucket"`
	Scope        string   `json:"scope"`
	CohortSize   int      `json:"cohort_size"`
	Bundle       string   `json:"bundle"`
	SelfIncluded bool     `json:"self_included"`
	Metrics      []Metric `json:"metrics"`
}

// Bundle mirrors one entry of the bundles response.
type Bundle struct {
	Key     string `json:"key"`
	Metrics []struct {
		Field string `json:"field"`
	} `json:"metrics"`
	Adverse []string `json:"adverse"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Report holds run statistics.
type Report struct {
	RunID      string
	Requests   int64
	Profiles   int64
	Rejected   map[string]int64 // by error code
	Violations []string
	StartTime  time.Time
	Duration   time.Duration
}
