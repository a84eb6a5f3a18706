// Package types contains common types used across the application
package types

import "github.com/okian/radar/internal/domain/ranking"

// MetricRank is one slice of a profile chart.
type MetricRank struct {
	Field        string  `json:"field"`
	Label        string  `json:"label"`
	Value        float64 `json:"value"`
	Percentile   float64 `json:"percentile"`
	Adverse      bool    `json:"adverse"`
	Tier         int     `json:"tier"`
	TierLabel    string  `json:"tier_label"`
	Color        string  `json:"color"`
	TextColor    string  `json:"text_color"`
	CohortMedian float64 `json:"cohort_median"`
	Sample       int     `json:"sample"`
}

// Profile is a player's percentile profile for one bundle
type Profile struct {
	Player     string       `json:"player"`
	Team       string       `json:"team"`
	League     string       `json:"league"`
	Position   string       `json:"position"`
	Age        *float64     `json:"age"`
	Minutes    float64      `json:"minutes"`
	Bucket     string       `json:"bucket"`
	Scope      string       `json:"scope"`
	MinMinutes float64      `json:"min_minutes"`
	CohortSize int          `json:"cohort_size"`
	Bundle     string       `json:"bundle"`
	Title      string       `json:"title"`
	Metrics    []MetricRank `json:"metrics"`

	// SelfIncluded is true when the player is part of the cohort ranked against.
	SelfIncluded bool `json:"self_included"`
	// BelowMinimumMinutes is true when the player played fewer minutes than the
	// cohort threshold and is ranked as an outsider.
	BelowMinimumMinutes bool `json:"below_minimum_minutes"`
}

// MetricRanks converts engine output to the API shape.
func MetricRanks(res ranking.Result) []MetricRank {
	out := make([]MetricRank, len(res.Metrics))
	for i, m := range res.Metrics {
		out[i] = MetricRank{
			Field:        m.Field,
			Label:        m.Label,
			Value:        m.Value,
			Percentile:   m.Percentile,
			Adverse:      m.Adverse,
			Tier:         int(m.Tier),
			TierLabel:    m.Tier.Label(),
			Color:        m.Tier.Color(),
			TextColor:    m.Tier.TextColor(),
			CohortMedian: m.CohortMedian,
			Sample:       m.Sample,
		}
	}
	return out
}
