// Package ranking computes percentile ranks of one player against a cohort.
package ranking

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/radar/internal/domain/bundle"
	"github.com/okian/radar/internal/domain/model"
	"gonum.org/v1/gonum/stat"
)

const percentScale = 100

// MetricRank is the rank of one bundle metric.
type MetricRank struct {
	Field      string
	Label      string
	Value      float64
	Percentile float64
	Adverse    bool
	Tier       Tier
	// CohortMedian is the empirical median of the reference population.
	CohortMedian float64
	// Sample is the number of cohort values the percentile was computed on.
	Sample int
}

// Result holds the ranks of every bundle metric in bundle order.
type Result struct {
	Metrics    []MetricRank
	CohortSize int
}

// Rank ranks p against cohort on every metric of b.
//
// The percentile is the weak percentile-of-score: the share of cohort values
// less than or equal to the player's value. Cohort members without a value for
// a field are left out of that field's population. Adverse fields are inverted.
// p does not have to be a member of cohort.
func Rank(p model.Player, cohort []model.Player, b bundle.Bundle) (Result, error) {
	if len(cohort) == 0 {
		return Result{}, ErrEmptyCohort
	}
	res := Result{
		Metrics:    make([]MetricRank, 0, len(b.Metrics)),
		CohortSize: len(cohort),
	}
	for _, m := range b.Metrics {
		v, ok := p.Value(m.Field)
		if !ok {
			return Result{}, fmt.Errorf("%w: %q", ErrMissingField, m.Field)
		}
		if model.IsMissing(v) {
			return Result{}, fmt.Errorf("%w: %q for %s", ErrMissingValue, m.Field, p.Name)
		}
		values := population(cohort, m.Field)
		if len(values) == 0 {
			return Result{}, fmt.Errorf("%w: no values for %q", ErrEmptyCohort, m.Field)
		}
		adverse := b.IsAdverse(m.Field)
		pct := Percentile(values, v, adverse)
		res.Metrics = append(res.Metrics, MetricRank{
			Field:        m.Field,
			Label:        m.Label,
			Value:        v,
			Percentile:   pct,
			Adverse:      adverse,
			Tier:         Classify(pct),
			CohortMedian: stat.Quantile(0.5, stat.Empirical, values, nil),
			Sample:       len(values),
		})
	}
	return res, nil
}

// Percentile returns the rounded percentile of v within sorted. sorted must be
// non-empty and ascending.
func Percentile(sorted []float64, v float64, adverse bool) float64 {
	raw := percentScale * stat.CDF(v, stat.Empirical, sorted, nil)
	if adverse {
		raw = percentScale - raw
	}
	return Round2(raw)
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*percentScale) / percentScale
}

// population collects the non-missing values of field, sorted ascending.
func population(cohort []model.Player, field string) []float64 {
	out := make([]float64, 0, len(cohort))
	for _, c := range cohort {
		v, ok := c.Value(field)
		if !ok || model.IsMissing(v) {
			continue
		}
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}
