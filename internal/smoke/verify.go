package smoke

import (
	"fmt"
	"slices"

	"github.com/okian/radar/internal/domain/ranking"
)

// verifyProfile returns every inconsistency found in p. A profile is checked
// against the bundle it claims and against the tier palette.
func verifyProfile(p Profile, b Bundle) []string {
	var out []string
	fail := func(format string, args ...any) {
		out = append(out, fmt.Sprintf("%s/%s/%s: ", p.Player, p.Bundle, p.Scope)+fmt.Sprintf(format, args...))
	}

	if p.Bundle != b.Key {
		fail("bundle %q returned for %q", p.Bundle, b.Key)
	}
	if len(p.Metrics) != len(b.Metrics) {
		fail("%d metrics, bundle has %d", len(p.Metrics), len(b.Metrics))
		return out
	}
	if p.CohortSize < 1 {
		fail("cohort size %d", p.CohortSize)
	}

	for i, m := range p.Metrics {
		if m.Field != b.Metrics[i].Field {
			fail("metric %d is %q, want %q", i, m.Field, b.Metrics[i].Field)
		}
		if m.Percentile < 0 || m.Percentile > 100 {
			fail("%s percentile %v out of range", m.Field, m.Percentile)
		}
		tier := ranking.Classify(m.Percentile)
		if m.Tier != int(tier) || m.TierLabel != tier.Label() || m.Color != tier.Color() {
			fail("%s percentile %v labelled tier %d %q", m.Field, m.Percentile, m.Tier, m.TierLabel)
		}
		if m.Adverse != slices.Contains(b.Adverse, m.Field) {
			fail("%s adverse=%v", m.Field, m.Adverse)
		}
		if m.Sample < 1 || m.Sample > p.CohortSize {
			fail("%s sample %d with cohort %d", m.Field, m.Sample, p.CohortSize)
		}
	}
	return out
}
