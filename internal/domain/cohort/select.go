package cohort

import (
	"fmt"
	"strings"

	"github.com/okian/radar/internal/domain/model"
	"github.com/okian/radar/internal/domain/position"
)

// Scope narrows the cohort used as the percentile reference population.
type Scope string

// Comparison scopes.
const (
	ScopeGlobal     Scope = "global"
	ScopeSameLeague Scope = "same_league"
)

// ParseScope accepts the canonical scope names and their short aliases.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "global", "all":
		return ScopeGlobal, nil
	case "same_league", "same-league", "league":
		return ScopeSameLeague, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
	}
}

// Select returns the peer set for bucket b. With ScopeSameLeague only members
// from league are kept. An absent bucket or an empty filter yields an empty slice.
// The returned slice is always freshly allocated.
func Select(idx *Index, b position.Bucket, scope Scope, league string) []model.Player {
	c, ok := idx.Cohort(b)
	if !ok {
		return []model.Player{}
	}
	if scope != ScopeSameLeague {
		return c.Players()
	}
	out := make([]model.Player, 0, c.Size())
	for _, p := range c.players {
		if p.League == league {
			out = append(out, p)
		}
	}
	return out
}
