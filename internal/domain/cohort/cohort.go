// Package cohort partitions the player dataset into per-bucket peer groups and
// selects the reference population for a ranking request.
package cohort

import (
	"context"
	"strconv"

	"github.com/okian/radar/internal/domain/dedupe"
	"github.com/okian/radar/internal/domain/model"
	"github.com/okian/radar/internal/domain/position"
)

// Cohort is the deduplicated set of players that qualify for one bucket at a
// minimum-minutes threshold. It is never modified after Build returns.
type Cohort struct {
	Bucket     position.Bucket
	MinMinutes float64
	players    []model.Player
}

// Players returns a copy of the cohort members in source row order.
func (c *Cohort) Players() []model.Player {
	if c == nil {
		return nil
	}
	out := make([]model.Player, len(c.players))
	copy(out, c.players)
	return out
}

// Size returns the number of members.
func (c *Cohort) Size() int {
	if c == nil {
		return 0
	}
	return len(c.players)
}

// Find returns the first member matching the player identity.
func (c *Cohort) Find(name, team, league string) (model.Player, bool) {
	if c == nil {
		return model.Player{}, false
	}
	for _, p := range c.players {
		if p.SameIdentity(name, team, league) {
			return p, true
		}
	}
	return model.Player{}, false
}

// Index holds one Cohort per bucket for a single minimum-minutes threshold.
type Index struct {
	MinMinutes float64
	cohorts    map[position.Bucket]*Cohort
}

// Cohort returns the cohort for bucket b.
func (idx *Index) Cohort(b position.Bucket) (*Cohort, bool) {
	if idx == nil {
		return nil, false
	}
	c, ok := idx.cohorts[b]
	return c, ok
}

// Sizes returns the member count of every bucket.
func (idx *Index) Sizes() map[position.Bucket]int {
	if idx == nil {
		return map[position.Bucket]int{}
	}
	out := make(map[position.Bucket]int, len(idx.cohorts))
	for b, c := range idx.cohorts {
		out[b] = c.Size()
	}
	return out
}

// Build partitions ds into cohorts. A player joins the cohort of every bucket that
// any of its primary, secondary or third positions maps to, provided it played at
// least minMinutes. Rows repeating (id, team, league, raw position) are dropped
// after the first. The result depends only on the inputs and the row order of ds.
func Build(ctx context.Context, ds *model.Dataset, pm position.Map, minMinutes float64) *Index {
	buckets := position.Buckets()
	idx := &Index{
		MinMinutes: minMinutes,
		cohorts:    make(map[position.Bucket]*Cohort, len(buckets)),
	}
	seen := make(map[position.Bucket]dedupe.Deduper, len(buckets))
	for _, b := range buckets {
		idx.cohorts[b] = &Cohort{Bucket: b, MinMinutes: minMinutes}
		seen[b] = dedupe.NewInMemoryDeduper(dedupe.WithCapacityHint(ds.Len() / len(buckets)))
	}

	for _, p := range ds.Players {
		if p.Minutes < minMinutes {
			continue
		}
		key := dedupe.Key(p.ID, p.Team, p.League, p.Position)
		for _, b := range memberBuckets(pm, p) {
			if seen[b].SeenAndRecord(ctx, key) {
				continue
			}
			c := idx.cohorts[b]
			c.players = append(c.players, p)
		}
	}
	return idx
}

// memberBuckets returns the distinct known buckets of a player's three position
// slots, in slot order.
func memberBuckets(pm position.Map, p model.Player) []position.Bucket {
	out := make([]position.Bucket, 0, len(p.Positions))
	for _, code := range p.Positions {
		b := pm.Normalize(code)
		if b == position.Unknown || containsBucket(out, b) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func containsBucket(bs []position.Bucket, b position.Bucket) bool {
	for _, x := range bs {
		if x == b {
			return true
		}
	}
	return false
}

// CacheKey renders a minimum-minutes threshold as a stable cache key.
func CacheKey(minMinutes float64) string {
	return strconv.FormatFloat(minMinutes, 'f', -1, 64)
}
