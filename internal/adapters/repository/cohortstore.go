package repository

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/radar/internal/domain/cohort"
	"github.com/okian/radar/internal/domain/model"
	"github.com/okian/radar/internal/domain/position"
	"github.com/okian/radar/pkg/logger"
	"github.com/okian/radar/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

const defaultCapacity = 16

var _ Store = (*CohortStore)(nil)

// state is the dataset indexes are built from. A new state replaces the old
// one wholesale on Replace.
type state struct {
	ds         *model.Dataset
	generation uint64
}

// CohortStore memoizes cohort indexes per threshold.
//
// Indexes are immutable once built and shared between callers. Concurrent
// misses for the same threshold trigger a single build. The cache is bounded
// and evicts the oldest entry first.
type CohortStore struct {
	positions position.Map
	capacity  int
	log       logger.Logger

	state atomic.Pointer[state]

	mu      sync.Mutex
	entries map[string]*cohort.Index
	order   []string // insertion order, oldest first

	group  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64
	builds atomic.Int64
}

// Stats reports cache activity.
type Stats struct {
	Cached   int
	Capacity int
	Hits     int64
	Misses   int64
	Builds   int64
}

// NewCohortStore constructs a store over ds.
func NewCohortStore(ds *model.Dataset, opts ...Option) *CohortStore {
	s := &CohortStore{
		positions: position.DefaultMap(),
		capacity:  defaultCapacity,
		log:       logger.Discard(),
		entries:   make(map[string]*cohort.Index),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Store(&state{ds: ds})
	return s
}

// Index implements Store.Index.
func (s *CohortStore) Index(ctx context.Context, minMinutes float64) (*cohort.Index, error) {
	if math.IsNaN(minMinutes) || math.IsInf(minMinutes, 0) || minMinutes < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, minMinutes)
	}
	st := s.state.Load()
	if st.ds == nil {
		return nil, ErrNoDataset
	}
	key := cohort.CacheKey(minMinutes)

	s.mu.Lock()
	idx, ok := s.entries[key]
	s.mu.Unlock()
	if ok {
		s.hits.Add(1)
		metrics.RecordCohortCacheHit()
		return idx, nil
	}
	s.misses.Add(1)
	metrics.RecordCohortCacheMiss()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	flightKey := strconv.FormatUint(st.generation, 10) + "/" + key
	v, err, _ := s.group.Do(flightKey, func() (interface{}, error) {
		return s.build(ctx, st, minMinutes, key), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*cohort.Index), nil
}

func (s *CohortStore) build(ctx context.Context, st *state, minMinutes float64, key string) *cohort.Index {
	start := time.Now()
	idx := cohort.Build(ctx, st.ds, s.positions, minMinutes)
	elapsed := time.Since(start)
	s.builds.Add(1)

	memberships := 0
	for _, n := range idx.Sizes() {
		memberships += n
	}
	metrics.RecordCohortBuild(float64(elapsed.Microseconds())/1000, memberships, time.Now().Unix())
	s.log.Debug(ctx, "cohort index built",
		logger.Float64("min_minutes", minMinutes),
		logger.Int("memberships", memberships),
		logger.Duration("took", elapsed),
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	// A Replace while building makes this index stale; hand it to the caller
	// without caching it.
	if s.state.Load() != st {
		return idx
	}
	if _, ok := s.entries[key]; !ok {
		s.entries[key] = idx
		s.order = append(s.order, key)
		s.evictLocked()
	}
	metrics.UpdateCohortIndexesCached(len(s.entries))
	return idx
}

func (s *CohortStore) evictLocked() {
	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
		metrics.RecordCohortCacheEviction()
	}
}

// Prime builds the indexes for the given thresholds ahead of requests.
func (s *CohortStore) Prime(ctx context.Context, thresholds ...float64) error {
	for _, t := range thresholds {
		if _, err := s.Index(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// Replace swaps the dataset and drops every cached index.
func (s *CohortStore) Replace(ds *model.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.state.Load()
	s.state.Store(&state{ds: ds, generation: prev.generation + 1})
	s.entries = make(map[string]*cohort.Index)
	s.order = nil
	metrics.UpdateCohortIndexesCached(0)
}

// Dataset implements Store.Dataset.
func (s *CohortStore) Dataset() *model.Dataset {
	return s.state.Load().ds
}

// Positions returns the position map indexes are built with.
func (s *CohortStore) Positions() position.Map {
	return s.positions
}

// Len implements Store.Len.
func (s *CohortStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stats returns a snapshot of cache counters.
func (s *CohortStore) Stats() Stats {
	return Stats{
		Cached:   s.Len(),
		Capacity: s.capacity,
		Hits:     s.hits.Load(),
		Misses:   s.misses.Load(),
		Builds:   s.builds.Load(),
	}
}
