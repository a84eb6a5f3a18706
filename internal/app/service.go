// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/radar/internal/adapters/dataset"
	"github.com/okian/radar/internal/adapters/repository"
	"github.com/okian/radar/internal/domain/bundle"
	"github.com/okian/radar/internal/domain/cohort"
	"github.com/okian/radar/internal/domain/model"
	"github.com/okian/radar/internal/domain/position"
	"github.com/okian/radar/internal/domain/ranking"
	"github.com/okian/radar/internal/domain/types"
	"github.com/okian/radar/pkg/logger"
	"github.com/okian/radar/pkg/metrics"
)

// Request names the player to profile and the comparison to run.
type Request struct {
	Player string
	Team   string
	League string
	// Position is the raw position string, e.g. "RCB, DMF", or a bucket name.
	// Empty uses the player's own position from the dataset.
	Position string
	// Scope is "global" (default) or "same_league".
	Scope string
	// MinMinutes overrides the default cohort threshold when set.
	MinMinutes *float64
	Bundle     string
}

// Service implements the API dependencies for the profile system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     *repository.CohortStore
	positions position.Map
	bundles   map[string]bundle.Bundle

	// Configuration
	datasetPath           string
	dataset               *model.Dataset
	defaultMinMinutes     float64
	minMinutesFloor       float64
	minMinutesCeiling     float64
	cohortCacheSize       int
	positionAliases       map[string]string
	bundleKeys            []string
	systemMetricsInterval time.Duration

	// State
	started  bool
	reloadMu sync.Mutex
	stopCh   chan struct{}
	wg       sync.WaitGroup

	rankings atomic.Int64
	failures atomic.Int64

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		datasetPath:           "database.csv",
		defaultMinMinutes:     500,
		minMinutesFloor:       0,
		minMinutesCeiling:     5000,
		cohortCacheSize:       16,
		systemMetricsInterval: 10 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset, validates the bundle catalog against it and warms
// the cohort index for the default threshold. A dataset that lacks a bundle
// field fails here rather than on the first request.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting profile service...")

	if s.defaultMinMinutes < s.minMinutesFloor || s.defaultMinMinutes > s.minMinutesCeiling {
		return fmt.Errorf("%w: default %v outside [%v, %v]",
			ErrInvalidMinMinutes, s.defaultMinMinutes, s.minMinutesFloor, s.minMinutesCeiling)
	}

	pm, err := position.DefaultMap().WithAliases(s.positionAliases)
	if err != nil {
		return fmt.Errorf("position aliases: %w", err)
	}
	s.positions = pm

	bundles, err := s.resolveBundles()
	if err != nil {
		return err
	}
	s.bundles = bundles

	ds := s.dataset
	if ds == nil {
		if ds, err = s.load(ctx); err != nil {
			return err
		}
	}
	if err := bundle.ValidateSchema(ds, s.enabledKeys()...); err != nil {
		return fmt.Errorf("dataset %s: %w", s.datasetPath, err)
	}
	s.dataset = ds

	s.store = repository.NewCohortStore(ds,
		repository.WithCapacity(s.cohortCacheSize),
		repository.WithPositionMap(pm),
		repository.WithLogger(s.logger.Named("cohorts")),
	)
	if err := s.store.Prime(ctx, s.defaultMinMinutes); err != nil {
		return fmt.Errorf("prime cohorts: %w", err)
	}

	s.stopCh = make(chan struct{})
	s.startSystemMetrics()

	s.started = true
	s.logger.Info(ctx, "profile service started",
		logger.Int("players", ds.Len()),
		logger.Int("metricColumns", len(ds.Columns())),
		logger.Int("bundles", len(s.bundles)),
		logger.Float64("defaultMinMinutes", s.defaultMinMinutes),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping profile service...")

	close(s.stopCh)
	s.wg.Wait()

	s.started = false
	s.logger.Info(context.Background(), "profile service stopped")
}

// Reload re-reads the dataset file and swaps it in. The running dataset is
// kept when the new one fails to load or validate. The file is parsed without
// holding the service lock, so profile requests keep being served against the
// old dataset until the swap.
func (s *Service) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	s.mu.RLock()
	started, keys := s.started, s.enabledKeys()
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}

	ds, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := bundle.ValidateSchema(ds, keys...); err != nil {
		return fmt.Errorf("dataset %s: %w", s.datasetPath, err)
	}

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.dataset = ds
	store := s.store
	store.Replace(ds)
	s.mu.Unlock()

	if err := store.Prime(ctx, s.defaultMinMinutes); err != nil {
		return fmt.Errorf("prime cohorts: %w", err)
	}
	s.logger.Info(ctx, "dataset reloaded", logger.Int("players", ds.Len()))
	return nil
}

func (s *Service) load(ctx context.Context) (*model.Dataset, error) {
	start := time.Now()
	ds, err := dataset.Load(ctx, s.datasetPath, dataset.WithLogger(s.logger.Named("dataset")))
	if err != nil {
		metrics.RecordErrorByComponent("dataset", "load_failed")
		return nil, fmt.Errorf("load dataset %s: %w", s.datasetPath, err)
	}
	elapsed := time.Since(start)
	metrics.UpdateDataset(ds.Len(), len(ds.Columns()), float64(elapsed.Milliseconds()))
	s.logger.Info(ctx, "dataset loaded",
		logger.String("path", s.datasetPath),
		logger.Int("rows", ds.Len()),
		logger.Int("columns", len(ds.Columns())),
		logger.Duration("took", elapsed),
	)
	return ds, nil
}

func (s *Service) enabledKeys() []string {
	if len(s.bundleKeys) == 0 {
		return bundle.Keys()
	}
	return s.bundleKeys
}

func (s *Service) resolveBundles() (map[string]bundle.Bundle, error) {
	out := make(map[string]bundle.Bundle)
	for _, k := range s.enabledKeys() {
		b, err := bundle.Resolve(k)
		if err != nil {
			return nil, err
		}
		out[b.Key] = b
	}
	return out, nil
}

// ComputeRanking builds the percentile profile of one player.
//
// The player is ranked against the cohort of the bucket resolved from the
// position, at the requested minutes threshold and scope. A player below the
// threshold, or outside the scoped league, is still ranked against that cohort
// and flagged in the profile.
func (s *Service) ComputeRanking(ctx context.Context, req Request) (types.Profile, error) {
	start := time.Now()
	p, err := s.computeRanking(ctx, req)
	metrics.RecordRankingLatency(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		s.failures.Add(1)
		kind := ErrorKind(err)
		metrics.RecordRankingError(kind)
		s.logger.Debug(ctx, "ranking failed",
			logger.String("player", req.Player),
			logger.String("kind", kind),
			logger.Error(err),
		)
		return types.Profile{}, err
	}
	s.rankings.Add(1)
	metrics.RecordRanking(p.Bundle, p.Scope, p.CohortSize)
	return p, nil
}

func (s *Service) computeRanking(ctx context.Context, req Request) (types.Profile, error) {
	s.mu.RLock()
	started, store, pm := s.started, s.store, s.positions
	s.mu.RUnlock()
	if !started {
		return types.Profile{}, ErrNotStarted
	}

	if strings.TrimSpace(req.Player) == "" {
		return types.Profile{}, fmt.Errorf("%w: player is required", ErrInvalidRequest)
	}
	b, err := s.Bundle(req.Bundle)
	if err != nil {
		return types.Profile{}, err
	}
	scope, err := cohort.ParseScope(req.Scope)
	if err != nil {
		return types.Profile{}, err
	}
	minMinutes, err := s.minMinutes(req.MinMinutes)
	if err != nil {
		return types.Profile{}, err
	}

	ds := store.Dataset()
	row, found := findPlayer(ds.Players, req.Player, req.Team, req.League)
	if !found {
		return types.Profile{}, fmt.Errorf("%w: %s (%s, %s)", ErrPlayerNotFound, req.Player, req.Team, req.League)
	}
	raw := req.Position
	if strings.TrimSpace(raw) == "" {
		raw = row.Position
	}
	bucket, err := resolveBucket(pm, raw)
	if err != nil {
		return types.Profile{}, err
	}

	idx, err := store.Index(ctx, minMinutes)
	if err != nil {
		return types.Profile{}, err
	}
	peers := cohort.Select(idx, bucket, scope, row.League)

	member, self := findPlayer(peers, row.Name, row.Team, row.League)
	if self {
		row = member
	}
	res, err := ranking.Rank(row, peers, b)
	if err != nil {
		return types.Profile{}, fmt.Errorf("rank %s as %s: %w", req.Player, bucket, err)
	}

	var age *float64
	if !model.IsMissing(row.Age) {
		age = &row.Age
	}
	return types.Profile{
		Player:              row.Name,
		Team:                row.Team,
		League:              row.League,
		Position:            row.Position,
		Age:                 age,
		Minutes:             row.Minutes,
		Bucket:              bucket.String(),
		Scope:               string(scope),
		MinMinutes:          minMinutes,
		CohortSize:          res.CohortSize,
		Bundle:              b.Key,
		Title:               b.Title,
		Metrics:             types.MetricRanks(res),
		SelfIncluded:        self,
		BelowMinimumMinutes: row.Minutes < minMinutes,
	}, nil
}

// resolveBucket maps a raw position string, or a bucket name, to a bucket.
func resolveBucket(pm position.Map, raw string) (position.Bucket, error) {
	if b, ok := pm.ResolvePrimary(raw); ok {
		return b, nil
	}
	if b, err := position.ParseBucket(raw); err == nil {
		return b, nil
	}
	return position.Unknown, fmt.Errorf("%w: %q", ErrUnknownPosition, raw)
}

func findPlayer(ps []model.Player, name, team, league string) (model.Player, bool) {
	for _, p := range ps {
		if p.SameIdentity(name, team, league) {
			return p, true
		}
	}
	return model.Player{}, false
}

func (s *Service) minMinutes(v *float64) (float64, error) {
	if v == nil {
		return s.defaultMinMinutes, nil
	}
	if math.IsNaN(*v) || *v < s.minMinutesFloor || *v > s.minMinutesCeiling {
		return 0, fmt.Errorf("%w: %v not in [%v, %v]", ErrInvalidMinMinutes, *v, s.minMinutesFloor, s.minMinutesCeiling)
	}
	return *v, nil
}

// Bundle returns an enabled bundle. An empty key selects the first enabled one.
func (s *Service) Bundle(key string) (bundle.Bundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if strings.TrimSpace(key) == "" {
		key = s.enabledKeys()[0]
	}
	b, err := bundle.Resolve(key)
	if err != nil {
		return bundle.Bundle{}, err
	}
	if _, ok := s.bundles[b.Key]; !ok {
		return bundle.Bundle{}, fmt.Errorf("%w: %q is not enabled", ErrUnknownBundle, key)
	}
	return b, nil
}

// Bundles returns the enabled bundles in catalog order.
func (s *Service) Bundles() []bundle.Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]bundle.Bundle, 0, len(s.bundles))
	for _, b := range bundle.All() {
		if _, ok := s.bundles[b.Key]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Positions returns the active position map.
func (s *Service) Positions() position.Map {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.positions
}

// MinMinutesRange returns the default threshold and its allowed bounds.
func (s *Service) MinMinutesRange() (def, floor, ceiling float64) {
	return s.defaultMinMinutes, s.minMinutesFloor, s.minMinutesCeiling
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"datasetPath":       s.datasetPath,
		"defaultMinMinutes": s.defaultMinMinutes,
		"rankings":          s.rankings.Load(),
		"failures":          s.failures.Load(),
	}

	if s.started {
		cs := s.store.Stats()
		stats["players"] = s.dataset.Len()
		stats["metricColumns"] = len(s.dataset.Columns())
		stats["leagues"] = len(s.dataset.Leagues())
		stats["bundles"] = len(s.bundles)
		stats["cohortIndexesCached"] = cs.Cached
		stats["cohortCacheCapacity"] = cs.Capacity
		stats["cohortCacheHits"] = cs.Hits
		stats["cohortCacheMisses"] = cs.Misses
		stats["cohortBuilds"] = cs.Builds
		metrics.UpdateCohortIndexesCached(cs.Cached)
	}

	return stats
}

// startSystemMetrics refreshes runtime gauges until Stop.
func (s *Service) startSystemMetrics() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.systemMetricsInterval)
		defer ticker.Stop()

		var lastGC uint32
		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				lastGC = recordSystemMetrics(lastGC)
			}
		}
	}()
}

func recordSystemMetrics(lastGC uint32) uint32 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	ring := uint32(len(m.PauseNs))
	from := lastGC
	if m.NumGC-from > ring {
		from = m.NumGC - ring
	}
	for n := from; n < m.NumGC; n++ {
		metrics.RecordSystemGCPauseTime(float64(m.PauseNs[n%ring]) / 1e6)
	}
	return m.NumGC
}
