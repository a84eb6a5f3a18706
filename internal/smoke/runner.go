package smoke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/radar/internal/adapters/dataset"
	"github.com/okian/radar/pkg/logger"
)

// ErrViolations is returned when at least one profile failed verification.
var ErrViolations = errors.New("profile verification failed")

// LoadTargets reads the dataset at path and picks n players spread evenly over
// it. n <= 0 returns every row.
func LoadTargets(ctx context.Context, path string, n int) ([]Target, error) {
	ds, err := dataset.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	rows := ds.Players
	if n <= 0 || n >= len(rows) {
		n = len(rows)
	}
	out := make([]Target, 0, n)
	for i := 0; i < n; i++ {
		p := rows[i*len(rows)/n]
		out = append(out, Target{Player: p.Name, Team: p.Team, League: p.League})
	}
	return out, nil
}

// Run profiles every target in every enabled bundle and requested scope and
// verifies each response.
func Run(ctx context.Context, cfg *Config, targets []Target) (*Report, error) {
	log := cfg.Logger
	if log == nil {
		log = logger.Get().Named("smoke")
	}
	rep := &Report{
		RunID:     uuid.NewString(),
		Rejected:  map[string]int64{},
		StartTime: time.Now(),
	}
	log.Info(ctx, "starting profile smoke run",
		logger.String("runID", rep.RunID),
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("targets", len(targets)),
		logger.Int("concurrency", cfg.Concurrency))

	c := newClient(cfg.BaseURL, cfg.Timeout)
	status, _, err := c.get(ctx, "/healthz", nil)
	if err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("service health check failed with status: %d", status)
	}

	var catalog struct {
		Bundles []Bundle `json:"bundles"`
	}
	if err := c.getJSON(ctx, "/bundles", nil, &catalog); err != nil {
		return nil, err
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"global"}
	}

	var (
		mu       sync.Mutex
		requests atomic.Int64
		profiles atomic.Int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Concurrency, 1))

	for _, t := range targets {
		for _, b := range catalog.Bundles {
			for _, scope := range scopes {
				t, b, scope := t, b, scope
				g.Go(func() error {
					q := url.Values{
						"player": {t.Player}, "team": {t.Team}, "league": {t.League},
						"bundle": {b.Key}, "scope": {scope},
					}
					status, body, err := c.get(gctx, "/profile", q)
					requests.Add(1)
					if err != nil {
						return err
					}

					mu.Lock()
					defer mu.Unlock()
					switch {
					case status == http.StatusOK:
						var p Profile
						if err := json.Unmarshal(body, &p); err != nil {
							rep.Violations = append(rep.Violations, fmt.Sprintf("%s/%s: decode: %v", t.Player, b.Key, err))
							return nil
						}
						profiles.Add(1)
						rep.Violations = append(rep.Violations, verifyProfile(p, b)...)
						if cfg.Verbose {
							log.Info(gctx, "profile", logger.String("player", p.Player),
								logger.String("bundle", p.Bundle), logger.Int("cohort", p.CohortSize))
						}
					case status >= http.StatusInternalServerError:
						rep.Violations = append(rep.Violations, fmt.Sprintf("%s/%s: status %d: %s", t.Player, b.Key, status, body))
					default:
						var e errorBody
						_ = json.Unmarshal(body, &e)
						rep.Rejected[e.Code]++
					}
					return nil
				})
			}
		}
	}
	err = g.Wait()

	rep.Requests = requests.Load()
	rep.Profiles = profiles.Load()
	rep.Duration = time.Since(rep.StartTime)
	logReport(ctx, log, rep)

	if err != nil {
		return rep, fmt.Errorf("smoke run %s: %w", rep.RunID, err)
	}
	if len(rep.Violations) > 0 {
		return rep, fmt.Errorf("%w: %d violations", ErrViolations, len(rep.Violations))
	}
	return rep, nil
}

func logReport(ctx context.Context, log logger.Logger, rep *Report) {
	var perSecond float64
	if rep.Duration > 0 {
		perSecond = float64(rep.Requests) / rep.Duration.Seconds()
	}
	fields := []logger.Field{
		logger.String("runID", rep.RunID),
		logger.Int64("requests", rep.Requests),
		logger.Int64("profiles", rep.Profiles),
		logger.Int("violations", len(rep.Violations)),
		logger.Duration("duration", rep.Duration),
		logger.Float64("requestsPerSecond", perSecond),
	}
	for code, n := range rep.Rejected {
		fields = append(fields, logger.Int64("rejected_"+code, n))
	}
	log.Info(ctx, "smoke run finished", fields...)
	for _, v := range rep.Violations {
		log.Warn(ctx, "violation", logger.String("detail", v))
	}
}
