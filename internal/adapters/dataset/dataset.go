// Package dataset loads the Wyscout statistics export into a model.Dataset.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/okian/radar/internal/domain/model"
	"github.com/okian/radar/pkg/logger"
)

// Column names of the identity fields every export must carry.
const (
	ColPlayer    = "Player"
	ColTeam      = "Team within selected timeframe"
	ColLeague    = "League"
	ColPosition  = "Position"
	ColPrimary   = "Primary position"
	ColSecondary = "Secondary position"
	ColThird     = "Third position"
	ColMinutes   = "Minutes played"
	ColAge       = "Age"
	ColID        = "Wyscout id"
)

// RequiredColumns lists the identity columns in a stable order.
var RequiredColumns = []string{
	ColPlayer, ColTeam, ColLeague, ColPosition, ColPrimary,
	ColSecondary, ColThird, ColMinutes, ColAge, ColID,
}

const ctxCheckEvery = 1024

type reader struct {
	comma rune
	log   logger.Logger
}

// Load opens path and reads it with Read.
func Load(ctx context.Context, path string, opts ...Option) (*model.Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(ctx, f, opts...)
}

// Read parses a CSV export. Required columns must all be present. Every other
// column whose non-empty cells all parse as numbers becomes a metric column;
// its empty cells load as NaN. Rows keep their source order.
func Read(ctx context.Context, r io.Reader, opts ...Option) (*model.Dataset, error) {
	rd := &reader{comma: ',', log: logger.Discard()}
	for _, opt := range opts {
		opt(rd)
	}

	cr := csv.NewReader(r)
	cr.Comma = rd.comma

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	var records [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRow, err)
		}
		records = append(records, rec)
		if len(records)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	metrics := rd.metricColumns(ctx, header, idx, records)

	players := make([]model.Player, 0, len(records))
	for n, rec := range records {
		p, err := parsePlayer(rec, idx, metrics)
		if err != nil {
			// +2: one for the header, one for 1-based numbering.
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidRow, n+2, err)
		}
		players = append(players, p)
	}

	names := make([]string, 0, len(metrics))
	for _, c := range metrics {
		names = append(names, c.name)
	}
	return model.NewDataset(players, names), nil
}

func indexHeader(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		header[i] = h
		if _, dup := idx[h]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, h)
		}
		idx[h] = i
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

type column struct {
	name string
	pos  int
}

// metricColumns picks the numeric non-identity columns.
func (rd *reader) metricColumns(ctx context.Context, header []string, idx map[string]int, records [][]string) []column {
	required := make(map[string]struct{}, len(RequiredColumns))
	for _, c := range RequiredColumns {
		required[c] = struct{}{}
	}
	var out []column
	for _, h := range header {
		if _, ok := required[h]; ok {
			continue
		}
		pos := idx[h]
		if numeric(records, pos) {
			out = append(out, column{name: h, pos: pos})
			continue
		}
		rd.log.Debug(ctx, "skipping non-numeric column", logger.String("column", h))
	}
	return out
}

// numeric reports whether every non-blank cell at pos parses and at least one
// of them holds a finite number. An all-blank column is not a metric column.
func numeric(records [][]string, pos int) bool {
	found := false
	for _, rec := range records {
		s := strings.TrimSpace(rec[pos])
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return false
		}
		if finite(v) {
			found = true
		}
	}
	return found
}

func parsePlayer(rec []string, idx map[string]int, metrics []column) (model.Player, error) {
	get := func(col string) string { return strings.TrimSpace(rec[idx[col]]) }

	minutes, err := parseNumber(get(ColMinutes), 0)
	if err != nil {
		return model.Player{}, fmt.Errorf("%s: %w", ColMinutes, err)
	}
	if !finite(minutes) {
		return model.Player{}, fmt.Errorf("%s: %w: %q", ColMinutes, errNotFinite, get(ColMinutes))
	}
	age, err := parseNumber(get(ColAge), math.NaN())
	if err != nil {
		return model.Player{}, fmt.Errorf("%s: %w", ColAge, err)
	}
	if math.IsInf(age, 0) {
		age = math.NaN()
	}

	p := model.Player{
		ID:        get(ColID),
		Name:      get(ColPlayer),
		Team:      get(ColTeam),
		League:    get(ColLeague),
		Position:  get(ColPosition),
		Positions: [3]string{get(ColPrimary), get(ColSecondary), get(ColThird)},
		Minutes:   minutes,
		Age:       age,
		Metrics:   make(map[string]float64, len(metrics)),
	}
	for _, c := range metrics {
		v, err := parseNumber(strings.TrimSpace(rec[c.pos]), math.NaN())
		if err != nil || math.IsInf(v, 0) {
			v = math.NaN()
		}
		p.Metrics[c.name] = v
	}
	return p, nil
}

// parseNumber parses s, returning empty for a blank cell.
func parseNumber(s string, empty float64) (float64, error) {
	if s == "" {
		return empty, nil
	}
	return strconv.ParseFloat(s, 64)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
