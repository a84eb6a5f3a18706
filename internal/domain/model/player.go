// Package model contains domain models passed between layers.
package model

import (
	"math"
	"sort"
)

// Player is one dataset row: a player's season window at one team and league.
// Values are fixed once the dataset is loaded.
type Player struct {
	ID        string    // Wyscout id
	Name      string    // display name
	Team      string    // team within selected timeframe
	League    string    // competition name
	Position  string    // raw comma-separated position string, e.g. "LCB, DMF"
	Positions [3]string // raw primary, secondary and third position codes
	Minutes   float64   // minutes played
	Age       float64   // age at export time
	Metrics   map[string]float64
}

// Value returns the raw value of a metric field. ok is false when the dataset has
// no such column for this player. The value may be NaN when the cell was empty.
func (p Player) Value(field string) (v float64, ok bool) {
	v, ok = p.Metrics[field]
	return v, ok
}

// SameIdentity reports whether p is the row for name at team in league.
func (p Player) SameIdentity(name, team, league string) bool {
	return p.Name == name && p.Team == team && p.League == league
}

// Dataset is the loaded statistics table, in source row order.
type Dataset struct {
	Players []Player
	columns map[string]struct{}
}

// NewDataset builds a dataset from players and the set of numeric metric columns.
func NewDataset(players []Player, columns []string) *Dataset {
	cols := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		cols[c] = struct{}{}
	}
	return &Dataset{Players: players, columns: cols}
}

// HasColumn reports whether field is a numeric metric column of the dataset.
func (d *Dataset) HasColumn(field string) bool {
	_, ok := d.columns[field]
	return ok
}

// Columns returns the numeric metric columns, sorted.
func (d *Dataset) Columns() []string {
	out := make([]string, 0, len(d.columns))
	for c := range d.columns {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Players)
}

// Leagues returns the distinct leagues in the dataset, sorted.
func (d *Dataset) Leagues() []string {
	seen := make(map[string]struct{})
	for _, p := range d.Players {
		seen[p.League] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// IsMissing reports whether v represents an empty numeric cell.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}
