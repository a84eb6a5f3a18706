// Package position maps raw scouting position codes onto canonical role buckets.
package position

import (
	"fmt"
	"sort"
	"strings"
)

// Bucket is a canonical role category used to group players for comparison.
type Bucket string

// Canonical buckets.
const (
	GK      Bucket = "GK"
	CB      Bucket = "CB"
	LB      Bucket = "LB"
	RB      Bucket = "RB"
	DMF     Bucket = "DMF"
	CMF     Bucket = "CMF"
	AMF     Bucket = "AMF"
	CF      Bucket = "CF"
	WIN     Bucket = "WIN"
	Unknown Bucket = "Unknown"
)

// allBuckets lists the known buckets in display order (goalkeeper to forwards).
var allBuckets = []Bucket{GK, CB, LB, RB, DMF, CMF, AMF, CF, WIN}

// Buckets returns the closed set of known buckets. Unknown is not included.
func Buckets() []Bucket {
	out := make([]Bucket, len(allBuckets))
	copy(out, allBuckets)
	return out
}

// IsValid reports whether b is one of the known buckets.
func (b Bucket) IsValid() bool {
	switch b {
	case GK, CB, LB, RB, DMF, CMF, AMF, CF, WIN:
		return true
	}
	return false
}

func (b Bucket) String() string {
	return string(b)
}

// ParseBucket converts a canonical bucket name (case-insensitive) into a Bucket.
func ParseBucket(s string) (Bucket, error) {
	b := Bucket(strings.ToUpper(strings.TrimSpace(s)))
	if !b.IsValid() {
		return Unknown, fmt.Errorf("%w: %q", ErrUnknownBucket, s)
	}
	return b, nil
}

// Map resolves raw position codes (e.g. "LCB3", "RWF") to buckets.
type Map map[string]Bucket

// DefaultMap returns the Wyscout position table.
func DefaultMap() Map {
	return Map{
		"GK":    GK,
		"CB":    CB,
		"RCB":   CB,
		"LCB":   CB,
		"RCB3":  CB,
		"LCB3":  CB,
		"LB":    LB,
		"LWB":   LB,
		"LB5":   LB,
		"RB":    RB,
		"RWB":   RB,
		"RB5":   RB,
		"DMF":   DMF,
		"LDMF":  DMF,
		"RDMF":  DMF,
		"CMF":   CMF,
		"LCMF":  CMF,
		"RCMF":  CMF,
		"CMF3":  CMF,
		"LCMF3": CMF,
		"RCMF3": CMF,
		"AMF":   AMF,
		"LAMF":  AMF,
		"RAMF":  AMF,
		"CF":    CF,
		"LW":    WIN,
		"RW":    WIN,
		"LWF":   WIN,
		"RWF":   WIN,
	}
}

// WithAliases returns a copy of m extended with extra code -> bucket entries.
// Aliases may only point at known buckets.
func (m Map) WithAliases(aliases map[string]string) (Map, error) {
	out := make(Map, len(m)+len(aliases))
	for code, b := range m {
		out[code] = b
	}
	for code, name := range aliases {
		b, err := ParseBucket(name)
		if err != nil {
			return nil, fmt.Errorf("alias %q: %w", code, err)
		}
		out[strings.ToUpper(strings.TrimSpace(code))] = b
	}
	return out, nil
}

// Normalize maps a single raw code to its bucket. Unknown or empty codes map to Unknown.
func (m Map) Normalize(code string) Bucket {
	code = strings.TrimSpace(code)
	if code == "" {
		return Unknown
	}
	if b, ok := m[code]; ok {
		return b
	}
	return Unknown
}

// NormalizeList maps every token of a comma-separated position string.
func (m Map) NormalizeList(raw string) []Bucket {
	tokens := splitTokens(raw)
	out := make([]Bucket, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, m.Normalize(t))
	}
	return out
}

// ResolvePrimary returns the bucket of the first token in raw that maps to a known
// bucket. Later tokens are only consulted when earlier ones are unknown.
func (m Map) ResolvePrimary(raw string) (Bucket, bool) {
	for _, t := range splitTokens(raw) {
		if b := m.Normalize(t); b != Unknown {
			return b, true
		}
	}
	return Unknown, false
}

// Codes returns the raw codes known to m, sorted.
func (m Map) Codes() []string {
	codes := make([]string, 0, len(m))
	for c := range m {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

func splitTokens(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
