// Package dedupe tracks composite row keys so that only the first occurrence of
// a key is kept when walking a dataset in source order.
package dedupe

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
)

// keySeparator joins key parts. It cannot appear in CSV text fields.
const keySeparator = "\x1f"

// Key builds a composite key from its parts.
func Key(parts ...string) string {
	return strings.Join(parts, keySeparator)
}

// Deduper records seen keys.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	Size() int64
}

// inMemoryDeduper implements Deduper with a map. It never evicts: dropping a key
// would let a later duplicate row back in and change cohort membership.
type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
	hint int
	size atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}

	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{}, d.hint)
	return d
}

// SeenAndRecord atomically checks if id was seen and records it if not.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		return true
	}
	d.seen[id] = struct{}{}
	d.size.Add(1)
	return false
}

// Size returns the current number of entries in the deduper.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
