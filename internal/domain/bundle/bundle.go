// Package bundle defines the closed catalog of metric bundles that drive a chart.
package bundle

import (
	"errors"
	"fmt"
	"strings"
)

// Metric is one ranked field of a bundle with its chart label.
type Metric struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

// Bundle is a named, ordered list of metrics.
type Bundle struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Metrics []Metric `json:"metrics"`
	adverse map[string]struct{}
}

// IsAdverse reports whether a lower raw value is better for field.
func (b Bundle) IsAdverse(field string) bool {
	_, ok := b.adverse[field]
	return ok
}

// AdverseFields returns the bundle's adverse fields in metric order.
func (b Bundle) AdverseFields() []string {
	out := make([]string, 0, len(b.adverse))
	for _, m := range b.Metrics {
		if b.IsAdverse(m.Field) {
			out = append(out, m.Field)
		}
	}
	return out
}

// Fields returns the metric field names in order.
func (b Bundle) Fields() []string {
	out := make([]string, len(b.Metrics))
	for i, m := range b.Metrics {
		out[i] = m.Field
	}
	return out
}

// Resolve returns the bundle registered under key.
func Resolve(key string) (Bundle, error) {
	b, ok := catalog[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Bundle{}, fmt.Errorf("%w: %q", ErrUnknownBundle, key)
	}
	return b, nil
}

// Keys returns every bundle key in catalog order.
func Keys() []string {
	out := make([]string, len(catalogOrder))
	copy(out, catalogOrder)
	return out
}

// All returns every bundle in catalog order.
func All() []Bundle {
	out := make([]Bundle, 0, len(catalogOrder))
	for _, k := range catalogOrder {
		out = append(out, catalog[k])
	}
	return out
}

// Schema is the part of a dataset needed to validate bundles.
type Schema interface {
	HasColumn(field string) bool
}

// ValidateSchema checks that every field of the named bundles is a column of s.
// With no keys every bundle is checked. All missing fields are reported in one
// error.
func ValidateSchema(s Schema, keys ...string) error {
	if len(keys) == 0 {
		keys = catalogOrder
	}
	var errs []error
	for _, k := range keys {
		b, err := Resolve(k)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, m := range b.Metrics {
			if !s.HasColumn(m.Field) {
				errs = append(errs, fmt.Errorf("%w: bundle %q needs column %q", ErrMissingField, b.Key, m.Field))
			}
		}
	}
	return errors.Join(errs...)
}
