package dataset

import "github.com/okian/radar/pkg/logger"

// Option configures Read and Load.
type Option func(*reader)

// WithComma sets the field delimiter. Defaults to ','.
func WithComma(r rune) Option {
	return func(rd *reader) {
		if r != 0 {
			rd.comma = r
		}
	}
}

// WithLogger sets the logger used to report skipped columns.
func WithLogger(l logger.Logger) Option {
	return func(rd *reader) {
		if l != nil {
			rd.log = l
		}
	}
}
