package cohort

import "errors"

// Sentinel kinds for cohort errors.
var (
	ErrUnknownScope = errors.New("unknown comparison scope")
)
