package position

import "errors"

// Sentinel kinds for position errors.
var (
	ErrUnknownBucket   = errors.New("unknown position bucket")
	ErrUnknownPosition = errors.New("no valid position mapping")
)
