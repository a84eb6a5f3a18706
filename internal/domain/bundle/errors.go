package bundle

import "errors"

// Sentinel kinds for bundle errors. Both indicate a broken deployment rather than
// bad user input.
var (
	ErrUnknownBundle = errors.New("unknown metric bundle")
	ErrMissingField  = errors.New("missing metric field")
)
