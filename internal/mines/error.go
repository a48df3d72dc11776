package mines

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid game config")
	ErrOutOfBounds   = errors.New("cell out of bounds")
)

// AssertionError reports a broken internal invariant. It is raised with
// panic and recovered at the session boundary.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return "assertion failed: " + e.message
}
