// Package bands converts images into vertical stacks of solid colour bands
// and renders band lists back into images at any resolution.
package bands

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned (wrapped) whenever extraction or rendering is
// given malformed dimensions, buffers, options or band lists.
var ErrInvalidInput = errors.New("invalid input")

// invalidf wraps ErrInvalidInput with a formatted reason.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
