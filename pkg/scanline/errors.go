package scanline

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoDriver indicates New was called without a usable panel driver.
	ErrNoDriver = errors.New("no display driver")

	// ErrClosed is returned by Run after Close.
	ErrClosed = errors.New("compositor closed")
)

// Error reports a setup failure: configuration that cannot be loaded, a
// line buffer that cannot be allocated, an input device that cannot be
// opened. Navigation and refresh never return it; they log and carry on.
type Error struct {
	Op  string // Operation that failed (e.g., "config", "display", "touch")
	Err error  // Underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scanline: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("scanline: %s", e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new setup error.
func NewError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}

// IsSetupError checks if an error came from compositor setup.
func IsSetupError(err error) bool {
	var setupErr *Error
	return errors.As(err, &setupErr)
}
