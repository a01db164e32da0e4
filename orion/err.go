package orion

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned by CreateWindow for a configuration
	// that can never produce a window, e.g. a windowed mode with zero width.
	ErrInvalidConfiguration = errors.New("invalid window configuration")

	// ErrAlreadyDestroyed is returned when operating on a window that was
	// already destroyed. This is a programming error.
	ErrAlreadyDestroyed = errors.New("window already destroyed")
)

// PlatformError wraps a failure of the native windowing api
type PlatformError struct {
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	return "platform: " + e.Op + ": " + e.Err.Error()
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// Handle panics if err is not nil. Useful in example programs where there
// is nothing better to do than giving up.
func Handle(err error, desc string, args ...any) {
	if err != nil {
		text := fmt.Sprintf(desc, args...)
		panic(text + ": " + err.Error())
	}
}
