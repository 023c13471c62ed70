package script

import "errors"

// Errors for script operations.
var (
	// ErrClosed is returned when operating on a closed engine.
	ErrClosed = errors.New("script engine is closed")

	// ErrTimeout is returned when a script call runs past its timeout.
	ErrTimeout = errors.New("script execution timeout")
)

// HookError reports a failure inside a hook function.
type HookError struct {
	Hook string
	Err  error
}

// Error implements the error interface.
func (e *HookError) Error() string {
	return "hook " + e.Hook + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *HookError) Unwrap() error {
	return e.Err
}
