package campaign

import (
	"errors"
	"fmt"
)

// Load error codes.
const (
	ErrCodeNotFound = "E201"
	ErrCodeParse    = "E202"
	ErrCodeInvalid  = "E203"
)

// LoadError is returned when a campaign file cannot be read or is malformed.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// BaselineError is returned when an invariant does not hold on the
// unmutated base. Such an invariant would report every trial as caught.
type BaselineError struct {
	Invariants []string
}

func (e *BaselineError) Error() string {
	return fmt.Sprintf("invariants fail on unmutated base: %v", e.Invariants)
}
