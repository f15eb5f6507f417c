package guard

import (
	"errors"
	"fmt"
)

// ConstraintErrorCode categorizes guard failures.
type ConstraintErrorCode string

const (
	// ErrCodeMaxRunLengthExceeded indicates a run longer than MaxRunLen.
	ErrCodeMaxRunLengthExceeded ConstraintErrorCode = "MAX_RUN_LENGTH_EXCEEDED"

	// ErrCodeMaxBatchSizeExceeded indicates a batch larger than MaxBatchSize.
	ErrCodeMaxBatchSizeExceeded ConstraintErrorCode = "MAX_BATCH_SIZE_EXCEEDED"

	// ErrCodeInvalidConstraintValue indicates a malformed bound.
	ErrCodeInvalidConstraintValue ConstraintErrorCode = "INVALID_CONSTRAINT_VALUE"

	// ErrCodeCapacityMismatch indicates data whose length differs from a
	// declared container capacity.
	ErrCodeCapacityMismatch ConstraintErrorCode = "CAPACITY_MISMATCH"
)

// ConstraintError is returned when a quantity violates a guard constraint.
//
// Actual and Max are populated for the exceeded and mismatch codes.
// Message is always set.
type ConstraintError struct {
	Code    ConstraintErrorCode
	Actual  int
	Max     int
	Message string
}

// Error implements the error interface.
func (e *ConstraintError) Error() string {
	switch e.Code {
	case ErrCodeMaxRunLengthExceeded, ErrCodeMaxBatchSizeExceeded:
		return fmt.Sprintf("%s: %s (actual=%d, max=%d)", e.Code, e.Message, e.Actual, e.Max)
	case ErrCodeCapacityMismatch:
		return fmt.Sprintf("%s: %s (actual=%d, capacity=%d)", e.Code, e.Message, e.Actual, e.Max)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// NewRunLengthError creates a MAX_RUN_LENGTH_EXCEEDED error.
func NewRunLengthError(actual, limit int) *ConstraintError {
	return &ConstraintError{
		Code:    ErrCodeMaxRunLengthExceeded,
		Actual:  actual,
		Max:     limit,
		Message: "run length exceeds maximum",
	}
}

// NewBatchSizeError creates a MAX_BATCH_SIZE_EXCEEDED error.
func NewBatchSizeError(actual, limit int) *ConstraintError {
	return &ConstraintError{
		Code:    ErrCodeMaxBatchSizeExceeded,
		Actual:  actual,
		Max:     limit,
		Message: "batch size exceeds maximum",
	}
}

// NewInvalidConstraintError creates an INVALID_CONSTRAINT_VALUE error.
func NewInvalidConstraintError(message string) *ConstraintError {
	return &ConstraintError{
		Code:    ErrCodeInvalidConstraintValue,
		Message: message,
	}
}

// NewCapacityMismatchError creates a CAPACITY_MISMATCH error.
func NewCapacityMismatchError(actual, capacity int) *ConstraintError {
	return &ConstraintError{
		Code:    ErrCodeCapacityMismatch,
		Actual:  actual,
		Max:     capacity,
		Message: "data length does not match declared capacity",
	}
}

func hasCode(err error, code ConstraintErrorCode) bool {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// IsRunLengthError reports whether err is a MAX_RUN_LENGTH_EXCEEDED error.
func IsRunLengthError(err error) bool {
	return hasCode(err, ErrCodeMaxRunLengthExceeded)
}

// IsBatchSizeError reports whether err is a MAX_BATCH_SIZE_EXCEEDED error.
func IsBatchSizeError(err error) bool {
	return hasCode(err, ErrCodeMaxBatchSizeExceeded)
}

// IsInvalidConstraint reports whether err is an INVALID_CONSTRAINT_VALUE error.
func IsInvalidConstraint(err error) bool {
	return hasCode(err, ErrCodeInvalidConstraintValue)
}

// IsCapacityMismatch reports whether err is a CAPACITY_MISMATCH error.
func IsCapacityMismatch(err error) bool {
	return hasCode(err, ErrCodeCapacityMismatch)
}
