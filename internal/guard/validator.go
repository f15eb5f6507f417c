package guard

// Validator checks quantities against a fixed set of Constraints.
// The zero Validator is not useful; construct with NewValidator or
// DefaultValidator.
type Validator struct {
	constraints Constraints
}

// NewValidator creates a validator for the given constraints.
// The constraints are used as supplied.
func NewValidator(c Constraints) Validator {
	return Validator{constraints: c}
}

// DefaultValidator creates a validator for DefaultConstraints.
func DefaultValidator() Validator {
	return NewValidator(DefaultConstraints())
}

// Constraints returns the bounds this validator enforces.
func (v Validator) Constraints() Constraints {
	return v.constraints
}

// ValidateRunLen succeeds iff n <= MaxRunLen.
func (v Validator) ValidateRunLen(n int) error {
	if n > v.constraints.MaxRunLen {
		return NewRunLengthError(n, v.constraints.MaxRunLen)
	}
	return nil
}

// ValidateBatchSize succeeds iff n <= MaxBatchSize.
func (v Validator) ValidateBatchSize(n int) error {
	if n > v.constraints.MaxBatchSize {
		return NewBatchSizeError(n, v.constraints.MaxBatchSize)
	}
	return nil
}

// ValidateRun validates the length of items as a run.
func ValidateRun[T any](v Validator, items []T) error {
	return v.ValidateRunLen(len(items))
}

// ValidateBatch validates the length of items as a batch.
func ValidateBatch[T any](v Validator, items []T) error {
	return v.ValidateBatchSize(len(items))
}
