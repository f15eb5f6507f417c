package guard

import "fmt"

const (
	// DefaultMaxRunLen is the Chatman Constant: the documented ceiling for
	// bounded-latency run lengths.
	DefaultMaxRunLen = 8

	// DefaultMaxBatchSize bounds the number of items admitted in one batch.
	DefaultMaxBatchSize = 1000
)

// Constraints holds the configured upper bounds.
//
// Values built as struct literals are trusted as-is. Call Validate when the
// values come from outside the program (files, flags).
type Constraints struct {
	MaxRunLen    int `yaml:"max_run_len" json:"max_run_len"`
	MaxBatchSize int `yaml:"max_batch_size" json:"max_batch_size"`
}

// DefaultConstraints returns {MaxRunLen: 8, MaxBatchSize: 1000}.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxRunLen:    DefaultMaxRunLen,
		MaxBatchSize: DefaultMaxBatchSize,
	}
}

// Validate reports an INVALID_CONSTRAINT_VALUE error if either bound is not
// positive.
func (c Constraints) Validate() error {
	if c.MaxRunLen <= 0 {
		return NewInvalidConstraintError(fmt.Sprintf("max_run_len must be positive, got %d", c.MaxRunLen))
	}
	if c.MaxBatchSize <= 0 {
		return NewInvalidConstraintError(fmt.Sprintf("max_batch_size must be positive, got %d", c.MaxBatchSize))
	}
	return nil
}

// WithDefaults fills zero-valued bounds from DefaultConstraints.
// Negative values are kept so that Validate can reject them.
func (c Constraints) WithDefaults() Constraints {
	if c.MaxRunLen == 0 {
		c.MaxRunLen = DefaultMaxRunLen
	}
	if c.MaxBatchSize == 0 {
		c.MaxBatchSize = DefaultMaxBatchSize
	}
	return c
}
