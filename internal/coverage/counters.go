// Package coverage aggregates named pass/fail observations into a coverage
// metric and a markdown report.
//
// The counter types can only be built through validating constructors.
// An invariant violation yields an error and the zero value, never a
// clamped number.
package coverage

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidCount is returned for a negative count.
	ErrInvalidCount = errors.New("coverage: count must not be negative")

	// ErrCoveredExceedsTotal is returned when covered > total.
	ErrCoveredExceedsTotal = errors.New("coverage: covered exceeds total")

	// ErrPercentageOutOfRange is returned for a percentage outside [0, 100].
	ErrPercentageOutOfRange = errors.New("coverage: percentage out of range")
)

// TotalCount is a non-negative item count.
type TotalCount struct {
	n int
}

// NewTotalCount validates n >= 0.
func NewTotalCount(n int) (TotalCount, error) {
	if n < 0 {
		return TotalCount{}, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	return TotalCount{n: n}, nil
}

// Value returns the count.
func (t TotalCount) Value() int { return t.n }

// CoveredCount is a covered-item count bounded by its TotalCount.
type CoveredCount struct {
	n int
}

// NewCoveredCount validates 0 <= covered <= total.
func NewCoveredCount(covered int, total TotalCount) (CoveredCount, error) {
	if covered < 0 {
		return CoveredCount{}, fmt.Errorf("%w: %d", ErrInvalidCount, covered)
	}
	if covered > total.n {
		return CoveredCount{}, fmt.Errorf("%w: %d > %d", ErrCoveredExceedsTotal, covered, total.n)
	}
	return CoveredCount{n: covered}, nil
}

// Value returns the count.
func (c CoveredCount) Value() int { return c.n }

// Percentage is a value in [0, 100].
type Percentage struct {
	v float64
}

// NewPercentage validates 0 <= p <= 100. NaN is rejected.
func NewPercentage(p float64) (Percentage, error) {
	if math.IsNaN(p) || p < 0 || p > 100 {
		return Percentage{}, fmt.Errorf("%w: %v", ErrPercentageOutOfRange, p)
	}
	return Percentage{v: p}, nil
}

// Value returns the percentage.
func (p Percentage) Value() float64 { return p.v }

// String renders the percentage with two decimals, e.g. "66.67%".
func (p Percentage) String() string {
	return fmt.Sprintf("%.2f%%", p.v)
}

// PercentageOf computes covered/total*100 rounded to two decimals.
// An empty total yields 0.
func PercentageOf(covered CoveredCount, total TotalCount) (Percentage, error) {
	if total.n == 0 {
		return NewPercentage(0)
	}
	raw := float64(covered.n) / float64(total.n) * 100
	return NewPercentage(round2(raw))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
