package mutation

import (
	"encoding/json"
	"errors"
	"fmt"
)

// AcceptanceThreshold is the minimum Percent for an acceptable score.
const AcceptanceThreshold = 80

var (
	// ErrZeroTotal is returned when a score is requested over zero mutations.
	ErrZeroTotal = errors.New("mutation score: total must be greater than zero")

	// ErrCaughtExceedsTotal is returned when caught > total.
	ErrCaughtExceedsTotal = errors.New("mutation score: caught exceeds total")

	// ErrNegativeCount is returned for negative inputs.
	ErrNegativeCount = errors.New("mutation score: counts must not be negative")
)

// Score is the fraction of mutations caught. Invariant: 0 <= caught <= total, total > 0.
type Score struct {
	caught int
	total  int
}

// CalculateScore validates the counts and builds a Score.
func CalculateScore(caught, total int) (Score, error) {
	if caught < 0 || total < 0 {
		return Score{}, fmt.Errorf("%w (caught=%d, total=%d)", ErrNegativeCount, caught, total)
	}
	if total == 0 {
		return Score{}, ErrZeroTotal
	}
	if caught > total {
		return Score{}, fmt.Errorf("%w (caught=%d, total=%d)", ErrCaughtExceedsTotal, caught, total)
	}
	return Score{caught: caught, total: total}, nil
}

// Caught returns the number of detected mutations.
func (s Score) Caught() int { return s.caught }

// Total returns the number of mutations tried.
func (s Score) Total() int { return s.total }

// Percent returns caught*100/total rounded to the nearest integer,
// halves rounding up.
func (s Score) Percent() int {
	if s.total == 0 {
		return 0
	}
	return (s.caught*100*2 + s.total) / (2 * s.total)
}

// Acceptable reports Percent() >= AcceptanceThreshold.
func (s Score) Acceptable() bool {
	return s.Percent() >= AcceptanceThreshold
}

// String renders e.g. "8/10 (80%)".
func (s Score) String() string {
	return fmt.Sprintf("%d/%d (%d%%)", s.caught, s.total, s.Percent())
}

// MarshalJSON exposes the derived fields alongside the counts.
func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Caught     int  `json:"caught"`
		Total      int  `json:"total"`
		Percent    int  `json:"percent"`
		Acceptable bool `json:"acceptable"`
	}{s.caught, s.total, s.Percent(), s.Acceptable()})
}
