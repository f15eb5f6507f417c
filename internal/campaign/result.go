package campaign

import (
	"github.com/roach88/brutalist/internal/coverage"
	"github.com/roach88/brutalist/internal/mutation"
)

// TrialResult is the outcome of one trial.
type TrialResult struct {
	// ID is content-addressed from the run ID, Seq and Operators.
	ID string `json:"id"`

	Seq       int64    `json:"seq"`
	Name      string   `json:"name"`
	Operators []string `json:"operators"`

	// Caught is true when at least one invariant stopped holding.
	Caught bool `json:"caught"`

	// DetectedBy lists the invariants that caught the mutation, in
	// declaration order.
	DetectedBy []string `json:"detected_by,omitempty"`

	// Fingerprint identifies the mutated snapshot.
	Fingerprint string `json:"fingerprint"`

	// Equivalent is true when the operators left every key and value of the
	// base byte-for-byte unchanged. Such a mutant can never be caught.
	Equivalent bool `json:"equivalent"`
}

// Result aggregates a campaign run.
type Result struct {
	RunID           string           `json:"run_id"`
	Campaign        string           `json:"campaign"`
	BaseFingerprint string           `json:"base_fingerprint"`
	Threshold       int              `json:"threshold"`
	Trials          []TrialResult    `json:"trials"`
	Score           mutation.Score   `json:"score"`
	Report          *coverage.Report `json:"-"`
}

// Passed reports whether the score reaches the campaign threshold.
func (r *Result) Passed() bool {
	return r.Score.Percent() >= r.Threshold
}

// Missed returns the trials no invariant caught.
func (r *Result) Missed() []TrialResult {
	var out []TrialResult
	for _, tr := range r.Trials {
		if !tr.Caught {
			out = append(out, tr)
		}
	}
	return out
}

// Equivalents returns the trials whose operators changed nothing.
func (r *Result) Equivalents() []TrialResult {
	var out []TrialResult
	for _, tr := range r.Trials {
		if tr.Equivalent {
			out = append(out, tr)
		}
	}
	return out
}
