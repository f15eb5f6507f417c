package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/brutalist/internal/campaign"
	"github.com/roach88/brutalist/internal/mutation"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestResult builds a result with the given caught pattern. Trial seqs
// start at firstSeq.
func createTestResult(t *testing.T, runID, name string, firstSeq int64, caught ...bool) *campaign.Result {
	t.Helper()

	r := &campaign.Result{
		RunID:           runID,
		Campaign:        name,
		BaseFingerprint: "base-" + name,
		Threshold:       mutation.AcceptanceThreshold,
	}
	n := 0
	for i, c := range caught {
		tr := campaign.TrialResult{
			ID:          fmt.Sprintf("%s-trial-%d", runID, i),
			Seq:         firstSeq + int64(i),
			Name:        fmt.Sprintf("trial-%d", i),
			Operators:   []string{fmt.Sprintf("remove_key(%q)", fmt.Sprintf("k%d", i))},
			Caught:      c,
			Fingerprint: fmt.Sprintf("fp-%d", i),
		}
		if c {
			tr.DetectedBy = []string{"inv"}
			n++
		}
		r.Trials = append(r.Trials, tr)
	}

	score, err := mutation.CalculateScore(n, len(caught))
	if err != nil {
		t.Fatalf("CalculateScore() failed: %v", err)
	}
	r.Score = score
	return r
}
