package store

import (
	"context"
	"fmt"

	"github.com/roach88/brutalist/internal/campaign"
)

// Run is a stored run summary.
type Run struct {
	ID              string `json:"id"`
	Seq             int64  `json:"seq"`
	Campaign        string `json:"campaign"`
	BaseFingerprint string `json:"base_fingerprint"`
	Caught          int    `json:"caught"`
	Total           int    `json:"total"`
	Percent         int    `json:"percent"`
	Acceptable      bool   `json:"acceptable"`
	Threshold       int    `json:"threshold"`
	Passed          bool   `json:"passed"`
}

// ListRuns returns stored runs ordered by seq. An empty campaign lists all
// runs. Returns an empty slice (not nil) when nothing matches.
func (s *Store) ListRuns(ctx context.Context, campaignName string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, campaign, base_fingerprint, caught, total, percent, acceptable, threshold, passed
		FROM runs
		WHERE ? = '' OR campaign = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, campaignName, campaignName)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID, &r.Seq, &r.Campaign, &r.BaseFingerprint,
			&r.Caught, &r.Total, &r.Percent, &r.Acceptable, &r.Threshold, &r.Passed,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetTrials returns the trials of a run ordered by seq.
func (s *Store) GetTrials(ctx context.Context, runID string) ([]campaign.TrialResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, name, operators, caught, detected_by, fingerprint, equivalent
		FROM trials
		WHERE run_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query trials: %w", err)
	}
	defer rows.Close()

	trials := []campaign.TrialResult{}
	for rows.Next() {
		var (
			tr                    campaign.TrialResult
			operators, detectedBy string
		)
		if err := rows.Scan(
			&tr.ID, &tr.Seq, &tr.Name, &operators, &tr.Caught, &detectedBy, &tr.Fingerprint, &tr.Equivalent,
		); err != nil {
			return nil, fmt.Errorf("scan trial: %w", err)
		}
		if tr.Operators, err = unmarshalStrings(operators); err != nil {
			return nil, fmt.Errorf("trial %s: operators: %w", tr.ID, err)
		}
		if tr.DetectedBy, err = unmarshalStrings(detectedBy); err != nil {
			return nil, fmt.Errorf("trial %s: detected_by: %w", tr.ID, err)
		}
		trials = append(trials, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trials: %w", err)
	}
	return trials, nil
}

// LastTrialSeq returns the highest stored trial seq, or 0 for an empty store.
// Runs that continue from it keep trial numbering monotonic across history.
func (s *Store) LastTrialSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM trials`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("last trial seq: %w", err)
	}
	return seq, nil
}
