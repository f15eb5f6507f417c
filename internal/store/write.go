package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/brutalist/internal/campaign"
)

// WriteRun persists a run and its trials in one transaction and returns the
// run's seq. Writing a run ID that is already stored is a no-op that returns
// the existing seq.
func (s *Store) WriteRun(ctx context.Context, r *campaign.Result) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, r.RunID).Scan(&existing)
	switch {
	case err == nil:
		return existing, nil
	case err != sql.ErrNoRows:
		return 0, fmt.Errorf("write run: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, campaign, base_fingerprint, caught, total, percent, acceptable, threshold, passed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.RunID,
		seq,
		r.Campaign,
		r.BaseFingerprint,
		r.Score.Caught(),
		r.Score.Total(),
		r.Score.Percent(),
		r.Score.Acceptable(),
		r.Threshold,
		r.Passed(),
	)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	for _, tr := range r.Trials {
		if err := writeTrial(ctx, tx, r.RunID, tr); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, nil
}

func writeTrial(ctx context.Context, tx *sql.Tx, runID string, tr campaign.TrialResult) error {
	operators, err := marshalStrings(tr.Operators)
	if err != nil {
		return fmt.Errorf("write trial %q: operators: %w", tr.Name, err)
	}
	detectedBy, err := marshalStrings(tr.DetectedBy)
	if err != nil {
		return fmt.Errorf("write trial %q: detected_by: %w", tr.Name, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO trials
		(id, run_id, seq, name, operators, caught, detected_by, fingerprint, equivalent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		tr.ID,
		runID,
		tr.Seq,
		tr.Name,
		operators,
		tr.Caught,
		detectedBy,
		tr.Fingerprint,
		tr.Equivalent,
	)
	if err != nil {
		return fmt.Errorf("write trial %q: %w", tr.Name, err)
	}
	return nil
}

// marshalStrings stores a string list as a JSON array; nil becomes [].
func marshalStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalStrings(data string) ([]string, error) {
	var v []string
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, nil
	}
	return v, nil
}
