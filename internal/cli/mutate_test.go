package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/brutalist/internal/campaign"
	"github.com/roach88/brutalist/internal/store"
)

func mutateOptions(format string, ids ...string) *MutateOptions {
	if len(ids) == 0 {
		ids = []string{"run-1"}
	}
	return &MutateOptions{
		RootOptions: &RootOptions{Format: format},
		Workers:     2,
		RunIDs:      campaign.NewFixedGenerator(ids...),
	}
}

func TestMutateCommandMissingArgs(t *testing.T) {
	_, err := executeRoot(t, "mutate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestMutate_PassingText(t *testing.T) {
	cmd, buf := testCommand()

	err := runMutate(mutateOptions("text"), "testdata/passing.yaml", cmd)
	require.NoError(t, err)

	assertGolden(t, "mutate_text", buf.String())
}

func TestMutate_BelowThreshold(t *testing.T) {
	cmd, buf := testCommand()

	err := runMutate(mutateOptions("text"), "testdata/failing.yaml", cmd)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "60% below threshold 80%")
	assert.Contains(t, buf.String(), "Score: 3/5 (60%), threshold 80%")
}

func TestMutate_JSON(t *testing.T) {
	cmd, buf := testCommand()

	err := runMutate(mutateOptions("json"), "testdata/passing.yaml", cmd)
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			RunID  string `json:"run_id"`
			Passed bool   `json:"passed"`
			Score  struct {
				Caught  int `json:"caught"`
				Total   int `json:"total"`
				Percent int `json:"percent"`
			} `json:"score"`
			Trials []campaign.TrialResult `json:"trials"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-1", resp.Data.RunID)
	assert.True(t, resp.Data.Passed)
	assert.Equal(t, 3, resp.Data.Score.Caught)
	assert.Equal(t, 5, resp.Data.Score.Total)
	assert.Equal(t, 60, resp.Data.Score.Percent)
	require.Len(t, resp.Data.Trials, 5)
	assert.Equal(t, []string{"enabled-bool"}, resp.Data.Trials[0].DetectedBy)
}

func TestMutate_JSONBelowThreshold(t *testing.T) {
	cmd, buf := testCommand()

	err := runMutate(mutateOptions("json"), "testdata/failing.yaml", cmd)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeBelowThreshold, resp.Error.Code)
	assert.NotNil(t, resp.Data)
}

func TestMutate_MissingFile(t *testing.T) {
	cmd, _ := testCommand()

	err := runMutate(mutateOptions("text"), "testdata/nope.yaml", cmd)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, campaign.IsLoadError(err))
}

func TestMutate_GuardViolation(t *testing.T) {
	cmd, buf := testCommand()

	err := runMutate(mutateOptions("json"), "testdata/oversized.yaml", cmd)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeGuard, resp.Error.Code)
}

func TestMutate_BaselineFailure(t *testing.T) {
	cmd, buf := testCommand()

	err := runMutate(mutateOptions("json"), "testdata/baseline.yaml", cmd)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeBaseline, resp.Error.Code)
	assert.Equal(t, []any{"enabled-bool"}, resp.Data)
}

func TestMutate_WritesReport(t *testing.T) {
	cmd, _ := testCommand()
	opts := mutateOptions("text")
	opts.Report = filepath.Join(t.TempDir(), "coverage.md")

	require.NoError(t, runMutate(opts, "testdata/passing.yaml", cmd))

	data, err := os.ReadFile(opts.Report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Mutation Coverage: feature-flags")
	assert.Contains(t, string(data), "- [ ] toggle-enabled")
}

func TestMutate_RecordsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	for i, id := range []string{"run-1", "run-2"} {
		cmd, buf := testCommand()
		opts := mutateOptions("text", id)
		opts.Database = dbPath

		require.NoError(t, runMutate(opts, "testdata/passing.yaml", cmd))
		assert.Contains(t, buf.String(), "Recorded as run #", "run %d", i)
	}

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(t.Context(), "feature-flags")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, "run-2", runs[1].ID)

	// Trial numbering continues across runs.
	second, err := st.GetTrials(t.Context(), "run-2")
	require.NoError(t, err)
	require.Len(t, second, 5)
	assert.Equal(t, int64(6), second[0].Seq)
}
