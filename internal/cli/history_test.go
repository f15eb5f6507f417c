package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordRuns(t *testing.T, dbPath string, ids ...string) {
	t.Helper()
	for _, id := range ids {
		cmd, _ := testCommand()
		opts := mutateOptions("text", id)
		opts.Database = dbPath
		require.NoError(t, runMutate(opts, "testdata/passing.yaml", cmd))
	}
}

func TestHistory_RequiresDB(t *testing.T) {
	_, err := executeRoot(t, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}

func TestHistory_Empty(t *testing.T) {
	out, err := executeRoot(t, "history", "--db", filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded.\n", out)
}

func TestHistory_ListsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "h.db")
	recordRuns(t, dbPath, "run-a", "run-b")

	out, err := executeRoot(t, "history", "--db", dbPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "#1"))
	assert.Contains(t, lines[0], "PASS")
	assert.Contains(t, lines[0], "3/5 (60%)")
	assert.True(t, strings.HasSuffix(lines[1], "run-b"))
}

func TestHistory_FilterByCampaignJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "h.db")
	recordRuns(t, dbPath, "run-a")

	out, err := executeRoot(t, "history", "--db", dbPath, "--campaign", "other", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   HistoryOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.Data.Runs)
}

func TestHistory_RunTrials(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "h.db")
	recordRuns(t, dbPath, "run-a")

	out, err := executeRoot(t, "history", "--db", dbPath, "--run", "run-a")
	require.NoError(t, err)

	assert.Contains(t, out, "caught by enabled-bool")
	assert.Contains(t, out, "equivalent")
	assert.Contains(t, out, "missed")
}

func TestHistory_UnknownRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "h.db")

	_, err := executeRoot(t, "history", "--db", dbPath, "--run", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "run not found")
}
