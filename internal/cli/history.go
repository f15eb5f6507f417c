package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/brutalist/internal/campaign"
	"github.com/roach88/brutalist/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Campaign string
	Run      string
}

// HistoryOutput is the JSON payload of the history command.
type HistoryOutput struct {
	Runs   []store.Run            `json:"runs,omitempty"`
	Trials []campaign.TrialResult `json:"trials,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded campaign runs",
		Long: `List campaign runs recorded with mutate --db, oldest first.

With --run, list the trials of a single run instead.

Examples:
  brutalist history --db history.db
  brutalist history --db history.db --campaign feature-flags
  brutalist history --db history.db --run 0192f7c4-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Campaign, "campaign", "", "only list runs of this campaign")
	cmd.Flags().StringVar(&opts.Run, "run", "", "list the trials of this run ID")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	out := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return out.Fail(ErrCodeStore, nil, WrapExitError(ExitCommandError, "failed to open database", err))
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	if opts.Run != "" {
		trials, err := st.GetTrials(ctx, opts.Run)
		if err != nil {
			return out.Fail(ErrCodeStore, nil, WrapExitError(ExitCommandError, "failed to read trials", err))
		}
		if len(trials) == 0 {
			return out.Fail(ErrCodeInput, nil, NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", opts.Run)))
		}
		output := HistoryOutput{Trials: trials}
		return out.Emit(output, func(w io.Writer) { renderTrials(w, trials) })
	}

	runs, err := st.ListRuns(ctx, opts.Campaign)
	if err != nil {
		return out.Fail(ErrCodeStore, nil, WrapExitError(ExitCommandError, "failed to list runs", err))
	}
	output := HistoryOutput{Runs: runs}
	return out.Emit(output, func(w io.Writer) { renderRuns(w, runs) })
}

func renderRuns(w io.Writer, runs []store.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	for _, r := range runs {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(w, "#%-4d %s  %-24s %d/%d (%d%%)  %s\n", r.Seq, status, r.Campaign, r.Caught, r.Total, r.Percent, r.ID)
	}
}

func renderTrials(w io.Writer, trials []campaign.TrialResult) {
	for _, tr := range trials {
		status := "missed"
		switch {
		case tr.Caught:
			status = "caught by " + strings.Join(tr.DetectedBy, ", ")
		case tr.Equivalent:
			status = "equivalent"
		}
		fmt.Fprintf(w, "%-6d %-24s %s\n", tr.Seq, tr.Name, status)
	}
}
