package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/brutalist/internal/campaign"
	"github.com/roach88/brutalist/internal/guard"
	"github.com/roach88/brutalist/internal/store"
)

// MutateOptions holds flags for the mutate command.
type MutateOptions struct {
	*RootOptions
	Database string
	Report   string
	Workers  int

	// RunIDs overrides the run ID source (for testing).
	// If nil, defaults to campaign.UUIDv7Generator.
	RunIDs campaign.RunIDGenerator
}

// MutateOutput is the JSON payload of the mutate command.
type MutateOutput struct {
	*campaign.Result
	Passed bool  `json:"passed"`
	Seq    int64 `json:"seq,omitempty"`
}

// NewMutateCommand creates the mutate command.
func NewMutateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MutateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "mutate <campaign.yaml>",
		Short: "Run a mutation campaign",
		Long: `Run every trial of a mutation campaign and score the invariants.

Each trial applies its operators to a private copy of the base snapshot.
A trial is caught when at least one invariant stops holding.

Exit codes:
  0 - Score meets the campaign threshold
  1 - Score below threshold, or a guard limit was exceeded
  2 - Command error (unreadable campaign, invalid invariants, database errors)

Examples:
  brutalist mutate campaigns/flags.yaml
  brutalist mutate campaigns/flags.yaml --db history.db --report coverage.md
  brutalist mutate campaigns/flags.yaml --workers 1 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().StringVar(&opts.Report, "report", "", "write the markdown coverage report to this file")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent trials (0 = GOMAXPROCS)")

	return cmd
}

func runMutate(opts *MutateOptions, path string, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	out := newFormatter(opts.RootOptions, cmd)

	c, err := campaign.Load(path)
	if err != nil {
		return out.Fail(ErrCodeInput, nil, WrapExitError(ExitCommandError, "failed to load campaign", err))
	}
	logger.Debug("campaign loaded", "path", path, "name", c.Name, "trials", len(c.Trials))

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st *store.Store
	clock := campaign.NewClock()
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return out.Fail(ErrCodeStore, nil, WrapExitError(ExitCommandError, "failed to open database", err))
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()

		last, err := st.LastTrialSeq(ctx)
		if err != nil {
			return out.Fail(ErrCodeStore, nil, WrapExitError(ExitCommandError, "failed to read history", err))
		}
		clock = campaign.NewClockAt(last)
	}

	runOpts := []campaign.Option{
		campaign.WithLogger(logger),
		campaign.WithWorkers(opts.Workers),
		campaign.WithClock(clock),
	}
	if opts.RunIDs != nil {
		runOpts = append(runOpts, campaign.WithRunIDs(opts.RunIDs))
	}

	result, err := campaign.Run(ctx, c, runOpts...)
	if err != nil {
		return out.Fail(classifyRunError(err))
	}

	output := MutateOutput{Result: result, Passed: result.Passed()}

	if opts.Report != "" {
		if err := os.WriteFile(opts.Report, []byte(result.Report.Markdown()), 0o644); err != nil {
			return out.Fail(ErrCodeInput, nil, WrapExitError(ExitCommandError, "failed to write report", err))
		}
		logger.Info("report written", "path", opts.Report)
	}

	if st != nil {
		seq, err := st.WriteRun(ctx, result)
		if err != nil {
			return out.Fail(ErrCodeStore, nil, WrapExitError(ExitCommandError, "failed to record run", err))
		}
		output.Seq = seq
		logger.Info("run recorded", "db", opts.Database, "seq", seq)
	}

	if !output.Passed {
		msg := fmt.Sprintf("mutation score %d%% below threshold %d%%", result.Score.Percent(), result.Threshold)
		if opts.Format != "json" {
			renderMutate(cmd.OutOrStdout(), output)
		}
		return out.Fail(ErrCodeBelowThreshold, output, NewExitError(ExitFailure, msg))
	}

	return out.Emit(output, func(w io.Writer) { renderMutate(w, output) })
}

// classifyRunError maps campaign.Run failures to a JSON code and exit error.
func classifyRunError(err error) (string, any, *ExitError) {
	var ce *guard.ConstraintError
	if errors.As(err, &ce) {
		return ErrCodeGuard, ce, WrapExitError(ExitFailure, "guard limit exceeded", err)
	}
	var be *campaign.BaselineError
	if errors.As(err, &be) {
		return ErrCodeBaseline, be.Invariants, WrapExitError(ExitCommandError, "invariants fail on the base snapshot", err)
	}
	if errors.Is(err, context.Canceled) {
		return ErrCodeInput, nil, WrapExitError(ExitCommandError, "interrupted", err)
	}
	return ErrCodeInput, nil, WrapExitError(ExitCommandError, "invalid campaign", err)
}

func renderMutate(w io.Writer, o MutateOutput) {
	fmt.Fprintf(w, "Campaign: %s (run %s)\n", o.Campaign, o.RunID)
	fmt.Fprintln(w)
	for _, tr := range o.Trials {
		switch {
		case tr.Caught:
			fmt.Fprintf(w, "  ✓ %s  caught by %s\n", tr.Name, strings.Join(tr.DetectedBy, ", "))
		case tr.Equivalent:
			fmt.Fprintf(w, "  ~ %s  equivalent mutant\n", tr.Name)
		default:
			fmt.Fprintf(w, "  ✗ %s  missed (%s)\n", tr.Name, strings.Join(tr.Operators, ", "))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Score: %s, threshold %d%%\n", o.Score, o.Threshold)
	if o.Seq > 0 {
		fmt.Fprintf(w, "Recorded as run #%d\n", o.Seq)
	}
}
