package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/brutalist/internal/guard"
)

// GuardOptions holds flags for the guard command.
type GuardOptions struct {
	*RootOptions
	RunLen       int
	BatchSize    int
	MaxRunLen    int
	MaxBatchSize int
}

// GuardCheck is the outcome of one bound check.
type GuardCheck struct {
	Limit  string `json:"limit"`
	Actual int    `json:"actual"`
	Max    int    `json:"max"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// GuardOutput is the JSON payload of the guard command.
type GuardOutput struct {
	Constraints guard.Constraints `json:"constraints"`
	Checks      []GuardCheck      `json:"checks"`
}

// NewGuardCommand creates the guard command.
func NewGuardCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GuardOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "guard",
		Short: "Check quantities against guard limits",
		Long: `Check a run length and/or batch size against guard constraints.

Exit codes:
  0 - All given quantities are within limits
  1 - A limit was exceeded
  2 - Command error (no quantity given, non-positive limits)

Examples:
  brutalist guard --run-len 9
  brutalist guard --batch-size 500 --max-batch-size 200
  brutalist guard --run-len 3 --batch-size 10 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGuard(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.RunLen, "run-len", 0, "run length to check")
	cmd.Flags().IntVar(&opts.BatchSize, "batch-size", 0, "batch size to check")
	cmd.Flags().IntVar(&opts.MaxRunLen, "max-run-len", guard.DefaultMaxRunLen, "maximum run length")
	cmd.Flags().IntVar(&opts.MaxBatchSize, "max-batch-size", guard.DefaultMaxBatchSize, "maximum batch size")

	return cmd
}

func runGuard(opts *GuardOptions, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	checkRun := cmd.Flags().Changed("run-len")
	checkBatch := cmd.Flags().Changed("batch-size")
	if !checkRun && !checkBatch {
		return out.Fail(ErrCodeInput, nil, NewExitError(ExitCommandError, "nothing to check: pass --run-len and/or --batch-size"))
	}

	constraints := guard.Constraints{MaxRunLen: opts.MaxRunLen, MaxBatchSize: opts.MaxBatchSize}
	if err := constraints.Validate(); err != nil {
		return out.Fail(ErrCodeInput, nil, WrapExitError(ExitCommandError, "invalid constraints", err))
	}
	v := guard.NewValidator(constraints)

	output := GuardOutput{Constraints: constraints}
	var failures []error
	if checkRun {
		output.Checks = append(output.Checks, guardCheck(guard.LimitRunLen, opts.RunLen, constraints.MaxRunLen, v.ValidateRunLen(opts.RunLen), &failures))
	}
	if checkBatch {
		output.Checks = append(output.Checks, guardCheck(guard.LimitBatchSize, opts.BatchSize, constraints.MaxBatchSize, v.ValidateBatchSize(opts.BatchSize), &failures))
	}

	if len(failures) > 0 {
		if opts.Format != "json" {
			renderGuard(cmd.OutOrStdout(), output)
		}
		return out.Fail(ErrCodeGuard, output, WrapExitError(ExitFailure, "guard limit exceeded", errors.Join(failures...)))
	}
	return out.Emit(output, func(w io.Writer) { renderGuard(w, output) })
}

func guardCheck(limit guard.Limit, actual, maximum int, err error, failures *[]error) GuardCheck {
	check := GuardCheck{Limit: limit.String(), Actual: actual, Max: maximum, OK: err == nil}
	if err != nil {
		check.Error = err.Error()
		*failures = append(*failures, err)
	}
	return check
}

func renderGuard(w io.Writer, o GuardOutput) {
	for _, c := range o.Checks {
		mark := "✓"
		if !c.OK {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s: actual %d, limit %d\n", mark, c.Limit, c.Actual, c.Max)
	}
}
