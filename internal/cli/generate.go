package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/brutalist/internal/guard"
	"github.com/roach88/brutalist/internal/propgen"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Seed     uint64
	MaxItems int
	MaxDepth int
	Count    int
}

// GenerateOutput is the JSON payload of the generate command.
type GenerateOutput struct {
	Seed     uint64              `json:"seed"`
	Fixtures []map[string]string `json:"fixtures"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate deterministic fixtures",
		Long: `Generate string-keyed fixtures from a seed.

The same seed and bounds always produce the same fixtures. Each
fixture advances the seed by one. Text output is a YAML stream.

Examples:
  brutalist generate --seed 42
  brutalist generate --seed 7 --max-items 3 --count 5
  brutalist generate --seed 42 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "generator seed")
	cmd.Flags().IntVar(&opts.MaxItems, "max-items", 10, "maximum entries per fixture")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "maximum nesting depth (reserved)")
	cmd.Flags().IntVar(&opts.Count, "count", 1, "number of fixtures")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	out := newFormatter(opts.RootOptions, cmd)

	if opts.Count < 1 {
		return out.Fail(ErrCodeInput, nil, NewExitError(ExitCommandError, fmt.Sprintf("--count must be positive, got %d", opts.Count)))
	}
	if err := guard.DefaultValidator().ValidateBatchSize(opts.Count); err != nil {
		return out.Fail(ErrCodeGuard, err, WrapExitError(ExitFailure, "too many fixtures", err))
	}

	gen, err := propgen.New(opts.MaxItems, opts.MaxDepth, opts.Seed)
	if err != nil {
		return out.Fail(ErrCodeInput, nil, WrapExitError(ExitCommandError, "invalid generator bounds", err))
	}

	output := GenerateOutput{Seed: opts.Seed, Fixtures: make([]map[string]string, 0, opts.Count)}
	for range opts.Count {
		output.Fixtures = append(output.Fixtures, gen.Generate())
	}
	logger.Debug("fixtures generated", "seed", opts.Seed, "count", opts.Count, "next_seed", gen.Seed())

	var renderErr error
	err = out.Emit(output, func(w io.Writer) {
		renderErr = renderFixtures(w, output.Fixtures)
	})
	if err != nil {
		return err
	}
	if renderErr != nil {
		return WrapExitError(ExitCommandError, "failed to encode fixtures", renderErr)
	}
	return nil
}

// renderFixtures writes fixtures as a YAML document stream.
func renderFixtures(w io.Writer, fixtures []map[string]string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, f := range fixtures {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return enc.Close()
}
