package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/brutalist/internal/coverage"
)

// CoverageOptions holds flags for the coverage command.
type CoverageOptions struct {
	*RootOptions
	Title  string
	Output string
}

// coverageFile is the input format of the coverage command:
//
//	title: API surface
//	items:
//	  - {name: create, covered: true}
//	  - {name: delete, covered: false}
type coverageFile struct {
	Title string          `yaml:"title,omitempty"`
	Items []coverage.Item `yaml:"items"`
}

// CoverageOutput is the JSON payload of the coverage command.
type CoverageOutput struct {
	Title      string          `json:"title"`
	Total      int             `json:"total"`
	Covered    int             `json:"covered"`
	Percentage float64         `json:"percentage"`
	Items      []coverage.Item `json:"items"`
	Markdown   string          `json:"markdown"`
}

// NewCoverageCommand creates the coverage command.
func NewCoverageCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CoverageOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "coverage <items.yaml>",
		Short: "Render a coverage report",
		Long: `Render a markdown coverage report from a YAML list of items.

Examples:
  brutalist coverage features.yaml
  brutalist coverage features.yaml --title "API surface" --output COVERAGE.md`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCoverage(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "report title (overrides the file)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "also write the markdown to this file")

	return cmd
}

func runCoverage(opts *CoverageOptions, path string, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	out := newFormatter(opts.RootOptions, cmd)

	file, err := loadCoverageFile(path)
	if err != nil {
		return out.Fail(ErrCodeInput, nil, WrapExitError(ExitCommandError, "failed to load coverage items", err))
	}

	title := file.Title
	if opts.Title != "" {
		title = opts.Title
	}
	if title == "" {
		title = coverage.DefaultTitle
	}

	report := coverage.NewReport(title)
	for _, it := range file.Items {
		report.AddItem(it.Name, it.Covered)
	}
	markdown := report.Markdown()

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(markdown), 0o644); err != nil {
			return out.Fail(ErrCodeInput, nil, WrapExitError(ExitCommandError, "failed to write report", err))
		}
		logger.Info("report written", "path", opts.Output)
	}

	output := CoverageOutput{
		Title:      report.Title(),
		Total:      report.Total(),
		Covered:    report.Covered(),
		Percentage: report.Percentage(),
		Items:      report.Items(),
		Markdown:   markdown,
	}
	return out.Emit(output, func(w io.Writer) { io.WriteString(w, markdown) })
}

func loadCoverageFile(path string) (*coverageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file coverageFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, it := range file.Items {
		if it.Name == "" {
			return nil, fmt.Errorf("items[%d]: missing required field: name", i)
		}
	}
	return &file, nil
}
