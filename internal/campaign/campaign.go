package campaign

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/brutalist/internal/guard"
	"github.com/roach88/brutalist/internal/mutation"
	"github.com/roach88/brutalist/internal/predicate"
	"github.com/roach88/brutalist/internal/propgen"
)

// Campaign is a parsed campaign file.
type Campaign struct {
	// Name identifies the campaign in reports and history.
	Name string `yaml:"name"`

	// Description explains what the invariants protect.
	Description string `yaml:"description,omitempty"`

	// Guard overrides the default constraints. Zero fields keep defaults.
	Guard *guard.Constraints `yaml:"guard,omitempty"`

	// Base is the correct data every trial starts from.
	Base Base `yaml:"base"`

	// Invariants must all hold on Base.
	Invariants []predicate.Invariant `yaml:"invariants"`

	// Trials are run independently against Base.
	Trials []Trial `yaml:"trials"`

	// Threshold is the minimum score percent the CLI treats as passing.
	// Zero selects mutation.AcceptanceThreshold.
	Threshold int `yaml:"threshold,omitempty"`
}

// Base describes the starting snapshot. Exactly one of Data and Generate
// must be set.
type Base struct {
	Data     map[string]string `yaml:"data,omitempty"`
	Generate *GenerateSpec     `yaml:"generate,omitempty"`
}

// GenerateSpec configures a propgen.Generator for the base snapshot.
type GenerateSpec struct {
	Seed     uint64 `yaml:"seed"`
	MaxItems int    `yaml:"max_items"`
	MaxDepth int    `yaml:"max_depth,omitempty"`
}

// Trial is a named operator sequence.
type Trial struct {
	Name      string                  `yaml:"name"`
	Mutations []mutation.OperatorSpec `yaml:"mutations"`
}

// Constraints returns the effective guard constraints.
func (c *Campaign) Constraints() guard.Constraints {
	if c.Guard == nil {
		return guard.DefaultConstraints()
	}
	return c.Guard.WithDefaults()
}

// PassThreshold returns the effective pass threshold.
func (c *Campaign) PassThreshold() int {
	if c.Threshold == 0 {
		return mutation.AcceptanceThreshold
	}
	return c.Threshold
}

// BaseSnapshot materializes the base data.
func (c *Campaign) BaseSnapshot() (mutation.Snapshot, error) {
	if c.Base.Generate != nil {
		g, err := propgen.New(c.Base.Generate.MaxItems, c.Base.Generate.MaxDepth, c.Base.Generate.Seed)
		if err != nil {
			return nil, err
		}
		return mutation.Snapshot(g.Generate()), nil
	}
	return mutation.Snapshot(c.Base.Data).Clone(), nil
}

// Load reads and parses a campaign file.
// Unknown fields are rejected so typos surface immediately.
func Load(path string) (*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("failed to read campaign file: %v", err)}
	}
	return Parse(data)
}

// Parse decodes and validates campaign YAML.
func Parse(data []byte) (*Campaign, error) {
	var c Campaign
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("failed to parse YAML: %v", err)}
	}

	if err := validateCampaign(&c); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: "invalid campaign", Err: err}
	}
	return &c, nil
}

func validateCampaign(c *Campaign) error {
	if c.Name == "" {
		return errors.New("missing required field: name")
	}

	switch {
	case c.Base.Data != nil && c.Base.Generate != nil:
		return errors.New("base: data and generate are mutually exclusive")
	case c.Base.Data == nil && c.Base.Generate == nil:
		return errors.New("base: one of data or generate is required")
	case c.Base.Generate != nil && c.Base.Generate.MaxItems <= 0:
		return fmt.Errorf("base.generate: max_items must be positive, got %d", c.Base.Generate.MaxItems)
	}

	if c.Guard != nil {
		if err := c.Constraints().Validate(); err != nil {
			return fmt.Errorf("guard: %w", err)
		}
	}

	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("threshold must be within 0..100, got %d", c.Threshold)
	}

	if len(c.Invariants) == 0 {
		return errors.New("at least one invariant is required")
	}
	if len(c.Trials) == 0 {
		return errors.New("at least one trial is required")
	}

	seen := make(map[string]bool, len(c.Trials))
	for i, tr := range c.Trials {
		if tr.Name == "" {
			return fmt.Errorf("trials[%d]: missing required field: name", i)
		}
		if seen[tr.Name] {
			return fmt.Errorf("trials[%d]: duplicate name %q", i, tr.Name)
		}
		seen[tr.Name] = true
		if len(tr.Mutations) == 0 {
			return fmt.Errorf("trials[%d] %q: at least one mutation is required", i, tr.Name)
		}
	}
	return nil
}
