package predicate

import (
	"errors"
	"fmt"

	"github.com/roach88/brutalist/internal/mutation"
)

// Invariant is the serialised form of a named predicate. Exactly one of
// Expr and CUE must be set.
type Invariant struct {
	Name string `yaml:"name" json:"name"`
	Expr string `yaml:"expr,omitempty" json:"expr,omitempty"`
	CUE  string `yaml:"cue,omitempty" json:"cue,omitempty"`
}

// Named is a compiled invariant.
type Named struct {
	Name  string
	Holds mutation.Predicate
}

// Compile builds the predicate for inv.
func (inv Invariant) Compile() (Named, error) {
	if inv.Name == "" {
		return Named{}, errors.New("invariant name is required")
	}

	switch {
	case inv.Expr != "" && inv.CUE != "":
		return Named{}, fmt.Errorf("invariant %q: expr and cue are mutually exclusive", inv.Name)
	case inv.Expr != "":
		pred, err := ParseExpr(inv.Expr)
		if err != nil {
			return Named{}, fmt.Errorf("invariant %q: %w", inv.Name, err)
		}
		return Named{Name: inv.Name, Holds: pred}, nil
	case inv.CUE != "":
		schema, err := CompileSchema(inv.CUE)
		if err != nil {
			return Named{}, fmt.Errorf("invariant %q: %w", inv.Name, err)
		}
		return Named{Name: inv.Name, Holds: schema.Predicate()}, nil
	default:
		return Named{}, fmt.Errorf("invariant %q: one of expr or cue is required", inv.Name)
	}
}

// CompileAll compiles invariants in order and rejects duplicate names.
func CompileAll(invs []Invariant) ([]Named, error) {
	seen := make(map[string]bool, len(invs))
	out := make([]Named, 0, len(invs))
	for i, inv := range invs {
		if seen[inv.Name] {
			return nil, fmt.Errorf("invariants[%d]: duplicate name %q", i, inv.Name)
		}
		seen[inv.Name] = true

		named, err := inv.Compile()
		if err != nil {
			return nil, fmt.Errorf("invariants[%d]: %w", i, err)
		}
		out = append(out, named)
	}
	return out, nil
}

// Detects reports the names of invariants that no longer hold on t's state,
// i.e. those for which t.DetectMutation is true.
func Detects(t *mutation.Tester, invs []Named) []string {
	var caught []string
	for _, inv := range invs {
		if t.DetectMutation(inv.Holds) {
			caught = append(caught, inv.Name)
		}
	}
	return caught
}
