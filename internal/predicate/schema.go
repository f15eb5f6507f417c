package predicate

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/brutalist/internal/mutation"
)

// Schema is a compiled CUE constraint over snapshots.
// It is safe for concurrent use; evaluations are serialized.
type Schema struct {
	mu    sync.Mutex
	ctx   *cue.Context
	value cue.Value
}

// CompileSchema compiles CUE source into a Schema.
func CompileSchema(src string) (*Schema, error) {
	ctx := cuecontext.New()
	value := ctx.CompileString(src)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compiling CUE schema: %w", err)
	}
	return &Schema{ctx: ctx, value: value}, nil
}

// Check returns nil if data satisfies the schema, or the CUE error
// describing the first conflict or missing value.
func (s *Schema) Check(data map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded := s.ctx.Encode(data)
	if err := encoded.Err(); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	unified := s.value.Unify(encoded)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}

// Predicate adapts the schema to a mutation.Predicate.
func (s *Schema) Predicate() mutation.Predicate {
	return func(snap mutation.Snapshot) bool {
		return s.Check(snap) == nil
	}
}
