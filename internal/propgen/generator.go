// Package propgen produces bounded, replayable pseudo-random fixtures.
//
// A Generator is deterministic: two generators built with the same bounds and
// seed produce identical sequences. Each Generate call advances the seed by
// one so successive calls on one instance diverge.
package propgen

import (
	"errors"
	"fmt"
	"strconv"
)

// LCG parameters.
const (
	lcgMultiplier = 1_103_515_245
	lcgIncrement  = 12_345
)

// ErrInvalidBound is returned for a non-positive MaxItems.
var ErrInvalidBound = errors.New("propgen: max items must be positive")

// Generator produces key/value fixtures with between 1 and MaxItems entries.
//
// MaxDepth is reserved for nested structures and does not influence
// generation yet.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	maxItems int
	maxDepth int
	seed     uint64
}

// New creates a generator. maxItems must be positive.
func New(maxItems, maxDepth int, seed uint64) (*Generator, error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidBound, maxItems)
	}
	return &Generator{maxItems: maxItems, maxDepth: maxDepth, seed: seed}, nil
}

// MaxItems returns the upper bound on entries per fixture.
func (g *Generator) MaxItems() int { return g.maxItems }

// MaxDepth returns the reserved nesting bound.
func (g *Generator) MaxDepth() int { return g.maxDepth }

// Seed returns the seed the next Generate call will start from.
func (g *Generator) Seed() uint64 { return g.seed }

// Generate returns a fixture of 1..MaxItems entries keyed "key_0".."key_{n-1}"
// with values "value_<n>", then advances the seed.
func (g *Generator) Generate() map[string]string {
	r := lcg{state: g.seed}

	count := int(r.next()%uint64(g.maxItems)) + 1
	data := make(map[string]string, count)
	for i := 0; i < count; i++ {
		data["key_"+strconv.Itoa(i)] = "value_" + strconv.FormatUint(r.next(), 10)
	}

	g.seed++
	return data
}

// lcg is a 64-bit wraparound linear congruential sequence.
type lcg struct {
	state uint64
}

func (r *lcg) next() uint64 {
	r.state = r.state*lcgMultiplier + lcgIncrement
	return r.state
}

// PropertyAllDataValid generates numTests fixtures and reports false if any
// is empty.
func PropertyAllDataValid(g *Generator, numTests int) bool {
	for i := 0; i < numTests; i++ {
		if len(g.Generate()) == 0 {
			return false
		}
	}
	return true
}
