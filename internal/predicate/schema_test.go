package predicate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/brutalist/internal/mutation"
)

const flagSchema = `
enabled: "true" | "false"
retries: =~"^[0-9]+$"
`

func TestSchema_Holds(t *testing.T) {
	s, err := CompileSchema(flagSchema)
	require.NoError(t, err)

	assert.NoError(t, s.Check(snap()))
	assert.True(t, s.Predicate()(snap()))
}

func TestSchema_Conflict(t *testing.T) {
	s, err := CompileSchema(flagSchema)
	require.NoError(t, err)

	bad := snap()
	bad["enabled"] = "yes"
	assert.Error(t, s.Check(bad))

	bad = snap()
	bad["retries"] = "-1"
	assert.False(t, s.Predicate()(bad))
}

func TestSchema_MissingFieldIsIncomplete(t *testing.T) {
	s, err := CompileSchema(flagSchema)
	require.NoError(t, err)

	tester := mutation.NewTester(snap())
	tester.Apply(mutation.RemoveKey{Key: "enabled"})
	assert.True(t, tester.DetectMutation(s.Predicate()))
}

func TestSchema_OptionalField(t *testing.T) {
	s, err := CompileSchema(`mode?: "fast" | "slow"`)
	require.NoError(t, err)

	assert.True(t, s.Predicate()(mutation.Snapshot{}))
	assert.True(t, s.Predicate()(mutation.Snapshot{"mode": "slow"}))
	assert.False(t, s.Predicate()(mutation.Snapshot{"mode": "warp"}))
}

func TestCompileSchema_SyntaxError(t *testing.T) {
	_, err := CompileSchema(`enabled: {`)
	assert.Error(t, err)
}

func TestSchema_ConcurrentUse(t *testing.T) {
	s, err := CompileSchema(flagSchema)
	require.NoError(t, err)
	pred := s.Predicate()

	var wg sync.WaitGroup
	results := make([]bool, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data := snap()
			if i%2 == 1 {
				data["enabled"] = "maybe"
			}
			results[i] = pred(data)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, i%2 == 0, got, "goroutine %d", i)
	}
}
