package mutation

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTester_CopiesInitial(t *testing.T) {
	initial := map[string]string{"enabled": "true"}
	tester := NewTester(initial)

	tester.Apply(ToggleBoolean{Key: "enabled"})

	assert.Equal(t, "true", initial["enabled"], "caller's map must not change")
	assert.Equal(t, "false", tester.State()["enabled"])
}

func TestTester_RecordsHistoryInOrder(t *testing.T) {
	tester := NewTester(baseSnapshot())
	tester.ApplyAll(
		RemoveKey{Key: "mode"},
		NumericDelta{Key: "retries", Delta: 1},
	)
	tester.Apply(ChangeValue{Key: "absent", Value: "x"})

	applied := tester.Applied()
	require.Len(t, applied, 3)
	assert.Equal(t, KindRemoveKey, applied[0].Kind())
	assert.Equal(t, KindNumericDelta, applied[1].Kind())
	assert.Equal(t, KindChangeValue, applied[2].Kind())

	// No-op operators are still part of the history
	assert.Equal(t, "4", tester.State()["retries"])
}

func TestTester_StateIsACopy(t *testing.T) {
	tester := NewTester(baseSnapshot())
	state := tester.State()
	state["mode"] = "tampered"
	assert.Equal(t, "fast", tester.State()["mode"])
}

func TestDetectMutation_Caught(t *testing.T) {
	tester := NewTester(baseSnapshot())
	hasEnabled := func(s Snapshot) bool {
		_, ok := s["enabled"]
		return ok
	}

	assert.False(t, tester.DetectMutation(hasEnabled), "unmutated data satisfies the invariant")

	tester.Apply(RemoveKey{Key: "enabled"})
	assert.True(t, tester.DetectMutation(hasEnabled))
}

func TestDetectMutation_Missed(t *testing.T) {
	tester := NewTester(baseSnapshot())
	tester.Apply(ChangeValue{Key: "mode", Value: "slow"})

	// A predicate that ignores "mode" cannot catch the mutation
	enabledIsBool := func(s Snapshot) bool {
		v := s["enabled"]
		return v == "true" || v == "false"
	}
	assert.False(t, tester.DetectMutation(enabledIsBool))
}

func TestDetectMutation_PredicateCannotMutate(t *testing.T) {
	tester := NewTester(baseSnapshot())
	tester.DetectMutation(func(s Snapshot) bool {
		delete(s, "enabled")
		return true
	})
	assert.Contains(t, tester.State(), "enabled")
}

func TestTester_RepeatedQueries(t *testing.T) {
	tester := NewTester(baseSnapshot())
	tester.Apply(ToggleBoolean{Key: "enabled"})
	isTrue := func(s Snapshot) bool { return s["enabled"] == "true" }

	for i := 0; i < 3; i++ {
		assert.True(t, tester.DetectMutation(isTrue))
	}
}

func TestTester_CloneIsIndependent(t *testing.T) {
	tester := NewTester(baseSnapshot())
	tester.Apply(RemoveKey{Key: "mode"})

	clone := tester.Clone()
	clone.Apply(RemoveKey{Key: "enabled"})

	assert.Contains(t, tester.State(), "enabled")
	assert.Len(t, tester.Applied(), 1)
	assert.NotContains(t, clone.State(), "enabled")
	assert.Len(t, clone.Applied(), 2)
}

func TestPropertyDetectMutation_IsNegation(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("DetectMutation(p) == !p(state)", prop.ForAll(
		func(base Snapshot, ops []Operator, key string) bool {
			tester := NewTester(base)
			tester.ApplyAll(ops...)
			pred := func(s Snapshot) bool {
				_, ok := s[key]
				return ok
			}
			return tester.DetectMutation(pred) == !pred(tester.State())
		},
		genSnapshot(),
		gen.SliceOf(genOperator()),
		gen.OneConstOf("a", "b", "c", "d"),
	))

	properties.TestingRun(t)
}
