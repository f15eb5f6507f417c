package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/brutalist/internal/guard"
	"github.com/roach88/brutalist/internal/mutation"
)

func TestLoad_ValidFile(t *testing.T) {
	c, err := Load("testdata/flags.yaml")
	require.NoError(t, err)

	assert.Equal(t, "feature-flags", c.Name)
	assert.Equal(t, "Flag parsing rejects malformed config", c.Description)
	assert.Equal(t, map[string]string{"enabled": "true", "retries": "3", "mode": "fast"}, c.Base.Data)
	require.Len(t, c.Invariants, 3)
	assert.Equal(t, "mode-known", c.Invariants[2].Name)
	assert.NotEmpty(t, c.Invariants[2].CUE)
	require.Len(t, c.Trials, 5)
	assert.Equal(t, mutation.KindNumericDelta, c.Trials[1].Mutations[0].Op)
	assert.Equal(t, int64(-3), c.Trials[1].Mutations[0].Delta)
	assert.Equal(t, guard.DefaultConstraints(), c.Constraints())
	assert.Equal(t, mutation.AcceptanceThreshold, c.PassThreshold())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeNotFound, le.Code)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte(`
name: x
bsae: {}
`))
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeParse, le.Code)
}

func TestParse_InvalidCampaigns(t *testing.T) {
	cases := map[string]string{
		"missing name": `
base: {data: {a: "1"}}
invariants: [{name: i, expr: HasKey("a")}]
trials: [{name: t, mutations: [{op: remove_key, key: a}]}]
`,
		"no base": `
name: x
invariants: [{name: i, expr: HasKey("a")}]
trials: [{name: t, mutations: [{op: remove_key, key: a}]}]
`,
		"both bases": `
name: x
base: {data: {a: "1"}, generate: {seed: 1, max_items: 2}}
invariants: [{name: i, expr: HasKey("a")}]
trials: [{name: t, mutations: [{op: remove_key, key: a}]}]
`,
		"generate without items": `
name: x
base: {generate: {seed: 1}}
invariants: [{name: i, expr: HasKey("a")}]
trials: [{name: t, mutations: [{op: remove_key, key: a}]}]
`,
		"negative guard": `
name: x
guard: {max_run_len: -1}
base: {data: {a: "1"}}
invariants: [{name: i, expr: HasKey("a")}]
trials: [{name: t, mutations: [{op: remove_key, key: a}]}]
`,
		"threshold too high": `
name: x
threshold: 101
base: {data: {a: "1"}}
invariants: [{name: i, expr: HasKey("a")}]
trials: [{name: t, mutations: [{op: remove_key, key: a}]}]
`,
		"no invariants": `
name: x
base: {data: {a: "1"}}
trials: [{name: t, mutations: [{op: remove_key, key: a}]}]
`,
		"no trials": `
name: x
base: {data: {a: "1"}}
invariants: [{name: i, expr: HasKey("a")}]
`,
		"duplicate trial": `
name: x
base: {data: {a: "1"}}
invariants: [{name: i, expr: HasKey("a")}]
trials:
  - {name: t, mutations: [{op: remove_key, key: a}]}
  - {name: t, mutations: [{op: remove_key, key: a}]}
`,
		"empty trial": `
name: x
base: {data: {a: "1"}}
invariants: [{name: i, expr: HasKey("a")}]
trials: [{name: t, mutations: []}]
`,
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			require.Error(t, err)

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, ErrCodeInvalid, le.Code)
		})
	}
}

func TestCampaign_GuardOverridesKeepDefaults(t *testing.T) {
	c, err := Parse([]byte(`
name: x
guard: {max_run_len: 2}
threshold: 90
base: {data: {a: "1"}}
invariants: [{name: i, expr: HasKey("a")}]
trials: [{name: t, mutations: [{op: remove_key, key: a}]}]
`))
	require.NoError(t, err)

	assert.Equal(t, guard.Constraints{MaxRunLen: 2, MaxBatchSize: guard.DefaultMaxBatchSize}, c.Constraints())
	assert.Equal(t, 90, c.PassThreshold())
}

func TestCampaign_BaseSnapshotIsCopy(t *testing.T) {
	c, err := Load("testdata/flags.yaml")
	require.NoError(t, err)

	snap, err := c.BaseSnapshot()
	require.NoError(t, err)
	snap["enabled"] = "false"

	assert.Equal(t, "true", c.Base.Data["enabled"])
}

func TestCampaign_GeneratedBase(t *testing.T) {
	c, err := Load("testdata/generated.yaml")
	require.NoError(t, err)

	snap, err := c.BaseSnapshot()
	require.NoError(t, err)
	assert.Len(t, snap, 6)
	assert.Equal(t, "value_14251853105267829688", snap["key_0"])
	assert.Equal(t, 50, c.PassThreshold())
}
