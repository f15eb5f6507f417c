package coverage

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Metrics(t *testing.T) {
	r := NewReport("")
	r.AddItem("f1", true)
	r.AddItem("f2", true)
	r.AddItem("f3", false)

	assert.Equal(t, 3, r.Total())
	assert.Equal(t, 2, r.Covered())
	assert.Equal(t, 66.67, r.Percentage())
}

func TestReport_NoDeduplication(t *testing.T) {
	r := NewReport("")
	r.AddItem("f1", true)
	r.AddItem("f1", false)

	assert.Equal(t, 2, r.Total())
	assert.Equal(t, 1, r.Covered())
	assert.Equal(t, 50.0, r.Percentage())
	assert.Equal(t, []Item{{"f1", true}, {"f1", false}}, r.Items())
}

func TestReport_Empty(t *testing.T) {
	r := NewReport("Empty")
	assert.Equal(t, 0, r.Total())
	assert.Equal(t, 0.0, r.Percentage())
	assert.Equal(t, "# Empty\n\n**Coverage: 0.00%** (0/0 items covered)\n", r.Markdown())
}

func TestReport_Markdown(t *testing.T) {
	r := NewReport("")
	r.AddItem("f1", true)
	r.AddItem("f2", true)
	r.AddItem("f3", false)

	want := "# Coverage Report\n" +
		"\n" +
		"**Coverage: 66.67%** (2/3 items covered)\n" +
		"\n" +
		"- [x] f1\n" +
		"- [x] f2\n" +
		"- [ ] f3\n"
	assert.Equal(t, want, r.Markdown())
	assert.Contains(t, r.Markdown(), "Coverage")
}

func TestReport_Counts(t *testing.T) {
	r := NewReport("")
	r.AddItem("a", true)

	total, covered, pct, err := r.Counts()
	require.NoError(t, err)
	assert.Equal(t, 1, total.Value())
	assert.Equal(t, 1, covered.Value())
	assert.Equal(t, 100.0, pct.Value())
}

func TestReport_ItemsIsACopy(t *testing.T) {
	r := NewReport("")
	r.AddItem("a", false)
	items := r.Items()
	items[0].Covered = true
	assert.Equal(t, 0, r.Covered())
}

func TestPropertyReport_Invariants(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("covered <= total and percentage in [0,100]", prop.ForAll(
		func(flags []bool) bool {
			r := NewReport("")
			for i, f := range flags {
				r.AddItem(string(rune('a'+i%26)), f)
			}
			p := r.Percentage()
			return r.Covered() <= r.Total() && r.Total() == len(flags) && p >= 0 && p <= 100
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}
