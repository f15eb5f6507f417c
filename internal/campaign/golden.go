package campaign

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares the markdown coverage report of result against
// testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/campaign -update
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(result.Report.Markdown()))
}
