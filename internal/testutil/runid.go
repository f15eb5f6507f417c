package testutil

// ConstantRunID always returns the same run ID. Unlike
// campaign.FixedGenerator it never runs out, which suits tests that execute
// the same campaign many times and compare results byte for byte.
type ConstantRunID string

// DefaultRunID is used when a ConstantRunID is empty.
const DefaultRunID = "test-run-00000000"

// Generate returns the constant ID.
func (id ConstantRunID) Generate() string {
	if id == "" {
		return DefaultRunID
	}
	return string(id)
}
