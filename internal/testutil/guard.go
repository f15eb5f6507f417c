// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"testing"

	"github.com/roach88/brutalist/internal/guard"
)

// RequireRunLen stops the test when n exceeds the validator's run limit.
func RequireRunLen(t testing.TB, v guard.Validator, n int) {
	t.Helper()
	if err := v.ValidateRunLen(n); err != nil {
		t.Fatalf("run length check failed: %v", err)
	}
}

// RequireBatchSize stops the test when n exceeds the validator's batch limit.
func RequireBatchSize(t testing.TB, v guard.Validator, n int) {
	t.Helper()
	if err := v.ValidateBatchSize(n); err != nil {
		t.Fatalf("batch size check failed: %v", err)
	}
}

// RequireRun is RequireRunLen over len(items).
func RequireRun[T any](t testing.TB, v guard.Validator, items []T) {
	t.Helper()
	RequireRunLen(t, v, len(items))
}

// RequireBatch is RequireBatchSize over len(items).
func RequireBatch[T any](t testing.TB, v guard.Validator, items []T) {
	t.Helper()
	RequireBatchSize(t, v, len(items))
}
