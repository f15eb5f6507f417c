// Package predicate compiles textual invariants into mutation.Predicate
// values.
//
// Two sources are supported.
//
// Expressions use a small function language evaluated against the snapshot:
//
//	HasKey("enabled") && IsBoolean("enabled")
//	NumberAtLeast("retries", 1) && NumberAtMost("retries", 10)
//	!ValueIs("mode", "unsafe") || KeyCount(4)
//
// Functions:
//   - HasKey(k): k is present
//   - ValueIs(k, v): k is present with value v
//   - IsBoolean(k): value is "true" or "false"
//   - IsTrue(k): value is "true"
//   - IsNumeric(k): value parses as a finite number
//   - NumberAtLeast(k, n), NumberAtMost(k, n): numeric bounds (n is a
//     non-negative integer literal)
//   - KeyCount(n): snapshot has exactly n keys
//
// Operators: && (and), || (or), ! (not).
//
// CUE schemas are unified with the snapshot encoded as a CUE struct; the
// predicate holds iff the result is concrete and free of conflicts:
//
//	enabled: "true" | "false"
//	retries: =~"^[0-9]+$"
package predicate
