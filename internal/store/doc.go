// Package store persists campaign runs in SQLite.
//
// The store is append-only and holds two tables:
//   - runs: one row per campaign run with its score
//   - trials: one row per trial, linked to its run
//
// # Ordering
//
// Runs and trials are ordered by their logical seq, never by wall time.
// Every query ends in ORDER BY seq ASC, id COLLATE BINARY ASC so listings are
// identical across machines.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
