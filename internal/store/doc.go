// Package store provides SQLite-backed storage for synchronization runs.
//
// A run is one pass over a specification: a download session that records a
// checkpoint after each completed series, or a verification whose report is
// stored entry by entry. The store records what a pass did; it never caches
// directory listings, which are always read from the filesystem.
//
// # Tables
//
//   - runs: one row per pass (UUIDv7 id, kind, root, spec file, seq)
//   - checkpoints: completed series per run, ordered by seq
//   - verifications: report entries per run, ordered by position
//
// All ordering uses seq/position integers, never timestamps, so reads are
// deterministic.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
