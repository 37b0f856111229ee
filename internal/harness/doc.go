// Package harness runs reconciliation scenarios described in YAML.
//
// A scenario lays out a data root (a series specification plus the files
// and directories on disk), runs every reconciliation pass against it and
// checks the outcome with declarative assertions. Results can also be
// compared against golden snapshots.
//
// # Scenario Format
//
//	name: drift
//	description: "One series missing, one orphan"
//	spec: |
//	  seriess:
//	      series:
//	          data_type: u
//	          country:   United States
//	          series_id: UNRATE
//	files:
//	  - raw_data/u/united_states/UNRATE.csv
//	dirs:
//	  - transformed_data/u/united_states
//	resume_after: UNRATE
//	assertions:
//	  - type: found
//	    series: [UNRATE]
//
// Unless bare is set, the static resource directories (specs, pid_graphics,
// ts_graphics, raw_data, transformed_data) and their single-file assets are
// created first.
//
// # Assertion Types
//
//   - found / missing: exactly these series were found / missing, in order
//   - orphans: exactly these paths (relative to the root) are orphaned
//   - resume: exactly these series remain after resume_after, in order
//   - problem: the audit reported code for kind
//   - clean: the audit reported nothing
//   - verify_error / orphans_error / resume_error: the pass failed with code
package harness
