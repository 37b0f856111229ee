// Package reconcile compares the declared universe of series against the
// files on disk and reports drift without changing either.
//
// Verify lists each bucket's raw data directory once and checks every
// declared series against that listing, accumulating a complete report
// instead of stopping at the first missing file. FindOrphans walks the data
// tree and reports files whose base identifier is not declared; it never
// deletes them. ResumeFrom computes the work left after an interrupted pass.
//
// Nothing here writes to the filesystem, so every operation can be repeated
// freely.
package reconcile
