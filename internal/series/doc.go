// Package series provides the value types shared by every other package:
// data kinds, regions, series identifiers and the Spec record that a
// specification file declares for each series.
//
// This package imports nothing internal. DataKind and Region are closed
// enumerations whose declaration order is the canonical ordering used for
// bucket iteration; SeriesID is an opaque string ordered byte-wise.
package series
