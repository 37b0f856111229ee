// Package specindex holds the declared universe of series, grouped into
// buckets by (data kind, region) and kept in declaration order.
//
// Two structures are maintained together: the buckets, each an ordered
// slice of specs, and a reverse map from series id to the bucket key and
// position holding it. Every id in a bucket appears in the reverse map
// pointing at that bucket and position, and every reverse entry names a
// bucket that holds it.
//
// An Index has a single owner while it is built and is read-only afterwards.
// It is not safe for concurrent mutation.
package specindex

import (
	"slices"

	"github.com/roach88/seriesync/internal/series"
)

type location struct {
	key series.BucketKey
	pos int
}

// Bucket is the declared members of one (data kind, region) directory.
type Bucket struct {
	Key   series.BucketKey
	Specs []series.Spec
}

// Index is an ordered, dual-indexed collection of series specs.
type Index struct {
	buckets map[series.BucketKey][]series.Spec
	reverse map[series.SeriesID]location
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		buckets: make(map[series.BucketKey][]series.Spec),
		reverse: make(map[series.SeriesID]location),
	}
}

// FromSpecs folds specs into a new Index in order.
func FromSpecs(specs []series.Spec) *Index {
	idx := New()
	for _, s := range specs {
		idx.Insert(s)
	}
	return idx
}

// Insert adds spec at the end of its bucket. If spec.SeriesID is already
// present the stored record is replaced where it stands, so an update never
// changes declaration order.
//
// A replacement whose kind or region differs from the stored record would
// leave the id in the wrong bucket, so that case moves the record: it is
// removed from the old bucket and appended to the new one.
func (x *Index) Insert(spec series.Spec) {
	key := spec.Key()
	if loc, ok := x.reverse[spec.SeriesID]; ok {
		if loc.key == key {
			x.buckets[key][loc.pos] = spec
			return
		}
		x.remove(loc)
	}
	x.buckets[key] = append(x.buckets[key], spec)
	x.reverse[spec.SeriesID] = location{key: key, pos: len(x.buckets[key]) - 1}
}

// remove deletes the spec at loc and shifts the positions of the specs after it.
func (x *Index) remove(loc location) {
	specs := x.buckets[loc.key]
	delete(x.reverse, specs[loc.pos].SeriesID)
	specs = slices.Delete(specs, loc.pos, loc.pos+1)
	for i := loc.pos; i < len(specs); i++ {
		x.reverse[specs[i].SeriesID] = location{key: loc.key, pos: i}
	}
	if len(specs) == 0 {
		delete(x.buckets, loc.key)
		return
	}
	x.buckets[loc.key] = specs
}

// Lookup returns the spec declared for id.
func (x *Index) Lookup(id series.SeriesID) (series.Spec, bool) {
	loc, ok := x.reverse[id]
	if !ok {
		return series.Spec{}, false
	}
	return x.buckets[loc.key][loc.pos], true
}

// Contains reports whether id is declared.
func (x *Index) Contains(id series.SeriesID) bool {
	_, ok := x.reverse[id]
	return ok
}

// KeyOf returns the bucket key holding id.
func (x *Index) KeyOf(id series.SeriesID) (series.BucketKey, bool) {
	loc, ok := x.reverse[id]
	return loc.key, ok
}

// Bucket returns the members of one bucket in declaration order. The slice
// is a copy.
func (x *Index) Bucket(kind series.DataKind, region series.Region) []series.Spec {
	return slices.Clone(x.buckets[series.BucketKey{Kind: kind, Region: region}])
}

// Keys returns the non-empty bucket keys ordered by data kind, then region.
func (x *Index) Keys() []series.BucketKey {
	keys := make([]series.BucketKey, 0, len(x.buckets))
	for k := range x.buckets {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b series.BucketKey) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
	return keys
}

// Buckets returns every non-empty bucket in key order. The order is total
// and the same on every run, so a position in it can be used to resume.
func (x *Index) Buckets() []Bucket {
	keys := x.Keys()
	out := make([]Bucket, len(keys))
	for i, k := range keys {
		out[i] = Bucket{Key: k, Specs: slices.Clone(x.buckets[k])}
	}
	return out
}

// All returns every spec, bucket by bucket in key order, each bucket in
// declaration order.
func (x *Index) All() []series.Spec {
	out := make([]series.Spec, 0, len(x.reverse))
	for _, k := range x.Keys() {
		out = append(out, x.buckets[k]...)
	}
	return out
}

// Len returns the number of declared series.
func (x *Index) Len() int {
	return len(x.reverse)
}
