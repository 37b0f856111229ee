package series

import (
	"fmt"
	"strings"
)

// SeriesID identifies a provider series such as "LRHUTTTTAUA156N", or a
// transformation of one such as "LRHUTTTTAUA156N_a".
type SeriesID string

// Stem returns the base identifier with any transformation suffix removed.
// Everything from the first underscore onwards is the suffix.
func (id SeriesID) Stem() SeriesID {
	if i := strings.IndexByte(string(id), '_'); i >= 0 {
		return id[:i]
	}
	return id
}

// String returns the identifier unchanged.
func (id SeriesID) String() string {
	return string(id)
}

// Filename returns the identifier with the given extension appended
// ("AUSURAMS" + "csv" = "AUSURAMS.csv").
func (id SeriesID) Filename(ext string) string {
	return string(id) + "." + ext
}

// BucketKey groups the series that share one on-disk directory.
type BucketKey struct {
	Kind   DataKind
	Region Region
}

// Less orders bucket keys by kind, then region, in declaration order.
func (k BucketKey) Less(o BucketKey) bool {
	if k.Kind != o.Kind {
		return k.Kind < o.Kind
	}
	return k.Region < o.Region
}

// String returns "<kind>/<region path name>", the bucket's relative directory.
func (k BucketKey) String() string {
	return k.Kind.String() + "/" + k.Region.PathName()
}

// Spec is one series declaration from a specification file.
type Spec struct {
	Kind     DataKind `json:"data_type" yaml:"data_type"`
	Region   Region   `json:"country" yaml:"country"`
	SeriesID SeriesID `json:"series_id" yaml:"series_id"`
}

// NewSpec builds a Spec.
func NewSpec(kind DataKind, region Region, id SeriesID) Spec {
	return Spec{Kind: kind, Region: region, SeriesID: id}
}

// Key returns the bucket the spec belongs to.
func (s Spec) Key() BucketKey {
	return BucketKey{Kind: s.Kind, Region: s.Region}
}

// String returns a short human-readable form.
func (s Spec) String() string {
	return fmt.Sprintf("%s %s %s", s.Kind, s.Region, s.SeriesID)
}
