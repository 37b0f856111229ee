package resource

import (
	"github.com/roach88/seriesync/internal/series"
)

// Top-level directory names under the data root.
const (
	RawDataDir         = "raw_data"
	TransformedDataDir = "transformed_data"
	SpecsDir           = "specs"
	PidGraphicsDir     = "pid_graphics"
	TSGraphicsDir      = "ts_graphics"
)

// File extensions managed by the store.
const (
	ExtCSV     = "csv"
	ExtMeta    = "meta"
	ExtKeytree = "keytree"
	ExtJS      = "js"
	ExtCSS     = "css"
	ExtPNG     = "png"
)

// RawData is the downloaded CSV data of one bucket. The directory is shared
// with the bucket's metadata files.
type RawData struct {
	Kind   series.DataKind
	Region series.Region
}

func (k RawData) Segments() []string {
	return []string{RawDataDir, k.Kind.String(), k.Region.PathName()}
}

func (k RawData) Policy() Policy {
	return Policy{Allowed: []string{ExtCSV, ExtMeta}, Keep: []string{ExtCSV}}
}

func (k RawData) String() string { return "raw " + k.Kind.String() + "/" + k.Region.PathName() }

// TransformedData is the CSV data derived from RawData.
type TransformedData struct {
	Kind   series.DataKind
	Region series.Region
}

func (k TransformedData) Segments() []string {
	return []string{TransformedDataDir, k.Kind.String(), k.Region.PathName()}
}

func (k TransformedData) Policy() Policy {
	return Policy{Allowed: []string{ExtCSV}}
}

func (k TransformedData) String() string {
	return "transformed " + k.Kind.String() + "/" + k.Region.PathName()
}

// MetaData is the per-series metadata stored beside the raw data.
type MetaData struct {
	Kind   series.DataKind
	Region series.Region
}

func (k MetaData) Segments() []string {
	return RawData(k).Segments()
}

func (k MetaData) Policy() Policy {
	return Policy{Allowed: []string{ExtCSV, ExtMeta}, Keep: []string{ExtMeta}}
}

func (k MetaData) String() string { return "meta " + k.Kind.String() + "/" + k.Region.PathName() }

// Specs is the collection of specification files.
type Specs struct{}

func (Specs) Segments() []string { return []string{SpecsDir} }
func (Specs) Policy() Policy     { return Policy{Allowed: []string{ExtKeytree}} }
func (Specs) String() string     { return "specs" }

// PidGraphicsCSS is the single stylesheet of the graphics pages.
type PidGraphicsCSS struct{}

func (PidGraphicsCSS) Segments() []string { return []string{PidGraphicsDir, "css"} }
func (PidGraphicsCSS) Policy() Policy     { return Policy{Allowed: []string{ExtCSS}, File: "style.css"} }
func (PidGraphicsCSS) String() string     { return "css" }

// PidGraphicsJS holds the graphics page scripts.
type PidGraphicsJS struct{}

func (PidGraphicsJS) Segments() []string { return []string{PidGraphicsDir, "js"} }
func (PidGraphicsJS) Policy() Policy     { return Policy{Allowed: []string{ExtJS}} }
func (PidGraphicsJS) String() string     { return "js" }

// PidGraphicsFavicon is the site icon.
type PidGraphicsFavicon struct{}

func (PidGraphicsFavicon) Segments() []string { return []string{PidGraphicsDir, "favicon"} }
func (PidGraphicsFavicon) Policy() Policy {
	return Policy{Allowed: []string{ExtPNG}, File: "favicon.png"}
}
func (PidGraphicsFavicon) String() string { return "favicon" }

// TSGraphicsSpec holds the time-series page specifications.
type TSGraphicsSpec struct{}

func (TSGraphicsSpec) Segments() []string { return []string{TSGraphicsDir, "spec"} }
func (TSGraphicsSpec) Policy() Policy     { return Policy{Allowed: []string{ExtKeytree}} }
func (TSGraphicsSpec) String() string     { return "ts-spec" }

// TSGraphicsJS holds the time-series page scripts.
type TSGraphicsJS struct{}

func (TSGraphicsJS) Segments() []string { return []string{TSGraphicsDir, "js"} }
func (TSGraphicsJS) Policy() Policy     { return Policy{Allowed: []string{ExtJS}} }
func (TSGraphicsJS) String() string     { return "ts-js" }

// DataTree is the top of a data tree (raw_data or transformed_data). It is
// used to walk the tree, so it imposes no extension rules of its own.
type DataTree struct {
	Top string
}

func (k DataTree) Segments() []string { return []string{k.Top} }
func (DataTree) Policy() Policy       { return Policy{} }
func (k DataTree) String() string     { return k.Top }

// StaticKinds returns the kinds that do not depend on a bucket.
func StaticKinds() []Kind {
	return []Kind{
		Specs{},
		PidGraphicsCSS{},
		PidGraphicsJS{},
		PidGraphicsFavicon{},
		TSGraphicsSpec{},
		TSGraphicsJS{},
	}
}

// BucketKinds returns the kinds that live in a bucket's directories.
func BucketKinds(key series.BucketKey) []Kind {
	return []Kind{
		RawData{Kind: key.Kind, Region: key.Region},
		MetaData{Kind: key.Kind, Region: key.Region},
		TransformedData{Kind: key.Kind, Region: key.Region},
	}
}
