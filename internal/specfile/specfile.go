// Package specfile turns keytree documents found through the resource
// locator into typed records: the declared series list, the provider
// filter selectors and per-series metadata.
package specfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/roach88/seriesync/internal/keytree"
	"github.com/roach88/seriesync/internal/resource"
	"github.com/roach88/seriesync/internal/series"
	"github.com/roach88/seriesync/internal/specindex"
)

// Section paths read by this package.
const (
	SelectorPath = "selectors::series"
	MetaPath     = "series_meta"

	seriesRoot   = "seriess"
	selectorRoot = "selectors"
)

// DefaultSeriesSpec is the conventional name of the series specification.
const DefaultSeriesSpec = "series_spec.keytree"

// ErrNoSeries is returned for a document with neither a "seriess" nor a
// "selectors" section.
var ErrNoSeries = errors.New("no seriess or selectors section")

// LoadSeries reads the named specification file from the specs directory
// and returns its series in declaration order. Only the named file has to
// be well formed; other files in the specs directory are not looked at.
func LoadSeries(loc *resource.Locator, name string) ([]series.Spec, error) {
	path, err := loc.FullPath(resource.Specs{}, name)
	if err != nil {
		return nil, fmt.Errorf("load series spec: %w", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load series spec: %w", resource.NewIOError(filepath.Dir(path), path, err))
	}
	specs, err := ParseSeries(string(b))
	if err != nil {
		return nil, fmt.Errorf("load series spec %s: %w", name, err)
	}
	return specs, nil
}

// LoadIndex reads the named specification file into a spec index. When
// kinds is not empty, series of other data kinds are left out.
func LoadIndex(loc *resource.Locator, name string, kinds ...series.DataKind) (*specindex.Index, error) {
	specs, err := LoadSeries(loc, name)
	if err != nil {
		return nil, err
	}
	if len(kinds) > 0 {
		specs = slices.DeleteFunc(specs, func(s series.Spec) bool {
			return !slices.Contains(kinds, s.Kind)
		})
	}
	return specindex.FromSpecs(specs), nil
}

// ParseSeries reads every "series" entry under the "seriess" and
// "selectors" sections of a document, in document order.
func ParseSeries(text string) ([]series.Spec, error) {
	root, err := keytree.Parse(text)
	if err != nil {
		return nil, err
	}
	var nodes []*keytree.Node
	sections := 0
	for _, top := range root.Children {
		if top.Key != seriesRoot && top.Key != selectorRoot {
			continue
		}
		sections++
		for _, n := range top.Children {
			if n.Key == "series" {
				nodes = append(nodes, n)
			}
		}
	}
	if sections == 0 {
		return nil, ErrNoSeries
	}

	specs := make([]series.Spec, 0, len(nodes))
	for _, n := range nodes {
		s, err := seriesFromNode(n)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, nil
}

func seriesFromNode(n *keytree.Node) (series.Spec, error) {
	kind, region, err := kindAndRegion(n)
	if err != nil {
		return series.Spec{}, err
	}
	id, err := n.Get("series_id")
	if err != nil {
		return series.Spec{}, err
	}
	return series.NewSpec(kind, region, series.SeriesID(id)), nil
}

func kindAndRegion(n *keytree.Node) (series.DataKind, series.Region, error) {
	k, err := n.Get("data_type")
	if err != nil {
		return 0, 0, err
	}
	kind, err := series.ParseDataKind(k)
	if err != nil {
		return 0, 0, &keytree.ParseError{Line: n.Line, Message: err.Error()}
	}
	c, err := n.Get("country")
	if err != nil {
		return 0, 0, err
	}
	region, err := series.ParseRegion(c)
	if err != nil {
		return 0, 0, &keytree.ParseError{Line: n.Line, Message: err.Error()}
	}
	return kind, region, nil
}
