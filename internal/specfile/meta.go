package specfile

import (
	"fmt"

	"github.com/roach88/seriesync/internal/keytree"
	"github.com/roach88/seriesync/internal/resource"
	"github.com/roach88/seriesync/internal/series"
)

// Meta is the provider metadata stored for one series in "<id>.meta".
type Meta struct {
	Realtime           string          `json:"realtime" yaml:"realtime"`
	SeriesID           series.SeriesID `json:"series_id" yaml:"series_id"`
	Title              string          `json:"title" yaml:"title"`
	ObservationStart   string          `json:"observation_start" yaml:"observation_start"`
	ObservationEnd     string          `json:"observation_end" yaml:"observation_end"`
	Frequency          string          `json:"frequency" yaml:"frequency"`
	SeasonalAdjustment string          `json:"seasonal_adjustment" yaml:"seasonal_adjustment"`
	Notes              string          `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// LoadMeta reads the metadata file of a declared series.
func LoadMeta(loc *resource.Locator, spec series.Spec) (Meta, error) {
	kind := resource.MetaData{Kind: spec.Kind, Region: spec.Region}
	text, err := loc.Read(kind, spec.SeriesID.Filename(resource.ExtMeta))
	if err != nil {
		return Meta{}, fmt.Errorf("load meta %s: %w", spec.SeriesID, err)
	}
	m, err := ParseMeta(text)
	if err != nil {
		return Meta{}, fmt.Errorf("load meta %s: %w", spec.SeriesID, err)
	}
	return m, nil
}

// ParseMeta reads a single "series_meta" section.
func ParseMeta(text string) (Meta, error) {
	root, err := keytree.Parse(text)
	if err != nil {
		return Meta{}, err
	}
	nodes := root.At(MetaPath)
	if len(nodes) != 1 {
		return Meta{}, &keytree.ParseError{Line: 1, Message: fmt.Sprintf("expected one %s section, found %d", MetaPath, len(nodes))}
	}
	n := nodes[0]

	var m Meta
	fields := []struct {
		key string
		dst *string
	}{
		{"realtime", &m.Realtime},
		{"title", &m.Title},
		{"observation_start", &m.ObservationStart},
		{"observation_end", &m.ObservationEnd},
		{"frequency", &m.Frequency},
		{"seasonal_adjustment", &m.SeasonalAdjustment},
	}
	for _, f := range fields {
		v, err := n.Get(f.key)
		if err != nil {
			return Meta{}, err
		}
		*f.dst = v
	}
	id, err := n.Get("series_id")
	if err != nil {
		return Meta{}, err
	}
	m.SeriesID = series.SeriesID(id)
	if m.Notes, err = n.Opt("notes"); err != nil {
		return Meta{}, err
	}
	return m, nil
}
