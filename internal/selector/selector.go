// Package selector turns provider search results into declared series.
//
// A Selector names a bucket and the tag query used to search the provider,
// plus title rules deciding which of the returned series are kept. The
// provider client is not part of this package; it is reached through the
// TitleLister interface.
package selector

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/roach88/seriesync/internal/series"
)

// Selector is one "selectors::series" entry of a filter specification.
type Selector struct {
	Kind      series.DataKind `json:"data_type" yaml:"data_type"`
	Region    series.Region   `json:"country" yaml:"country"`
	Tags      []string        `json:"tags,omitempty" yaml:"tags,omitempty"`
	Enumerate []string        `json:"enumerate,omitempty" yaml:"enumerate,omitempty"`
	Exclude   []string        `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Require   []string        `json:"require,omitempty" yaml:"require,omitempty"`
}

// Selected reports whether a series with the given title is kept:
//   - if Enumerate is not empty, the title must equal one of its entries
//   - no Exclude entry may occur in the title
//   - every Require entry must occur in the title
func (s Selector) Selected(title string) bool {
	if len(s.Enumerate) > 0 && !slices.Contains(s.Enumerate, title) {
		return false
	}
	for _, ex := range s.Exclude {
		if strings.Contains(title, ex) {
			return false
		}
	}
	for _, req := range s.Require {
		if !strings.Contains(title, req) {
			return false
		}
	}
	return true
}

// Tag returns the provider tag query: the trimmed tags followed by the
// provider's name for the region, joined by ';'.
func (s Selector) Tag() string {
	var b strings.Builder
	for _, t := range s.Tags {
		b.WriteString(strings.TrimSpace(t))
		b.WriteByte(';')
	}
	b.WriteString(ProviderCountry(s.Region))
	return b.String()
}

// ProviderCountry returns the name the provider uses for a region in tag
// queries.
func ProviderCountry(r series.Region) string {
	switch r {
	case series.SouthKorea:
		return "korea"
	case series.UnitedStates:
		return "usa"
	default:
		return strings.ToLower(r.String())
	}
}

// Item is one series returned by a provider search.
type Item struct {
	ID    string
	Title string
}

// TitleLister searches the provider for series matching a tag query.
type TitleLister interface {
	SeriesForTags(ctx context.Context, tag string) ([]Item, error)
}

// Decision records whether one provider item was kept.
type Decision struct {
	Selector int    `json:"selector" yaml:"selector"`
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Kept     bool   `json:"kept" yaml:"kept"`
}

// Build queries lister once per selector and returns the kept items as
// specs, in selector order then provider order, together with a decision
// for every item seen.
//
// The first lister error stops the build; the specs gathered so far are
// returned with it so a caller can persist partial progress.
func Build(ctx context.Context, sels []Selector, lister TitleLister) ([]series.Spec, []Decision, error) {
	var specs []series.Spec
	var decisions []Decision

	for i, sel := range sels {
		tag := sel.Tag()
		items, err := lister.SeriesForTags(ctx, tag)
		if err != nil {
			return specs, decisions, fmt.Errorf("selector %d (%s %s): %w", i, sel.Region, sel.Kind, err)
		}
		slog.Debug("provider search", "tag", tag, "items", len(items))

		for _, it := range items {
			kept := sel.Selected(it.Title)
			decisions = append(decisions, Decision{Selector: i, ID: it.ID, Title: it.Title, Kept: kept})
			if kept {
				specs = append(specs, series.NewSpec(sel.Kind, sel.Region, series.SeriesID(it.ID)))
			}
		}
	}
	return specs, decisions, nil
}
