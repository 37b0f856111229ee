package specfile

import (
	"fmt"

	"github.com/roach88/seriesync/internal/keytree"
	"github.com/roach88/seriesync/internal/resource"
	"github.com/roach88/seriesync/internal/selector"
)

// LoadFilter reads the named filter specification from the specs directory.
func LoadFilter(loc *resource.Locator, name string) ([]selector.Selector, error) {
	text, err := loc.Read(resource.Specs{}, name)
	if err != nil {
		return nil, fmt.Errorf("load filter spec: %w", err)
	}
	sels, err := ParseFilter(text)
	if err != nil {
		return nil, fmt.Errorf("load filter spec %s: %w", name, err)
	}
	return sels, nil
}

// ParseFilter reads every "selectors::series" section of a document.
func ParseFilter(text string) ([]selector.Selector, error) {
	root, err := keytree.Parse(text)
	if err != nil {
		return nil, err
	}
	var out []selector.Selector
	for _, n := range root.At(SelectorPath) {
		kind, region, err := kindAndRegion(n)
		if err != nil {
			return nil, err
		}
		out = append(out, selector.Selector{
			Kind:      kind,
			Region:    region,
			Tags:      n.Values("tag"),
			Enumerate: n.Values("enumerate"),
			Exclude:   n.Values("exclude"),
			Require:   n.Values("require"),
		})
	}
	return out, nil
}
