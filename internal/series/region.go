package series

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Region is a country or jurisdiction a series belongs to.
//
// Regions are declared in alphabetical order of their display names and that
// declaration order is the canonical Region ordering.
type Region int

const (
	Australia Region = iota
	Austria
	Belgium
	Canada
	Chile
	CzechRepublic
	Denmark
	Estonia
	Finland
	France
	Germany
	Greece
	Hungary
	Iceland
	Ireland
	Israel
	Italy
	Japan
	Latvia
	Luxembourg
	Mexico
	Netherlands
	NewZealand
	Norway
	Poland
	Portugal
	Serbia
	Slovakia
	Slovenia
	SouthKorea
	Spain
	Sweden
	Switzerland
	Turkey
	UnitedKingdom
	UnitedStates
)

var regionNames = [...]string{
	Australia:     "Australia",
	Austria:       "Austria",
	Belgium:       "Belgium",
	Canada:        "Canada",
	Chile:         "Chile",
	CzechRepublic: "Czech Republic",
	Denmark:       "Denmark",
	Estonia:       "Estonia",
	Finland:       "Finland",
	France:        "France",
	Germany:       "Germany",
	Greece:        "Greece",
	Hungary:       "Hungary",
	Iceland:       "Iceland",
	Ireland:       "Ireland",
	Israel:        "Israel",
	Italy:         "Italy",
	Japan:         "Japan",
	Latvia:        "Latvia",
	Luxembourg:    "Luxembourg",
	Mexico:        "Mexico",
	Netherlands:   "Netherlands",
	NewZealand:    "New Zealand",
	Norway:        "Norway",
	Poland:        "Poland",
	Portugal:      "Portugal",
	Serbia:        "Serbia",
	Slovakia:      "Slovakia",
	Slovenia:      "Slovenia",
	SouthKorea:    "South Korea",
	Spain:         "Spain",
	Sweden:        "Sweden",
	Switzerland:   "Switzerland",
	Turkey:        "Turkey",
	UnitedKingdom: "United Kingdom",
	UnitedStates:  "United States",
}

// AllRegions returns every Region in canonical order.
func AllRegions() []Region {
	out := make([]Region, len(regionNames))
	for i := range regionNames {
		out[i] = Region(i)
	}
	return out
}

// RegionsWithData returns the regions for which the provider publishes
// usable unemployment and price data.
func RegionsWithData() []Region {
	return []Region{
		Australia, Austria, Belgium, Canada, Chile, CzechRepublic, Denmark,
		Estonia, Finland, France, Germany, Greece, Ireland, Israel, Italy,
		Japan, Latvia, Netherlands, NewZealand, Norway, Poland, Serbia,
		SouthKorea, Spain, Sweden, Switzerland, UnitedKingdom, UnitedStates,
	}
}

// String returns the display name, e.g. "United States".
func (r Region) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Region(%d)", int(r))
	}
	return regionNames[r]
}

// Valid reports whether r is one of the declared regions.
func (r Region) Valid() bool {
	return r >= 0 && int(r) < len(regionNames)
}

// PathName returns the filesystem-safe form used as a directory name:
// lower case with spaces replaced by underscores ("united_states").
func (r Region) PathName() string {
	return strings.ReplaceAll(strings.ToLower(r.String()), " ", "_")
}

// ParseRegion accepts either the display name or the path form, ignoring
// case: "United States", "united states" and "united_states" all parse.
func ParseRegion(s string) (Region, error) {
	fold := cases.Fold()
	key := fold.String(strings.ReplaceAll(strings.TrimSpace(s), "_", " "))
	for i, name := range regionNames {
		if fold.String(name) == key {
			return Region(i), nil
		}
	}
	return 0, fmt.Errorf("unknown region %q", s)
}

// MarshalText implements encoding.TextMarshaler using the display name.
func (r Region) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid region %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Region) UnmarshalText(b []byte) error {
	v, err := ParseRegion(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
