package series

import (
	"fmt"
	"strings"
)

// DataKind is the category of a time series.
type DataKind int

const (
	// Unemployment is an unemployment rate series ("u").
	Unemployment DataKind = iota
	// PriceIndex is a consumer price index series ("cpi").
	PriceIndex
	// Inflation is an inflation rate series ("inf").
	Inflation
)

var dataKindNames = [...]string{
	Unemployment: "u",
	PriceIndex:   "cpi",
	Inflation:    "inf",
}

// AllDataKinds returns every DataKind in canonical order.
func AllDataKinds() []DataKind {
	return []DataKind{Unemployment, PriceIndex, Inflation}
}

// String returns the canonical form, which is also the directory name.
func (k DataKind) String() string {
	if k < 0 || int(k) >= len(dataKindNames) {
		return fmt.Sprintf("DataKind(%d)", int(k))
	}
	return dataKindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k DataKind) Valid() bool {
	return k >= 0 && int(k) < len(dataKindNames)
}

// ParseDataKind parses the canonical form ("u", "cpi", "inf").
func ParseDataKind(s string) (DataKind, error) {
	s = strings.TrimSpace(s)
	for i, name := range dataKindNames {
		if name == s {
			return DataKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown data kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k DataKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid data kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *DataKind) UnmarshalText(b []byte) error {
	v, err := ParseDataKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
