// Package stats holds the stat mapping type and the rules for combining a
// character's innate stats with user-supplied equipment and buffs.
package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/numeric"
	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
)

// Mapping is a stat name to decimal value map. Treat it as read-only once it
// is handed to a formula; every function in this package returns a new one.
type Mapping map[string]decimal.Decimal

// FromRaw converts loosely typed values (JSON numbers, strings, floats) into
// a Mapping. The first value that is not a valid decimal fails the whole map.
func FromRaw(raw map[string]any) (Mapping, error) {
	m := make(Mapping, len(raw))
	for key, v := range raw {
		d, err := numeric.FromAny(v)
		if err != nil {
			return nil, calcerr.Wrapf(err, "stat %q", key).WithMeta("key", key)
		}
		m[key] = d
	}
	return m, nil
}

// Get returns the value for key or the explicit default when absent
func (m Mapping) Get(key string, def decimal.Decimal) decimal.Decimal {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

// Has reports whether key is present
func (m Mapping) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Clone returns a shallow copy; decimals are immutable values
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// With returns a copy with key set to value
func (m Mapping) With(key string, value decimal.Decimal) Mapping {
	out := m.Clone()
	out[key] = value
	return out
}

// Overlay returns a copy of m with every key of other replacing m's value
func (m Mapping) Overlay(other Mapping) Mapping {
	out := m.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Keys returns the keys in sorted order
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Strings renders every value as its decimal text, for storage
func (m Mapping) Strings() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v.String()
	}
	return out
}

// FromStrings parses a map produced by Strings
func FromStrings(in map[string]string) (Mapping, error) {
	m := make(Mapping, len(in))
	for k, v := range in {
		d, err := numeric.FromString(v)
		if err != nil {
			return nil, calcerr.Wrapf(err, "stat %q", k).WithMeta("key", k)
		}
		m[k] = d
	}
	return m, nil
}
