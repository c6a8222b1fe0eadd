// Package portfolio carries the ordered asset ledgers exchanged with the
// optimizer: holdings, weights and trade lists. A Series behaves like an
// ordered map from asset identifier to amount; output series always keep
// the key order of the input they were derived from.
package portfolio

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Series is an ordered mapping from asset identifier to a float amount.
// Lookups by key are O(1); iteration order is construction order. The zero
// value is an empty series. Series values are immutable once built: every
// accessor that exposes a slice returns a copy.
type Series struct {
	keys   []string
	values []float64
	index  map[string]int
}

// NewSeries builds a series from parallel key/value slices. Keys must be
// unique and the slices must have equal length. Both slices are copied.
func NewSeries(keys []string, values []float64) (Series, error) {
	if len(keys) != len(values) {
		return Series{}, fmt.Errorf("portfolio: %d keys for %d values", len(keys), len(values))
	}
	s := Series{
		keys:   append([]string(nil), keys...),
		values: append([]float64(nil), values...),
		index:  make(map[string]int, len(keys)),
	}
	for i, k := range keys {
		if _, dup := s.index[k]; dup {
			return Series{}, fmt.Errorf("portfolio: duplicate key %q", k)
		}
		s.index[k] = i
	}
	return s, nil
}

// MustSeries is NewSeries for hand-written inputs; it panics on invalid
// data.
func MustSeries(keys []string, values []float64) Series {
	s, err := NewSeries(keys, values)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of entries.
func (s Series) Len() int { return len(s.keys) }

// Keys returns the keys in order.
func (s Series) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Values returns the amounts in key order.
func (s Series) Values() []float64 {
	return append([]float64(nil), s.values...)
}

// Key returns the key at position i.
func (s Series) Key(i int) string { return s.keys[i] }

// At returns the amount at position i.
func (s Series) At(i int) float64 { return s.values[i] }

// Value looks an amount up by key.
func (s Series) Value(key string) (float64, bool) {
	i, ok := s.index[key]
	if !ok {
		return 0, false
	}
	return s.values[i], true
}

// Sum returns the total of all amounts.
func (s Series) Sum() float64 { return floats.Sum(s.values) }

// Zeros returns a series with the same keys and every amount zero.
func (s Series) Zeros() Series {
	out, err := NewSeries(s.keys, make([]float64, len(s.keys)))
	if err != nil {
		panic(err) // keys already validated
	}
	return out
}

// WithValues returns a series with the same keys and the given amounts.
func (s Series) WithValues(values []float64) (Series, error) {
	return NewSeries(s.keys, values)
}
