// Package forecast defines where expected single-period returns come
// from. Estimation itself lives with the caller; this package only carries
// ready-made forecasts and guarantees index-for-index alignment with the
// requested assets.
package forecast

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel lookup failures, usable with errors.Is.
var (
	ErrNoForecast   = errors.New("forecast: no forecast for requested time")
	ErrUnknownAsset = errors.New("forecast: asset not covered")
)

// Source yields the expected single-period returns for a set of assets at
// a point in time. The returned slice aligns index-for-index with assets;
// a source must fail rather than fill gaps.
type Source interface {
	ReturnsAt(t time.Time, assets []string) ([]float64, error)
}

// Table is an in-memory forecast source indexed by exact timestamps. A
// lookup matches only a stored row's instant; there is no interpolation
// and no nearest-row fallback.
type Table struct {
	rows map[int64]map[string]float64
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{rows: make(map[int64]map[string]float64)}
}

// Set stores the forecast row for time t, replacing any previous row at
// the same instant. The map is copied.
func (tb *Table) Set(t time.Time, returns map[string]float64) {
	row := make(map[string]float64, len(returns))
	for k, v := range returns {
		row[k] = v
	}
	tb.rows[t.UnixNano()] = row
}

// ReturnsAt implements Source.
func (tb *Table) ReturnsAt(t time.Time, assets []string) ([]float64, error) {
	row, ok := tb.rows[t.UnixNano()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoForecast, t.Format(time.RFC3339))
	}
	out := make([]float64, len(assets))
	for i, a := range assets {
		v, ok := row[a]
		if !ok {
			return nil, fmt.Errorf("%w: %q at %s", ErrUnknownAsset, a, t.Format(time.RFC3339))
		}
		out[i] = v
	}
	return out, nil
}

// Constant serves the same per-asset returns for every period. Handy for
// ad-hoc runs and tests.
type Constant struct {
	returns map[string]float64
}

// NewConstant builds a constant source from per-asset returns. The map is
// copied.
func NewConstant(returns map[string]float64) *Constant {
	c := &Constant{returns: make(map[string]float64, len(returns))}
	for k, v := range returns {
		c.returns[k] = v
	}
	return c
}

// ReturnsAt implements Source; the timestamp is ignored.
func (c *Constant) ReturnsAt(_ time.Time, assets []string) ([]float64, error) {
	out := make([]float64, len(assets))
	for i, a := range assets {
		v, ok := c.returns[a]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, a)
		}
		out[i] = v
	}
	return out, nil
}
