package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_ExactMatch(t *testing.T) {
	ts := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	tb := NewTable()
	tb.Set(ts, map[string]float64{"A": 0.02, "B": 0.01})

	got, err := tb.ReturnsAt(ts, []string{"B", "A"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.01, 0.02}, got)

	_, err = tb.ReturnsAt(ts.Add(time.Second), []string{"A"})
	assert.ErrorIs(t, err, ErrNoForecast)

	_, err = tb.ReturnsAt(ts, []string{"A", "C"})
	assert.ErrorIs(t, err, ErrUnknownAsset)
}

func TestTable_SetReplacesRow(t *testing.T) {
	ts := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	tb := NewTable()
	tb.Set(ts, map[string]float64{"A": 0.1})
	tb.Set(ts, map[string]float64{"A": 0.2})

	got, err := tb.ReturnsAt(ts, []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2}, got)
}

func TestConstant_IgnoresTime(t *testing.T) {
	c := NewConstant(map[string]float64{"A": 0.05, "cash": 0})

	first, err := c.ReturnsAt(time.Time{}, []string{"A", "cash"})
	require.NoError(t, err)
	second, err := c.ReturnsAt(time.Now(), []string{"A", "cash"})
	require.NoError(t, err)

	assert.Equal(t, []float64{0.05, 0}, first)
	assert.Equal(t, first, second)

	_, err = c.ReturnsAt(time.Now(), []string{"B"})
	assert.ErrorIs(t, err, ErrUnknownAsset)
}
