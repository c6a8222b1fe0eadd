package cost

import (
	"fmt"
	"time"

	"github.com/aristath/tradeopt/cvx"
)

// TradingCost models linear transaction costs: every non-cash trade pays
// its half-spread, sum_i spread_i * |z_i|.
type TradingCost struct {
	halfSpread  float64
	halfSpreads []float64
}

// NewTradingCost prices every asset at the same half-spread.
func NewTradingCost(halfSpread float64) *TradingCost {
	return &TradingCost{halfSpread: halfSpread}
}

// NewTradingCostPerAsset prices each non-cash asset individually. The
// slice aligns with the non-cash prefix of the holdings.
func NewTradingCostPerAsset(halfSpreads []float64) *TradingCost {
	return &TradingCost{halfSpreads: append([]float64(nil), halfSpreads...)}
}

// Name implements Model.
func (c *TradingCost) Name() string { return "trading_cost" }

// WeightExpr implements Model.
func (c *TradingCost) WeightExpr(_ time.Time, _, z cvx.Vector, _ float64) (cvx.Expr, []cvx.Constraint, error) {
	trades := z[:len(z)-1]
	if c.halfSpreads != nil && len(c.halfSpreads) != len(trades) {
		return nil, nil, fmt.Errorf("cost: %d half-spreads for %d non-cash assets", len(c.halfSpreads), len(trades))
	}
	terms := make([]cvx.Expr, len(trades))
	for i, zi := range trades {
		k := c.halfSpread
		if c.halfSpreads != nil {
			k = c.halfSpreads[i]
		}
		terms[i] = cvx.Scale(k, cvx.Abs(zi))
	}
	return cvx.Add(terms...), nil, nil
}
