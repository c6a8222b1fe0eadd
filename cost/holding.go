package cost

import (
	"time"

	"github.com/aristath/tradeopt/cvx"
)

// HoldingCost charges a borrow rate on the short side of the post-trade
// book: sum_i rate * max(-wplus_i, 0) over the non-cash assets.
type HoldingCost struct {
	borrowRate float64
}

// NewHoldingCost builds a holding cost with a flat borrow rate per period.
func NewHoldingCost(borrowRate float64) *HoldingCost {
	return &HoldingCost{borrowRate: borrowRate}
}

// Name implements Model.
func (c *HoldingCost) Name() string { return "holding_cost" }

// WeightExpr implements Model.
func (c *HoldingCost) WeightExpr(_ time.Time, wplus, _ cvx.Vector, _ float64) (cvx.Expr, []cvx.Constraint, error) {
	book := wplus[:len(wplus)-1]
	terms := make([]cvx.Expr, len(book))
	for i, wi := range book {
		terms[i] = cvx.Scale(c.borrowRate, cvx.NegPart(wi))
	}
	return cvx.Add(terms...), nil, nil
}
