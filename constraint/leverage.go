package constraint

import (
	"time"

	"github.com/aristath/tradeopt/cvx"
)

// MaxLeverage caps the gross exposure of the non-cash book: the L1 norm
// of the post-trade asset weights stays at or below the limit.
type MaxLeverage struct {
	limit float64
}

// NewMaxLeverage builds a gross leverage cap.
func NewMaxLeverage(limit float64) *MaxLeverage { return &MaxLeverage{limit: limit} }

// Name implements Model.
func (m *MaxLeverage) Name() string { return "max_leverage" }

// WeightExpr implements Model.
func (m *MaxLeverage) WeightExpr(_ time.Time, wplus, _ cvx.Vector, _ float64) (cvx.Constraint, error) {
	return cvx.Leq(cvx.Norm1(wplus[:len(wplus)-1]), cvx.Const(m.limit)), nil
}

// MaxTurnover caps one period's turnover: the L1 norm of the non-cash
// trade weights stays at or below the limit.
type MaxTurnover struct {
	limit float64
}

// NewMaxTurnover builds a turnover cap.
func NewMaxTurnover(limit float64) *MaxTurnover { return &MaxTurnover{limit: limit} }

// Name implements Model.
func (m *MaxTurnover) Name() string { return "max_turnover" }

// WeightExpr implements Model.
func (m *MaxTurnover) WeightExpr(_ time.Time, _, z cvx.Vector, _ float64) (cvx.Constraint, error) {
	return cvx.Leq(cvx.Norm1(z[:len(z)-1]), cvx.Const(m.limit)), nil
}

// DollarNeutral forces the long and short books to offset: the non-cash
// post-trade weights sum to zero.
type DollarNeutral struct{}

// NewDollarNeutral builds a dollar-neutral constraint.
func NewDollarNeutral() *DollarNeutral { return &DollarNeutral{} }

// Name implements Model.
func (m *DollarNeutral) Name() string { return "dollar_neutral" }

// WeightExpr implements Model.
func (m *DollarNeutral) WeightExpr(_ time.Time, wplus, _ cvx.Vector, _ float64) (cvx.Constraint, error) {
	return cvx.Eq(cvx.Sum(wplus[:len(wplus)-1]), cvx.Const(0)), nil
}
