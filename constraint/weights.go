package constraint

import (
	"time"

	"github.com/aristath/tradeopt/cvx"
)

// MaxWeight caps every non-cash post-trade weight at a fixed limit.
type MaxWeight struct {
	limit float64
}

// NewMaxWeight builds a max-weight bound.
func NewMaxWeight(limit float64) *MaxWeight { return &MaxWeight{limit: limit} }

// Name implements Model.
func (m *MaxWeight) Name() string { return "max_weight" }

// WeightExpr implements Model.
func (m *MaxWeight) WeightExpr(_ time.Time, wplus, _ cvx.Vector, _ float64) (cvx.Constraint, error) {
	return cvx.EachLeq(wplus[:len(wplus)-1], m.limit), nil
}

// MinWeight floors every non-cash post-trade weight at a fixed limit. A
// negative limit bounds how deep a single short may go.
type MinWeight struct {
	limit float64
}

// NewMinWeight builds a min-weight bound.
func NewMinWeight(limit float64) *MinWeight { return &MinWeight{limit: limit} }

// Name implements Model.
func (m *MinWeight) Name() string { return "min_weight" }

// WeightExpr implements Model.
func (m *MinWeight) WeightExpr(_ time.Time, wplus, _ cvx.Vector, _ float64) (cvx.Constraint, error) {
	return cvx.EachGeq(wplus[:len(wplus)-1], m.limit), nil
}

// LongOnly forbids short positions and cash borrowing: the whole
// post-trade book, cash included, stays nonnegative.
type LongOnly struct{}

// NewLongOnly builds a long-only constraint.
func NewLongOnly() *LongOnly { return &LongOnly{} }

// Name implements Model.
func (m *LongOnly) Name() string { return "long_only" }

// WeightExpr implements Model.
func (m *LongOnly) WeightExpr(_ time.Time, wplus, _ cvx.Vector, _ float64) (cvx.Constraint, error) {
	return cvx.EachGeq(wplus, 0), nil
}
