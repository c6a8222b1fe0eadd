// Package constraint defines the pluggable portfolio constraint providers
// of the optimization strategy and the stock models used by most setups:
// position bounds, leverage and turnover caps, long-only and
// dollar-neutral books.
package constraint

import (
	"time"

	"github.com/aristath/tradeopt/cvx"
)

// Model contributes one constraint to the program.
//
// wplus holds the post-trade weights and z the trade weights, both with
// the cash account as their final entry. value is the total portfolio
// value in currency units. The returned constraint must satisfy the
// disciplined-convex rules; the strategy re-validates it at the boundary.
type Model interface {
	// Name identifies the model in logs and validation failures.
	Name() string

	WeightExpr(t time.Time, wplus, z cvx.Vector, value float64) (cvx.Constraint, error)
}

// Defaults is the constraint set applied when a strategy is built without
// an explicit one: five-percent position bounds either side and twice
// gross leverage.
func Defaults() []Model {
	return []Model{
		NewMaxWeight(0.05),
		NewMinWeight(-0.05),
		NewMaxLeverage(2.0),
	}
}
