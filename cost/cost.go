// Package cost defines the pluggable cost providers of the optimization
// strategy. A cost model translates a trade and post-trade book into a
// convex expression in weight space; the strategy validates convexity at
// the boundary and carries the model's auxiliary constraints into the
// program.
package cost

import (
	"time"

	"github.com/aristath/tradeopt/cvx"
)

// Model contributes one convex cost expression to the program.
//
// wplus holds the post-trade weights and z the trade weights, both with
// the cash account as their final entry. value is the total portfolio
// value in currency units, for models that need absolute scale. The
// returned expression must be convex; the returned constraints must
// themselves validate and are added to the program alongside the
// strategy's own.
type Model interface {
	// Name identifies the model in logs and validation failures.
	Name() string

	WeightExpr(t time.Time, wplus, z cvx.Vector, value float64) (cvx.Expr, []cvx.Constraint, error)
}
