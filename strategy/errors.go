package strategy

import "errors"

// Failure kinds of GenerateTradeList. The strategy wraps these with
// context, so callers dispatch with errors.Is.
var (
	// ErrNotConfigured flags a GenerateTradeList call before Configure.
	ErrNotConfigured = errors.New("strategy: forecast source not configured")

	// ErrDegeneratePortfolio flags holdings that cannot be normalized:
	// empty, carrying non-finite amounts, or with non-positive total
	// value.
	ErrDegeneratePortfolio = errors.New("strategy: degenerate portfolio")

	// ErrBadForecast flags a forecast source whose returns came back
	// misaligned with the holdings or non-finite.
	ErrBadForecast = errors.New("strategy: bad forecast data")

	// ErrNonConvex flags a provider whose expression broke the
	// disciplined-convex rules.
	ErrNonConvex = errors.New("strategy: non-convex program")

	// ErrInfeasible flags a constraint set admitting no portfolio.
	ErrInfeasible = errors.New("strategy: problem is infeasible")

	// ErrSolverFailed flags an internal backend fault; the wrapped error
	// names the solver.
	ErrSolverFailed = errors.New("strategy: solver failed")
)
