// Package strategy assembles and solves the single-period portfolio
// optimization program. One call per rebalancing period: holdings and a
// timestamp in, a trade list in currency units out, with infeasible
// programs, non-convex provider output and solver faults reported as
// typed failures.
package strategy

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/aristath/tradeopt/constraint"
	"github.com/aristath/tradeopt/cost"
	"github.com/aristath/tradeopt/cvx"
	"github.com/aristath/tradeopt/forecast"
	"github.com/aristath/tradeopt/portfolio"
	"github.com/aristath/tradeopt/solver"
)

// Config assembles an SPO strategy.
type Config struct {
	// Costs contribute convex cost expressions and auxiliary
	// constraints. The expressions are validated but kept out of the
	// objective; see GenerateTradeList.
	Costs []cost.Model

	// Constraints is the active constraint set. Nil selects
	// constraint.Defaults(); an empty non-nil slice means no constraints
	// beyond self-financing.
	Constraints []constraint.Model

	// Solver runs the compiled program. Nil selects solver.Default().
	Solver solver.Solver

	// SolverOptions is forwarded to every solve.
	SolverOptions solver.Options
}

// SPO is the single-period optimization strategy. It maximizes the
// forecast-return of the post-trade book subject to self-financing and the
// configured constraint set.
//
// An SPO is immutable once configured. GenerateTradeList keeps all of its
// state on the stack, so concurrent calls on one configured strategy are
// safe.
type SPO struct {
	costs       []cost.Model
	constraints []constraint.Model
	solver      solver.Solver
	opts        solver.Options
	log         zerolog.Logger

	forecasts forecast.Source
}

// NewSPO builds the strategy. Zero-value Config fields fall back to the
// default constraint set and solver.
func NewSPO(cfg Config, log zerolog.Logger) *SPO {
	cons := cfg.Constraints
	if cons == nil {
		cons = constraint.Defaults()
	}
	sol := cfg.Solver
	if sol == nil {
		sol = solver.Default()
	}
	return &SPO{
		costs:       append([]cost.Model(nil), cfg.Costs...),
		constraints: append([]constraint.Model(nil), cons...),
		solver:      sol,
		opts:        cfg.SolverOptions,
		log:         log.With().Str("component", "strategy.spo").Logger(),
	}
}

// Configure wires the forecast-return source. It must be called exactly
// once, before the first GenerateTradeList.
func (s *SPO) Configure(src forecast.Source) error {
	if src == nil {
		return errors.New("strategy: nil forecast source")
	}
	if s.forecasts != nil {
		return errors.New("strategy: already configured")
	}
	s.forecasts = src
	return nil
}

// GenerateTradeList computes the trades for one rebalancing period.
//
// holdings maps assets to currency amounts with the cash account as the
// final entry; a zero t means now. The returned series has the same keys
// in the same order as holdings and sums to zero up to solver tolerance.
//
// An unbounded program is not an error: it logs a warning and returns the
// all-zero trade list. Infeasible programs return ErrInfeasible, provider
// output that breaks convexity returns ErrNonConvex, forecast data that
// comes back misaligned or non-finite returns ErrBadForecast, and backend
// faults return ErrSolverFailed naming the solver.
func (s *SPO) GenerateTradeList(holdings portfolio.Series, t time.Time) (portfolio.Series, error) {
	if s.forecasts == nil {
		return portfolio.Series{}, fmt.Errorf("%w: call Configure first", ErrNotConfigured)
	}
	if t.IsZero() {
		t = time.Now()
	}

	n := holdings.Len()
	if n == 0 {
		return portfolio.Series{}, fmt.Errorf("%w: empty holdings", ErrDegeneratePortfolio)
	}
	w := holdings.Values()
	for i, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return portfolio.Series{}, fmt.Errorf("%w: non-finite amount for %q", ErrDegeneratePortfolio, holdings.Key(i))
		}
	}
	value := holdings.Sum()
	if value <= 0 {
		return portfolio.Series{}, fmt.Errorf("%w: total value %g", ErrDegeneratePortfolio, value)
	}
	floats.Scale(1/value, w)

	alphaVec, err := s.forecasts.ReturnsAt(t, holdings.Keys())
	if err != nil {
		return portfolio.Series{}, fmt.Errorf("strategy: forecast lookup: %w", err)
	}
	if len(alphaVec) != n {
		return portfolio.Series{}, fmt.Errorf("%w: %d returns for %d assets", ErrBadForecast, len(alphaVec), n)
	}
	for i, r := range alphaVec {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return portfolio.Series{}, fmt.Errorf("%w: non-finite return for %q", ErrBadForecast, holdings.Key(i))
		}
	}

	z := cvx.NewVariable(n, "z")
	zVec := z.AsVector()
	wplus := cvx.AddVec(cvx.ConstVector(w), zVec)

	alpha := cvx.Dot(alphaVec, wplus)
	if curv := alpha.Curvature(); !curv.IsConcave() {
		return portfolio.Series{}, fmt.Errorf("%w: forecast-return term is %s, want concave", ErrNonConvex, curv)
	}

	cons := make([]cvx.Constraint, 0, len(s.constraints)+1)
	// Trades release and consume cash in equal measure.
	cons = append(cons, cvx.Eq(cvx.Sum(zVec), cvx.Const(0)))

	for _, m := range s.costs {
		expr, extra, err := m.WeightExpr(t, wplus, zVec, value)
		if err != nil {
			return portfolio.Series{}, fmt.Errorf("strategy: cost %s: %w", m.Name(), err)
		}
		if curv := expr.Curvature(); !curv.IsConvex() {
			return portfolio.Series{}, fmt.Errorf("%w: cost %s is %s, want convex", ErrNonConvex, m.Name(), curv)
		}
		for _, c := range extra {
			if err := c.Validate(); err != nil {
				return portfolio.Series{}, fmt.Errorf("%w: cost %s: %v", ErrNonConvex, m.Name(), err)
			}
		}
		cons = append(cons, extra...)
	}

	for _, m := range s.constraints {
		c, err := m.WeightExpr(t, wplus, zVec, value)
		if err != nil {
			return portfolio.Series{}, fmt.Errorf("strategy: constraint %s: %w", m.Name(), err)
		}
		if err := c.Validate(); err != nil {
			return portfolio.Series{}, fmt.Errorf("%w: constraint %s: %v", ErrNonConvex, m.Name(), err)
		}
		cons = append(cons, c)
	}

	// Cost expressions contribute their auxiliary constraints only; the
	// objective is the forecast-return term alone.
	prob := cvx.NewProblem(cvx.Maximize(alpha), cons)

	res, err := s.solver.Solve(prob, s.opts)
	if err != nil {
		return portfolio.Series{}, fmt.Errorf("%w: %s: %w", ErrSolverFailed, s.solver.Name(), err)
	}

	switch res.Status {
	case solver.Optimal:
	case solver.Unbounded:
		s.log.Warn().Time("t", t).Msg("problem is unbounded, returning zero trades")
		return holdings.Zeros(), nil
	case solver.Infeasible:
		return portfolio.Series{}, fmt.Errorf("%w at %s", ErrInfeasible, t.Format(time.RFC3339))
	default:
		return portfolio.Series{}, fmt.Errorf("%w: %s: unexpected status %s", ErrSolverFailed, s.solver.Name(), res.Status)
	}

	zOpt, err := res.ValuesOf(z)
	if err != nil {
		return portfolio.Series{}, fmt.Errorf("%w: %s: %w", ErrSolverFailed, s.solver.Name(), err)
	}
	floats.Scale(value, zOpt)
	trades, err := holdings.WithValues(zOpt)
	if err != nil {
		return portfolio.Series{}, fmt.Errorf("strategy: assembling trade list: %w", err)
	}

	s.log.Debug().
		Time("t", t).
		Float64("objective", res.Objective).
		Float64("value", value).
		Msg("trade list generated")
	return trades, nil
}
