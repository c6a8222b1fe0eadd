// Package solver runs compiled convex programs and classifies their
// terminal states. Infeasibility and unboundedness are ordinary outcomes
// reported through Status; only internal backend faults surface as errors.
package solver

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/tradeopt/cvx"
)

// Status is the terminal state of a solve.
type Status int

const (
	Optimal Status = iota
	Unbounded
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Unbounded:
		return "unbounded"
	case Infeasible:
		return "infeasible"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Options tunes a solve. The zero value asks for backend defaults.
type Options struct {
	// Tol is the optimality tolerance forwarded to the backend; zero
	// means the backend default. The simplex backend exposes no
	// deadline, so there is no timeout knob here.
	Tol float64
}

// Result is the outcome of a solve. Objective and variable values are
// meaningful only when Status is Optimal.
type Result struct {
	Status    Status
	Objective float64

	prog *cvx.LinearProgram
	x    []float64
}

// ValuesOf returns the optimal values of v.
func (r Result) ValuesOf(v *cvx.Variable) ([]float64, error) {
	if r.Status != Optimal || r.prog == nil {
		return nil, fmt.Errorf("solver: no solution to read, status is %s", r.Status)
	}
	return r.prog.Extract(v, r.x)
}

// Solver solves convex programs.
type Solver interface {
	// Name identifies the backend in logs and failure reports.
	Name() string
	// Solve runs a single solve of p. A non-nil error means the backend
	// faulted; infeasible and unbounded programs come back as statuses
	// with a nil error.
	Solve(p *cvx.Problem, opts Options) (Result, error)
}

// Default returns the backend used when none is configured.
func Default() Solver { return NewSimplex(zerolog.Nop()) }

// ByName selects a backend by name; the empty name selects the default.
func ByName(name string, log zerolog.Logger) (Solver, error) {
	switch strings.ToLower(name) {
	case "", "simplex":
		return NewSimplex(log), nil
	default:
		return nil, fmt.Errorf("solver: unknown backend %q", name)
	}
}
