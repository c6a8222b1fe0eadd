package solver

import (
	"errors"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/aristath/tradeopt/cvx"
)

// Simplex solves lowered programs with gonum's dense simplex method. The
// general form produced by cvx.Compile is converted to the standard form
// lp.Simplex expects: every free column x_j is split into x_j = u_j - v_j
// with u, v >= 0 and every inequality row gets a slack column. Equality
// rows that are linear combinations of earlier ones are dropped first;
// lp.Simplex needs the equality block at full row rank.
type Simplex struct {
	log zerolog.Logger
}

// NewSimplex builds the simplex backend.
func NewSimplex(log zerolog.Logger) *Simplex {
	return &Simplex{log: log.With().Str("component", "solver.simplex").Logger()}
}

// Name implements Solver.
func (s *Simplex) Name() string { return "simplex" }

// Solve implements Solver.
func (s *Simplex) Solve(p *cvx.Problem, opts Options) (Result, error) {
	prog, err := cvx.Compile(p)
	if err != nil {
		return Result{}, err
	}

	if prog.A != nil {
		before, _ := prog.A.Dims()
		eqA, eqB, consistent := reduceEqualities(prog.A, prog.B)
		if !consistent {
			return Result{Status: Infeasible}, nil
		}
		prog.A, prog.B = eqA, eqB
		after := 0
		if eqA != nil {
			after, _ = eqA.Dims()
		}
		if after < before {
			s.log.Debug().Int("dropped", before-after).Msg("removed dependent equality rows")
		}
	}

	c, a, b := standardForm(prog)
	if a == nil {
		// No constraints at all: the program is unbounded unless the
		// objective ignores every column.
		for _, cj := range prog.C {
			if cj != 0 {
				return Result{Status: Unbounded}, nil
			}
		}
		x := make([]float64, prog.Cols())
		return Result{Status: Optimal, Objective: prog.ObjectiveAt(x), prog: prog, x: x}, nil
	}

	rows, cols := a.Dims()
	s.log.Debug().
		Int("columns", prog.Cols()).
		Int("standard_columns", cols).
		Int("rows", rows).
		Msg("solving linear program")

	_, xs, err := lp.Simplex(c, a, b, opts.Tol, nil)
	switch {
	case err == nil:
	case errors.Is(err, lp.ErrUnbounded):
		return Result{Status: Unbounded}, nil
	case errors.Is(err, lp.ErrInfeasible):
		return Result{Status: Infeasible}, nil
	default:
		// The backend error keeps its own prefix; callers name the
		// solver when they wrap.
		return Result{}, err
	}

	x := foldSolution(prog.Cols(), xs)
	return Result{Status: Optimal, Objective: prog.ObjectiveAt(x), prog: prog, x: x}, nil
}

// depTol classifies a residual as zero during equality-row reduction.
const depTol = 1e-9

// reduceEqualities drops equality rows that are linear combinations of
// the rows above them, keeping the coefficients of the rows it keeps
// untouched. Reports consistent=false when a dependent row contradicts
// the rows implying it, which proves the system infeasible.
func reduceEqualities(eqA *mat.Dense, eqB []float64) (*mat.Dense, []float64, bool) {
	rows, cols := eqA.Dims()

	type pivot struct {
		row []float64
		rhs float64
		col int
	}
	pivots := make([]pivot, 0, rows)
	keep := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		v := mat.Row(nil, i, eqA)
		rhs := eqB[i]
		for _, p := range pivots {
			f := v[p.col] / p.row[p.col]
			if f == 0 {
				continue
			}
			floats.AddScaled(v, -f, p.row)
			rhs -= f * p.rhs
		}
		lead := -1
		for j, vj := range v {
			if math.Abs(vj) > depTol {
				lead = j
				break
			}
		}
		if lead < 0 {
			if math.Abs(rhs) > depTol {
				return nil, nil, false
			}
			continue
		}
		pivots = append(pivots, pivot{row: v, rhs: rhs, col: lead})
		keep = append(keep, i)
	}

	if len(keep) == rows {
		return eqA, eqB, true
	}
	if len(keep) == 0 {
		return nil, nil, true
	}
	out := mat.NewDense(len(keep), cols, nil)
	rhs := make([]float64, len(keep))
	for k, i := range keep {
		out.SetRow(k, mat.Row(nil, i, eqA))
		rhs[k] = eqB[i]
	}
	return out, rhs, true
}

// standardForm converts minimize C'x, Gx <= H, Ax = B over free x into
// minimize c'y, a y = b, y >= 0 with y = [u v s]: the positive and
// negative parts of x followed by one slack per inequality row. Returns a
// nil matrix when the program has no rows.
func standardForm(p *cvx.LinearProgram) ([]float64, *mat.Dense, []float64) {
	n := p.Cols()
	var mi, me int
	if p.G != nil {
		mi, _ = p.G.Dims()
	}
	if p.A != nil {
		me, _ = p.A.Dims()
	}
	rows := mi + me
	if rows == 0 {
		return nil, nil, nil
	}
	cols := 2*n + mi

	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	for i := 0; i < mi; i++ {
		for j := 0; j < n; j++ {
			if g := p.G.At(i, j); g != 0 {
				a.Set(i, j, g)
				a.Set(i, n+j, -g)
			}
		}
		a.Set(i, 2*n+i, 1)
		b[i] = p.H[i]
	}
	for k := 0; k < me; k++ {
		for j := 0; j < n; j++ {
			if v := p.A.At(k, j); v != 0 {
				a.Set(mi+k, j, v)
				a.Set(mi+k, n+j, -v)
			}
		}
		b[mi+k] = p.B[k]
	}

	c := make([]float64, cols)
	for j := 0; j < n; j++ {
		c[j] = p.C[j]
		c[n+j] = -p.C[j]
	}
	return c, a, b
}

// foldSolution recombines the split columns into the original free x.
func foldSolution(n int, xs []float64) []float64 {
	x := make([]float64, n)
	for j := 0; j < n; j++ {
		x[j] = xs[j] - xs[n+j]
	}
	return x
}
