package cvx

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LinearProgram is the lowered general form of a problem:
//
//	minimize  C'x
//	subject to G x <= H
//	           A x  = B
//
// over a free x. The piecewise-linear atoms (abs, max, min and their
// derivatives) are lowered exactly through auxiliary epigraph columns, so
// the auxiliary columns share x with the declared variables. Extract
// recovers the block of x that belongs to a declared variable.
type LinearProgram struct {
	C []float64
	G *mat.Dense // nil when the program has no inequalities
	H []float64
	A *mat.Dense // nil when the program has no equalities
	B []float64

	cols     int
	offs     map[int64]int
	objConst float64
	maximize bool
}

// Cols returns the number of columns of x, auxiliary columns included.
func (p *LinearProgram) Cols() int { return p.cols }

// Extract returns the block of the solution x that belongs to v.
func (p *LinearProgram) Extract(v *Variable, x []float64) ([]float64, error) {
	off, ok := p.offs[v.id]
	if !ok {
		return nil, fmt.Errorf("cvx: variable %q is not part of this program", v.name)
	}
	if len(x) != p.cols {
		return nil, fmt.Errorf("cvx: solution has %d entries, program has %d columns", len(x), p.cols)
	}
	out := make([]float64, v.n)
	copy(out, x[off:off+v.n])
	return out, nil
}

// ObjectiveAt evaluates the problem objective at solution x in the
// caller's sense, so a maximization reports the maximized value.
func (p *LinearProgram) ObjectiveAt(x []float64) float64 {
	d := floats.Dot(p.C, x)
	if p.maximize {
		return p.objConst - d
	}
	return p.objConst + d
}

// linForm is an affine function of the program columns: coef'x + c.
type linForm struct {
	coef map[int]float64
	c    float64
}

func newForm() linForm { return linForm{coef: map[int]float64{}} }

// add accumulates k times g into f.
func (f *linForm) add(g linForm, k float64) {
	for j, v := range g.coef {
		f.coef[j] += k * v
	}
	f.c += k * g.c
}

type compiler struct {
	cols int
	offs map[int64]int
	ineq []linForm // rows constrained form <= 0
	eq   []linForm // rows constrained form == 0
}

// column returns the program column of entry i of v, allocating the
// variable's block on first use.
func (cp *compiler) column(v *Variable, i int) int {
	off, ok := cp.offs[v.id]
	if !ok {
		off = cp.cols
		cp.offs[v.id] = off
		cp.cols += v.n
	}
	return off + i
}

// aux allocates one auxiliary epigraph column.
func (cp *compiler) aux() int {
	j := cp.cols
	cp.cols++
	return j
}

// constValue evaluates an expression with no variable leaves; it reports
// false as soon as a variable makes the value unknowable. Nonlinear atoms
// over constants have Constant curvature, so the lowering passes accept
// them wherever Validate does and fold them to their value.
func constValue(e Expr) (float64, bool) {
	switch n := e.(type) {
	case *constExpr:
		return n.v, true
	case *addExpr:
		var sum float64
		for _, t := range n.terms {
			v, ok := constValue(t)
			if !ok {
				return 0, false
			}
			sum += v
		}
		return sum, true
	case *scaleExpr:
		v, ok := constValue(n.arg)
		if !ok {
			return 0, false
		}
		return n.k * v, true
	case *absExpr:
		v, ok := constValue(n.arg)
		if !ok {
			return 0, false
		}
		return math.Abs(v), true
	case *maxExpr:
		best, ok := constValue(n.args[0])
		if !ok {
			return 0, false
		}
		for _, a := range n.args[1:] {
			v, ok := constValue(a)
			if !ok {
				return 0, false
			}
			best = math.Max(best, v)
		}
		return best, true
	case *minExpr:
		best, ok := constValue(n.args[0])
		if !ok {
			return 0, false
		}
		for _, a := range n.args[1:] {
			v, ok := constValue(a)
			if !ok {
				return 0, false
			}
			best = math.Min(best, v)
		}
		return best, true
	default:
		return 0, false
	}
}

// affine lowers an exactly-affine expression; anything else is an error.
func (cp *compiler) affine(e Expr) (linForm, error) {
	switch n := e.(type) {
	case *constExpr:
		f := newForm()
		f.c = n.v
		return f, nil
	case *varEntry:
		f := newForm()
		f.coef[cp.column(n.v, n.i)] = 1
		return f, nil
	case *addExpr:
		f := newForm()
		for _, t := range n.terms {
			g, err := cp.affine(t)
			if err != nil {
				return linForm{}, err
			}
			f.add(g, 1)
		}
		return f, nil
	case *scaleExpr:
		g, err := cp.affine(n.arg)
		if err != nil {
			return linForm{}, err
		}
		f := newForm()
		f.add(g, n.k)
		return f, nil
	default:
		if v, ok := constValue(e); ok {
			f := newForm()
			f.c = v
			return f, nil
		}
		return linForm{}, fmt.Errorf("cvx: %s expression where affine is required", e.Curvature())
	}
}

// upper lowers a convex expression to an affine form bounded below by it:
// the returned form, together with the emitted rows, dominates e wherever
// the rows hold, and matches it at the optimum.
func (cp *compiler) upper(e Expr) (linForm, error) {
	switch n := e.(type) {
	case *constExpr, *varEntry:
		return cp.affine(e)
	case *addExpr:
		f := newForm()
		for _, t := range n.terms {
			g, err := cp.upper(t)
			if err != nil {
				return linForm{}, err
			}
			f.add(g, 1)
		}
		return f, nil
	case *scaleExpr:
		var (
			g   linForm
			err error
		)
		if n.k >= 0 {
			g, err = cp.upper(n.arg)
		} else {
			g, err = cp.lower(n.arg)
		}
		if err != nil {
			return linForm{}, err
		}
		f := newForm()
		f.add(g, n.k)
		return f, nil
	case *absExpr:
		arg, err := cp.affine(n.arg)
		if err != nil {
			return linForm{}, fmt.Errorf("cvx: abs argument: %w", err)
		}
		t := cp.aux()
		pos := newForm()
		pos.add(arg, 1)
		pos.coef[t] -= 1
		cp.ineq = append(cp.ineq, pos) // arg - t <= 0
		neg := newForm()
		neg.add(arg, -1)
		neg.coef[t] -= 1
		cp.ineq = append(cp.ineq, neg) // -arg - t <= 0
		f := newForm()
		f.coef[t] = 1
		return f, nil
	case *maxExpr:
		forms := make([]linForm, 0, len(n.args))
		for _, a := range n.args {
			g, err := cp.upper(a)
			if err != nil {
				return linForm{}, fmt.Errorf("cvx: max argument: %w", err)
			}
			forms = append(forms, g)
		}
		// The epigraph column follows its arguments' columns.
		t := cp.aux()
		for _, g := range forms {
			g.coef[t] -= 1
			cp.ineq = append(cp.ineq, g) // arg - t <= 0
		}
		f := newForm()
		f.coef[t] = 1
		return f, nil
	default:
		if v, ok := constValue(e); ok {
			f := newForm()
			f.c = v
			return f, nil
		}
		return linForm{}, fmt.Errorf("cvx: %s expression where convex is required", e.Curvature())
	}
}

// lower is the concave mirror of upper.
func (cp *compiler) lower(e Expr) (linForm, error) {
	switch n := e.(type) {
	case *constExpr, *varEntry:
		return cp.affine(e)
	case *addExpr:
		f := newForm()
		for _, t := range n.terms {
			g, err := cp.lower(t)
			if err != nil {
				return linForm{}, err
			}
			f.add(g, 1)
		}
		return f, nil
	case *scaleExpr:
		var (
			g   linForm
			err error
		)
		if n.k >= 0 {
			g, err = cp.lower(n.arg)
		} else {
			g, err = cp.upper(n.arg)
		}
		if err != nil {
			return linForm{}, err
		}
		f := newForm()
		f.add(g, n.k)
		return f, nil
	case *minExpr:
		forms := make([]linForm, 0, len(n.args))
		for _, a := range n.args {
			g, err := cp.lower(a)
			if err != nil {
				return linForm{}, fmt.Errorf("cvx: min argument: %w", err)
			}
			forms = append(forms, g)
		}
		// The hypograph column follows its arguments' columns.
		t := cp.aux()
		for _, g := range forms {
			row := newForm()
			row.coef[t] = 1
			row.add(g, -1)
			cp.ineq = append(cp.ineq, row) // t - arg <= 0
		}
		f := newForm()
		f.coef[t] = 1
		return f, nil
	default:
		if v, ok := constValue(e); ok {
			f := newForm()
			f.c = v
			return f, nil
		}
		return linForm{}, fmt.Errorf("cvx: %s expression where concave is required", e.Curvature())
	}
}

func (cp *compiler) constraint(c Constraint) error {
	if len(c.lhs) != len(c.rhs) {
		return fmt.Errorf("cvx: constraint sides have %d and %d entries", len(c.lhs), len(c.rhs))
	}
	for i := range c.lhs {
		switch c.op {
		case opEq:
			l, err := cp.affine(c.lhs[i])
			if err != nil {
				return err
			}
			r, err := cp.affine(c.rhs[i])
			if err != nil {
				return err
			}
			l.add(r, -1)
			cp.eq = append(cp.eq, l)
		case opLeq:
			l, err := cp.upper(c.lhs[i])
			if err != nil {
				return err
			}
			r, err := cp.lower(c.rhs[i])
			if err != nil {
				return err
			}
			l.add(r, -1)
			cp.ineq = append(cp.ineq, l)
		}
	}
	return nil
}

// Compile lowers a problem to general linear-program form. It re-validates
// the program first, so a rule violation anywhere fails the compile.
func Compile(p *Problem) (*LinearProgram, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cp := &compiler{offs: map[int64]int{}}

	var (
		obj linForm
		err error
	)
	if p.obj.maximize {
		obj, err = cp.lower(p.obj.expr)
	} else {
		obj, err = cp.upper(p.obj.expr)
	}
	if err != nil {
		return nil, fmt.Errorf("cvx: objective: %w", err)
	}
	for i, c := range p.cons {
		if err := cp.constraint(c); err != nil {
			return nil, fmt.Errorf("cvx: constraint %d: %w", i, err)
		}
	}
	if cp.cols == 0 {
		return nil, errors.New("cvx: program has no variables")
	}

	out := &LinearProgram{
		C:        make([]float64, cp.cols),
		cols:     cp.cols,
		offs:     cp.offs,
		objConst: obj.c,
		maximize: p.obj.maximize,
	}
	for j, v := range obj.coef {
		if p.obj.maximize {
			out.C[j] = -v
		} else {
			out.C[j] = v
		}
	}
	if len(cp.ineq) > 0 {
		out.G = mat.NewDense(len(cp.ineq), cp.cols, nil)
		out.H = make([]float64, len(cp.ineq))
		for i, row := range cp.ineq {
			for j, v := range row.coef {
				out.G.Set(i, j, v)
			}
			out.H[i] = -row.c
		}
	}
	if len(cp.eq) > 0 {
		out.A = mat.NewDense(len(cp.eq), cp.cols, nil)
		out.B = make([]float64, len(cp.eq))
		for i, row := range cp.eq {
			for j, v := range row.coef {
				out.A.Set(i, j, v)
			}
			out.B[i] = -row.c
		}
	}
	return out, nil
}
