// Package cvx is a small convex expression language for assembling linear
// and piecewise-linear optimization programs. Expressions track their
// curvature under the disciplined-convex composition rules, constraints
// and problems validate against those rules, and Compile lowers a valid
// problem to general linear-program form for a backend to solve.
//
// The node set is closed: expressions are built only through the package
// constructors, so a provable curvature can never be invalidated from the
// outside.
package cvx

// Expr is a scalar expression over optimization variables.
type Expr interface {
	// Curvature classifies the expression under the disciplined-convex
	// composition rules.
	Curvature() Curvature

	exprNode()
}

type constExpr struct {
	v float64
}

type varEntry struct {
	v *Variable
	i int
}

type addExpr struct {
	terms []Expr
}

type scaleExpr struct {
	k   float64
	arg Expr
}

type absExpr struct {
	arg Expr
}

type maxExpr struct {
	args []Expr
}

type minExpr struct {
	args []Expr
}

func (*constExpr) exprNode() {}
func (*varEntry) exprNode()  {}
func (*addExpr) exprNode()   {}
func (*scaleExpr) exprNode() {}
func (*absExpr) exprNode()   {}
func (*maxExpr) exprNode()   {}
func (*minExpr) exprNode()   {}

func (*constExpr) Curvature() Curvature { return Constant }
func (*varEntry) Curvature() Curvature  { return Affine }

func (e *addExpr) Curvature() Curvature {
	c := Constant
	for _, t := range e.terms {
		c = addCurv(c, t.Curvature())
	}
	return c
}

func (e *scaleExpr) Curvature() Curvature {
	return scaleCurv(e.k, e.arg.Curvature())
}

func (e *absExpr) Curvature() Curvature {
	switch c := e.arg.Curvature(); {
	case c == Constant:
		return Constant
	case c.IsAffine():
		return Convex
	default:
		return Unknown
	}
}

func (e *maxExpr) Curvature() Curvature {
	c := Constant
	for _, a := range e.args {
		ac := a.Curvature()
		if !ac.IsConvex() {
			return Unknown
		}
		if ac != Constant {
			c = Convex
		}
	}
	return c
}

func (e *minExpr) Curvature() Curvature {
	c := Constant
	for _, a := range e.args {
		ac := a.Curvature()
		if !ac.IsConcave() {
			return Unknown
		}
		if ac != Constant {
			c = Concave
		}
	}
	return c
}

// Const returns a constant expression.
func Const(v float64) Expr { return &constExpr{v: v} }

// Add returns the sum of terms. Add of nothing is Const(0).
func Add(terms ...Expr) Expr {
	switch len(terms) {
	case 0:
		return Const(0)
	case 1:
		return terms[0]
	}
	return &addExpr{terms: append([]Expr(nil), terms...)}
}

// Scale returns k times arg.
func Scale(k float64, arg Expr) Expr { return &scaleExpr{k: k, arg: arg} }

// Neg returns the negation of arg.
func Neg(arg Expr) Expr { return Scale(-1, arg) }

// Sub returns a minus b.
func Sub(a, b Expr) Expr { return Add(a, Neg(b)) }

// Abs returns the absolute value of arg. The argument must be affine for
// the result to validate.
func Abs(arg Expr) Expr { return &absExpr{arg: arg} }

// Max returns the pointwise maximum of args; it needs at least one
// argument. Convex when every argument is convex.
func Max(args ...Expr) Expr {
	if len(args) == 0 {
		panic("cvx: Max needs at least one argument")
	}
	if len(args) == 1 {
		return args[0]
	}
	return &maxExpr{args: append([]Expr(nil), args...)}
}

// Min returns the pointwise minimum of args; it needs at least one
// argument. Concave when every argument is concave.
func Min(args ...Expr) Expr {
	if len(args) == 0 {
		panic("cvx: Min needs at least one argument")
	}
	if len(args) == 1 {
		return args[0]
	}
	return &minExpr{args: append([]Expr(nil), args...)}
}

// Pos returns max(arg, 0), the positive part of arg.
func Pos(arg Expr) Expr { return Max(arg, Const(0)) }

// NegPart returns max(-arg, 0), the magnitude of the negative part of arg.
func NegPart(arg Expr) Expr { return Max(Neg(arg), Const(0)) }
