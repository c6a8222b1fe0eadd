package cvx

import "fmt"

// Objective pairs an optimization sense with a scalar expression.
type Objective struct {
	maximize bool
	expr     Expr
}

// Maximize declares a maximization objective; the expression must be
// concave to validate.
func Maximize(e Expr) Objective { return Objective{maximize: true, expr: e} }

// Minimize declares a minimization objective; the expression must be
// convex to validate.
func Minimize(e Expr) Objective { return Objective{expr: e} }

// Problem is a convex program: one objective plus a constraint set.
type Problem struct {
	obj  Objective
	cons []Constraint
}

// NewProblem assembles a problem. The constraint slice is copied.
func NewProblem(obj Objective, cons []Constraint) *Problem {
	return &Problem{obj: obj, cons: append([]Constraint(nil), cons...)}
}

// Validate checks the whole program against the disciplined-convex rules:
// the objective curvature must match the sense and every constraint must
// validate.
func (p *Problem) Validate() error {
	if p.obj.expr == nil {
		return fmt.Errorf("cvx: problem has no objective")
	}
	c := p.obj.expr.Curvature()
	if p.obj.maximize && !c.IsConcave() {
		return fmt.Errorf("cvx: maximization objective must be concave, got %s", c)
	}
	if !p.obj.maximize && !c.IsConvex() {
		return fmt.Errorf("cvx: minimization objective must be convex, got %s", c)
	}
	for i, con := range p.cons {
		if err := con.Validate(); err != nil {
			return fmt.Errorf("cvx: constraint %d: %w", i, err)
		}
	}
	return nil
}
