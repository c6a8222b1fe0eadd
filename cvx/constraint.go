package cvx

import "fmt"

type constraintOp int

const (
	opEq constraintOp = iota
	opLeq
)

// Constraint relates two expression vectors element-wise: equality of
// affine sides, or an inequality with a convex left and a concave right
// side. Greater-or-equal forms are normalized to less-or-equal at
// construction.
type Constraint struct {
	op  constraintOp
	lhs Vector
	rhs Vector
}

// Eq constrains lhs == rhs. Both sides must be affine.
func Eq(lhs, rhs Expr) Constraint {
	return Constraint{op: opEq, lhs: Vector{lhs}, rhs: Vector{rhs}}
}

// Leq constrains lhs <= rhs.
func Leq(lhs, rhs Expr) Constraint {
	return Constraint{op: opLeq, lhs: Vector{lhs}, rhs: Vector{rhs}}
}

// Geq constrains lhs >= rhs.
func Geq(lhs, rhs Expr) Constraint { return Leq(rhs, lhs) }

// EachLeq bounds every entry of v above by bound.
func EachLeq(v Vector, bound float64) Constraint {
	rhs := make(Vector, len(v))
	for i := range rhs {
		rhs[i] = Const(bound)
	}
	return Constraint{op: opLeq, lhs: append(Vector(nil), v...), rhs: rhs}
}

// EachGeq bounds every entry of v below by bound.
func EachGeq(v Vector, bound float64) Constraint {
	lhs := make(Vector, len(v))
	for i := range lhs {
		lhs[i] = Const(bound)
	}
	return Constraint{op: opLeq, lhs: lhs, rhs: append(Vector(nil), v...)}
}

// EqVec constrains two equal-length vectors element-wise.
func EqVec(lhs, rhs Vector) Constraint {
	return Constraint{op: opEq, lhs: append(Vector(nil), lhs...), rhs: append(Vector(nil), rhs...)}
}

// Validate reports the first rule violation in the constraint: mismatched
// side lengths, a non-affine side of an equality, or an inequality whose
// sides have the wrong curvature.
func (c Constraint) Validate() error {
	if len(c.lhs) != len(c.rhs) {
		return fmt.Errorf("cvx: constraint sides have %d and %d entries", len(c.lhs), len(c.rhs))
	}
	for i := range c.lhs {
		lc, rc := c.lhs[i].Curvature(), c.rhs[i].Curvature()
		switch c.op {
		case opEq:
			if !lc.IsAffine() || !rc.IsAffine() {
				return fmt.Errorf("cvx: equality needs affine sides, got %s == %s", lc, rc)
			}
		case opLeq:
			if !lc.IsConvex() {
				return fmt.Errorf("cvx: left side of <= must be convex, got %s", lc)
			}
			if !rc.IsConcave() {
				return fmt.Errorf("cvx: right side of <= must be concave, got %s", rc)
			}
		}
	}
	return nil
}
