package cvx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurvature_Atoms(t *testing.T) {
	z := NewVariable(2, "z")

	assert.Equal(t, Constant, Const(3).Curvature())
	assert.Equal(t, Affine, z.Index(0).Curvature())
	assert.Equal(t, Affine, Add(z.Index(0), Const(1)).Curvature())
	assert.Equal(t, Convex, Abs(z.Index(0)).Curvature())
	assert.Equal(t, Concave, Neg(Abs(z.Index(0))).Curvature())
	assert.Equal(t, Convex, Max(z.Index(0), Const(0)).Curvature())
	assert.Equal(t, Concave, Min(z.Index(0), Const(0)).Curvature())
	assert.Equal(t, Convex, Pos(z.Index(0)).Curvature())
	assert.Equal(t, Convex, NegPart(z.Index(0)).Curvature())
	assert.Equal(t, Constant, Sum(Vector{}).Curvature())
}

func TestCurvature_Composition(t *testing.T) {
	z := NewVariable(2, "z")
	vex := Abs(z.Index(0))
	cave := Neg(Abs(z.Index(1)))

	assert.Equal(t, Convex, Add(vex, z.Index(1)).Curvature())
	assert.Equal(t, Concave, Add(cave, Const(1)).Curvature())
	assert.Equal(t, Unknown, Add(vex, cave).Curvature())
	assert.Equal(t, Unknown, Abs(vex).Curvature())
	assert.Equal(t, Unknown, Max(z.Index(0), cave).Curvature())
	assert.Equal(t, Unknown, Min(z.Index(0), vex).Curvature())
}

func TestCurvature_ScaleFlips(t *testing.T) {
	z := NewVariable(1, "z")
	vex := Abs(z.Index(0))

	assert.Equal(t, Convex, Scale(2, vex).Curvature())
	assert.Equal(t, Concave, Scale(-2, vex).Curvature())
	assert.Equal(t, Constant, Scale(0, vex).Curvature())
	assert.Equal(t, Affine, Neg(z.Index(0)).Curvature())
}

func TestVector_Builders(t *testing.T) {
	z := NewVariable(3, "z")
	w := ConstVector([]float64{0.5, 0.3, 0.2})
	wplus := AddVec(w, z.AsVector())

	require.Len(t, wplus, 3)
	assert.Equal(t, Affine, Sum(wplus).Curvature())
	assert.Equal(t, Affine, Dot([]float64{1, 2, 3}, wplus).Curvature())
	assert.Equal(t, Convex, Norm1(wplus[:2]).Curvature())

	assert.Panics(t, func() { AddVec(w, z.AsVector()[:2]) })
	assert.Panics(t, func() { Dot([]float64{1}, wplus) })
}

func TestConstraint_Validate(t *testing.T) {
	z := NewVariable(2, "z")
	aff := Add(z.Index(0), z.Index(1))

	assert.NoError(t, Eq(aff, Const(0)).Validate())
	assert.NoError(t, Leq(Abs(z.Index(0)), Const(2)).Validate())
	assert.NoError(t, Geq(z.Index(0), Const(0)).Validate())
	assert.NoError(t, EachLeq(z.AsVector(), 1).Validate())
	assert.NoError(t, EachGeq(z.AsVector(), -1).Validate())
	assert.NoError(t, EqVec(z.AsVector(), ConstVector([]float64{1, 2})).Validate())

	err := Eq(Abs(z.Index(0)), Const(1)).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "affine")

	err = Leq(Const(1), Abs(z.Index(0))).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concave")

	err = Leq(Min(z.Index(0), Const(0)), Const(1)).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "convex")
}

func TestProblem_Validate(t *testing.T) {
	z := NewVariable(2, "z")

	ok := NewProblem(
		Maximize(Dot([]float64{1, 2}, z.AsVector())),
		[]Constraint{Eq(Sum(z.AsVector()), Const(0))},
	)
	assert.NoError(t, ok.Validate())

	assert.NoError(t, NewProblem(Minimize(Norm1(z.AsVector())), nil).Validate())

	err := NewProblem(Maximize(Abs(z.Index(0))), nil).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concave")

	err = NewProblem(
		Minimize(Abs(z.Index(0))),
		[]Constraint{Leq(Const(0), Abs(z.Index(1)))},
	).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "constraint 0")
}
