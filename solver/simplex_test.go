package solver

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tradeopt/cvx"
)

func TestSimplex_Optimal(t *testing.T) {
	z := cvx.NewVariable(2, "z")
	p := cvx.NewProblem(
		cvx.Maximize(cvx.Dot([]float64{2, 1}, z.AsVector())),
		[]cvx.Constraint{
			cvx.Eq(cvx.Sum(z.AsVector()), cvx.Const(0)),
			cvx.EachLeq(z.AsVector(), 5),
		},
	)

	res, err := NewSimplex(zerolog.Nop()).Solve(p, Options{})
	require.NoError(t, err)
	require.Equal(t, Optimal, res.Status)
	assert.InDelta(t, 5.0, res.Objective, 1e-9)

	x, err := res.ValuesOf(z)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, x[0], 1e-9)
	assert.InDelta(t, -5.0, x[1], 1e-9)
}

func TestSimplex_MinimizeAbs(t *testing.T) {
	z := cvx.NewVariable(1, "z")
	p := cvx.NewProblem(
		cvx.Minimize(cvx.Abs(cvx.Sub(z.Index(0), cvx.Const(3)))),
		[]cvx.Constraint{cvx.EachLeq(z.AsVector(), 2)},
	)

	res, err := NewSimplex(zerolog.Nop()).Solve(p, Options{})
	require.NoError(t, err)
	require.Equal(t, Optimal, res.Status)
	assert.InDelta(t, 1.0, res.Objective, 1e-9)

	x, err := res.ValuesOf(z)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, x[0], 1e-9)
}

func TestSimplex_Unbounded(t *testing.T) {
	z := cvx.NewVariable(1, "z")
	p := cvx.NewProblem(
		cvx.Maximize(z.Index(0)),
		[]cvx.Constraint{cvx.EachGeq(z.AsVector(), 0)},
	)

	res, err := NewSimplex(zerolog.Nop()).Solve(p, Options{})
	require.NoError(t, err)
	assert.Equal(t, Unbounded, res.Status)

	_, err = res.ValuesOf(z)
	assert.Error(t, err)
}

func TestSimplex_UnboundedWithoutConstraints(t *testing.T) {
	z := cvx.NewVariable(1, "z")
	p := cvx.NewProblem(cvx.Maximize(z.Index(0)), nil)

	res, err := NewSimplex(zerolog.Nop()).Solve(p, Options{})
	require.NoError(t, err)
	assert.Equal(t, Unbounded, res.Status)
}

func TestSimplex_FlatObjectiveWithoutConstraints(t *testing.T) {
	z := cvx.NewVariable(2, "z")
	p := cvx.NewProblem(cvx.Maximize(cvx.Dot([]float64{0, 0}, z.AsVector())), nil)

	res, err := NewSimplex(zerolog.Nop()).Solve(p, Options{})
	require.NoError(t, err)
	require.Equal(t, Optimal, res.Status)

	x, err := res.ValuesOf(z)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, x)
}

func TestSimplex_DropsDependentEqualities(t *testing.T) {
	z := cvx.NewVariable(2, "z")
	p := cvx.NewProblem(
		cvx.Maximize(cvx.Dot([]float64{2, 1}, z.AsVector())),
		[]cvx.Constraint{
			cvx.Eq(cvx.Sum(z.AsVector()), cvx.Const(0)),
			cvx.Eq(cvx.Sum(z.AsVector()), cvx.Const(0)),
			cvx.Eq(cvx.Scale(2, cvx.Sum(z.AsVector())), cvx.Const(0)),
			cvx.EachLeq(z.AsVector(), 5),
		},
	)

	res, err := NewSimplex(zerolog.Nop()).Solve(p, Options{})
	require.NoError(t, err)
	require.Equal(t, Optimal, res.Status)
	assert.InDelta(t, 5.0, res.Objective, 1e-9)

	x, err := res.ValuesOf(z)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, x[0], 1e-9)
	assert.InDelta(t, -5.0, x[1], 1e-9)
}

func TestSimplex_InconsistentEqualitiesInfeasible(t *testing.T) {
	z := cvx.NewVariable(2, "z")
	p := cvx.NewProblem(
		cvx.Maximize(cvx.Sum(z.AsVector())),
		[]cvx.Constraint{
			cvx.Eq(cvx.Sum(z.AsVector()), cvx.Const(0)),
			cvx.Eq(cvx.Sum(z.AsVector()), cvx.Const(1)),
		},
	)

	res, err := NewSimplex(zerolog.Nop()).Solve(p, Options{})
	require.NoError(t, err)
	assert.Equal(t, Infeasible, res.Status)
}

func TestSimplex_Infeasible(t *testing.T) {
	z := cvx.NewVariable(1, "z")
	p := cvx.NewProblem(
		cvx.Maximize(z.Index(0)),
		[]cvx.Constraint{
			cvx.EachLeq(z.AsVector(), 1),
			cvx.EachGeq(z.AsVector(), 2),
		},
	)

	res, err := NewSimplex(zerolog.Nop()).Solve(p, Options{})
	require.NoError(t, err)
	assert.Equal(t, Infeasible, res.Status)
}

func TestSimplex_CompileFailurePassesThrough(t *testing.T) {
	z := cvx.NewVariable(1, "z")
	p := cvx.NewProblem(cvx.Maximize(cvx.Abs(z.Index(0))), nil)

	_, err := NewSimplex(zerolog.Nop()).Solve(p, Options{})
	require.Error(t, err)
	// The compile error already carries its package prefix; Solve adds
	// nothing on top.
	assert.Contains(t, err.Error(), "cvx:")
	assert.NotContains(t, err.Error(), "solver:")
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "simplex", "SIMPLEX"} {
		s, err := ByName(name, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, "simplex", s.Name())
	}

	_, err := ByName("ecos", zerolog.Nop())
	assert.Error(t, err)
}
