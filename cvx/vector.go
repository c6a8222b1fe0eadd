package cvx

import "fmt"

// Vector is a fixed-length slice of scalar expressions. Plain slicing
// applies: dropping the final entry is how cash-excluded portfolio models
// restrict themselves to the asset book.
type Vector []Expr

// ConstVector lifts a float slice to a vector of constants.
func ConstVector(vals []float64) Vector {
	v := make(Vector, len(vals))
	for i, x := range vals {
		v[i] = Const(x)
	}
	return v
}

// AddVec adds two vectors element-wise. The lengths must match.
func AddVec(a, b Vector) Vector {
	if len(a) != len(b) {
		panic(fmt.Sprintf("cvx: adding vectors of length %d and %d", len(a), len(b)))
	}
	out := make(Vector, len(a))
	for i := range a {
		out[i] = Add(a[i], b[i])
	}
	return out
}

// Sum returns the sum of the entries of v.
func Sum(v Vector) Expr { return Add(v...) }

// Dot returns the inner product of a constant coefficient slice with v.
// The lengths must match.
func Dot(coeffs []float64, v Vector) Expr {
	if len(coeffs) != len(v) {
		panic(fmt.Sprintf("cvx: dot of %d coefficients with %d expressions", len(coeffs), len(v)))
	}
	terms := make([]Expr, len(v))
	for i := range v {
		terms[i] = Scale(coeffs[i], v[i])
	}
	return Add(terms...)
}

// Norm1 returns the L1 norm of v, the sum of absolute entries.
func Norm1(v Vector) Expr {
	terms := make([]Expr, len(v))
	for i := range v {
		terms[i] = Abs(v[i])
	}
	return Add(terms...)
}
