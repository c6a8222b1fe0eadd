package cvx

import (
	"fmt"
	"sync/atomic"
)

var varIDs atomic.Int64

// Variable is a vector of decision variables. Every Variable carries a
// process-unique id, so independent problems can be assembled concurrently
// without sharing state.
type Variable struct {
	id   int64
	n    int
	name string
}

// NewVariable allocates a fresh vector variable with n entries.
func NewVariable(n int, name string) *Variable {
	if n <= 0 {
		panic(fmt.Sprintf("cvx: variable %q must have at least one entry", name))
	}
	return &Variable{id: varIDs.Add(1), n: n, name: name}
}

// Size returns the number of entries.
func (v *Variable) Size() int { return v.n }

// Name returns the variable's display name.
func (v *Variable) Name() string { return v.name }

// Index returns the scalar expression for entry i.
func (v *Variable) Index(i int) Expr {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("cvx: index %d out of range for variable %q of size %d", i, v.name, v.n))
	}
	return &varEntry{v: v, i: i}
}

// AsVector returns the variable as a vector of scalar expressions.
func (v *Variable) AsVector() Vector {
	out := make(Vector, v.n)
	for i := range out {
		out[i] = v.Index(i)
	}
	return out
}
