package cvx

// Curvature classifies an expression under the composition rules of
// disciplined convex programming. Sums and nonnegative scalings preserve
// curvature, negative scalings flip it, and the nonlinear atoms fix it;
// anything the rules cannot prove is Unknown and gets rejected at
// validation time.
type Curvature int

const (
	Constant Curvature = iota
	Affine
	Convex
	Concave
	Unknown
)

func (c Curvature) String() string {
	switch c {
	case Constant:
		return "constant"
	case Affine:
		return "affine"
	case Convex:
		return "convex"
	case Concave:
		return "concave"
	default:
		return "unknown"
	}
}

// IsAffine reports whether the curvature is constant or affine.
func (c Curvature) IsAffine() bool { return c == Constant || c == Affine }

// IsConvex reports whether an expression of this curvature may stand where
// convexity is required.
func (c Curvature) IsConvex() bool { return c == Constant || c == Affine || c == Convex }

// IsConcave reports whether an expression of this curvature may stand
// where concavity is required.
func (c Curvature) IsConcave() bool { return c == Constant || c == Affine || c == Concave }

// addCurv combines two curvatures under addition.
func addCurv(a, b Curvature) Curvature {
	switch {
	case a == Constant:
		return b
	case b == Constant:
		return a
	case a.IsAffine() && b.IsAffine():
		return Affine
	case a.IsConvex() && b.IsConvex():
		return Convex
	case a.IsConcave() && b.IsConcave():
		return Concave
	default:
		return Unknown
	}
}

// negCurv flips a curvature.
func negCurv(c Curvature) Curvature {
	switch c {
	case Convex:
		return Concave
	case Concave:
		return Convex
	default:
		return c
	}
}

// scaleCurv is the curvature of k times an expression of curvature c.
func scaleCurv(k float64, c Curvature) Curvature {
	switch {
	case k == 0:
		return Constant
	case k < 0:
		return negCurv(c)
	default:
		return c
	}
}
