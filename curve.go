package simpline

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// DefaultEpsilon is the default tolerance, in parameter units, at which
// [ConstantSpeedSpline.Parameter] stops bisecting.
const DefaultEpsilon = 1e-9

// DefaultQuadratureOrder is the default number of Gauss-Legendre nodes used
// per segment when integrating arc length.
const DefaultQuadratureOrder = 16

// maxBisectIterations bounds the bisection loop regardless of epsilon. A
// float64 interval can't be halved more often than this before its
// midpoint collapses onto an endpoint.
const maxBisectIterations = 1100

var _ Curve[float64] = (*Spline[float64])(nil)
var _ Curve[float64] = (*ConstantSpeedSpline[float64])(nil)

// Curve describes a curve in 3-D space parametrized by a scalar.
//
// For a [Spline], the scalar is the knot parameter. For a
// [ConstantSpeedSpline], it is elapsed time.
type Curve[T constraints.Float] interface {
	// Value evaluates the position of the curve.
	Value(t T) (Vec3[T], error)
	// Gradient evaluates the first derivative of the curve.
	Gradient(t T) (Vec3[T], error)
	// Length returns the arc length of the whole curve.
	Length() (T, error)
	// LengthRange returns the arc length between two parameters.
	LengthRange(start, end T) (T, error)
}

// Options specifies optional settings for [NewSplineOptions] and
// [NewConstantSpeedSplineOptions]. The zero value selects the defaults.
type Options struct {
	// The number of Gauss-Legendre nodes per segment. A value of 0 selects
	// [DefaultQuadratureOrder].
	QuadratureOrder int
	// The bisection tolerance of [ConstantSpeedSpline.Parameter]. A value of
	// 0 selects [DefaultEpsilon].
	Epsilon float64
}

func (opts Options) normalize() (Options, error) {
	switch {
	case opts.QuadratureOrder < 0:
		return opts, fmt.Errorf("%w: quadrature order must be positive, got %d", ErrConstruction, opts.QuadratureOrder)
	case opts.QuadratureOrder == 0:
		opts.QuadratureOrder = DefaultQuadratureOrder
	}
	switch {
	case math.IsNaN(opts.Epsilon) || math.IsInf(opts.Epsilon, 0) || opts.Epsilon < 0:
		return opts, fmt.Errorf("%w: epsilon must be a non-negative finite number, got %g", ErrConstruction, opts.Epsilon)
	case opts.Epsilon == 0:
		opts.Epsilon = DefaultEpsilon
	}
	return opts, nil
}

// SolveQuadratic finds real roots of a quadratic equation.
//
// Returns values of x for which c0 + c1 x + c2 x² = 0.0, in increasing order.
// The second return value states how many roots were found.
//
// If the equation is nearly linear, the root of the linear part is returned
// and the other root, which may be out of representable range, is dropped.
// In the degenerate case where all coefficients are zero, a single 0.0 is
// returned.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) || math.IsNaN(sc0) || math.IsNaN(sc1) {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		switch {
		case !math.IsInf(root, 0) && !math.IsNaN(root):
			return [2]float64{root}, 1
		case c0 == 0.0 && c1 == 0.0:
			return [2]float64{0}, 1
		default:
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// sc1 * sc1 overflowed. Find one root using sc1 x + x² = 0, the other
		// as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return [2]float64{}, 0
		} else if arg == 0.0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if math.IsInf(root2, 0) || math.IsNaN(root2) {
		return [2]float64{root1}, 1
	}
	if root2 > root1 {
		return [2]float64{root1, root2}, 2
	}
	return [2]float64{root2, root1}, 2
}

// bisect finds the parameter in [lo, hi] at which f changes sign.
//
// Each step compares the sign of f at the lower bound with the sign at the
// midpoint and keeps the half that contains the crossing. The search ends
// once the bracket is narrower than epsilon, or once T can no longer
// represent a midpoint distinct from both bounds.
func bisect[T constraints.Float](f func(T) (T, error), lo, hi T, epsilon float64) (T, error) {
	flo, err := f(lo)
	if err != nil {
		return 0, err
	}
	for range maxBisectIterations {
		if float64(hi-lo) < epsilon {
			break
		}
		mid := (lo + hi) / 2
		if mid <= lo || mid >= hi {
			break
		}
		fmid, err := f(mid)
		if err != nil {
			return 0, err
		}
		if fmid == 0 {
			return mid, nil
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo = mid
			flo = fmid
		}
	}
	return (lo + hi) / 2, nil
}
