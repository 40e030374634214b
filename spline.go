package simpline

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"slices"
	"sort"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/mat"
)

// Spline is a natural cubic spline through points in 3-D space, each tagged
// with a strictly increasing parameter value (a knot).
//
// Between two adjacent knots tᵢ and tᵢ₊₁ the spline is the cubic
//
//	pᵢ + fᵢ·Δt + sᵢ/2·Δt² + uᵢ/6·Δt³,  Δt = t − tᵢ
//
// where fᵢ, sᵢ and uᵢ are the first, second and third derivatives at tᵢ. The
// second derivatives are continuous across knots and zero at both ends of the
// domain.
//
// The zero value is an uninitialized spline; all of its methods return
// [ErrUninitialized]. A spline built by [NewSpline] is immutable and may be
// used concurrently.
type Spline[T constraints.Float] struct {
	params []T
	points []Vec3[T]
	// first and third have one entry per segment, second has one entry per
	// knot.
	first  []Vec3[T]
	second []Vec3[T]
	third  []Vec3[T]
	// cumLen[i] is the arc length from params[0] to params[i].
	cumLen []T
	quad   gaussLegendre[T]
}

// NewSpline fits a natural cubic spline through points, where points[i] is
// placed at the parameter params[i]. It is equivalent to calling
// [NewSplineOptions] with the zero value of [Options].
func NewSpline[T constraints.Float](params []T, points []Vec3[T]) (*Spline[T], error) {
	return NewSplineOptions(params, points, Options{})
}

// NewSplineOptions fits a natural cubic spline through points, where
// points[i] is placed at the parameter params[i].
//
// The points don't have to be sorted by parameter; they are sorted
// internally, leaving the arguments untouched. At least two points are
// required, and no two points may share a parameter value.
func NewSplineOptions[T constraints.Float](params []T, points []Vec3[T], opts Options) (*Spline[T], error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrConstruction, len(points))
	}
	if len(params) != len(points) {
		return nil, fmt.Errorf("%w: got %d parameters for %d points", ErrConstruction, len(params), len(points))
	}
	for i, t := range params {
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return nil, fmt.Errorf("%w: parameter %d is %g", ErrConstruction, i, t)
		}
		if points[i].IsNaN() || points[i].IsInf() {
			return nil, fmt.Errorf("%w: point %d is %s", ErrConstruction, i, points[i])
		}
	}

	order := make([]int, len(params))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(params[a], params[b])
	})
	s := &Spline[T]{
		params: make([]T, len(params)),
		points: make([]Vec3[T], len(points)),
		quad:   newGaussLegendre[T](opts.QuadratureOrder),
	}
	for i, j := range order {
		s.params[i] = params[j]
		s.points[i] = points[j]
	}
	for i := 1; i < len(s.params); i++ {
		if s.params[i] == s.params[i-1] {
			return nil, fmt.Errorf("%w: duplicate parameter value %g", ErrConstruction, s.params[i])
		}
	}

	if err := s.solve(); err != nil {
		return nil, err
	}
	s.cumLen = s.segmentLengths()
	return s, nil
}

// solve computes the derivatives of every segment.
func (s *Spline[T]) solve() error {
	n := len(s.params)
	dd := newDivDiffCache(s.params, s.points)

	// The coefficients only depend on the knot spacing, so one factorization
	// serves all three dimensions, each of which is a column of b.
	a := mat.NewDense(n, n, nil)
	b := mat.NewDense(n, 3, nil)
	a.Set(0, 0, 1)
	a.Set(n-1, n-1, 1)
	for j := 1; j < n-1; j++ {
		t0 := float64(s.params[j-1])
		t1 := float64(s.params[j])
		t2 := float64(s.params[j+1])
		a.Set(j, j-1, (t1-t0)/(t2-t0))
		a.Set(j, j, 2)
		a.Set(j, j+1, (t2-t1)/(t2-t0))

		rhs := dd.at(j-1, j+1)
		for d := range 3 {
			b.Set(j, d, 6*float64(rhs.Component(d)))
		}
	}

	var qr mat.QR
	qr.Factorize(a)
	var x mat.Dense
	if err := qr.SolveTo(&x, false, b); err != nil {
		return fmt.Errorf("%w: solving for second derivatives: %v", ErrConstruction, err)
	}

	s.second = make([]Vec3[T], n)
	for j := range n {
		s.second[j] = Vec(T(x.At(j, 0)), T(x.At(j, 1)), T(x.At(j, 2)))
	}
	s.first = make([]Vec3[T], n-1)
	s.third = make([]Vec3[T], n-1)
	for j := range n - 1 {
		dt := s.params[j+1] - s.params[j]
		s.first[j] = dd.at(j, j+1).
			Sub(s.second[j].Mul(dt / 3)).
			Sub(s.second[j+1].Mul(dt / 6))
		s.third[j] = s.second[j+1].Sub(s.second[j]).Div(dt)
	}
	return nil
}

// segmentLengths integrates every segment and returns the running totals,
// starting with 0 at the first knot.
func (s *Spline[T]) segmentLengths() []T {
	cum := make([]T, len(s.params))
	for i := range len(s.params) - 1 {
		cum[i+1] = cum[i] + s.arclen(s.params[i], s.params[i+1])
	}
	return cum
}

// arclen integrates the gradient's magnitude over [a, b] with a single
// application of the quadrature rule.
func (s *Spline[T]) arclen(a, b T) T {
	return s.quad.integrate(a, b, func(t T) T {
		return s.gradient(t).Hypot()
	})
}

// segment returns the index of the segment containing t: the last knot whose
// parameter is at most t, with the final knot mapped onto the last segment.
func (s *Spline[T]) segment(t T) int {
	i := sort.Search(len(s.params), func(i int) bool { return s.params[i] > t }) - 1
	return min(max(i, 0), len(s.params)-2)
}

func (s *Spline[T]) checkParam(what string, t T) error {
	if s.params == nil {
		return fmt.Errorf("%w: %s requested", ErrUninitialized, what)
	}
	lo, hi := s.params[0], s.params[len(s.params)-1]
	if !(t >= lo && t <= hi) {
		return fmt.Errorf("%w: %s requested at t=%g, t must be between %g and %g", ErrDomain, what, t, lo, hi)
	}
	return nil
}

// Value returns the position of the spline at parameter t, which must lie
// within the spline's domain.
func (s *Spline[T]) Value(t T) (Vec3[T], error) {
	if err := s.checkParam("value", t); err != nil {
		return Vec3[T]{}, err
	}
	return s.value(t), nil
}

func (s *Spline[T]) value(t T) Vec3[T] {
	if last := len(s.params) - 1; t == s.params[last] {
		return s.points[last]
	}
	i := s.segment(t)
	dt := t - s.params[i]
	return s.points[i].
		Add(s.first[i].Mul(dt)).
		Add(s.second[i].Mul(dt * dt / 2)).
		Add(s.third[i].Mul(dt * dt * dt / 6))
}

// Gradient returns the first derivative of the spline with respect to its
// parameter at t, which must lie within the spline's domain.
func (s *Spline[T]) Gradient(t T) (Vec3[T], error) {
	if err := s.checkParam("gradient", t); err != nil {
		return Vec3[T]{}, err
	}
	return s.gradient(t), nil
}

func (s *Spline[T]) gradient(t T) Vec3[T] {
	i := s.segment(t)
	dt := t - s.params[i]
	return s.first[i].
		Add(s.second[i].Mul(dt)).
		Add(s.third[i].Mul(dt * dt / 2))
}

// Length returns the arc length of the whole spline.
func (s *Spline[T]) Length() (T, error) {
	if s.params == nil {
		return 0, fmt.Errorf("%w: length requested", ErrUninitialized)
	}
	return s.cumLen[len(s.cumLen)-1], nil
}

// LengthRange returns the arc length of the spline between the parameters
// start and end. Both must lie within the domain and start must not be
// greater than end.
func (s *Spline[T]) LengthRange(start, end T) (T, error) {
	if s.params == nil {
		return 0, fmt.Errorf("%w: length requested", ErrUninitialized)
	}
	if start > end {
		return 0, fmt.Errorf("%w: length requested from t=%g to t=%g, end must not be less than start", ErrDomain, start, end)
	}
	if err := s.checkParam("length", start); err != nil {
		return 0, err
	}
	if err := s.checkParam("length", end); err != nil {
		return 0, err
	}

	n := len(s.params)
	// first is the first knot at or after start, last the last knot at or
	// before end.
	first := sort.Search(n, func(i int) bool { return s.params[i] >= start })
	last := sort.Search(n, func(i int) bool { return s.params[i] > end }) - 1
	if first > last {
		// start and end are within the same segment.
		return s.arclen(start, end), nil
	}
	length := s.arclen(start, s.params[first])
	length += s.cumLen[last] - s.cumLen[first]
	length += s.arclen(s.params[last], end)
	return length, nil
}

// Domain returns the first and last knot.
func (s *Spline[T]) Domain() (T, T, error) {
	if s.params == nil {
		return 0, 0, fmt.Errorf("%w: domain requested", ErrUninitialized)
	}
	return s.params[0], s.params[len(s.params)-1], nil
}

// Knots returns the sorted parameter values of the spline. It returns nil for
// an uninitialized spline.
func (s *Spline[T]) Knots() []T {
	return slices.Clone(s.params)
}

// Points returns the control points of the spline, in knot order. It returns
// nil for an uninitialized spline.
func (s *Spline[T]) Points() []Vec3[T] {
	return slices.Clone(s.points)
}

// NumSegments returns the number of cubic segments, which is one less than the
// number of knots, or 0 for an uninitialized spline.
func (s *Spline[T]) NumSegments() int {
	return max(len(s.params)-1, 0)
}

// Transform returns the image of the spline under an affine transformation.
//
// Affine maps preserve the piecewise polynomial form, so the result is exact:
// it is the spline that [NewSpline] would have built from the transformed
// points at the same knots. Arc lengths are recomputed, as they are not
// preserved by general affine maps.
func (s *Spline[T]) Transform(aff Affine3[T]) (*Spline[T], error) {
	if s.params == nil {
		return nil, fmt.Errorf("%w: transform requested", ErrUninitialized)
	}
	linear := func(vs []Vec3[T]) []Vec3[T] {
		out := make([]Vec3[T], len(vs))
		for i, v := range vs {
			out[i] = aff.ApplyLinear(v)
		}
		return out
	}
	out := &Spline[T]{
		params: slices.Clone(s.params),
		points: make([]Vec3[T], len(s.points)),
		first:  linear(s.first),
		second: linear(s.second),
		third:  linear(s.third),
		quad:   s.quad,
	}
	for i, p := range s.points {
		out.points[i] = aff.Apply(p)
	}
	out.cumLen = out.segmentLengths()
	return out, nil
}

// Samples returns an iterator over n+1 uniformly spaced parameters across the
// domain and the spline's positions at them. The first and last samples lie
// exactly on the first and last knot.
func (s *Spline[T]) Samples(n int) (iter.Seq2[T, Vec3[T]], error) {
	if s.params == nil {
		return nil, fmt.Errorf("%w: samples requested", ErrUninitialized)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least 1 sampling interval, got %d", ErrDomain, n)
	}
	lo, hi := s.params[0], s.params[len(s.params)-1]
	return func(yield func(T, Vec3[T]) bool) {
		for i := range n + 1 {
			t := lo + (hi-lo)*T(i)/T(n)
			if i == n {
				t = hi
			}
			if !yield(t, s.value(t)) {
				return
			}
		}
	}, nil
}
