package simpline

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/constraints"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear[T constraints.Float](t *testing.T, got, want Vec3[T], epsilon T) {
	t.Helper()
	if d := got.Sub(want).Hypot(); d > epsilon {
		t.Errorf("got %s, want %s (distance %g > %g)", got, want, d, epsilon)
	}
}

func mustSpline(t *testing.T, params []float64, points []Vec3[float64]) *Spline[float64] {
	t.Helper()
	s, err := NewSpline(params, points)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// helix returns n points on a helix of radius 1 and pitch 0.2 per radian,
// spaced 0.5 radians apart, along with their angles.
func helix(n int) ([]float64, []Vec3[float64]) {
	params := make([]float64, n)
	points := make([]Vec3[float64], n)
	for i := range n {
		a := 0.5 * float64(i)
		params[i] = a
		points[i] = Vec(math.Cos(a), math.Sin(a), 0.2*a)
	}
	return params, points
}

// timeAt returns the i-th of n+1 evenly spaced times in [0, duration]. The
// last one is duration itself, which the product can overshoot by rounding.
func timeAt[T constraints.Float](duration T, i, n int) T {
	if i == n {
		return duration
	}
	return duration * T(i) / T(n)
}
