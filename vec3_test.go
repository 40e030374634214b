package simpline

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec(1.0, 2.0, 3.0)
	b := Vec(-4.0, 0.5, 2.0)

	diff(t, Vec(-3.0, 2.5, 5.0), a.Add(b))
	diff(t, Vec(5.0, 1.5, 1.0), a.Sub(b))
	diff(t, Vec(2.0, 4.0, 6.0), a.Mul(2))
	diff(t, Vec(0.5, 1.0, 1.5), a.Div(2))
	diff(t, Vec(-1.0, -2.0, -3.0), a.Negate())
	diff(t, Vec(-4.0, 0.5, 2.0), a.Min(b))
	diff(t, Vec(1.0, 2.0, 3.0), a.Max(b))
	if got := a.Dot(b); got != 3 {
		t.Errorf("got dot product %v, want 3", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec(1.0, 0.0, 0.0)
	y := Vec(0.0, 1.0, 0.0)
	diff(t, Vec(0.0, 0.0, 1.0), x.Cross(y))
	diff(t, Vec(0.0, 0.0, -1.0), y.Cross(x))
}

func TestVec3Hypot(t *testing.T) {
	v := Vec(2.0, 3.0, 6.0)
	if got := v.Hypot(); got != 7 {
		t.Errorf("got magnitude %v, want 7", got)
	}
	if got := v.Hypot2(); got != 49 {
		t.Errorf("got squared magnitude %v, want 49", got)
	}
	assertNear(t, v.Normalize(), Vec(2.0/7, 3.0/7, 6.0/7), 1e-15)
	if got := Vec(0.0, 0.0, 0.0).Normalize(); !got.IsNaN() {
		t.Errorf("normalizing the zero vector produced %s, want NaN", got)
	}

	v32 := Vec[float32](2, 3, 6)
	if got := v32.Hypot(); got != 7 {
		t.Errorf("got float32 magnitude %v, want 7", got)
	}
}

func TestVec3Component(t *testing.T) {
	v := Vec(1.0, 2.0, 3.0)
	for i, want := range []float64{1, 2, 3} {
		if got := v.Component(i); got != want {
			t.Errorf("component %d: got %v, want %v", i, got, want)
		}
	}
}

func TestVec3IsInf(t *testing.T) {
	if Vec(0.0, 1.0, 2.0).IsInf() {
		t.Error("vector is infinite but shouldn't be")
	}
	if !Vec(0.0, 0.0, math.Inf(-1)).IsInf() {
		t.Error("vector is finite but shouldn't be")
	}
	if !Vec(math.NaN(), 0.0, 0.0).IsNaN() {
		t.Error("vector isn't NaN but should be")
	}
}

func TestVec3R3(t *testing.T) {
	v := Vec[float32](1, -2, 0.5)
	got := v.R3()
	diff(t, r3.Vec{X: 1, Y: -2, Z: 0.5}, got)
	diff(t, v, Vec3FromR3[float32](got))

	if d := r3.Norm(Vec(2.0, 3.0, 6.0).R3()); !scalar.EqualWithinAbs(d, 7, 1e-12) {
		t.Errorf("got gonum norm %v, want 7", d)
	}
}
