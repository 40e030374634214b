package simpline

import (
	"errors"
	"math"
	"testing"
)

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Vec(3.0, 4.0, 5.0)

	assertNear(t, Identity3[float64]().Apply(p), p, epsilon)
	assertNear(t, Scale3(2.0, 3.0, 4.0).Apply(p), Vec(6.0, 12.0, 20.0), epsilon)
	assertNear(t, RotateZ(0.0).Apply(p), p, epsilon)
	assertNear(t, RotateX(math.Pi/2).Apply(p), Vec(3.0, -5.0, 4.0), epsilon)
	assertNear(t, RotateY(math.Pi/2).Apply(p), Vec(5.0, 4.0, -3.0), epsilon)
	assertNear(t, RotateZ(math.Pi/2).Apply(p), Vec(-4.0, 3.0, 5.0), epsilon)
	assertNear(t, Translate3(Vec(5.0, 6.0, 7.0)).Apply(p), Vec(8.0, 10.0, 12.0), epsilon)

	// Directions ignore the translation.
	assertNear(t, Translate3(Vec(5.0, 6.0, 7.0)).ApplyLinear(p), p, epsilon)
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine3[float64]{Linear: [9]float64{1, 2, 3, 4, 5, 6, 7, 8, 10}, Offset: Vec(1.0, -1.0, 2.0)}
	a2 := Affine3[float64]{Linear: [9]float64{0.1, 1.2, 2.3, 3.4, 4.5, 5.6, 6.7, 7.8, 8.0}, Offset: Vec(0.5, 0.25, -3.0)}

	for _, p := range []Vec3[float64]{Vec(1.0, 0.0, 0.0), Vec(0.0, 1.0, 0.0), Vec(0.0, 0.0, 1.0), Vec(1.0, 1.0, 1.0)} {
		assertNear(t, a1.Apply(a2.Apply(p)), a1.Mul(a2).Apply(p), epsilon)
	}
}

func TestAffineInvert(t *testing.T) {
	const epsilon = 1e-9
	a := Affine3[float64]{Linear: [9]float64{0.1, 1.2, 2.3, 3.4, 4.5, 5.6, 6.7, 7.8, 8.0}, Offset: Vec(0.5, 0.25, -3.0)}
	aInv, err := a.Invert()
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []Vec3[float64]{Vec(1.0, 0.0, 0.0), Vec(0.0, 1.0, 0.0), Vec(0.0, 0.0, 1.0), Vec(1.0, 1.0, 1.0)} {
		assertNear(t, a.Apply(aInv.Apply(p)), p, epsilon)
		assertNear(t, aInv.Apply(a.Apply(p)), p, epsilon)
	}
}

func TestAffineInvertSingular(t *testing.T) {
	for _, a := range []Affine3[float64]{
		Scale3(1.0, 0.0, 1.0),
		{Linear: [9]float64{1, 2, 3, 2, 4, 6, 0, 0, 1}},
		{},
	} {
		if _, err := a.Invert(); !errors.Is(err, ErrDomain) {
			t.Errorf("inverting %v: got error %v, want %v", a, err, ErrDomain)
		}
	}
}

func TestAffineDeterminant(t *testing.T) {
	tests := []struct {
		aff  Affine3[float64]
		want float64
	}{
		{Identity3[float64](), 1},
		{Scale3(2.0, 3.0, 4.0), 24},
		{Scale3(-1.0, 1.0, 1.0), -1},
		{RotateY(0.7), 1},
		{Translate3(Vec(1.0, 2.0, 3.0)), 1},
	}
	for _, tt := range tests {
		if got := tt.aff.Determinant(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("got determinant %v for %v, want %v", got, tt.aff, tt.want)
		}
	}
}

func TestSplineTransform(t *testing.T) {
	params, points := helix(9)
	s := mustSpline(t, params, points)
	aff := Translate3(Vec(1.0, -2.0, 0.5)).
		Mul(RotateX(0.3)).
		Mul(Scale3(2.0, 1.0, 0.5))

	got, err := s.Transform(aff)
	if err != nil {
		t.Fatal(err)
	}
	mapped := make([]Vec3[float64], len(points))
	for i, p := range points {
		mapped[i] = aff.Apply(p)
	}
	want := mustSpline(t, params, mapped)

	samples, _ := s.Samples(64)
	for param := range samples {
		gv, _ := got.Value(param)
		wv, _ := want.Value(param)
		assertNear(t, gv, wv, 1e-9)
		gg, _ := got.Gradient(param)
		wg, _ := want.Gradient(param)
		assertNear(t, gg, wg, 1e-9)
	}
	gl, _ := got.Length()
	wl, _ := want.Length()
	if math.Abs(gl-wl) > 1e-9 {
		t.Errorf("got length %v, want %v", gl, wl)
	}
}

func TestSplineTransformPreservesLength(t *testing.T) {
	params, points := helix(9)
	s := mustSpline(t, params, points)
	moved, err := s.Transform(RotateZ(1.0).Mul(Translate3(Vec(3.0, 0.0, -1.0))))
	if err != nil {
		t.Fatal(err)
	}
	l0, _ := s.Length()
	l1, _ := moved.Length()
	if math.Abs(l0-l1) > 1e-12*l0 {
		t.Errorf("rigid motion changed length from %v to %v", l0, l1)
	}

	doubled, _ := s.Transform(Scale3(2.0, 2.0, 2.0))
	l2, _ := doubled.Length()
	if math.Abs(l2-2*l0) > 1e-12*l0 {
		t.Errorf("got length %v after uniform scaling by 2, want %v", l2, 2*l0)
	}

	var zero Spline[float64]
	if _, err := zero.Transform(Identity3[float64]()); !errors.Is(err, ErrUninitialized) {
		t.Errorf("got error %v, want %v", err, ErrUninitialized)
	}
}
