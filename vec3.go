package simpline

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a vector in 3-D space. It is used both for positions and for
// derivatives of a curve.
type Vec3[T constraints.Float] struct {
	X T
	Y T
	Z T
}

// Vec returns the vector ⟨x, y, z⟩.
func Vec[T constraints.Float](x, y, z T) Vec3[T] {
	return Vec3[T]{
		X: x,
		Y: y,
		Z: z,
	}
}

// Vec3FromR3 converts a gonum vector.
func Vec3FromR3[T constraints.Float](v r3.Vec) Vec3[T] {
	return Vec3[T]{
		X: T(v.X),
		Y: T(v.Y),
		Z: T(v.Z),
	}
}

// R3 converts v to a gonum vector.
func (v Vec3[T]) R3() r3.Vec {
	return r3.Vec{
		X: float64(v.X),
		Y: float64(v.Y),
		Z: float64(v.Z),
	}
}

// Splat returns the vector's x, y and z coordinates.
func (v Vec3[T]) Splat() (T, T, T) {
	return v.X, v.Y, v.Z
}

func (v Vec3[T]) String() string {
	return fmt.Sprintf("⟨%g, %g, %g⟩", v.X, v.Y, v.Z)
}

// Component returns the i-th coordinate, with 0, 1 and 2 denoting x, y and z.
func (v Vec3[T]) Component(i int) T {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		panic(fmt.Sprintf("component index %d out of range", i))
	}
}

// Dot returns the dot product of v and o.
func (v Vec3[T]) Dot(o Vec3[T]) T {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vec3[T]) Cross(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Hypot returns the magnitude (Euclidean norm) of the vector.
func (v Vec3[T]) Hypot() T {
	// Computed in float64 so that float32 vectors don't lose precision to
	// intermediate overflow.
	x, y, z := float64(v.X), float64(v.Y), float64(v.Z)
	return T(math.Sqrt(x*x + y*y + z*z))
}

// Hypot2 returns the squared magnitude of the vector.
//
// This function is more efficient than squaring the result of [Vec3.Hypot].
func (v Vec3[T]) Hypot2() T {
	return v.Dot(v)
}

// Distance returns the euclidean distance between two points.
func (v Vec3[T]) Distance(o Vec3[T]) T {
	return v.Sub(o).Hypot()
}

// Lerp linearly interpolates between two vectors.
func (v Vec3[T]) Lerp(o Vec3[T], t T) Vec3[T] {
	// v + t * (o-v)
	return v.Add(o.Sub(v).Mul(t))
}

// Normalize returns a vector of magnitude 1.0 with the same direction as v.
// This produces a NaN vector if the magnitude is 0.
func (v Vec3[T]) Normalize() Vec3[T] {
	return v.Mul(1.0 / v.Hypot())
}

// IsInf reports whether at least one of x, y and z is infinite.
func (v Vec3[T]) IsInf() bool {
	return math.IsInf(float64(v.X), 0) || math.IsInf(float64(v.Y), 0) || math.IsInf(float64(v.Z), 0)
}

// IsNaN reports whether at least one of x, y and z is NaN.
func (v Vec3[T]) IsNaN() bool {
	return math.IsNaN(float64(v.X)) || math.IsNaN(float64(v.Y)) || math.IsNaN(float64(v.Z))
}

// Add adds two vectors and returns the resulting vector.
func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		X: v.X + o.X,
		Y: v.Y + o.Y,
		Z: v.Z + o.Z,
	}
}

// Sub subtracts two vectors and returns the resulting vector.
func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		X: v.X - o.X,
		Y: v.Y - o.Y,
		Z: v.Z - o.Z,
	}
}

// Mul scales the vector by f.
func (v Vec3[T]) Mul(f T) Vec3[T] {
	return Vec3[T]{
		X: v.X * f,
		Y: v.Y * f,
		Z: v.Z * f,
	}
}

// Div divides the vector by f.
func (v Vec3[T]) Div(f T) Vec3[T] {
	return Vec3[T]{
		X: v.X / f,
		Y: v.Y / f,
		Z: v.Z / f,
	}
}

// Negate returns a new vector with the signs of x, y and z flipped.
func (v Vec3[T]) Negate() Vec3[T] {
	return Vec3[T]{
		X: -v.X,
		Y: -v.Y,
		Z: -v.Z,
	}
}

// Min returns the component-wise minimum of v and o.
func (v Vec3[T]) Min(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		X: min(v.X, o.X),
		Y: min(v.Y, o.Y),
		Z: min(v.Z, o.Z),
	}
}

// Max returns the component-wise maximum of v and o.
func (v Vec3[T]) Max(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		X: max(v.X, o.X),
		Y: max(v.Y, o.Y),
		Z: max(v.Z, o.Z),
	}
}
