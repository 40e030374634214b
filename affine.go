package simpline

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/mat"
)

// Affine3 describes an affine transform of 3-D space: a linear map followed
// by a translation.
//
// Linear holds the 3×3 matrix in row-major order, so that
//
//	| L0 L1 L2 |   | x |   | Ox |
//	| L3 L4 L5 | · | y | + | Oy |
//	| L6 L7 L8 |   | z |   | Oz |
//
// is the image of ⟨x, y, z⟩. Composition follows (A * B) * v == A * (B * v).
type Affine3[T constraints.Float] struct {
	Linear [9]T
	Offset Vec3[T]
}

// Identity3 returns the identity transform.
func Identity3[T constraints.Float]() Affine3[T] {
	return Affine3[T]{Linear: [9]T{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// Translate3 creates an affine transform representing translation.
func Translate3[T constraints.Float](v Vec3[T]) Affine3[T] {
	aff := Identity3[T]()
	aff.Offset = v
	return aff
}

// Scale3 creates an affine transform representing non-uniform scaling along
// the three axes.
func Scale3[T constraints.Float](x, y, z T) Affine3[T] {
	return Affine3[T]{Linear: [9]T{x, 0, 0, 0, y, 0, 0, 0, z}}
}

// RotateX creates an affine transform representing a rotation of th radians
// about the x axis. A positive angle rotates positive y into positive z.
func RotateX[T constraints.Float](th T) Affine3[T] {
	sin, cos := math.Sincos(float64(th))
	s, c := T(sin), T(cos)
	return Affine3[T]{Linear: [9]T{1, 0, 0, 0, c, -s, 0, s, c}}
}

// RotateY creates an affine transform representing a rotation of th radians
// about the y axis. A positive angle rotates positive z into positive x.
func RotateY[T constraints.Float](th T) Affine3[T] {
	sin, cos := math.Sincos(float64(th))
	s, c := T(sin), T(cos)
	return Affine3[T]{Linear: [9]T{c, 0, s, 0, 1, 0, -s, 0, c}}
}

// RotateZ creates an affine transform representing a rotation of th radians
// about the z axis. A positive angle rotates positive x into positive y.
func RotateZ[T constraints.Float](th T) Affine3[T] {
	sin, cos := math.Sincos(float64(th))
	s, c := T(sin), T(cos)
	return Affine3[T]{Linear: [9]T{c, -s, 0, s, c, 0, 0, 0, 1}}
}

// Mul returns the composition of two transforms, applying o first.
func (aff Affine3[T]) Mul(o Affine3[T]) Affine3[T] {
	var out Affine3[T]
	for r := range 3 {
		for c := range 3 {
			var sum T
			for k := range 3 {
				sum += aff.Linear[3*r+k] * o.Linear[3*k+c]
			}
			out.Linear[3*r+c] = sum
		}
	}
	out.Offset = aff.Apply(o.Offset)
	return out
}

// Apply transforms a point.
func (aff Affine3[T]) Apply(p Vec3[T]) Vec3[T] {
	return aff.ApplyLinear(p).Add(aff.Offset)
}

// ApplyLinear transforms a direction, ignoring the translation.
func (aff Affine3[T]) ApplyLinear(v Vec3[T]) Vec3[T] {
	l := &aff.Linear
	return Vec3[T]{
		X: l[0]*v.X + l[1]*v.Y + l[2]*v.Z,
		Y: l[3]*v.X + l[4]*v.Y + l[5]*v.Z,
		Z: l[6]*v.X + l[7]*v.Y + l[8]*v.Z,
	}
}

func (aff Affine3[T]) dense() *mat.Dense {
	data := make([]float64, 9)
	for i, f := range aff.Linear {
		data[i] = float64(f)
	}
	return mat.NewDense(3, 3, data)
}

// Determinant returns the determinant of the linear part.
func (aff Affine3[T]) Determinant() T {
	return T(mat.Det(aff.dense()))
}

// Invert returns the inverse transform. Singular transforms, such as scaling
// by zero, cannot be inverted and result in [ErrDomain].
func (aff Affine3[T]) Invert() (Affine3[T], error) {
	if aff.Determinant() == 0 {
		return Affine3[T]{}, fmt.Errorf("%w: transform is singular", ErrDomain)
	}
	var inv mat.Dense
	if err := inv.Inverse(aff.dense()); err != nil {
		return Affine3[T]{}, fmt.Errorf("%w: inverting transform: %v", ErrDomain, err)
	}
	var out Affine3[T]
	for r := range 3 {
		for c := range 3 {
			out.Linear[3*r+c] = T(inv.At(r, c))
		}
	}
	out.Offset = out.ApplyLinear(aff.Offset).Negate()
	return out, nil
}
