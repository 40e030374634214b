package simpline

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Box3 is an axis-aligned box, described by its minimum and maximum corners.
type Box3[T constraints.Float] struct {
	Min Vec3[T]
	Max Vec3[T]
}

// NewBox3FromPoints returns the smallest box enclosing p0 and p1.
func NewBox3FromPoints[T constraints.Float](p0, p1 Vec3[T]) Box3[T] {
	return Box3[T]{
		Min: p0.Min(p1),
		Max: p0.Max(p1),
	}
}

func (b Box3[T]) String() string {
	return fmt.Sprintf("[%s, %s]", b.Min, b.Max)
}

// Size returns the box's extent along each axis.
func (b Box3[T]) Size() Vec3[T] {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Box3[T]) Center() Vec3[T] {
	return b.Min.Lerp(b.Max, 0.5)
}

// Contains reports whether pt lies inside the box. Points on the boundary are
// inside.
func (b Box3[T]) Contains(pt Vec3[T]) bool {
	return pt.X >= b.Min.X && pt.X <= b.Max.X &&
		pt.Y >= b.Min.Y && pt.Y <= b.Max.Y &&
		pt.Z >= b.Min.Z && pt.Z <= b.Max.Z
}

// Union returns the smallest box enclosing b and o.
func (b Box3[T]) Union(o Box3[T]) Box3[T] {
	return Box3[T]{
		Min: b.Min.Min(o.Min),
		Max: b.Max.Max(o.Max),
	}
}

// UnionPoint returns the smallest box enclosing b and pt.
//
// A succession of UnionPoint operations on a series of points yields their
// enclosing box.
func (b Box3[T]) UnionPoint(pt Vec3[T]) Box3[T] {
	return Box3[T]{
		Min: b.Min.Min(pt),
		Max: b.Max.Max(pt),
	}
}

// BoundingBox returns the smallest axis-aligned box that encloses the spline
// over its whole domain.
//
// Each segment contributes its end points and its extrema along every axis.
// The gradient of a cubic segment is quadratic, so the extrema are found
// exactly by [SolveQuadratic].
func (s *Spline[T]) BoundingBox() (Box3[T], error) {
	if s.params == nil {
		return Box3[T]{}, fmt.Errorf("%w: bounding box requested", ErrUninitialized)
	}
	bbox := NewBox3FromPoints(s.points[0], s.points[len(s.points)-1])
	for i := range len(s.params) - 1 {
		bbox = bbox.UnionPoint(s.points[i])
		width := float64(s.params[i+1] - s.params[i])
		for d := range 3 {
			roots, n := SolveQuadratic(
				float64(s.first[i].Component(d)),
				float64(s.second[i].Component(d)),
				float64(s.third[i].Component(d))/2,
			)
			for _, dt := range roots[:n] {
				if dt > 0 && dt < width {
					bbox = bbox.UnionPoint(s.value(s.params[i] + T(dt)))
				}
			}
		}
	}
	return bbox, nil
}
