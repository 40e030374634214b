package simpline

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

// timeParam maps an elapsed time onto a spline parameter.
type timeParam[T constraints.Float] struct {
	time  T
	param T
}

// ConstantSpeedSpline traverses a natural cubic spline at a fixed speed. It is
// parametrized by elapsed time in [0, Duration].
//
// The underlying [Spline] places its knots at the cumulative chordal distance
// between consecutive points. Converting a time to a spline parameter means
// inverting the spline's arc length, which is done by bisection, seeded by a
// table of approximate knot times computed at construction.
//
// The zero value is an uninitialized spline; all of its methods return
// [ErrUninitialized]. A spline built by [NewConstantSpeedSpline] is immutable
// and may be used concurrently.
type ConstantSpeedSpline[T constraints.Float] struct {
	spline   *Spline[T]
	speed    T
	duration T
	epsilon  float64
	// table is sorted by time, with one entry per knot. The last entry is
	// exactly (duration, last knot).
	table []timeParam[T]
}

// NewConstantSpeedSpline builds a spline through points that is traversed at
// the given speed. It is equivalent to calling
// [NewConstantSpeedSplineOptions] with the zero value of [Options].
func NewConstantSpeedSpline[T constraints.Float](points []Vec3[T], speed T) (*ConstantSpeedSpline[T], error) {
	return NewConstantSpeedSplineOptions(points, speed, Options{})
}

// NewConstantSpeedSplineOptions builds a spline through points that is
// traversed at the given speed.
//
// At least two points are required and consecutive points must not coincide.
// The speed must be positive and finite.
func NewConstantSpeedSplineOptions[T constraints.Float](points []Vec3[T], speed T, opts Options) (*ConstantSpeedSpline[T], error) {
	if !(speed > 0) || math.IsInf(float64(speed), 0) {
		return nil, fmt.Errorf("%w: speed must be positive and finite, got %g", ErrConstruction, speed)
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrConstruction, len(points))
	}
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	params := make([]T, len(points))
	for i := 1; i < len(points); i++ {
		params[i] = params[i-1] + points[i].Distance(points[i-1])
		if params[i] == params[i-1] {
			return nil, fmt.Errorf("%w: points %d and %d coincide", ErrConstruction, i-1, i)
		}
	}
	spline, err := NewSplineOptions(params, points, opts)
	if err != nil {
		return nil, err
	}
	total, err := spline.Length()
	if err != nil {
		return nil, err
	}

	c := &ConstantSpeedSpline[T]{
		spline:   spline,
		speed:    speed,
		duration: total / speed,
		epsilon:  opts.Epsilon,
		table:    make([]timeParam[T], 0, len(params)),
	}
	var time T
	for i := range len(params) - 1 {
		if i > 0 && time >= c.duration {
			// Rounding pushed the estimate past the end. The table only seeds
			// the bisection, so the entry can be dropped.
			break
		}
		c.table = append(c.table, timeParam[T]{time, params[i]})
		segLen, err := spline.LengthRange(params[i], params[i+1])
		if err != nil {
			return nil, err
		}
		time += segLen / total * c.duration
	}
	c.table = append(c.table, timeParam[T]{c.duration, params[len(params)-1]})
	return c, nil
}

func (c *ConstantSpeedSpline[T]) checkTime(what string, time T) error {
	if c.spline == nil {
		return fmt.Errorf("%w: %s requested", ErrUninitialized, what)
	}
	if !(time >= 0 && time <= c.duration) {
		return fmt.Errorf("%w: %s requested at time=%g, time must be between 0 and %g", ErrDomain, what, time, c.duration)
	}
	return nil
}

// Value returns the position reached after traveling for the given time.
func (c *ConstantSpeedSpline[T]) Value(time T) (Vec3[T], error) {
	if err := c.checkTime("value", time); err != nil {
		return Vec3[T]{}, err
	}
	t, err := c.parameter(time)
	if err != nil {
		return Vec3[T]{}, err
	}
	return c.spline.Value(t)
}

// Gradient returns the velocity after traveling for the given time. Its
// magnitude is the spline's speed.
func (c *ConstantSpeedSpline[T]) Gradient(time T) (Vec3[T], error) {
	if err := c.checkTime("gradient", time); err != nil {
		return Vec3[T]{}, err
	}
	t, err := c.parameter(time)
	if err != nil {
		return Vec3[T]{}, err
	}
	g, err := c.spline.Gradient(t)
	if err != nil {
		return Vec3[T]{}, err
	}
	return g.Normalize().Mul(c.speed), nil
}

// Parameter returns the parameter of the underlying [Spline] that is reached
// after traveling for the given time.
func (c *ConstantSpeedSpline[T]) Parameter(time T) (T, error) {
	if err := c.checkTime("parameter", time); err != nil {
		return 0, err
	}
	return c.parameter(time)
}

func (c *ConstantSpeedSpline[T]) parameter(time T) (T, error) {
	i, ok := slices.BinarySearchFunc(c.table, time, func(e timeParam[T], t T) int {
		return cmp.Compare(e.time, t)
	})
	if ok {
		return c.table[i].param, nil
	}
	// 0 < time < duration, so there is an entry on either side.
	prev, next := c.table[i-1], c.table[i]

	before, err := c.spline.LengthRange(c.table[0].param, prev.param)
	if err != nil {
		return 0, err
	}
	wanted := c.speed*time - before
	if wanted <= 0 {
		return prev.param, nil
	}
	return bisect(func(t T) (T, error) {
		l, err := c.spline.LengthRange(prev.param, t)
		return l - wanted, err
	}, prev.param, next.param, c.epsilon)
}

// Length returns the length of the whole path, which is its duration times
// its speed.
func (c *ConstantSpeedSpline[T]) Length() (T, error) {
	if c.spline == nil {
		return 0, fmt.Errorf("%w: length requested", ErrUninitialized)
	}
	return c.duration * c.speed, nil
}

// LengthRange returns the distance traveled between two points in time.
// Both must lie within [0, Duration] and start must not be greater than end.
func (c *ConstantSpeedSpline[T]) LengthRange(start, end T) (T, error) {
	if c.spline == nil {
		return 0, fmt.Errorf("%w: length requested", ErrUninitialized)
	}
	if start > end {
		return 0, fmt.Errorf("%w: length requested from time=%g to time=%g, end must not be less than start", ErrDomain, start, end)
	}
	if err := c.checkTime("length", start); err != nil {
		return 0, err
	}
	if err := c.checkTime("length", end); err != nil {
		return 0, err
	}
	return (end - start) * c.speed, nil
}

// Speed returns the speed at which the spline is traversed.
func (c *ConstantSpeedSpline[T]) Speed() (T, error) {
	if c.spline == nil {
		return 0, fmt.Errorf("%w: speed requested", ErrUninitialized)
	}
	return c.speed, nil
}

// Duration returns the time it takes to traverse the whole spline.
func (c *ConstantSpeedSpline[T]) Duration() (T, error) {
	if c.spline == nil {
		return 0, fmt.Errorf("%w: duration requested", ErrUninitialized)
	}
	return c.duration, nil
}

// Spline returns the underlying spline, parametrized by chordal distance. It
// returns nil for an uninitialized spline.
func (c *ConstantSpeedSpline[T]) Spline() *Spline[T] {
	return c.spline
}

// BoundingBox returns the smallest axis-aligned box that encloses the path.
func (c *ConstantSpeedSpline[T]) BoundingBox() (Box3[T], error) {
	if c.spline == nil {
		return Box3[T]{}, fmt.Errorf("%w: bounding box requested", ErrUninitialized)
	}
	return c.spline.BoundingBox()
}

// Samples returns an iterator over the times 0, step, 2·step, … and the
// positions reached at them. The final sample is always taken at the end of
// the path, even if the duration is not a multiple of step.
func (c *ConstantSpeedSpline[T]) Samples(step T) (iter.Seq2[T, Vec3[T]], error) {
	if c.spline == nil {
		return nil, fmt.Errorf("%w: samples requested", ErrUninitialized)
	}
	if !(step > 0) || math.IsInf(float64(step), 0) {
		return nil, fmt.Errorf("%w: sampling step must be positive and finite, got %g", ErrDomain, step)
	}
	return func(yield func(T, Vec3[T]) bool) {
		for i := 0; ; i++ {
			time := T(i) * step
			if time >= c.duration {
				break
			}
			if !yield(time, c.mustValue(time)) {
				return
			}
		}
		yield(c.duration, c.mustValue(c.duration))
	}, nil
}

func (c *ConstantSpeedSpline[T]) mustValue(time T) Vec3[T] {
	v, err := c.Value(time)
	if err != nil {
		panic(fmt.Sprintf("unreachable: %v", err))
	}
	return v
}
