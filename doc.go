// Package simpline provides natural cubic splines through points in 3-D
// space, and a variant that is traversed at constant speed.
//
// # Splines
//
// [Spline] interpolates a sequence of points, each placed at a parameter
// value (a knot). Between adjacent knots the spline is a cubic polynomial.
// Position, first and second derivative are continuous across knots, and the
// second derivative vanishes at both ends of the domain, which is what makes
// the spline "natural". The derivatives of all segments are found by solving
// a single linear system shared by the three dimensions.
//
// Splines can compute their arc length, either in full (see
// [Spline.Length]) or between two parameters (see [Spline.LengthRange]).
// Lengths are integrated numerically with Gauss-Legendre quadrature, one
// application of the rule per segment. The order of the rule can be chosen
// with [Options].
//
// # Constant-speed splines
//
// [ConstantSpeedSpline] reparametrizes a spline by elapsed time, such that
// the curve is traversed at a fixed speed. Its points are placed at their
// cumulative chordal distance, and evaluating it at a time means finding the
// spline parameter at which the traveled arc length equals speed times time.
// That search is done by bisection, seeded by a table of knot times.
//
// Both kinds of spline implement [Curve].
//
// # Errors
//
// Constructors return errors wrapping [ErrConstruction] for invalid input.
// Evaluating outside of a spline's domain returns errors wrapping
// [ErrDomain], and using the zero value of a spline returns errors wrapping
// [ErrUninitialized]. Use [errors.Is] to tell them apart.
//
// # Numeric types
//
// All types are generic over float32 and float64. The linear system and
// quadrature nodes are always computed in float64.
//
// # Literature
//
//   - [Cubic spline interpolation]
//   - [Gauss-Legendre quadrature]
//   - [A Primer on Bézier Curves], section "Arc length"
//
// [Cubic spline interpolation]: https://en.wikipedia.org/wiki/Spline_interpolation
// [Gauss-Legendre quadrature]: https://en.wikipedia.org/wiki/Gauss%E2%80%93Legendre_quadrature
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/#arclength
package simpline
