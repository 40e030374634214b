package simpline

import "errors"

// Errors returned by the splines. Every error returned by this package wraps
// exactly one of them; use [errors.Is] to tell them apart.
var (
	// ErrConstruction indicates that a spline could not be built from the
	// given points, parameters, speed or options.
	ErrConstruction = errors.New("invalid spline construction")

	// ErrDomain indicates a query outside of the curve's domain, or an
	// inverted interval.
	ErrDomain = errors.New("argument out of domain")

	// ErrUninitialized indicates a query against the zero value of a spline.
	ErrUninitialized = errors.New("spline is not initialized")
)
