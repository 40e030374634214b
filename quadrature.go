package simpline

import (
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/integrate/quad"
)

// gaussLegendre is a fixed-order Gauss-Legendre rule on [-1, 1].
type gaussLegendre[T constraints.Float] struct {
	nodes   []T
	weights []T
}

func newGaussLegendre[T constraints.Float](order int) gaussLegendre[T] {
	x := make([]float64, order)
	w := make([]float64, order)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)

	q := gaussLegendre[T]{
		nodes:   make([]T, order),
		weights: make([]T, order),
	}
	for i := range order {
		q.nodes[i] = T(x[i])
		q.weights[i] = T(w[i])
	}
	return q
}

// integrate approximates the integral of f over [a, b], mapping the nodes
// from [-1, 1] onto the interval.
func (q gaussLegendre[T]) integrate(a, b T, f func(T) T) T {
	width := b - a
	if width <= 0 {
		return 0
	}
	var sum T
	for i, xi := range q.nodes {
		t := a + (xi+1)/2*width
		sum += q.weights[i] * f(t)
	}
	return width / 2 * sum
}
