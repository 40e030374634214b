package simpline

import "golang.org/x/exp/constraints"

type indexPair [2]int

// divDiffCache memoizes the divided differences f[tᵢ, …, tₖ] of a set of
// points. It only lives for the duration of a spline's construction.
type divDiffCache[T constraints.Float] struct {
	params []T
	points []Vec3[T]
	memo   map[indexPair]Vec3[T]
}

func newDivDiffCache[T constraints.Float](params []T, points []Vec3[T]) *divDiffCache[T] {
	return &divDiffCache[T]{
		params: params,
		points: points,
		memo:   make(map[indexPair]Vec3[T]),
	}
}

// at returns the divided difference over the knots i through k, inclusive.
// It requires i <= k.
func (c *divDiffCache[T]) at(i, k int) Vec3[T] {
	if i == k {
		return c.points[i]
	}
	key := indexPair{i, k}
	if v, ok := c.memo[key]; ok {
		return v
	}
	v := c.at(i+1, k).Sub(c.at(i, k-1)).Div(c.params[k] - c.params[i])
	c.memo[key] = v
	return v
}
