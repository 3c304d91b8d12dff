package continuation

// Point is one accepted state on a solution branch.
type Point[V any] struct {
	Step  int
	Lmbda float64
	U     V
}

// Branch is the ordered history of accepted states. It is append-only and
// owned by the driver that produced it; callbacks and adapters never mutate
// it.
type Branch[V any] struct {
	Points []Point[V]
}

func (b *Branch[V]) append(step int, lmbda float64, u V) {
	b.Points = append(b.Points, Point[V]{Step: step, Lmbda: lmbda, U: u})
}

// Len returns the number of accepted states.
func (b *Branch[V]) Len() int { return len(b.Points) }

// Last returns the most recently accepted state, or false if the branch is
// empty.
func (b *Branch[V]) Last() (Point[V], bool) {
	if len(b.Points) == 0 {
		var zero Point[V]
		return zero, false
	}
	return b.Points[len(b.Points)-1], true
}

// Lmbdas returns the parameter values of all accepted states in order.
func (b *Branch[V]) Lmbdas() []float64 {
	out := make([]float64, len(b.Points))
	for i, p := range b.Points {
		out[i] = p.Lmbda
	}
	return out
}
