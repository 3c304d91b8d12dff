package problems

import (
	"fmt"
	"sort"
)

// Registry maps problem names to constructors. The size argument is the
// discretization size for grid-based problems and ignored by scalar ones.
type Registry struct {
	builders map[string]func(size int) Model
}

func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]func(int) Model)}
	r.builders["sine"] = func(int) Model { return NewSine() }
	r.builders["circle"] = func(int) Model { return NewCircle() }
	r.builders["bratu"] = func(n int) Model { return NewBratu(n) }
	return r
}

// Get builds the named problem.
func (r *Registry) Get(name string, size int) (Model, error) {
	fn, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown problem: %s", name)
	}
	return fn(size), nil
}

// List returns the registered problem names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
