package matrix

import (
	"fmt"

	"github.com/skyglowlab/skybatch/internal/config"
)

// Combination is one point of the Cartesian product: the varying parameter
// names (in space order) paired with one scalar each.
type Combination struct {
	names  []string
	values []config.Scalar
}

// Names returns the varying-parameter names in space order. The slice is
// shared across combinations and must not be modified.
func (c Combination) Names() []string { return c.names }

// Value looks up the combination's scalar for name.
func (c Combination) Value(name string) (config.Scalar, bool) {
	for i, n := range c.names {
		if n == name {
			return c.values[i], true
		}
	}
	return config.Scalar{}, false
}

// At returns the i-th (name, scalar) pair.
func (c Combination) At(i int) (string, config.Scalar) {
	return c.names[i], c.values[i]
}

// Len returns the number of varying parameters.
func (c Combination) Len() int { return len(c.names) }

// Resolved is the two-level override-first view of a combination layered
// over the base parameter map. Reads fall through to the base for names the
// combination does not carry; the base is never written.
type Resolved struct {
	combo Combination
	base  *config.Params
}

// Get returns the effective scalar for name: the combination's value when
// the parameter varies, the base's (single) value otherwise.
func (r Resolved) Get(name string) (config.Scalar, bool) {
	if s, ok := r.combo.Value(name); ok {
		return s, true
	}
	v, ok := r.base.Get(name)
	if !ok {
		return config.Scalar{}, false
	}
	return v.First(), true
}

// scalar fetches a required parameter; absence past validation is a
// programmer error.
func (r Resolved) scalar(name string) config.Scalar {
	s, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("matrix: unresolved parameter %q", name))
	}
	return s
}

// Float returns the numeric value of a required parameter.
func (r Resolved) Float(name string) float64 { return r.scalar(name).Float() }

// Truth returns the boolean value of a required parameter.
func (r Resolved) Truth(name string) bool { return r.scalar(name).Truth() }

// Text returns the string value of a required parameter.
func (r Resolved) Text(name string) string { return r.scalar(name).Text() }

// Coord returns the coordinate value of a required parameter.
func (r Resolved) Coord(name string) config.Coord { return r.scalar(name).Coord() }

// Combination exposes the underlying combination.
func (r Resolved) Combination() Combination { return r.combo }
