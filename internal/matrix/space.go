package matrix

import (
	"sort"

	"github.com/skyglowlab/skybatch/internal/config"
)

// Space is the Cartesian parameter space of one experiment.
type Space struct {
	base    *config.Params
	varying []string
	axes    [][]config.Scalar
}

// NewSpace inspects the parameter map and fixes the varying-parameter order.
// The base map is never mutated.
func NewSpace(base *config.Params) *Space {
	var varying []string
	for _, name := range base.Names() {
		if v, _ := base.Get(name); v.IsList() {
			varying = append(varying, name)
		}
	}
	// Descending cardinality; the stable sort keeps declaration order for
	// equal-cardinality parameters.
	sort.SliceStable(varying, func(i, j int) bool {
		vi, _ := base.Get(varying[i])
		vj, _ := base.Get(varying[j])
		return vi.Len() > vj.Len()
	})

	axes := make([][]config.Scalar, len(varying))
	for i, name := range varying {
		v, _ := base.Get(name)
		axes[i] = v.Items()
	}
	return &Space{base: base, varying: varying, axes: axes}
}

// Varying returns the ordered varying-parameter names.
func (s *Space) Varying() []string { return s.varying }

// Size returns the pre-filter combination count: the product of the
// cardinalities of all varying parameters. A space with no varying
// parameters has size 1 (the single constant combination).
func (s *Space) Size() int {
	n := 1
	for _, axis := range s.axes {
		n *= len(axis)
	}
	return n
}

// Combinations enumerates the full product in deterministic order, the last
// varying parameter moving fastest. It yields exactly Size() combinations;
// repeated values within an axis are not deduplicated.
func (s *Space) Combinations() []Combination {
	out := make([]Combination, 0, s.Size())
	idx := make([]int, len(s.axes))
	for {
		values := make([]config.Scalar, len(s.axes))
		for i, axis := range s.axes {
			values[i] = axis[idx[i]]
		}
		out = append(out, Combination{names: s.varying, values: values})
		if len(s.axes) == 0 {
			return out
		}
		// Odometer increment, rightmost digit first.
		pos := len(idx) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(s.axes[pos]) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return out
		}
	}
}

// Resolve layers a combination over the base parameters.
func (s *Space) Resolve(c Combination) Resolved {
	return Resolved{combo: c, base: s.base}
}
