package config

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Params is the raw parameter map of an experiment. Iteration follows the
// declaration order of the source document; that order is the tie-break for
// equal-cardinality varying parameters, so it must be stable.
type Params struct {
	m *orderedmap.OrderedMap[string, Value]
}

// NewParams returns an empty parameter map.
func NewParams() *Params {
	return &Params{m: orderedmap.New[string, Value]()}
}

// Set stores a value under name. Re-setting an existing name keeps its
// original declaration position.
func (p *Params) Set(name string, v Value) {
	p.m.Set(name, v)
}

// Get looks up a value by name.
func (p *Params) Get(name string) (Value, bool) {
	return p.m.Get(name)
}

// Delete removes a name from the map, reporting whether it was present.
func (p *Params) Delete(name string) bool {
	_, ok := p.m.Delete(name)
	return ok
}

// Names returns all parameter names in declaration order.
func (p *Params) Names() []string {
	names := make([]string, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Len returns the number of parameters.
func (p *Params) Len() int { return p.m.Len() }
