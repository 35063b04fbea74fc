package config

import (
	"fmt"
	"strconv"
)

// Kind discriminates the scalar types a parameter value can carry.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindCoord
)

// Coord is an observer position as a latitude/longitude pair in degrees.
type Coord struct {
	Lat float64
	Lon float64
}

// String renders the coordinate at fixed 6-decimal precision. This exact
// rendering names the per-observer raster directory and appears in sandbox
// paths, so it must stay stable.
func (c Coord) String() string {
	return fmt.Sprintf("%.6f_%.6f", c.Lat, c.Lon)
}

// Scalar is a single parameter value: a number, a string, a boolean or an
// observer coordinate. The zero Scalar is the number 0.
type Scalar struct {
	kind  Kind
	num   float64
	str   string
	truth bool
	coord Coord
}

// Num builds a numeric scalar.
func Num(f float64) Scalar { return Scalar{kind: KindNumber, num: f} }

// Str builds a string scalar.
func Str(s string) Scalar { return Scalar{kind: KindString, str: s} }

// Bool builds a boolean scalar.
func Bool(b bool) Scalar { return Scalar{kind: KindBool, truth: b} }

// Coordinate builds an observer coordinate scalar.
func Coordinate(lat, lon float64) Scalar {
	return Scalar{kind: KindCoord, coord: Coord{Lat: lat, Lon: lon}}
}

// Kind reports the scalar's type.
func (s Scalar) Kind() Kind { return s.kind }

// Float returns the numeric value. Valid only for KindNumber.
func (s Scalar) Float() float64 { return s.num }

// Text returns the string value. Valid only for KindString.
func (s Scalar) Text() string { return s.str }

// Truth returns the boolean value. Valid only for KindBool.
func (s Scalar) Truth() bool { return s.truth }

// Coord returns the coordinate value. Valid only for KindCoord.
func (s Scalar) Coord() Coord { return s.coord }

// Equal reports whether two scalars carry the same kind and value.
func (s Scalar) Equal(o Scalar) bool { return s == o }

// Render produces the canonical textual form used in sandbox path segments
// and unique run IDs: numbers in shortest %g-style form, coordinates at
// 6-decimal precision, booleans as true/false.
func (s Scalar) Render() string {
	switch s.kind {
	case KindNumber:
		return strconv.FormatFloat(s.num, 'g', -1, 64)
	case KindString:
		return s.str
	case KindBool:
		return strconv.FormatBool(s.truth)
	case KindCoord:
		return s.coord.String()
	}
	return ""
}

// Value is a parameter value: either one scalar or an ordered list of
// scalars. A list value marks the parameter as varying during expansion.
type Value struct {
	items []Scalar
	list  bool
}

// Single wraps one scalar as a non-varying value.
func Single(s Scalar) Value { return Value{items: []Scalar{s}} }

// List wraps an ordered sequence of scalars as a varying value. The order is
// preserved; repeated entries are kept as-is.
func List(items ...Scalar) Value {
	return Value{items: append([]Scalar(nil), items...), list: true}
}

// IsList reports whether the value is a sequence.
func (v Value) IsList() bool { return v.list }

// Len returns the number of scalars carried.
func (v Value) Len() int { return len(v.items) }

// Items returns the carried scalars in order. Callers must not modify the
// returned slice.
func (v Value) Items() []Scalar { return v.items }

// First returns the first (or only) scalar.
func (v Value) First() Scalar {
	if len(v.items) == 0 {
		return Scalar{}
	}
	return v.items[0]
}

// IndexOf returns the position of s within the value, or -1.
func (v Value) IndexOf(s Scalar) int {
	for i, it := range v.items {
		if it.Equal(s) {
			return i
		}
	}
	return -1
}

// Collapse returns the single element as a non-varying value when the list
// holds exactly one entry; otherwise it returns the value unchanged. Layer
// and observer lists of length one degrade to constants before expansion.
func (v Value) Collapse() Value {
	if v.list && len(v.items) == 1 {
		return Single(v.items[0])
	}
	return v
}
