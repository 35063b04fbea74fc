package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skyglowlab/skybatch/internal/config"
)

func TestScalarRender(t *testing.T) {
	cases := []struct {
		name string
		in   config.Scalar
		want string
	}{
		{"IntegralNumber", config.Num(400), "400"},
		{"FractionalNumber", config.Num(435.8), "435.8"},
		{"NegativeNumber", config.Num(-0.5), "-0.5"},
		{"String", config.Str("maritime"), "maritime"},
		{"BoolTrue", config.Bool(true), "true"},
		{"BoolFalse", config.Bool(false), "false"},
		{"Coordinate", config.Coordinate(45, -73.5), "45.000000_-73.500000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Render())
		})
	}
}

func TestCoordStringFixedPrecision(t *testing.T) {
	// Exactly six decimals, always: this string names raster directories.
	assert.Equal(t, "45.123457_-73.000000", config.Coord{Lat: 45.1234567, Lon: -73}.String())
}

func TestValueCollapse(t *testing.T) {
	single := config.List(config.Num(3)).Collapse()
	assert.False(t, single.IsList())
	assert.Equal(t, 3.0, single.First().Float())

	multi := config.List(config.Num(3), config.Num(4)).Collapse()
	assert.True(t, multi.IsList())
	assert.Equal(t, 2, multi.Len())

	scalar := config.Single(config.Num(3)).Collapse()
	assert.False(t, scalar.IsList())
}

func TestValueIndexOf(t *testing.T) {
	v := config.List(config.Num(0), config.Num(180), config.Num(90))
	assert.Equal(t, 0, v.IndexOf(config.Num(0)))
	assert.Equal(t, 2, v.IndexOf(config.Num(90)))
	assert.Equal(t, -1, v.IndexOf(config.Num(7)))
}

func TestParamsPreserveDeclarationOrder(t *testing.T) {
	p := config.NewParams()
	p.Set("zeta", config.Single(config.Num(1)))
	p.Set("alpha", config.Single(config.Num(2)))
	p.Set("mu", config.Single(config.Num(3)))
	assert.Equal(t, []string{"zeta", "alpha", "mu"}, p.Names())

	// Re-setting keeps the original slot.
	p.Set("alpha", config.Single(config.Num(9)))
	assert.Equal(t, []string{"zeta", "alpha", "mu"}, p.Names())
	v, ok := p.Get("alpha")
	assert.True(t, ok)
	assert.Equal(t, 9.0, v.First().Float())
}
