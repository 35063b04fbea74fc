package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyglowlab/skybatch/internal/config"
	"github.com/skyglowlab/skybatch/internal/matrix"
)

func TestSpace_VaryingOrder(t *testing.T) {
	params := config.NewParams()
	params.Set("alpha", config.List(config.Num(1), config.Num(2)))
	params.Set("beta", config.List(config.Num(1), config.Num(2), config.Num(3)))
	params.Set("gamma", config.Single(config.Num(5)))
	params.Set("delta", config.List(config.Num(4), config.Num(5)))

	space := matrix.NewSpace(params)

	// Descending cardinality; alpha and delta tie at 2 and keep their
	// declaration order.
	assert.Equal(t, []string{"beta", "alpha", "delta"}, space.Varying())
	assert.Equal(t, 12, space.Size())
}

func TestSpace_CombinationCountIsProduct(t *testing.T) {
	cases := []struct {
		name  string
		lists [][]float64
		want  int
	}{
		{"TwoByThree", [][]float64{{1, 2}, {1, 2, 3}}, 6},
		{"SingleAxis", [][]float64{{7, 8, 9}}, 3},
		{"RepeatedValuesKept", [][]float64{{1, 1}, {2, 2}}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := config.NewParams()
			for i, list := range tc.lists {
				items := make([]config.Scalar, len(list))
				for j, v := range list {
					items[j] = config.Num(v)
				}
				params.Set(string(rune('a'+i)), config.List(items...))
			}
			space := matrix.NewSpace(params)
			assert.Equal(t, tc.want, space.Size())
			assert.Len(t, space.Combinations(), tc.want)
		})
	}
}

func TestSpace_NoVaryingParameters(t *testing.T) {
	params := config.NewParams()
	params.Set("only", config.Single(config.Num(1)))

	space := matrix.NewSpace(params)
	require.Equal(t, 1, space.Size())

	combos := space.Combinations()
	require.Len(t, combos, 1)
	assert.Equal(t, 0, combos[0].Len())
}

func TestSpace_EnumerationOrder(t *testing.T) {
	params := config.NewParams()
	params.Set("big", config.List(config.Num(1), config.Num(2), config.Num(3)))
	params.Set("small", config.List(config.Num(10), config.Num(20)))

	combos := matrix.NewSpace(params).Combinations()
	require.Len(t, combos, 6)

	// The last (smallest) axis moves fastest.
	want := [][2]float64{{1, 10}, {1, 20}, {2, 10}, {2, 20}, {3, 10}, {3, 20}}
	for i, w := range want {
		big, ok := combos[i].Value("big")
		require.True(t, ok)
		small, ok := combos[i].Value("small")
		require.True(t, ok)
		assert.Equal(t, w[0], big.Float(), "combo %d big", i)
		assert.Equal(t, w[1], small.Float(), "combo %d small", i)
	}
}

func TestResolved_OverridesWithoutMutatingBase(t *testing.T) {
	params := config.NewParams()
	params.Set("axis", config.List(config.Num(1), config.Num(2)))
	params.Set("constant", config.Single(config.Num(42)))

	space := matrix.NewSpace(params)
	combos := space.Combinations()
	require.Len(t, combos, 2)

	first := space.Resolve(combos[0])
	second := space.Resolve(combos[1])

	assert.Equal(t, 1.0, first.Float("axis"))
	assert.Equal(t, 2.0, second.Float("axis"))
	assert.Equal(t, 42.0, first.Float("constant"))

	// The base still carries the full list after resolution.
	v, ok := params.Get("axis")
	require.True(t, ok)
	assert.True(t, v.IsList())
	assert.Equal(t, 2, v.Len())
}

func TestResolved_MissingParameterPanics(t *testing.T) {
	params := config.NewParams()
	space := matrix.NewSpace(params)
	r := space.Resolve(space.Combinations()[0])
	assert.Panics(t, func() { r.Float("nope") })
}
