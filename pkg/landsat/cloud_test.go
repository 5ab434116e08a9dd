package landsat

import(
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awhall/gorast/pkg/grid"
)

func TestLTKClass(t *testing.T) {
	cases := []struct {
		name           string
		b1, b3, b4, b5 float64
		want           float64
	}{
		{"bare land", 0.04, 0.06, 0.08, 0.08, LTKBareLand},
		{"snow", 0.40, 0.40, 0.30, 0.10, LTKIceSnow},
		{"water", 0.05, 0.05, 0.02, 0.01, LTKWater},
		{"cloud", 0.50, 0.50, 0.50, 0.50, LTKCloud},
		{"ambiguous", 0.10, 0.10, 0.10, 0.20, LTKAmbiguous},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ltkClass(c.b1, c.b3, c.b4, c.b5), c.name)
	}
}

func TestLTKGrids(t *testing.T) {
	mk := func(vals ...float64) *grid.Grid {
		g, err := grid.FromSlice(2, 1, vals)
		require.NoError(t, err)
		return g
	}
	// pixel 0 water, pixel 1 cloud
	out, err := LTK(mk(0.05, 0.50), mk(0.05, 0.50), mk(0.02, 0.50), mk(0.01, 0.50))
	require.NoError(t, err)
	assert.Equal(t, LTKWater, out.Get(0, 0))
	assert.Equal(t, LTKCloud, out.Get(1, 0))

	_, err = LTK(mk(1, 2), mk(1, 2), mk(1, 2), grid.New(3, 3))
	assert.Error(t, err)
}
