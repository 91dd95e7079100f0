package palquant

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBayerOffsets(t *testing.T) {
	seen := map[float64]bool{}
	sum := 0.0
	for y := range 4 {
		for x := range 4 {
			v := threshold(x, y)
			assert.Greater(t, v, -0.5)
			assert.Less(t, v, 0.5)
			seen[v] = true
			sum += v
			assert.Equal(t, v, threshold(x+4, y+8))
		}
	}
	assert.Len(t, seen, 16)
	assert.InDelta(t, 0, sum, 1e-3)
}

func TestPerturbUsesPaletteSpacing(t *testing.T) {
	c := [4]uint8{20, 20, 20, 255}
	e := [4]uint8{0, 0, 0, 255}
	n := [4]uint8{255, 255, 255, 255}
	assert.Equal(t, [4]uint8{148, 148, 148, 255}, perturb(c, e, n, 0.5, 1))
	assert.Equal(t, [4]uint8{84, 84, 84, 255}, perturb(c, e, n, 0.25, 1))
	assert.Equal(t, c, perturb(c, e, n, 0.5, 0))
	assert.Equal(t, e, perturb(e, e, n, 0.5, 1))
	assert.Equal(t, c, perturb(c, e, e, 0.5, 1))
}

func TestDitherGrayMixesBlackAndWhite(t *testing.T) {
	q := quantized(t, pixels(black, white), 2, false)
	require.Equal(t, Palette{black, white}, q.Palette(2))

	for _, g := range []uint8{20, 40, 60, 70, 100, 160, 200, 235} {
		gray := color.NRGBA{R: g, G: g, B: g, A: 255}
		idx, err := q.MapDithered(8, 8, uniform(gray, 64))
		require.NoError(t, err)
		whites := 0
		for _, i := range idx {
			whites += int(i)
		}
		assert.Greater(t, whites, 0, "gray %d", g)
		assert.Less(t, whites, 64, "gray %d", g)
		assert.InDelta(t, float64(g)/255*64, whites, 8, "gray %d", g)
	}
}

func TestSecondMatchesLinear(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for _, n := range []int{2, gridMinPalette, 100, MaxColors} {
		pal := randomEntries(r, n)
		pal[n-1] = pal[0]
		grid := newGridSearcher(pal)
		lin := linearSearcher(pal)
		for range 2000 {
			c := [4]uint8{uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256))}
			e, _ := lin.nearest(c)
			want := lin.second(c, pal[e])
			require.Equal(t, want, grid.second(c, pal[e]), "n=%d c=%v", n, c)
			if want >= 0 {
				require.NotEqual(t, pal[e], pal[want])
			}
		}
	}
}

func TestSecondWithSingleColor(t *testing.T) {
	pal := [][4]uint8{{9, 9, 9, 9}, {9, 9, 9, 9}}
	assert.Equal(t, -1, linearSearcher(pal).second([4]uint8{0, 0, 0, 0}, pal[0]))
	assert.Equal(t, -1, newGridSearcher(pal).second([4]uint8{0, 0, 0, 0}, pal[0]))
}
