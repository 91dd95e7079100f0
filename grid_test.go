package palquant

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomEntries(r *rand.Rand, n int) [][4]uint8 {
	pal := make([][4]uint8, n)
	for i := range pal {
		pal[i] = [4]uint8{uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256))}
	}
	return pal
}

func TestGridMatchesLinear(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 13))
	for _, n := range []int{gridMinPalette, 64, 200, MaxColors} {
		pal := randomEntries(r, n)
		// Duplicates and a clustered corner exercise tie-breaking and empty cells.
		pal[n-1] = pal[0]
		pal[n-2] = [4]uint8{1, 1, 1, 255}
		pal[n-3] = [4]uint8{1, 1, 1, 255}

		grid := newGridSearcher(pal)
		lin := linearSearcher(pal)
		for range 5000 {
			c := [4]uint8{uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256))}
			gi, gd := grid.nearest(c)
			li, ld := lin.nearest(c)
			require.Equal(t, ld, gd, "palette %d color %v", n, c)
			require.Equal(t, li, gi, "palette %d color %v", n, c)
		}
		for i, e := range pal {
			gi, gd := grid.nearest(e)
			li, _ := lin.nearest(e)
			require.Zero(t, gd)
			require.Equal(t, li, gi)
			require.LessOrEqual(t, gi, i)
		}
	}
}

func TestLinearTieBreak(t *testing.T) {
	pal := [][4]uint8{{10, 0, 0, 255}, {0, 0, 0, 255}, {20, 0, 0, 255}, {10, 0, 0, 255}}
	i, d := linearSearcher(pal).nearest([4]uint8{15, 0, 0, 255})
	require.Equal(t, 0, i)
	require.Equal(t, int32(25), d)
}

func TestNewSearcherSelection(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 1))
	_, ok := newSearcher(randomEntries(r, gridMinPalette-1)).(linearSearcher)
	require.True(t, ok)
	_, ok = newSearcher(randomEntries(r, gridMinPalette)).(*gridSearcher)
	require.True(t, ok)
}
