package palquant

import (
	"github.com/makeworld-the-better-one/dither/v2"
)

// bayerOffsets holds the 4×4 ordered dither thresholds, centered on zero and
// spaced 1/16 apart inside (-0.5, 0.5).
var bayerOffsets = bayerTable(dither.Bayer(4, 4, 1))

// bayerTable samples m at mid-gray and normalizes what it adds to each cell.
// Only the position-dependent offset is kept; color handling stays ours.
func bayerTable(m dither.PixelMapper) [4][4]float64 {
	const mid = 1 << 15
	var t [4][4]float64
	lo, hi, sum := 0.0, 0.0, 0.0
	for y := range 4 {
		for x := range 4 {
			r, _, _ := m(x, y, mid, mid, mid)
			v := float64(r) - mid
			t[y][x] = v
			if x == 0 && y == 0 {
				lo, hi = v, v
			}
			lo, hi = min(lo, v), max(hi, v)
			sum += v
		}
	}
	mean := sum / 16
	span := hi - lo
	for y := range 4 {
		for x := range 4 {
			if span == 0 {
				t[y][x] = 0
				continue
			}
			t[y][x] = (t[y][x] - mean) / span * 15 / 16
		}
	}
	return t
}

// threshold returns the position-only offset in (-0.5, 0.5) for pixel (x, y).
func threshold(x, y int) float64 {
	return bayerOffsets[y&3][x&3]
}

// perturb moves c by t·strength times the step from its nearest entry e to
// the next-nearest distinct entry n. A color equal to e is returned unchanged.
func perturb(c, e, n [4]uint8, t, strength float64) [4]uint8 {
	if c == e || e == n {
		return c
	}
	var out [4]uint8
	k := t * strength
	for ch := range 4 {
		step := float64(n[ch]) - float64(e[ch])
		out[ch] = roundChannel(float64(c[ch]) + step*k)
	}
	return out
}
