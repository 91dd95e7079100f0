package palquant

import (
	"gonum.org/v1/gonum/stat"
)

// meanError is the weight-averaged squared RGBA distance from every sample to
// its direct-mapped palette entry.
func meanError(h *histogram, s searcher) float64 {
	if h.len() == 0 {
		return 0
	}
	dist := make([]float64, h.len())
	weights := make([]float64, h.len())
	for i, smp := range h.samples {
		_, d := s.nearest(smp.c)
		dist[i] = float64(d)
		weights[i] = float64(smp.w)
	}
	return stat.Mean(dist, weights)
}

// meanPerceptualError is the weight-averaged CIEDE2000 distance between the
// RGB part of every sample and its direct-mapped palette entry.
func meanPerceptualError(h *histogram, s searcher, pal [][4]uint8) float64 {
	if h.len() == 0 {
		return 0
	}
	dist := make([]float64, h.len())
	weights := make([]float64, h.len())
	for i, smp := range h.samples {
		idx, _ := s.nearest(smp.c)
		e := pal[idx]
		a := toColorful(smp.c[0], smp.c[1], smp.c[2])
		b := toColorful(e[0], e[1], e[2])
		dist[i] = a.DistanceCIEDE2000(b)
		weights[i] = float64(smp.w)
	}
	return stat.Mean(dist, weights)
}
