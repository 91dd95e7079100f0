package palquant

import (
	"context"
	"math"
)

// refine runs Lloyd iterations seeded from the split tree.
//
// Centroids are kept on the 8-bit lattice between iterations. For a fixed
// assignment the rounded mean is the best lattice point, so the total squared
// error never increases from one iteration to the next and the result is never
// worse than the seed palette.
func refine(h *histogram, seed []*cluster, maxIter int, epsilon float64, logger *Logger) []*cluster {
	if len(seed) < 2 {
		return seed
	}
	pal := make([][4]uint8, len(seed))
	for i, c := range seed {
		pal[i] = c.entry()
	}

	total := float64(h.total)
	assign := make([]int, h.len())
	sums := make([][4]float64, len(pal))
	weights := make([]float64, len(pal))
	prev := math.Inf(1)
	first := 0.0
	iter := 0
	for iter < maxIter {
		iter++
		// Assignment pass: reads pal, writes assign.
		s := newSearcher(pal)
		sse := 0.0
		for i, smp := range h.samples {
			idx, d := s.nearest(smp.c)
			assign[i] = idx
			sse += float64(smp.w) * float64(d)
		}
		cur := sse / total
		if iter == 1 {
			first = cur
		}
		improved := prev - cur
		prev = cur
		if improved < epsilon {
			break
		}

		// Recompute pass: reads assign, writes pal.
		clear(sums)
		clear(weights)
		for i, smp := range h.samples {
			w := float64(smp.w)
			k := assign[i]
			weights[k] += w
			for ch := range 4 {
				sums[k][ch] += w * float64(smp.c[ch])
			}
		}
		for k := range pal {
			if weights[k] == 0 {
				continue
			}
			for ch := range 4 {
				pal[k][ch] = roundChannel(sums[k][ch] / weights[k])
			}
		}
	}
	logger.LogRefine(context.Background(), iter, first, prev)

	members := make([][]int, len(pal))
	for i, k := range assign {
		members[k] = append(members[k], i)
	}
	out := make([]*cluster, 0, len(pal))
	for k, m := range members {
		if len(m) == 0 {
			continue
		}
		out = append(out, newCluster(seed[k].id, m, h.samples))
	}
	return out
}
