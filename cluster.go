package palquant

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// cluster is a disjoint subset of histogram samples.
// weight, sum and sumSq are the sufficient statistics for its centroid and variance.
// members holds sample indices in ascending order.
type cluster struct {
	id      int
	weight  float64
	sum     [4]float64
	sumSq   [4]float64
	cost    float64
	members []int
}

func newCluster(id int, members []int, samples []sample) *cluster {
	c := &cluster{id: id, members: members}
	for _, m := range members {
		s := samples[m]
		w := float64(s.w)
		c.weight += w
		for ch := range 4 {
			v := float64(s.c[ch])
			c.sum[ch] += w * v
			c.sumSq[ch] += w * v * v
		}
	}
	mean := c.mean()
	for _, m := range members {
		s := samples[m]
		w := float64(s.w)
		for ch := range 4 {
			d := float64(s.c[ch]) - mean[ch]
			c.cost += w * d * d
		}
	}
	return c
}

func (c *cluster) mean() [4]float64 {
	var m [4]float64
	if c.weight == 0 {
		return m
	}
	for ch := range 4 {
		m[ch] = c.sum[ch] / c.weight
	}
	return m
}

// variance returns the per-channel weighted variance from the aggregate statistics.
func (c *cluster) variance() [4]float64 {
	var v [4]float64
	if c.weight == 0 {
		return v
	}
	for ch := range 4 {
		m := c.sum[ch] / c.weight
		v[ch] = max(0, c.sumSq[ch]/c.weight-m*m)
	}
	return v
}

func (c *cluster) splittable() bool {
	return len(c.members) > 1 && c.cost > 0
}

// principalAxis returns the unit direction of greatest weighted variance.
// The sign is fixed so that the largest-magnitude component is positive.
func (c *cluster) principalAxis(samples []sample) [4]float64 {
	mean := c.mean()
	var cov [16]float64
	for _, m := range c.members {
		s := samples[m]
		w := float64(s.w)
		var d [4]float64
		for ch := range 4 {
			d[ch] = float64(s.c[ch]) - mean[ch]
		}
		for i := range 4 {
			for j := i; j < 4; j++ {
				cov[i*4+j] += w * d[i] * d[j]
			}
		}
	}
	for i := range 4 {
		for j := range i {
			cov[i*4+j] = cov[j*4+i]
		}
	}

	var axis [4]float64
	var eig mat.EigenSym
	if eig.Factorize(mat.NewSymDense(4, cov[:]), true) {
		values := eig.Values(nil)
		var vecs mat.Dense
		eig.VectorsTo(&vecs)
		best := 0
		for i := 1; i < len(values); i++ {
			if values[i] > values[best] {
				best = i
			}
		}
		norm := 0.0
		for ch := range 4 {
			axis[ch] = vecs.At(ch, best)
			norm += axis[ch] * axis[ch]
		}
		if norm > 1e-12 && !math.IsNaN(norm) {
			lead := 0
			for ch := 1; ch < 4; ch++ {
				if math.Abs(axis[ch]) > math.Abs(axis[lead]) {
					lead = ch
				}
			}
			if axis[lead] < 0 {
				for ch := range 4 {
					axis[ch] = -axis[ch]
				}
			}
			return axis
		}
	}
	axis = [4]float64{}
	axis[c.widestChannel()] = 1
	return axis
}

func (c *cluster) widestChannel() int {
	v := c.variance()
	best := 0
	for ch := 1; ch < 4; ch++ {
		if v[ch] > v[best] {
			best = ch
		}
	}
	return best
}

// split divides c into two non-empty member sets along axis at the weighted
// mean projection, then moves each member to the nearer of the two centroids.
// The first returned set holds c's earliest sample.
func (c *cluster) split(samples []sample, axis [4]float64) (a, b []int) {
	a, b = partitionAt(c, samples, axis)
	if len(a) == 0 || len(b) == 0 {
		var ch [4]float64
		ch[c.widestChannel()] = 1
		a, b = partitionAt(c, samples, ch)
		if len(a) == 0 || len(b) == 0 {
			return nil, nil
		}
	}

	ca := centroidOf(a, samples)
	cb := centroidOf(b, samples)
	na := make([]int, 0, len(a))
	nb := make([]int, 0, len(b))
	for _, m := range c.members {
		v := samples[m].c
		if sqDistF(v, ca) <= sqDistF(v, cb) {
			na = append(na, m)
		} else {
			nb = append(nb, m)
		}
	}
	if len(na) > 0 && len(nb) > 0 {
		a, b = na, nb
	}
	if b[0] < a[0] {
		a, b = b, a
	}
	return a, b
}

func partitionAt(c *cluster, samples []sample, axis [4]float64) (lo, hi []int) {
	mean := c.mean()
	cut := dot(mean, axis)
	for _, m := range c.members {
		v := samples[m].c
		p := dot([4]float64{float64(v[0]), float64(v[1]), float64(v[2]), float64(v[3])}, axis)
		if p < cut {
			lo = append(lo, m)
		} else {
			hi = append(hi, m)
		}
	}
	return lo, hi
}

func centroidOf(members []int, samples []sample) [4]float64 {
	var sum [4]float64
	var w float64
	for _, m := range members {
		s := samples[m]
		sw := float64(s.w)
		w += sw
		for ch := range 4 {
			sum[ch] += sw * float64(s.c[ch])
		}
	}
	for ch := range 4 {
		sum[ch] /= w
	}
	return sum
}

func dot(a, b [4]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

func sqDistF(c [4]uint8, m [4]float64) float64 {
	d0 := float64(c[0]) - m[0]
	d1 := float64(c[1]) - m[1]
	d2 := float64(c[2]) - m[2]
	d3 := float64(c[3]) - m[3]
	return d0*d0 + d1*d1 + d2*d2 + d3*d3
}
