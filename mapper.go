package palquant

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// mapper assigns palette indices to pixels. It only reads the palette, so
// one mapper may serve many goroutines.
type mapper struct {
	pal      [][4]uint8
	search   searcher
	strength float64
	workers  int
}

func newMapper(p Palette, strength float64, workers int) *mapper {
	pal := p.entries()
	return &mapper{
		pal:      pal,
		search:   newSearcher(pal),
		strength: strength,
		workers:  max(1, workers),
	}
}

// nearestCache memoizes exact-color lookups for one worker.
type nearestCache struct {
	s      searcher
	pal    [][4]uint8
	m      map[uint32]uint8
	second map[uint32]int
}

func newNearestCache(s searcher, pal [][4]uint8) *nearestCache {
	return &nearestCache{s: s, pal: pal, m: make(map[uint32]uint8)}
}

// next returns the nearest entry to px whose color differs from entry e, or -1.
func (c *nearestCache) next(px [4]uint8, e uint8) int {
	if c.second == nil {
		c.second = make(map[uint32]int)
	}
	k := sample{c: px}.key()
	if i, ok := c.second[k]; ok {
		return i
	}
	i := c.s.second(px, c.pal[e])
	c.second[k] = i
	return i
}

func (c *nearestCache) index(px [4]uint8) uint8 {
	k := sample{c: px}.key()
	if i, ok := c.m[k]; ok {
		return i
	}
	i, _ := c.s.nearest(px)
	c.m[k] = uint8(i)
	return uint8(i)
}

func pixelAt(pix []byte, i int) [4]uint8 {
	o := i * 4
	return [4]uint8{pix[o], pix[o+1], pix[o+2], pix[o+3]}
}

// bands splits n units into at most parts contiguous ranges.
func bands(n, parts int) [][2]int {
	if n == 0 {
		return nil
	}
	parts = max(1, min(parts, n))
	step := (n + parts - 1) / parts
	out := make([][2]int, 0, parts)
	for lo := 0; lo < n; lo += step {
		out = append(out, [2]int{lo, min(lo+step, n)})
	}
	return out
}

// direct maps every pixel independently of its position.
func (m *mapper) direct(ctx context.Context, pix []byte) ([]uint8, error) {
	n := len(pix) / 4
	dst := make([]uint8, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for _, r := range bands(n, m.workers) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cache := newNearestCache(m.search, m.pal)
			for i := r[0]; i < r[1]; i++ {
				dst[i] = cache.index(pixelAt(pix, i))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

// dithered maps pixels after an ordered, position-derived perturbation.
// Rows are independent, so bands of rows run in parallel.
func (m *mapper) dithered(ctx context.Context, width, height int, pix []byte) ([]uint8, error) {
	dst := make([]uint8, width*height)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for _, r := range bands(height, m.workers) {
		g.Go(func() error {
			cache := newNearestCache(m.search, m.pal)
			for y := r[0]; y < r[1]; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				row := y * width
				for x := range width {
					c := pixelAt(pix, row+x)
					e := cache.index(c)
					if m.strength == 0 || m.pal[e] == c {
						dst[row+x] = e
						continue
					}
					n := cache.next(c, e)
					if n < 0 {
						dst[row+x] = e
						continue
					}
					dst[row+x] = cache.index(perturb(c, m.pal[e], m.pal[n], threshold(x, y), m.strength))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}
