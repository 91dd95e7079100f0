package palquant

import "math"

// gridMinPalette is the palette size from which the bucket grid beats a linear scan.
const gridMinPalette = 32

const (
	gridCell  = 16
	gridSide  = 256 / gridCell
	gridCells = gridSide * gridSide * gridSide
)

// searcher finds the nearest palette entry to a color.
// Distance is squared Euclidean over RGBA; ties go to the lowest index.
// second is the nearest entry whose color differs from skip, or -1.
type searcher interface {
	nearest(c [4]uint8) (int, int32)
	second(c, skip [4]uint8) int
}

func newSearcher(pal [][4]uint8) searcher {
	if len(pal) >= gridMinPalette {
		return newGridSearcher(pal)
	}
	return linearSearcher(pal)
}

type linearSearcher [][4]uint8

func (s linearSearcher) nearest(c [4]uint8) (int, int32) {
	best, bestD := 0, int32(math.MaxInt32)
	for i, e := range s {
		if d := sqDist(c, e); d < bestD {
			best, bestD = i, d
			if d == 0 {
				break
			}
		}
	}
	return best, bestD
}

func (s linearSearcher) second(c, skip [4]uint8) int {
	best, bestD := -1, int32(math.MaxInt32)
	for i, e := range s {
		if e == skip {
			continue
		}
		if d := sqDist(c, e); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

func sqDist(a, b [4]uint8) int32 {
	d0 := int32(a[0]) - int32(b[0])
	d1 := int32(a[1]) - int32(b[1])
	d2 := int32(a[2]) - int32(b[2])
	d3 := int32(a[3]) - int32(b[3])
	return d0*d0 + d1*d1 + d2*d2 + d3*d3
}

// gridSearcher buckets palette entries by RGB into a uniform grid and searches
// rings of cells outward. Alpha still counts toward the distance, so the RGB
// distance to unvisited cells is only a lower bound.
type gridSearcher struct {
	pal  [][4]uint8
	head []int32
	next []int32
}

func newGridSearcher(pal [][4]uint8) *gridSearcher {
	g := &gridSearcher{
		pal:  pal,
		head: make([]int32, gridCells),
		next: make([]int32, len(pal)),
	}
	for i := range g.head {
		g.head[i] = -1
	}
	for i, e := range pal {
		cell := gridIndex(int(e[0])/gridCell, int(e[1])/gridCell, int(e[2])/gridCell)
		g.next[i] = g.head[cell]
		g.head[cell] = int32(i)
	}
	return g
}

func gridIndex(x, y, z int) int {
	return (z*gridSide+y)*gridSide + x
}

func (g *gridSearcher) nearest(c [4]uint8) (int, int32) {
	return g.search(c, nil)
}

func (g *gridSearcher) second(c, skip [4]uint8) int {
	i, _ := g.search(c, &skip)
	return i
}

// search returns the nearest entry, ignoring entries equal to *skip when
// skip is non-nil. The index is -1 if every entry was skipped.
func (g *gridSearcher) search(c [4]uint8, skip *[4]uint8) (int, int32) {
	cx, cy, cz := int(c[0])/gridCell, int(c[1])/gridCell, int(c[2])/gridCell
	best, bestD := -1, int32(math.MaxInt32)
	for ring := 0; ; ring++ {
		minX, maxX := max(cx-ring, 0), min(cx+ring, gridSide-1)
		minY, maxY := max(cy-ring, 0), min(cy+ring, gridSide-1)
		minZ, maxZ := max(cz-ring, 0), min(cz+ring, gridSide-1)
		for z := minZ; z <= maxZ; z++ {
			for y := minY; y <= maxY; y++ {
				for x := minX; x <= maxX; x++ {
					// Only the shell of the cube is new in this ring.
					if ring > 0 && x != cx-ring && x != cx+ring &&
						y != cy-ring && y != cy+ring &&
						z != cz-ring && z != cz+ring {
						continue
					}
					for i := g.head[gridIndex(x, y, z)]; i != -1; i = g.next[i] {
						if skip != nil && g.pal[i] == *skip {
							continue
						}
						d := sqDist(c, g.pal[i])
						if d < bestD || (d == bestD && int(i) < best) {
							best, bestD = int(i), d
						}
					}
				}
			}
		}
		if minX == 0 && maxX == gridSide-1 && minY == 0 && maxY == gridSide-1 && minZ == 0 && maxZ == gridSide-1 {
			break
		}
		if best >= 0 && outsideBound(c, minX, maxX, minY, maxY, minZ, maxZ) > int64(bestD) {
			break
		}
	}
	return best, bestD
}

// outsideBound is a lower bound on the squared distance from c to any entry
// in a cell outside the visited box.
func outsideBound(c [4]uint8, minX, maxX, minY, maxY, minZ, maxZ int) int64 {
	minDist := int64(math.MaxInt64)
	axis := func(v, lo, hi int) {
		if lo > 0 {
			minDist = min(minDist, int64(v-lo*gridCell))
		}
		if hi < gridSide-1 {
			minDist = min(minDist, int64((hi+1)*gridCell-v))
		}
	}
	axis(int(c[0]), minX, maxX)
	axis(int(c[1]), minY, maxY)
	axis(int(c[2]), minZ, maxZ)
	if minDist == math.MaxInt64 {
		return minDist
	}
	minDist = max(minDist, 0)
	return minDist * minDist
}
