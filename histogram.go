package palquant

// sample is one distinct RGBA color and the number of pixels carrying it.
type sample struct {
	c [4]uint8
	w uint64
}

func (s sample) key() uint32 {
	return uint32(s.c[0])<<24 | uint32(s.c[1])<<16 | uint32(s.c[2])<<8 | uint32(s.c[3])
}

// histogram deduplicates colors. Samples keep first-seen order.
type histogram struct {
	index   map[uint32]int
	samples []sample
	total   uint64
}

func newHistogram() *histogram {
	return &histogram{index: make(map[uint32]int)}
}

// feed adds one unit of weight per RGBA quadruple in pix.
// len(pix) must be a multiple of 4.
func (h *histogram) feed(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		s := sample{c: [4]uint8{pix[i], pix[i+1], pix[i+2], pix[i+3]}, w: 1}
		k := s.key()
		if j, ok := h.index[k]; ok {
			h.samples[j].w++
		} else {
			h.index[k] = len(h.samples)
			h.samples = append(h.samples, s)
		}
		h.total++
	}
}

func (h *histogram) len() int {
	return len(h.samples)
}
