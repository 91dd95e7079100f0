package palquant

import (
	"image"
	"image/color"
)

// DrawQuantizer implements the image/draw Quantizer interface, so it can be
// plugged into encoders such as image/gif.
type DrawQuantizer struct {
	Options
	Mode Mode
}

// Quantize appends up to cap(p)-len(p) colors derived from m to p.
func (dq DrawQuantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	n := min(cap(p)-len(p), MaxColors)
	if n <= 0 {
		return p
	}
	q := New(dq.Options)
	if err := q.FeedImage(m); err != nil {
		return p
	}
	if err := q.quantize(n, dq.Mode); err != nil {
		return p
	}
	for _, c := range q.palette {
		p = append(p, c)
	}
	return p
}
