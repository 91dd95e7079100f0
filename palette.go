package palquant

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is an ordered set of non-premultiplied RGBA colors.
// Entries appear in the order their clusters were created.
type Palette []color.NRGBA

// ColorPalette converts p for use with image.Paletted and image/draw.
func (p Palette) ColorPalette() color.Palette {
	out := make(color.Palette, len(p))
	for i, c := range p {
		out[i] = c
	}
	return out
}

// Colorful returns the opaque RGB part of each entry.
func (p Palette) Colorful() []colorful.Color {
	out := make([]colorful.Color, len(p))
	for i, c := range p {
		out[i] = toColorful(c.R, c.G, c.B)
	}
	return out
}

// Hex returns "#rrggbb" strings, ignoring alpha.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p.Colorful() {
		out[i] = c.Hex()
	}
	return out
}

// Bytes returns the palette as a flat RGBA buffer.
func (p Palette) Bytes() []byte {
	out := make([]byte, 0, len(p)*4)
	for _, c := range p {
		out = append(out, c.R, c.G, c.B, c.A)
	}
	return out
}

func (p Palette) entries() [][4]uint8 {
	out := make([][4]uint8, len(p))
	for i, c := range p {
		out[i] = [4]uint8{c.R, c.G, c.B, c.A}
	}
	return out
}

func toColorful(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
}

// entry is the cluster centroid rounded to the 8-bit lattice.
func (c *cluster) entry() [4]uint8 {
	var e [4]uint8
	m := c.mean()
	for ch := range 4 {
		e[ch] = roundChannel(m[ch])
	}
	return e
}

func roundChannel(v float64) uint8 {
	return uint8(max(0, min(255, math.Round(v))))
}

// extractPalette converts clusters into palette entries, keeping their order.
func extractPalette(clusters []*cluster) Palette {
	p := make(Palette, 0, len(clusters))
	for _, c := range clusters {
		if c.weight == 0 {
			continue
		}
		e := c.entry()
		p = append(p, color.NRGBA{R: e[0], G: e[1], B: e[2], A: e[3]})
	}
	return p
}
