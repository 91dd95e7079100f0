package palquant

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"math"
)

// Quantizer owns the color histogram and palette for one image.
//
// Feed, Quantize, QuantizeFixed, QuantizeAuto and Reset mutate the Quantizer
// and must not run concurrently with any other method. Once a palette is
// built, the mapping and estimation methods only read it and may be called
// from several goroutines at once.
type Quantizer struct {
	opt     Options
	hist    *histogram
	palette Palette
	mapper  *mapper
	built   bool
}

// New returns an empty Quantizer. Zero-valued option fields take their
// defaults, except DitherStrength where zero turns dithering off.
func New(opt Options) *Quantizer {
	return &Quantizer{
		opt:  opt.normalized(),
		hist: newHistogram(),
	}
}

// Reset discards all samples and the palette.
func (q *Quantizer) Reset() {
	q.hist = newHistogram()
	q.palette = nil
	q.mapper = nil
	q.built = false
}

// Feed adds every RGBA pixel in pix to the histogram. Repeated calls
// accumulate, so feeding the same buffer twice doubles its weight.
// Feeding discards any palette built so far; quantize again before mapping.
func (q *Quantizer) Feed(pix []byte) error {
	if len(pix)%4 != 0 {
		return fmt.Errorf("%w: %d bytes", ErrPixelLength, len(pix))
	}
	if len(pix) == 0 {
		return nil
	}
	q.hist.feed(pix)
	q.palette = nil
	q.mapper = nil
	q.built = false
	return nil
}

// FeedImage feeds every pixel of img as non-premultiplied RGBA.
func (q *Quantizer) FeedImage(img image.Image) error {
	return q.Feed(NRGBAPixels(img).Pix)
}

// NRGBAPixels returns img as a tightly packed *image.NRGBA anchored at (0, 0).
func NRGBAPixels(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if m, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && m.Stride == 4*b.Dx() {
		return m
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Samples returns the number of distinct colors fed so far.
func (q *Quantizer) Samples() int {
	return q.hist.len()
}

// Weight returns the number of pixels fed so far.
func (q *Quantizer) Weight() uint64 {
	return q.hist.total
}

// Quantize builds a palette of at most n colors. With highQuality the split
// tree is followed by iterative refinement.
func (q *Quantizer) Quantize(n int, highQuality bool) error {
	mode := ModeFast
	if highQuality {
		mode = ModeHighQuality
	}
	return q.quantize(n, mode)
}

// QuantizeFixed builds a refined palette of at most n colors regardless of
// the configured mode. It is meant for probing quality at a small size.
func (q *Quantizer) QuantizeFixed(n int) error {
	return q.quantize(n, ModeHighQuality)
}

func (q *Quantizer) quantize(n int, mode Mode) error {
	ctx := context.Background()
	if n <= 0 || n > MaxColors {
		err := fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidColorCount, n, MaxColors)
		q.opt.Logger.LogQuantize(ctx, mode, n, 0, q.hist.len(), err)
		return err
	}
	if q.hist.len() == 0 {
		q.palette = Palette{}
		q.mapper = nil
		q.built = false
		q.opt.Logger.LogQuantize(ctx, mode, n, 0, 0, ErrEmptyInput)
		return ErrEmptyInput
	}

	clusters := mode.strategy(q.opt).partition(q.hist, n)
	q.palette = extractPalette(clusters)
	q.mapper = newMapper(q.palette, q.opt.DitherStrength, q.opt.Workers)
	q.built = true
	q.opt.Logger.LogQuantize(ctx, mode, n, len(q.palette), q.hist.len(), nil)
	return nil
}

// Palette returns a copy of the first min(n, len) palette entries.
func (q *Quantizer) Palette(n int) Palette {
	n = max(0, min(n, len(q.palette)))
	out := make(Palette, n)
	copy(out, q.palette[:n])
	return out
}

// Len returns the number of palette entries built by the last quantize.
func (q *Quantizer) Len() int {
	return len(q.palette)
}

func (q *Quantizer) ready(pixels int) error {
	if pixels > 0 && !q.built {
		return ErrNotQuantized
	}
	return nil
}

// MapDirect returns the nearest palette index for every RGBA pixel in pix.
func (q *Quantizer) MapDirect(pix []byte) ([]uint8, error) {
	return q.MapDirectContext(context.Background(), pix)
}

// MapDirectContext is MapDirect with cancellation between pixel bands.
func (q *Quantizer) MapDirectContext(ctx context.Context, pix []byte) ([]uint8, error) {
	if len(pix)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrPixelLength, len(pix))
	}
	if err := q.ready(len(pix)); err != nil {
		return nil, err
	}
	if len(pix) == 0 {
		return []uint8{}, nil
	}
	return q.mapper.direct(ctx, pix)
}

// MapDithered maps a width×height RGBA buffer with ordered dithering.
// A pixel whose color is exactly a palette entry always maps to that entry.
func (q *Quantizer) MapDithered(width, height int, pix []byte) ([]uint8, error) {
	return q.MapDitheredContext(context.Background(), width, height, pix)
}

// MapDitheredContext is MapDithered with cancellation between rows.
func (q *Quantizer) MapDitheredContext(ctx context.Context, width, height int, pix []byte) ([]uint8, error) {
	if width < 0 || height < 0 ||
		(width != 0 && height > math.MaxInt/4/width) ||
		len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrDimensions, width, height, len(pix))
	}
	if err := q.ready(len(pix)); err != nil {
		return nil, err
	}
	if len(pix) == 0 {
		return []uint8{}, nil
	}
	return q.mapper.dithered(ctx, width, height, pix)
}

// Paletted maps img onto the current palette.
func (q *Quantizer) Paletted(img image.Image, dither bool) (*image.Paletted, error) {
	src := NRGBAPixels(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	var (
		idx []uint8
		err error
	)
	if dither {
		idx, err = q.MapDithered(w, h, src.Pix)
	} else {
		idx, err = q.MapDirect(src.Pix)
	}
	if err != nil {
		return nil, err
	}
	dst := image.NewPaletted(image.Rect(0, 0, w, h), q.palette.ColorPalette())
	copy(dst.Pix, idx)
	return dst, nil
}

// MeanError returns the weight-averaged squared RGBA distance between every
// fed color and its direct-mapped palette entry.
func (q *Quantizer) MeanError() (float64, error) {
	if !q.built {
		return 0, ErrNotQuantized
	}
	return meanError(q.hist, q.mapper.search), nil
}

// MeanPerceptualError returns the weight-averaged CIEDE2000 distance between
// every fed color and its direct-mapped entry, ignoring alpha.
func (q *Quantizer) MeanPerceptualError() (float64, error) {
	if !q.built {
		return 0, ErrNotQuantized
	}
	return meanPerceptualError(q.hist, q.mapper.search, q.mapper.pal), nil
}
