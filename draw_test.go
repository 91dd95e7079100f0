package palquant

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, gradient(w, h))
	return img
}

func TestDrawQuantizerAppends(t *testing.T) {
	dq := DrawQuantizer{Options: DefaultOptions(), Mode: ModeHighQuality}
	transparent := color.NRGBA{}
	p := dq.Quantize(append(make(color.Palette, 0, 8), transparent), gradientImage(16, 16))
	require.Len(t, p, 8)
	assert.Equal(t, transparent, p[0])
}

func TestDrawQuantizerFullPalette(t *testing.T) {
	dq := DrawQuantizer{Options: DefaultOptions()}
	p := make(color.Palette, 2, 2)
	assert.Len(t, dq.Quantize(p, gradientImage(4, 4)), 2)
}

func TestDrawQuantizerWithGIF(t *testing.T) {
	var buf bytes.Buffer
	err := gif.Encode(&buf, gradientImage(32, 32), &gif.Options{
		NumColors: 16,
		Quantizer: DrawQuantizer{Options: DefaultOptions()},
	})
	require.NoError(t, err)

	img, err := gif.Decode(&buf)
	require.NoError(t, err)
	pm, ok := img.(*image.Paletted)
	require.True(t, ok)
	assert.LessOrEqual(t, len(pm.Palette), 16)
}
