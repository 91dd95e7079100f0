package utils

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/setanarut/palquant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		in, suffix, want string
	}{
		{"photo.png", DefaultSuffix, "photo_8.png"},
		{"dir/photo.jpeg", DefaultSuffix, "dir/photo_8.png"},
		{"noext", DefaultSuffix, "noext_8.png"},
		{"photo.png", "", "photo.png"},
		{"photo.tar.gz", "_x", "photo.tar_x.png"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.in, tt.suffix))
		})
	}
}

func TestBitDepth(t *testing.T) {
	for n, want := range map[int]int{1: 1, 2: 1, 3: 2, 4: 2, 5: 4, 16: 4, 17: 8, 256: 8} {
		assert.Equal(t, want, BitDepth(n), "n=%d", n)
	}
}

func TestLoadNRGBA(t *testing.T) {
	dir := t.TempDir()

	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	path := filepath.Join(dir, "rgb.png")
	require.NoError(t, SaveImage(src, path))

	got, err := LoadNRGBA(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), got.Bounds())
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, got.NRGBAAt(1, 1))

	deep := image.NewRGBA64(image.Rect(0, 0, 2, 2))
	deep.SetRGBA64(0, 0, color.RGBA64{R: 0x1234, G: 0x5678, B: 0x9abc, A: 0xffff})
	path = filepath.Join(dir, "deep.png")
	require.NoError(t, SaveImage(deep, path))
	_, err = LoadNRGBA(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadNRGBA(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	path = filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	_, err = LoadNRGBA(path)
	assert.Error(t, err)
}

func TestSaveIndexedRoundTrip(t *testing.T) {
	pal := palquant.Palette{
		{R: 255, A: 255},
		{G: 255, A: 128},
		{B: 255, A: 0},
	}
	img := image.NewPaletted(image.Rect(0, 0, 3, 1), pal.ColorPalette())
	copy(img.Pix, []uint8{0, 1, 2})
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, SaveIndexed(img, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	dec, err := png.Decode(f)
	require.NoError(t, err)
	pm, ok := dec.(*image.Paletted)
	require.True(t, ok)
	require.Len(t, pm.Palette, 3)
	for i, c := range pal {
		assert.Equal(t, c, color.NRGBAModel.Convert(pm.Palette[i]))
	}
	assert.Equal(t, []uint8{0, 1, 2}, pm.Pix)
}

func TestSavePalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swatch.png")
	require.Error(t, SavePalette(nil, 8, path))

	pal := palquant.Palette{{R: 255, A: 255}, {B: 255, A: 255}}
	require.NoError(t, SavePalette(pal, 8, path))
	img, err := ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())
	r, _, b, _ := img.At(12, 4).RGBA()
	assert.Zero(t, r)
	assert.Equal(t, uint32(0xffff), b)
}
