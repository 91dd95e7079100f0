package utils

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/setanarut/palquant"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultSuffix is appended to the input name when no output name is given.
const DefaultSuffix = "_8"

var ErrUnsupportedFormat = errors.New("utils: unsupported pixel format")

func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// LoadNRGBA decodes path into a packed 8-bit RGBA buffer.
// Images with 16 bits per channel are rejected with ErrUnsupportedFormat.
func LoadNRGBA(path string) (*image.NRGBA, error) {
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
		return nil, fmt.Errorf("%s: %w: 16 bits per channel", path, ErrUnsupportedFormat)
	}
	return palquant.NRGBAPixels(img), nil
}

// OutputName strips the extension from input and appends suffix and ".png".
func OutputName(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix + ".png"
}

// BitDepth returns the bits per index image/png uses for a palette of n colors.
func BitDepth(n int) int {
	switch {
	case n <= 2:
		return 1
	case n <= 4:
		return 2
	case n <= 16:
		return 4
	default:
		return 8
	}
}

// SaveIndexed writes img as a paletted PNG. The encoder packs indices to
// BitDepth(len(palette)) bits and emits a tRNS chunk for translucent entries.
func SaveIndexed(img *image.Paletted, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// SavePalette writes one tileSize square per palette entry, left to right in
// palette order. Translucent entries are drawn over a checkerboard.
func SavePalette(palette palquant.Palette, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	w := tileSize * len(palette)
	h := tileSize
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	check := max(tileSize/8, 1)
	for y := range h {
		for x := range w {
			v := uint8(0xCC)
			if (x/check+y/check)%2 == 1 {
				v = 0xFF
			}
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	for i, c := range palette {
		r := image.Rect(i*tileSize, 0, (i+1)*tileSize, h)
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Over)
	}

	return SaveImage(img, filename)
}
