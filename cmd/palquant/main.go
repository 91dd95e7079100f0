// palquant reduces PNG, GIF, JPEG, BMP, TIFF or WEBP images to paletted PNGs
// of at most 256 colors.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/setanarut/palquant"
	"github.com/setanarut/palquant/utils"
)

const usageStr = `palquant reduces images to paletted PNGs.

Usage:

    palquant [options] file [[options] file ...]

Options apply to every file that follows them. Each input is written next to
itself as NAME_8.png unless -o or -v is given; -o names only the next output.
A file that cannot be read or converted is reported and skipped.

Options:
`

var ErrBadFlags = errors.New("main: bad flags")

type config struct {
	numColors int
	output    string
	suffix    string
	auto      bool
	dither    bool
	swatch    bool
	opt       palquant.Options
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// colorCount is a color count flag where 0 means auto. Explicit values must
// be in [1, MaxColors].
type colorCount struct{ n *int }

func (c colorCount) String() string {
	switch {
	case c.n == nil:
		return strconv.Itoa(palquant.MaxColors)
	case *c.n == 0:
		return "auto"
	}
	return strconv.Itoa(*c.n)
}

func (c colorCount) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v <= 0 || v > palquant.MaxColors {
		return fmt.Errorf("must be in [1, %d]", palquant.MaxColors)
	}
	*c.n = v
	return nil
}

// autoCount is a boolean flag that switches a colorCount to auto.
type autoCount struct{ n *int }

func (a autoCount) String() string   { return "false" }
func (a autoCount) IsBoolFlag() bool { return true }

func (a autoCount) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if v {
		*a.n = 0
	} else if *a.n == 0 {
		*a.n = palquant.MaxColors
	}
	return nil
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("palquant", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		io.WriteString(stderr, usageStr)
		fs.PrintDefaults()
	}

	var (
		numColors = palquant.MaxColors
		output    string
		overwrite bool
		hq        bool
		noDither  bool
		swatch    bool
		verbose   bool
		jsonLogs  bool
	)
	for _, name := range []string{"n", "num-colors"} {
		fs.Var(colorCount{&numColors}, name, "number of colors to quantize to")
	}
	for _, name := range []string{"a", "auto"} {
		fs.Var(autoCount{&numColors}, name, "choose 16 or 256 colors per image")
	}
	for _, name := range []string{"o", "output"} {
		fs.StringVar(&output, name, "", "output name of the next file")
	}
	for _, name := range []string{"v", "overwrite"} {
		fs.BoolVar(&overwrite, name, false, "replace the input's extension with .png instead of adding a suffix")
	}
	for _, name := range []string{"h", "high-quality"} {
		fs.BoolVar(&hq, name, false, "refine the palette iteratively (slow)")
	}
	for _, name := range []string{"d", "no-dither"} {
		fs.BoolVar(&noDither, name, false, "disable ordered dithering")
	}
	fs.BoolVar(&swatch, "swatch", false, "also write NAME_palette.png")
	fs.BoolVar(&verbose, "verbose", false, "debug logging")
	fs.BoolVar(&jsonLogs, "json", false, "log as JSON")

	ctx := context.Background()
	total, failed := 0, 0
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrBadFlags, err)
		}
		if fs.NArg() == 0 {
			if total == 0 {
				fs.Usage()
				return fmt.Errorf("%w: no input files", ErrBadFlags)
			}
			if len(args) > 0 {
				return fmt.Errorf("%w: options after the last input", ErrBadFlags)
			}
			break
		}
		in := fs.Arg(0)
		args = fs.Args()[1:]

		logger := newLogger(stderr, verbose, jsonLogs)
		cfg := config{
			numColors: numColors,
			output:    output,
			suffix:    utils.DefaultSuffix,
			auto:      numColors == 0,
			dither:    !noDither,
			swatch:    swatch,
			opt:       palquant.DefaultOptions(),
		}
		if overwrite {
			cfg.suffix = ""
		}
		cfg.opt.HighQuality = hq
		output = ""

		out := cfg.output
		if out == "" {
			out = utils.OutputName(in, cfg.suffix)
		}
		flog := logger.WithFile(in)
		colors, err := convert(in, out, cfg, flog)
		flog.LogConvert(ctx, in, out, colors, err)
		total++
		if err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, total)
	}
	return nil
}

func newLogger(w io.Writer, verbose, jsonLogs bool) *palquant.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}
	if jsonLogs {
		return palquant.NewLogger(slog.NewJSONHandler(w, hopts))
	}
	return palquant.NewLogger(slog.NewTextHandler(w, hopts))
}

// convert quantizes one file and returns the palette size written.
func convert(in, out string, cfg config, logger *palquant.Logger) (int, error) {
	src, err := utils.LoadNRGBA(in)
	if err != nil {
		return 0, err
	}

	opt := cfg.opt
	opt.Logger = logger
	q := palquant.New(opt)
	if err := q.Feed(src.Pix); err != nil {
		return 0, err
	}
	if cfg.auto {
		if _, err := q.QuantizeAuto(); err != nil {
			return 0, err
		}
	} else if err := q.Quantize(cfg.numColors, opt.HighQuality); err != nil {
		return 0, err
	}

	dst, err := q.Paletted(src, cfg.dither)
	if err != nil {
		return 0, err
	}
	if err := utils.SaveIndexed(dst, out); err != nil {
		return 0, err
	}

	pal := q.Palette(palquant.MaxColors)
	if e, err := q.MeanError(); err == nil {
		logger.Debug("palette",
			"colors", len(pal),
			"bit_depth", utils.BitDepth(len(pal)),
			"mean_error", e,
			"colors_hex", strings.Join(pal.Hex(), ","),
		)
	}
	if cfg.swatch {
		if err := utils.SavePalette(pal, 32, strings.TrimSuffix(out, ".png")+"_palette.png"); err != nil {
			return 0, err
		}
	}
	return len(pal), nil
}
