// SPDX-License-Identifier: Unlicense OR MIT

// Package render composites one image view without a window and writes
// the result as a PNG.
//
//	render -attrs view.toml -size 400x400 -o out.png photo.jpg
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/exp/slog"

	"git.sr.ht/~gioverse/imageview"
	"git.sr.ht/~gioverse/imageview/canvas"
	"git.sr.ht/~gioverse/imageview/canvas/raster"
	"git.sr.ht/~gioverse/imageview/debug"
	ivwidget "git.sr.ht/~gioverse/imageview/widget"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// attrsPath names a TOML attribute file configuring the view.
	attrsPath string
	// size is the constraint the view is measured against.
	size string
	// out is the destination PNG.
	out string
	// background fills the canvas before compositing.
	background string
	// dump prints the draw operations instead of only rendering.
	dump bool
	// verbose enables debug logging of the view packages.
	verbose bool
)

func init() {
	flag.StringVar(&attrsPath, "attrs", "", "TOML attribute file configuring the view")
	flag.StringVar(&size, "size", "400x400", "maximum size, as WIDTHxHEIGHT")
	flag.StringVar(&out, "o", "out.png", "output PNG")
	flag.StringVar(&background, "bg", "#00000000", "canvas background color")
	flag.BoolVar(&dump, "dump", false, "print draw operations to stdout")
	flag.BoolVar(&verbose, "v", false, "log view measurement and painting")
	flag.Parse()
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if verbose {
		imageview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	if err := run(flag.Args()); err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("want exactly one image, got %d arguments", len(args))
	}
	var constraint image.Point
	if _, err := fmt.Sscanf(size, "%dx%d", &constraint.X, &constraint.Y); err != nil {
		return fmt.Errorf("parsing size %q: %w", size, err)
	}
	bg, err := ivwidget.ParseColor(background)
	if err != nil {
		return fmt.Errorf("parsing background: %w", err)
	}
	attrs, err := loadAttributes(attrsPath)
	if err != nil {
		return fmt.Errorf("loading attributes: %w", err)
	}
	src, err := decode(args[0])
	if err != nil {
		return err
	}

	v, err := ivwidget.NewWithAttributes(attrs)
	if err != nil {
		return fmt.Errorf("configuring view: %w", err)
	}
	v.SetSource(src)
	measured := v.Measure(constraint)
	if measured.X <= 0 || measured.Y <= 0 {
		return fmt.Errorf("view measured %v within %v, nothing to render", measured, constraint)
	}

	if dump {
		rec := canvas.NewRecorder(measured)
		v.Paint(rec)
		for _, line := range debug.Ops(rec) {
			fmt.Println(line)
		}
	}

	c := raster.New(measured)
	c.Clear(bg)
	v.Paint(c)
	return writePNG(out, c.Image())
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding png: %w", err)
	}
	return f.Close()
}

func loadAttributes(path string) (ivwidget.Attributes, error) {
	if path == "" {
		return ivwidget.Attributes{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return ivwidget.Attributes{}, fmt.Errorf("opening: %w", err)
	}
	defer f.Close()
	return ivwidget.ParseAttributes(f)
}
