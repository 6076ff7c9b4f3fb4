// SPDX-License-Identifier: Unlicense OR MIT

// Package gallery lays out four image views in the configurations of the
// reference demo, with toolbar toggles for every effect.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"os"
	"strings"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	lorem "github.com/drhodes/golorem"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/exp/shiny/materialdesign/icons"
	"golang.org/x/exp/slog"

	"git.sr.ht/~gioverse/imageview"
	"git.sr.ht/~gioverse/imageview/async"
	"git.sr.ht/~gioverse/imageview/debug"
	ivlayout "git.sr.ht/~gioverse/imageview/layout"
	"git.sr.ht/~gioverse/imageview/profile"
	ivwidget "git.sr.ht/~gioverse/imageview/widget"
	ivmaterial "git.sr.ht/~gioverse/imageview/widget/material"
)

var (
	th = material.NewTheme(gofont.Collection())
	// profileOpt specifies what to profile.
	profileOpt profile.Opt
	// profileDir receives runtime profiles.
	profileDir string
	// attrsPath names a TOML attribute file applied over every tile.
	attrsPath string
	// verbose enables debug logging of the view packages.
	verbose bool
	// logger reports example failures.
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

func init() {
	flag.Var(&profileOpt, "profile", "create the provided kind of profile. Use one of [none, cpu, mem, block, goroutine, mutex, trace, gio]")
	flag.StringVar(&profileDir, "profile-dir", "", "directory for runtime profiles (default: a temporary directory)")
	flag.StringVar(&attrsPath, "attrs", "", "TOML attribute file applied over every view")
	flag.BoolVar(&verbose, "v", false, "log view measurement and painting")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: gallery [flags] [image ...]\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Up to three images are shown. Missing ones are generated.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
}

func main() {
	if verbose {
		imageview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	overrides, err := loadAttributes(attrsPath)
	if err != nil {
		logger.Error("loading attributes", "path", attrsPath, "err", err)
		os.Exit(1)
	}
	go func() {
		w := app.NewWindow(
			app.Title("Image View"),
			app.Size(unit.Dp(800), unit.Dp(800)),
		)
		ui, err := NewUI(w, overrides, flag.Args())
		if err != nil {
			logger.Error("building ui", "err", err)
			os.Exit(1)
		}
		if err := ui.Run(w); err != nil {
			logger.Error("premature window close", "err", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	// Surrender main thread to OS.
	// Necessary for certain platforms.
	app.Main()
}

type (
	C = layout.Context
	D = layout.Dimensions
)

var (
	BorderIcon  = mustIcon(icons.EditorBorderAll)
	ShadowIcon  = mustIcon(icons.ActionFlipToBack)
	CircleIcon  = mustIcon(icons.ImageLens)
	TextureIcon = mustIcon(icons.ImageTexture)
	DebugIcon   = mustIcon(icons.ActionBugReport)
)

func mustIcon(data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		panic(fmt.Errorf("decoding icon: %w", err))
	}
	return icon
}

func ptr[T any](v T) *T { return &v }

// references are the four demo configurations. Source is the index into
// the image list, Texture borrows the source as the border texture.
var references = []struct {
	Attrs   ivwidget.Attributes
	Source  int
	Texture bool
}{
	{
		Attrs: ivwidget.Attributes{
			Shadow:      ptr(false),
			Circular:    ptr(true),
			Border:      ptr(true),
			BorderWidth: ptr(10),
			ShadowColor: ptr("#00ffff"),
		},
		Source:  0,
		Texture: true,
	},
	{
		Attrs: ivwidget.Attributes{
			BorderWidth: ptr(4),
			Border:      ptr(true),
			Shadow:      ptr(true),
		},
		Source: 0,
	},
	{
		Attrs: ivwidget.Attributes{
			Shadow:      ptr(true),
			Circular:    ptr(true),
			ShadowColor: ptr("#ff0000"),
		},
		Source: 1,
	},
	{
		Attrs: ivwidget.Attributes{
			Circular: ptr(true),
		},
		Source: 2,
	},
}

// Tile is one view with the state needed to lay it out across frames.
type Tile struct {
	View  *ivwidget.ImageView
	Frame ivmaterial.Frame
	// Source is a path for the loader, empty for a generated image.
	Source string
	// Placeholder is shown until the source loads, or if it fails.
	Placeholder image.Image
	// Texture borrows the image as the border texture.
	Texture bool
	Caption string
	// attached reports whether the final image was handed to the view.
	attached bool
}

// attach hands img to the view.
func (t *Tile) attach(img image.Image) {
	t.View.SetSource(img)
	if t.Texture {
		t.View.SetBorderTexture(img)
	}
}

// UI holds state for, and lays out, the UI.
type UI struct {
	// Loader decodes image files in the background.
	async.Loader
	Tiles []*Tile
	// Toolbar toggles.
	Border, Shadow, Circle, Texture, Debug widget.Clickable
	debug bool
}

// NewUI builds the reference tiles. overrides win over every tile's
// reference configuration.
func NewUI(w *app.Window, overrides ivwidget.Attributes, paths []string) (*UI, error) {
	ui := &UI{}
	palette := colorful.FastHappyPalette(2 * len(references))
	for ii, ref := range references {
		v, err := ivwidget.NewWithStyle(overrides, ref.Attrs, ivwidget.WithInvalidator(w))
		if err != nil {
			return nil, fmt.Errorf("configuring view %d: %w", ii+1, err)
		}
		t := &Tile{
			View:        v,
			Placeholder: placeholder(image.Pt(320, 200+40*ii), palette[2*ii], palette[2*ii+1]),
			Texture:     ref.Texture,
			Caption:     lorem.Word(4, 9),
		}
		if ref.Source < len(paths) {
			t.Source = paths[ref.Source]
		}
		t.attach(t.Placeholder)
		if t.Source == "" {
			t.attached = true
		}
		ui.Tiles = append(ui.Tiles, t)
	}
	return ui, nil
}

// Run handles window events and renders the application.
func (ui *UI) Run(w *app.Window) error {
	profiler := profileOpt.NewProfiler()
	profiler.Dir = profileDir
	profiler.Logger = logger
	for _, t := range ui.Tiles {
		t.Frame.Observe = profiler.Raster.Observe
	}
	profiler.Start()
	var ops op.Ops
	for {
		select {
		case <-ui.Loader.Updated():
			w.Invalidate()
		case e := <-w.Events():
			switch e := e.(type) {
			case system.DestroyEvent:
				profiler.Stop()
				return e.Err
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				profiler.Record(gtx)
				ui.Layout(gtx)
				e.Frame(&ops)
			}
		}
	}
}

// Layout the UI.
func (ui *UI) Layout(gtx C) D {
	ui.update()
	return layout.Flex{Axis: layout.Vertical}.Layout(
		gtx,
		layout.Rigid(ui.layoutToolbar),
		layout.Flexed(1, func(gtx C) D {
			return ui.layoutGrid(gtx)
		}),
	)
}

// update processes toolbar clicks and attaches loaded images.
func (ui *UI) update() {
	for _, t := range ui.Tiles {
		if t.attached {
			continue
		}
		switch r := ui.Loader.Load(t.Source); r.State {
		case async.Loaded:
			t.attach(r.Image)
			t.attached = true
		case async.Failed:
			logger.Warn("keeping placeholder", "source", t.Source, "err", r.Err)
			t.attached = true
		}
	}
	for ui.Border.Clicked() {
		for _, t := range ui.Tiles {
			t.View.ShowBorder(!t.View.BorderVisible())
		}
	}
	for ui.Shadow.Clicked() {
		for _, t := range ui.Tiles {
			t.View.ShowShadow(!t.View.ShadowVisible())
		}
	}
	for ui.Circle.Clicked() {
		for _, t := range ui.Tiles {
			t.View.SetCircularImageView(t.View.Shape() != ivlayout.Circle)
		}
	}
	for ui.Texture.Clicked() {
		for _, t := range ui.Tiles {
			t.Texture = !t.Texture
			if t.Texture {
				t.View.SetBorderTexture(t.View.Source())
			} else {
				t.View.SetBorderTexture(nil)
			}
		}
	}
	for ui.Debug.Clicked() {
		ui.debug = !ui.debug
	}
}

func (ui *UI) layoutToolbar(gtx C) D {
	return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx C) D {
		return layout.Flex{Spacing: layout.SpaceEnd}.Layout(
			gtx,
			layout.Rigid(material.IconButton(th, &ui.Border, BorderIcon, "Toggle border").Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
			layout.Rigid(material.IconButton(th, &ui.Shadow, ShadowIcon, "Toggle shadow").Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
			layout.Rigid(material.IconButton(th, &ui.Circle, CircleIcon, "Toggle circle").Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
			layout.Rigid(material.IconButton(th, &ui.Texture, TextureIcon, "Toggle border texture").Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
			layout.Rigid(material.IconButton(th, &ui.Debug, DebugIcon, "Toggle bounds").Layout),
		)
	})
}

// layoutGrid lays the tiles out two per row.
func (ui *UI) layoutGrid(gtx C) D {
	var rows []layout.FlexChild
	for ii := 0; ii < len(ui.Tiles); ii += 2 {
		row := ui.Tiles[ii:min(ii+2, len(ui.Tiles))]
		rows = append(rows, layout.Flexed(1, func(gtx C) D {
			cells := make([]layout.FlexChild, 0, 2)
			for _, t := range row {
				t := t
				cells = append(cells, layout.Flexed(0.5, func(gtx C) D {
					return ui.layoutTile(gtx, t)
				}))
			}
			return layout.Flex{}.Layout(gtx, cells...)
		}))
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, rows...)
}

func (ui *UI) layoutTile(gtx C, t *Tile) D {
	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(
			gtx,
			layout.Flexed(1, func(gtx C) D {
				gtx.Constraints.Min = gtx.Constraints.Max
				return ivlayout.Backdrop{
					Color: color.NRGBA{R: 0x30, G: 0x30, B: 0x38, A: 0xff},
					Fill:  true,
				}.Layout(gtx, func(gtx C) D {
					gtx.Constraints.Min = image.Point{}
					view := ivmaterial.ImageView(t.View, &t.Frame).Layout
					if ui.debug {
						return debug.Bounds(gtx, t.View, view)
					}
					return view(gtx)
				})
			}),
			layout.Rigid(func(gtx C) D {
				return layout.Inset{Top: unit.Dp(4)}.Layout(gtx,
					material.Caption(th, fmt.Sprintf("%s: %s", t.Caption, describe(t.View))).Layout)
			}),
		)
	})
}

// describe summarizes the effects of v.
func describe(v *ivwidget.ImageView) string {
	parts := []string{v.Shape().String()}
	if v.BorderVisible() {
		parts = append(parts, fmt.Sprintf("border %d", v.BorderWidth()))
	}
	if layer := v.Paints().Shadow.Shadow; v.ShadowVisible() && layer != nil {
		parts = append(parts, fmt.Sprintf("shadow %s", ivwidget.FormatColor(layer.Color)))
	}
	return strings.Join(parts, ", ")
}

// placeholder renders a diagonal gradient between two colors with a few
// random speckles, so scaling artifacts are visible.
func placeholder(size image.Point, from, to colorful.Color) image.Image {
	img := image.NewNRGBA(image.Rectangle{Max: size})
	span := float64(size.X + size.Y)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			r, g, b := from.BlendHcl(to, float64(x+y)/span).Clamped().RGB255()
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 0xff})
		}
	}
	for ii := 0; ii < size.X*size.Y/200; ii++ {
		img.SetNRGBA(rand.Intn(size.X), rand.Intn(size.Y), color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	}
	return img
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
