/*
Package debug provides tools for debugging image view layouts.
*/
package debug

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"

	"git.sr.ht/~gioverse/imageview/canvas"
	ivlayout "git.sr.ht/~gioverse/imageview/layout"
	ivwidget "git.sr.ht/~gioverse/imageview/widget"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// ContentColor traces the box the bitmap is scaled into.
var ContentColor = color.NRGBA{R: 0xff, A: 0xff}

// Outline traces a small black outline around the provided widget.
func Outline(gtx C, w func(gtx C) D) D {
	return widget.Border{
		Color: color.NRGBA{A: 255},
		Width: unit.Dp(1),
	}.Layout(gtx, w)
}

// Bounds lays out w, which is expected to render v, outlining the
// measured bounds in black and the content box of v in ContentColor.
func Bounds(gtx C, v *ivwidget.ImageView, w func(gtx C) D) D {
	dims := Outline(gtx, w)
	box := ContentBox(v)
	if box.Empty() {
		return dims
	}
	for _, edge := range edges(box, gtx.Dp(1)) {
		paint.FillShape(gtx.Ops, ContentColor, clip.Rect(edge).Op())
	}
	return dims
}

// ContentBox returns where v draws its scaled bitmap, relative to the
// measured bounds. Rectangles center it horizontally, circles anchor it at
// the origin.
func ContentBox(v *ivwidget.ImageView) image.Rectangle {
	content := v.ContentSize()
	if content.X <= 0 || content.Y <= 0 {
		return image.Rectangle{}
	}
	if v.Shape() == ivlayout.Circle {
		return image.Rectangle{Max: content}
	}
	x := (v.Measured().X - content.X) / 2
	return image.Rect(x, 0, x+content.X, content.Y)
}

// Ops prints the recorded operations of a canvas, one per line.
func Ops(r *canvas.Recorder) []string {
	lines := make([]string, 0, len(r.Ops))
	for _, op := range r.Ops {
		lines = append(lines, op.String())
	}
	return lines
}

func edges(r image.Rectangle, w int) []image.Rectangle {
	if w < 1 {
		w = 1
	}
	return []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w),
		image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y),
		image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y),
	}
}
