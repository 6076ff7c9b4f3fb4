package material

import (
	"image"
	"time"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"

	"git.sr.ht/~gioverse/imageview/canvas/raster"
	ivwidget "git.sr.ht/~gioverse/imageview/widget"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// Frame holds the last rasterization of a view. It must persist across
// frames, next to the view it renders.
//
// Gio has no blurred shadow primitive, so views are always composited in
// software and uploaded as an image.
type Frame struct {
	// Observe, if set, receives the size and duration of every
	// rasterization.
	Observe func(size image.Point, took time.Duration)

	op    paint.ImageOp
	size  image.Point
	valid bool
}

// Update rasterizes v at size if v changed or size differs from the last
// rasterization. Reports whether a new image was produced.
func (f *Frame) Update(v *ivwidget.ImageView, size image.Point) bool {
	changed := v.Changed()
	if f.valid && !changed && f.size == size {
		return false
	}
	start := time.Now()
	c := raster.New(size)
	v.Paint(c)
	f.op = paint.NewImageOp(c.Image())
	if f.Observe != nil {
		f.Observe(size, time.Since(start))
	}
	f.size = size
	f.valid = true
	return true
}

// Invalidate forces the next Update to rasterize.
func (f *Frame) Invalidate() {
	f.valid = false
}

// Size of the last rasterization.
func (f *Frame) Size() image.Point {
	return f.size
}

// ImageViewStyle lays out an ImageView.
type ImageViewStyle struct {
	View  *ivwidget.ImageView
	Frame *Frame
	// Width and Height cap the respective constraints.
	// If left empty, the incoming constraints are used as is.
	Width, Height unit.Dp
}

// ImageView renders v, caching the result in f.
func ImageView(v *ivwidget.ImageView, f *Frame) ImageViewStyle {
	return ImageViewStyle{
		View:  v,
		Frame: f,
	}
}

// Layout the view. The view is measured against the maximum constraints;
// a view with nothing to show takes the minimum.
func (iv ImageViewStyle) Layout(gtx C) D {
	if iv.Width > 0 {
		gtx.Constraints.Max.X = gtx.Constraints.Constrain(image.Pt(gtx.Dp(iv.Width), 0)).X
	}
	if iv.Height > 0 {
		gtx.Constraints.Max.Y = gtx.Constraints.Constrain(image.Pt(0, gtx.Dp(iv.Height))).Y
	}
	size := iv.View.Measure(gtx.Constraints.Max)
	if size.X <= 0 || size.Y <= 0 {
		// Drain pending redraw requests so the next real frame starts clean.
		iv.View.Changed()
		iv.Frame.Invalidate()
		return D{Size: gtx.Constraints.Min}
	}
	iv.Frame.Update(iv.View, size)
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	iv.Frame.op.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	return D{Size: gtx.Constraints.Constrain(size)}
}
