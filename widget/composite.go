package widget

import (
	"image"

	"git.sr.ht/~gioverse/imageview/canvas"
	"git.sr.ht/~gioverse/imageview/layout"
)

// Effects selects what Composite draws around the image.
type Effects struct {
	Shape        layout.Shape
	Border       bool
	BorderWidth  int
	Shadow       bool
	ShadowRadius float32
}

// Composite draws bmp framed by the configured effects onto c.
//
// Rectangles draw, in order, the border rectangle, the shadow rectangle and
// the bitmap. Circles install bmp as the circle paint's shader and draw the
// shadow disk, the border disk and the image disk, each smaller disk on top
// of the previous one so the border shows as a ring.
func Composite(c canvas.Canvas, bmp image.Image, p *Paints, fx Effects) {
	if bmp == nil {
		return
	}
	switch fx.Shape {
	case layout.Circle:
		compositeCircle(c, bmp, p, fx)
	default:
		compositeRectangle(c, bmp, p, fx)
	}
}

func compositeRectangle(c canvas.Canvas, bmp image.Image, p *Paints, fx Effects) {
	var (
		size = bmp.Bounds().Size()
		bw   = float32(size.X)
		bh   = float32(size.Y)
		// Horizontal offset that centers the bitmap on the canvas.
		cx  = float32((c.Width() - size.X) / 2)
		bwd = float32(fx.BorderWidth)
	)
	if fx.Border {
		c.FillRect(canvas.R(cx-bwd, bwd, cx+bw+bwd, bh-bwd), p.Border)
	}
	if fx.Shadow {
		c.FillRect(canvas.R(cx+bwd, bwd, cx+bw-bwd, bh-bwd), p.Shadow)
	}
	// The right edge is measured from the canvas origin, not from cx.
	c.BlitBitmap(bmp, nil, canvas.R(cx+bwd, bwd, bw-bwd, bh-bwd), nil)
}

func compositeCircle(c canvas.Canvas, bmp image.Image, p *Paints, fx Effects) {
	p.SetCircleBitmap(bmp)
	var (
		center = float32(c.Width() / 2)
		at     = canvas.Pt(center, center)
		sr     = fx.ShadowRadius
		bwd    float32
	)
	if fx.Border {
		bwd = float32(fx.BorderWidth)
	}
	if fx.Shadow {
		c.FillCircle(at, center-sr, p.Shadow)
	}
	if fx.Border {
		c.FillCircle(at, center-bwd+sr, p.Border)
	}
	c.FillCircle(at, center-sr-bwd, p.Circle)
}
