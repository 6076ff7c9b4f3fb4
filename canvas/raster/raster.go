// Package raster implements canvas.Canvas in software on top of
// github.com/fogleman/gg.
//
// Shadow layers are stamped into a scratch surface, blurred and composited
// beneath the shape, the way a software layer does it on mobile toolkits.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"git.sr.ht/~gioverse/imageview/canvas"
)

// Canvas rasterizes draw calls into an RGBA surface.
type Canvas struct {
	dc *gg.Context
	// Filter selects blit resampling. Defaults to nearest neighbour.
	Filter draw.Interpolator
}

var _ canvas.Canvas = (*Canvas)(nil)

// New allocates a transparent canvas of the given size.
func New(size image.Point) *Canvas {
	return &Canvas{dc: gg.NewContext(size.X, size.Y)}
}

// NewForImage draws onto a copy of img.
func NewForImage(img image.Image) *Canvas {
	return &Canvas{dc: gg.NewContextForImage(img)}
}

// Width implements canvas.Canvas.
func (c *Canvas) Width() int {
	return c.dc.Width()
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() image.Point {
	return image.Pt(c.dc.Width(), c.dc.Height())
}

// Image returns the rasterized result.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// Clear resets every pixel to col.
func (c *Canvas) Clear(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

// FillRect implements canvas.Canvas.
func (c *Canvas) FillRect(r canvas.Rect, p *canvas.Paint) {
	if r.Empty() {
		return
	}
	c.fill(p, func(dc *gg.Context, dx, dy float64) {
		dc.DrawRectangle(float64(r.Min.X)+dx, float64(r.Min.Y)+dy, float64(r.Dx()), float64(r.Dy()))
	})
}

// FillCircle implements canvas.Canvas.
func (c *Canvas) FillCircle(center canvas.Point, radius float32, p *canvas.Paint) {
	if radius <= 0 {
		return
	}
	c.fill(p, func(dc *gg.Context, dx, dy float64) {
		dc.DrawCircle(float64(center.X)+dx, float64(center.Y)+dy, float64(radius))
	})
}

// BlitBitmap implements canvas.Canvas. The destination rectangle is snapped
// to whole pixels; an empty destination draws nothing.
func (c *Canvas) BlitBitmap(img image.Image, src *image.Rectangle, dst canvas.Rect, _ *canvas.Paint) {
	if img == nil || dst.Empty() {
		return
	}
	sr := img.Bounds()
	if src != nil {
		sr = src.Intersect(sr)
	}
	dr := image.Rect(
		int(math.Round(float64(dst.Min.X))),
		int(math.Round(float64(dst.Min.Y))),
		int(math.Round(float64(dst.Max.X))),
		int(math.Round(float64(dst.Max.Y))),
	)
	if sr.Empty() || dr.Empty() {
		return
	}
	filter := c.Filter
	if filter == nil {
		filter = draw.NearestNeighbor
	}
	scaled := image.NewNRGBA(image.Rectangle{Max: dr.Size()})
	filter.Scale(scaled, scaled.Bounds(), img, sr, draw.Src, nil)
	c.dc.DrawImage(scaled, dr.Min.X, dr.Min.Y)
}

// fill draws the optional shadow layer of p beneath the shape traced by path,
// then fills the shape. path receives the offset to trace at.
func (c *Canvas) fill(p *canvas.Paint, path func(dc *gg.Context, dx, dy float64)) {
	if p == nil {
		p = &canvas.Paint{Color: color.NRGBA{A: 0xff}}
	}
	if p.Shadow != nil && p.Shadow.Radius > 0 && p.Shadow.Color.A > 0 {
		c.shadow(p.Shadow, path)
	}
	c.dc.SetFillStyle(pattern(p))
	path(c.dc, 0, 0)
	c.dc.Fill()
}

// shadow stamps the shape in the shadow color at the layer offset into a
// scratch surface, blurs it and draws it onto the canvas.
func (c *Canvas) shadow(s *canvas.ShadowLayer, path func(dc *gg.Context, dx, dy float64)) {
	stamp := gg.NewContext(c.dc.Width(), c.dc.Height())
	stamp.SetColor(s.Color)
	path(stamp, float64(s.Dx), float64(s.Dy))
	stamp.Fill()
	blurred := imaging.Blur(stamp.Image(), s.Sigma())
	c.dc.DrawImage(blurred, 0, 0)
}

// pattern resolves the fill of p. Repeat tiling on both axes goes through
// gg's surface pattern; other tilings sample through bitmapPattern.
func pattern(p *canvas.Paint) gg.Pattern {
	sh := p.Shader
	if sh == nil || sh.Bitmap == nil || sh.Bitmap.Bounds().Empty() {
		return gg.NewSolidPattern(p.Color)
	}
	if sh.TileX == canvas.Repeat && sh.TileY == canvas.Repeat && sh.Bitmap.Bounds().Min == (image.Point{}) {
		return gg.NewSurfacePattern(sh.Bitmap, gg.RepeatBoth)
	}
	return bitmapPattern{Shader: sh}
}

// bitmapPattern samples a shader bitmap with per-axis tiling.
type bitmapPattern struct {
	*canvas.Shader
}

func (bp bitmapPattern) ColorAt(x, y int) color.Color {
	b := bp.Bitmap.Bounds()
	return bp.Bitmap.At(
		b.Min.X+tile(x, b.Dx(), bp.TileX),
		b.Min.Y+tile(y, b.Dy(), bp.TileY),
	)
}

// tile maps coordinate v onto [0, n) according to mode.
func tile(v, n int, mode canvas.TileMode) int {
	switch mode {
	case canvas.Repeat:
		v %= n
		if v < 0 {
			v += n
		}
		return v
	case canvas.Mirror:
		period := 2 * n
		v %= period
		if v < 0 {
			v += period
		}
		if v >= n {
			v = period - 1 - v
		}
		return v
	default:
		if v < 0 {
			return 0
		}
		if v >= n {
			return n - 1
		}
		return v
	}
}
