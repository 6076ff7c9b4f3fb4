// Package canvas defines the drawing surface the image view composites onto,
// and the paint descriptors passed with each draw.
//
// Hosts implement Canvas over whatever raster backend they have. Recorder
// keeps the draw list instead of rasterizing it, and package raster provides
// a software implementation.
package canvas

import (
	"fmt"
	"image"
	"image/color"
)

// Point is a position in canvas pixels.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis aligned rectangle in canvas pixels. Rectangles with
// Max <= Min on either axis are empty and draw nothing; they are still
// passed through to the canvas as given.
type Rect struct {
	Min, Max Point
}

// R is shorthand for Rect{Min: Pt(x0, y0), Max: Pt(x1, y1)}.
func R(x0, y0, x1, y1 float32) Rect {
	return Rect{Min: Pt(x0, y0), Max: Pt(x1, y1)}
}

// Dx returns the width of r.
func (r Rect) Dx() float32 { return r.Max.X - r.Min.X }

// Dy returns the height of r.
func (r Rect) Dy() float32 { return r.Max.Y - r.Min.Y }

// Empty reports whether r covers no area.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %g,%g]", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// TileMode selects how a shader samples outside its bitmap.
type TileMode uint8

const (
	// Clamp replicates the edge pixel.
	Clamp TileMode = iota
	// Repeat tiles the bitmap.
	Repeat
	// Mirror tiles the bitmap, flipping every other tile.
	Mirror
)

func (m TileMode) String() string {
	switch m {
	case Clamp:
		return "clamp"
	case Repeat:
		return "repeat"
	case Mirror:
		return "mirror"
	default:
		return fmt.Sprintf("TileMode(%d)", int(m))
	}
}

// Shader fills shapes by sampling a bitmap anchored at the canvas origin.
type Shader struct {
	Bitmap       image.Image
	TileX, TileY TileMode
}

// NewShader returns a bitmap shader with the given tiling.
func NewShader(bitmap image.Image, tileX, tileY TileMode) *Shader {
	return &Shader{Bitmap: bitmap, TileX: tileX, TileY: tileY}
}

// ShadowLayer is a blurred copy of a filled shape, offset by (Dx, Dy) and
// drawn in Color beneath it.
type ShadowLayer struct {
	Radius float32
	Dx, Dy float32
	Color  color.NRGBA
}

// Sigma converts the blur radius into a Gaussian standard deviation.
// Returns 0 for a non-positive radius.
func (s ShadowLayer) Sigma() float64 {
	if s.Radius <= 0 {
		return 0
	}
	return float64(s.Radius)*0.57735 + 0.5
}

// Paint describes how a shape is filled.
//
// Shader, when set, takes precedence over Color. Shadow, when set, is drawn
// underneath the shape before it is filled.
type Paint struct {
	Antialias bool
	Color     color.NRGBA
	Shader    *Shader
	Shadow    *ShadowLayer
}

// Canvas is the surface the compositor draws onto.
type Canvas interface {
	// FillRect fills r with p.
	FillRect(r Rect, p *Paint)
	// FillCircle fills the disk at center with the given radius.
	FillCircle(center Point, radius float32, p *Paint)
	// BlitBitmap draws the src region of img scaled into dst. A nil src
	// selects the whole bitmap, a nil p draws with default settings.
	BlitBitmap(img image.Image, src *image.Rectangle, dst Rect, p *Paint)
	// Width returns the canvas width in pixels.
	Width() int
}
