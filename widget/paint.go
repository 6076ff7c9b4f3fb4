package widget

import (
	"image"
	"image/color"

	"git.sr.ht/~gioverse/imageview/canvas"
)

// ShadowOffset is the fixed displacement of the shadow layer.
var ShadowOffset = canvas.Pt(2, 2)

// Default paint attributes.
var (
	DefaultBorderColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	DefaultShadowColor = color.NRGBA{A: 0xff}
)

// DefaultShadowRadius is the blur radius of a new view.
const DefaultShadowRadius float32 = 6

// Paints owns the three paints an ImageView draws with.
type Paints struct {
	// Border fills the border, with a solid color or a repeating texture.
	Border *canvas.Paint
	// Shadow fills opaque white over a blurred, offset shadow layer.
	Shadow *canvas.Paint
	// Circle fills the image disk in circle mode through a clamping
	// shader over the scaled bitmap.
	Circle *canvas.Paint

	// Shadow layer parameters, kept while the layer is removed so a later
	// radius or color change can restore it.
	shadowRadius float32
	shadowColor  color.NRGBA
}

// NewPaints returns the paints with their default attributes.
func NewPaints() *Paints {
	p := &Paints{
		Border: &canvas.Paint{
			Antialias: true,
			Color:     DefaultBorderColor,
		},
		Shadow: &canvas.Paint{
			Antialias: true,
			Color:     color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		},
		Circle: &canvas.Paint{
			Antialias: true,
		},
	}
	p.setShadowLayer(DefaultShadowRadius, DefaultShadowColor)
	return p
}

// SetBorderColor sets the solid border color. An installed texture keeps
// precedence over the color until it is removed.
func (p *Paints) SetBorderColor(c color.NRGBA) {
	p.Border.Color = c
}

// SetBorderTexture paints the border by tiling bitmap on both axes.
// A nil bitmap removes the texture.
func (p *Paints) SetBorderTexture(bitmap image.Image) {
	if bitmap == nil {
		p.Border.Shader = nil
		return
	}
	p.Border.Shader = canvas.NewShader(bitmap, canvas.Repeat, canvas.Repeat)
}

// SetShadowRadius changes the blur radius of the shadow layer. A radius
// of zero or less removes the layer.
func (p *Paints) SetShadowRadius(r float32) {
	p.setShadowLayer(r, p.shadowColor)
}

// SetShadowColor changes the color of the shadow layer, keeping its radius.
func (p *Paints) SetShadowColor(c color.NRGBA) {
	p.setShadowLayer(p.shadowRadius, c)
}

// SetCircleBitmap installs a clamping shader over bitmap on the circle paint.
func (p *Paints) SetCircleBitmap(bitmap image.Image) {
	if bitmap == nil {
		p.Circle.Shader = nil
		return
	}
	p.Circle.Shader = canvas.NewShader(bitmap, canvas.Clamp, canvas.Clamp)
}

// RequiresSoftwareLayer reports whether any paint carries a shadow layer,
// which hosts can only synthesize with software rasterization.
func (p *Paints) RequiresSoftwareLayer() bool {
	return p.Shadow.Shadow != nil
}

func (p *Paints) setShadowLayer(r float32, c color.NRGBA) {
	p.shadowRadius, p.shadowColor = r, c
	if r <= 0 {
		p.Shadow.Shadow = nil
		return
	}
	p.Shadow.Shadow = &canvas.ShadowLayer{
		Radius: r,
		Dx:     ShadowOffset.X,
		Dy:     ShadowOffset.Y,
		Color:  c,
	}
}
