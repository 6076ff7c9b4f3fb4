package widget

import (
	"image"

	"golang.org/x/image/draw"
)

// Changer can report that is has changed since the last call.
type Changer interface {
	Changed() bool
}

// ToNRGBA can render an image.NRGBA image.
type ToNRGBA interface {
	ToNRGBA() *image.NRGBA
}

// Scale resamples src to size without filtering.
//
// A nil src or an empty size yields nil.
func Scale(src image.Image, size image.Point) *image.NRGBA {
	if src == nil || size.X <= 0 || size.Y <= 0 || src.Bounds().Empty() {
		return nil
	}
	if nrgba, ok := src.(ToNRGBA); ok {
		src = nrgba.ToNRGBA()
	}
	dst := image.NewNRGBA(image.Rectangle{Max: size})
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// ScaledImage caches the result of scaling one source to one size.
type ScaledImage struct {
	size image.Point
	img  *image.NRGBA
}

// Cache the scaled image if it is not already.
//
// First call computes the image, subsequent calls with the same size are
// no-ops. Callers replacing the source must Invalidate first. If src
// implements Changer and Changed returns true, the image is re-computed.
//
// Reports whether the image was (re)computed.
func (s *ScaledImage) Cache(src image.Image, size image.Point) bool {
	changed := false
	if changer, ok := src.(Changer); ok && changer.Changed() {
		changed = true
	}
	if !changed && s.img != nil && s.size == size {
		return false
	}
	s.size = size
	s.img = Scale(src, size)
	return true
}

// Invalidate drops the cached image.
func (s *ScaledImage) Invalidate() {
	*s = ScaledImage{}
}

// Image returns the cached image, nil when there is none.
func (s *ScaledImage) Image() *image.NRGBA {
	return s.img
}

// Valid reports whether an image is cached.
func (s *ScaledImage) Valid() bool {
	return s.img != nil
}
