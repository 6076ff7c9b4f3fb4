// Package layout resolves the size of a framed image within the space its
// parent offers, and provides small Gio helpers used around it.
package layout

import (
	"fmt"
	"image"
)

// Shape selects the outline of the view.
type Shape uint8

const (
	// Rectangle keeps the aspect ratio of the source on the outer bounds.
	Rectangle Shape = iota
	// Circle squares the outer bounds and clips the image to a disk.
	Circle
)

func (s Shape) String() string {
	switch s {
	case Rectangle:
		return "rectangle"
	case Circle:
		return "circle"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Measurement is the result of resolving an image against a constraint.
type Measurement struct {
	// Outer is the size published to the parent.
	Outer image.Point
	// Content is the aspect-preserving size the source is scaled to.
	// It equals Outer for rectangles. For circles only one axis is
	// guaranteed to match the square; the other is unbounded, so a
	// 10x1000 source in a 1000x1000 slot yields 1000x100000.
	Content image.Point
}

// Empty reports whether nothing can be drawn.
func (m Measurement) Empty() bool {
	return m.Outer.X <= 0 || m.Outer.Y <= 0 || m.Content.X <= 0 || m.Content.Y <= 0
}

// Resolve fits an image of the intrinsic size inside constraint.
//
// Rectangles take the full constraint along the axis where the image is
// relatively wider and derive the other axis from the aspect ratio. Circles
// take the shorter side of the constraint as the side of the square.
//
// The derived axis is truncated, so it may fall up to one pixel short of
// the exact aspect ratio. A non-positive axis on either input yields the
// zero Measurement.
func Resolve(intrinsic, constraint image.Point, shape Shape) Measurement {
	if intrinsic.X <= 0 || intrinsic.Y <= 0 || constraint.X <= 0 || constraint.Y <= 0 {
		return Measurement{}
	}
	imageRatio := float32(intrinsic.X) / float32(intrinsic.Y)
	if shape == Circle {
		return resolveCircle(imageRatio, constraint)
	}
	viewRatio := float32(constraint.X) / float32(constraint.Y)
	return resolveRectangle(imageRatio, viewRatio, constraint)
}

func resolveRectangle(imageRatio, viewRatio float32, constraint image.Point) Measurement {
	var content image.Point
	if imageRatio >= viewRatio {
		content.X = constraint.X
		content.Y = int(float32(content.X) / imageRatio)
	} else {
		content.Y = constraint.Y
		content.X = int(float32(content.Y) * imageRatio)
	}
	return Measurement{Outer: content, Content: content}
}

func resolveCircle(imageRatio float32, constraint image.Point) Measurement {
	var (
		content image.Point
		side    int
	)
	if constraint.X <= constraint.Y {
		content.X = constraint.X
		content.Y = int(float32(content.X) / imageRatio)
		side = constraint.X
	} else {
		content.Y = constraint.Y
		content.X = int(float32(content.Y) * imageRatio)
		side = constraint.Y
	}
	return Measurement{Outer: image.Pt(side, side), Content: content}
}
