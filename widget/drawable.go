package widget

import (
	"image"
	"reflect"
)

// Drawable is content a host attaches to the view. Only bitmap drawables
// can be framed; anything else counts as no source at all.
type Drawable interface {
	// IntrinsicSize reports the natural pixel size of the content.
	IntrinsicSize() image.Point
}

// Bitmapper is a Drawable backed by a bitmap.
type Bitmapper interface {
	Drawable
	Bitmap() image.Image
}

// BitmapDrawable wraps an image.Image as a Drawable.
type BitmapDrawable struct {
	Image image.Image
}

// IntrinsicSize implements Drawable.
func (d BitmapDrawable) IntrinsicSize() image.Point {
	if isNil(d.Image) {
		return image.Point{}
	}
	return d.Image.Bounds().Size()
}

// Bitmap implements Bitmapper.
func (d BitmapDrawable) Bitmap() image.Image {
	return d.Image
}

// bitmapOf extracts the bitmap of d, nil when d is absent or not a bitmap.
// A typed nil bitmap, such as (*image.NRGBA)(nil), counts as absent.
func bitmapOf(d Drawable) image.Image {
	b, ok := d.(Bitmapper)
	if !ok {
		return nil
	}
	if img := b.Bitmap(); !isNil(img) {
		return img
	}
	return nil
}

// isNil reports whether img is nil or a nil pointer wrapped in the
// interface.
func isNil(img image.Image) bool {
	if img == nil {
		return true
	}
	v := reflect.ValueOf(img)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
