package widget

import (
	"image"
	"image/color"

	"golang.org/x/exp/slog"

	"git.sr.ht/~gioverse/imageview"
	"git.sr.ht/~gioverse/imageview/canvas"
	"git.sr.ht/~gioverse/imageview/layout"
)

// DefaultBorderWidth is the border width of a new view, in pixels.
const DefaultBorderWidth = 4

// Invalidator receives redraw requests. *app.Window satisfies it.
type Invalidator interface {
	Invalidate()
}

// InvalidatorFunc adapts a function to Invalidator.
type InvalidatorFunc func()

// Invalidate calls f.
func (f InvalidatorFunc) Invalidate() { f() }

// Option configures an ImageView at construction.
type Option func(v *ImageView)

// WithInvalidator routes redraw requests to inv.
func WithInvalidator(inv Invalidator) Option {
	return func(v *ImageView) {
		v.invalidator = inv
	}
}

// WithLogger overrides the package logger for this view.
func WithLogger(l *slog.Logger) Option {
	return func(v *ImageView) {
		v.logger = l
	}
}

// ImageView frames a bitmap with an optional drop shadow and border, as a
// rectangle that keeps the bitmap's aspect ratio or as a circle.
//
// The view does not draw by itself: hosts call Measure during layout and
// Paint with a canvas of the measured size. Every setter requests a redraw;
// requests made between two frames coalesce and are reported by Changed.
//
// ImageView is not safe for concurrent use. It belongs to the UI goroutine.
type ImageView struct {
	drawable Drawable
	paints   *Paints

	borderVisible  bool
	borderWidth    int
	shadowVisible  bool
	shadowRadius   float32
	shape          layout.Shape
	circularRadius int

	measured layout.Measurement
	scaled   ScaledImage

	dirty       bool
	invalidator Invalidator
	logger      *slog.Logger
}

// New returns a view with default settings: no border, no shadow,
// rectangular.
func New(opts ...Option) *ImageView {
	v := &ImageView{
		paints:       NewPaints(),
		borderWidth:  DefaultBorderWidth,
		shadowRadius: DefaultShadowRadius,
		shape:        layout.Rectangle,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewWithAttributes returns a view configured by attrs.
func NewWithAttributes(attrs Attributes, opts ...Option) (*ImageView, error) {
	return NewWithStyle(attrs, Attributes{}, opts...)
}

// NewWithStyle returns a view configured by style, then by attrs. Values
// set in attrs win over those in style.
func NewWithStyle(attrs, style Attributes, opts ...Option) (*ImageView, error) {
	v := New(opts...)
	if err := attrs.Over(style).Apply(v); err != nil {
		return nil, err
	}
	v.dirty = false
	return v, nil
}

// SetSource replaces the bitmap to display. A nil bitmap, typed or not,
// clears the view.
func (v *ImageView) SetSource(bitmap image.Image) {
	if isNil(bitmap) {
		v.drawable = nil
	} else {
		v.drawable = BitmapDrawable{Image: bitmap}
	}
	v.scaled.Invalidate()
	v.invalidate()
}

// SetDrawable attaches host content. Drawables that are not backed by a
// bitmap leave the view without a source, so it measures and draws nothing.
func (v *ImageView) SetDrawable(d Drawable) {
	v.drawable = d
	if d != nil && bitmapOf(d) == nil {
		v.log().Warn("imageview: drawable is not a bitmap, nothing will be drawn",
			"size", d.IntrinsicSize())
	}
	v.scaled.Invalidate()
	v.invalidate()
}

// Drawable returns the attached content.
func (v *ImageView) Drawable() Drawable {
	return v.drawable
}

// Source returns the bitmap being displayed, nil if there is none.
func (v *ImageView) Source() image.Image {
	return bitmapOf(v.drawable)
}

// ShowBorder toggles the border.
func (v *ImageView) ShowBorder(show bool) {
	v.borderVisible = show
	v.invalidate()
}

// SetBorderWidth sets the border width in pixels. Negative widths are
// treated as zero.
func (v *ImageView) SetBorderWidth(width int) {
	if width < 0 {
		width = 0
	}
	v.borderWidth = width
	v.invalidate()
}

// SetBorderColor sets the solid border color.
func (v *ImageView) SetBorderColor(c color.NRGBA) {
	v.paints.SetBorderColor(c)
	v.invalidate()
}

// SetBorderTexture paints the border by repeating bitmap on both axes.
// A nil bitmap restores the solid color.
func (v *ImageView) SetBorderTexture(bitmap image.Image) {
	v.paints.SetBorderTexture(bitmap)
	v.invalidate()
}

// ShowShadow toggles the drop shadow.
func (v *ImageView) ShowShadow(show bool) {
	v.shadowVisible = show
	v.invalidate()
}

// SetShadowRadius sets the blur radius of the shadow. In circle mode it
// also insets the image and shadow disks.
func (v *ImageView) SetShadowRadius(r float32) {
	v.shadowRadius = r
	v.paints.SetShadowRadius(r)
	v.invalidate()
}

// SetShadowColor sets the shadow color.
func (v *ImageView) SetShadowColor(c color.NRGBA) {
	v.paints.SetShadowColor(c)
	v.invalidate()
}

// SetCircularImageView switches between the circle and rectangle shapes.
func (v *ImageView) SetCircularImageView(circular bool) {
	if circular {
		v.shape = layout.Circle
	} else {
		v.shape = layout.Rectangle
	}
	v.scaled.Invalidate()
	v.invalidate()
}

// SetCircularImageViewRadius stores a radius for the circle shape. The
// circle is always sized from the measured bounds; the value is kept for
// callers that read it back.
func (v *ImageView) SetCircularImageViewRadius(r int) {
	v.circularRadius = r
	v.invalidate()
}

// BorderVisible reports whether the border is shown.
func (v *ImageView) BorderVisible() bool { return v.borderVisible }

// BorderWidth returns the configured border width.
func (v *ImageView) BorderWidth() int { return v.borderWidth }

// ShadowVisible reports whether the shadow is shown.
func (v *ImageView) ShadowVisible() bool { return v.shadowVisible }

// ShadowRadius returns the configured shadow radius.
func (v *ImageView) ShadowRadius() float32 { return v.shadowRadius }

// Shape returns the current shape.
func (v *ImageView) Shape() layout.Shape { return v.shape }

// CircularImageViewRadius returns the stored circle radius.
func (v *ImageView) CircularImageViewRadius() int { return v.circularRadius }

// Paints exposes the paints the view draws with.
func (v *ImageView) Paints() *Paints { return v.paints }

// Measured returns the outer size from the last Measure.
func (v *ImageView) Measured() image.Point { return v.measured.Outer }

// ContentSize returns the size the bitmap is scaled to, from the last
// Measure.
//
// In circle mode only the axis matching the shorter constraint side is
// bounded; the other follows the aspect ratio and can far exceed the
// constraint for very thin or tall sources.
func (v *ImageView) ContentSize() image.Point { return v.measured.Content }

// Scaled returns the cached scaled bitmap, nil until the next Paint after
// a source or size change. It has ContentSize pixels, so a circle view of an
// extreme aspect ratio allocates a bitmap much larger than its bounds.
func (v *ImageView) Scaled() *image.NRGBA { return v.scaled.Image() }

// RequiresSoftwareLayer reports whether hosts must rasterize the view in
// software to render the shadow layer.
func (v *ImageView) RequiresSoftwareLayer() bool {
	return v.paints.RequiresSoftwareLayer()
}

// Changed reports whether a redraw was requested since the last call, or
// whether a source implementing Changer reports a change.
func (v *ImageView) Changed() bool {
	changed := v.dirty
	if changer, ok := v.Source().(Changer); ok && changer.Changed() {
		v.scaled.Invalidate()
		changed = true
	}
	v.dirty = false
	return changed
}

// Measure resolves the outer size of the view within constraint. It returns
// the zero size when there is no bitmap or the constraint is empty.
func (v *ImageView) Measure(constraint image.Point) image.Point {
	var intrinsic image.Point
	if src := v.Source(); src != nil {
		intrinsic = src.Bounds().Size()
	}
	m := layout.Resolve(intrinsic, constraint, v.shape)
	if m.Content != v.measured.Content {
		v.scaled.Invalidate()
	}
	v.measured = m
	v.log().Debug("imageview: measured",
		"shape", v.shape,
		"intrinsic", intrinsic,
		"constraint", constraint,
		"outer", m.Outer,
		"content", m.Content)
	return m.Outer
}

// Paint composites the view onto c. c should have the measured size.
// Nothing is drawn until both a bitmap and a non-empty measurement exist.
func (v *ImageView) Paint(c canvas.Canvas) {
	src := v.Source()
	if src == nil {
		v.log().Debug("imageview: no bitmap, skipping paint")
		return
	}
	if v.measured.Empty() {
		v.log().Debug("imageview: empty measurement, skipping paint", "outer", v.measured.Outer)
		return
	}
	if v.scaled.Cache(src, v.measured.Content) {
		v.log().Debug("imageview: scaled bitmap", "size", v.measured.Content)
	}
	bmp := v.scaled.Image()
	if bmp == nil {
		return
	}
	Composite(c, bmp, v.paints, v.Effects())
}

// Effects returns the compositing flags in their current state.
func (v *ImageView) Effects() Effects {
	return Effects{
		Shape:        v.shape,
		Border:       v.borderVisible,
		BorderWidth:  v.borderWidth,
		Shadow:       v.shadowVisible,
		ShadowRadius: v.shadowRadius,
	}
}

func (v *ImageView) invalidate() {
	v.dirty = true
	if v.invalidator != nil {
		v.invalidator.Invalidate()
	}
}

func (v *ImageView) log() *slog.Logger {
	if v.logger != nil {
		return v.logger
	}
	return imageview.Logger()
}
