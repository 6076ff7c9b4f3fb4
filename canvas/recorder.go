package canvas

import (
	"fmt"
	"image"
)

// OpKind identifies a recorded draw call.
type OpKind uint8

const (
	FillRectOp OpKind = iota + 1
	FillCircleOp
	BlitBitmapOp
)

func (k OpKind) String() string {
	switch k {
	case FillRectOp:
		return "fillRect"
	case FillCircleOp:
		return "fillCircle"
	case BlitBitmapOp:
		return "blitBitmap"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one recorded draw call. Only the fields relevant to Kind are set.
type Op struct {
	Kind OpKind
	// Rect is the filled rectangle or the blit destination.
	Rect   Rect
	Center Point
	Radius float32
	Bitmap image.Image
	Src    *image.Rectangle
	// Paint is the paint passed by the caller, not a copy.
	Paint *Paint
}

func (op Op) String() string {
	switch op.Kind {
	case FillRectOp:
		return fmt.Sprintf("%v %v", op.Kind, op.Rect)
	case FillCircleOp:
		return fmt.Sprintf("%v (%g,%g) r=%g", op.Kind, op.Center.X, op.Center.Y, op.Radius)
	case BlitBitmapOp:
		return fmt.Sprintf("%v %v", op.Kind, op.Rect)
	}
	return op.Kind.String()
}

// Recorder is a Canvas that keeps the draw calls in order instead of
// rasterizing them.
type Recorder struct {
	Size image.Point
	Ops  []Op
}

// NewRecorder returns an empty Recorder of the given size.
func NewRecorder(size image.Point) *Recorder {
	return &Recorder{Size: size}
}

// Reset drops the recorded draw calls.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

func (r *Recorder) FillRect(rect Rect, p *Paint) {
	r.Ops = append(r.Ops, Op{Kind: FillRectOp, Rect: rect, Paint: p})
}

func (r *Recorder) FillCircle(center Point, radius float32, p *Paint) {
	r.Ops = append(r.Ops, Op{Kind: FillCircleOp, Center: center, Radius: radius, Paint: p})
}

func (r *Recorder) BlitBitmap(img image.Image, src *image.Rectangle, dst Rect, p *Paint) {
	r.Ops = append(r.Ops, Op{Kind: BlitBitmapOp, Bitmap: img, Src: src, Rect: dst, Paint: p})
}

func (r *Recorder) Width() int {
	return r.Size.X
}

// Replay issues the recorded draw calls onto c in order.
func (r *Recorder) Replay(c Canvas) {
	for _, op := range r.Ops {
		switch op.Kind {
		case FillRectOp:
			c.FillRect(op.Rect, op.Paint)
		case FillCircleOp:
			c.FillCircle(op.Center, op.Radius, op.Paint)
		case BlitBitmapOp:
			c.BlitBitmap(op.Bitmap, op.Src, op.Rect, op.Paint)
		}
	}
}
