package material

import (
	"image"
	"image/color"
	"testing"
	"time"

	"gioui.org/gpu/headless"
	"gioui.org/io/router"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"

	ivwidget "git.sr.ht/~gioverse/imageview/widget"
)

func source(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+1] = 0x80
		img.Pix[i+3] = 0xff
	}
	return img
}

func TestFrameUpdate(t *testing.T) {
	v := ivwidget.New()
	v.SetSource(source(200, 100))
	size := v.Measure(image.Pt(400, 400))

	var f Frame
	if !f.Update(v, size) {
		t.Fatalf("first update did not rasterize")
	}
	if f.Size() != size {
		t.Fatalf("frame size = %v, want %v", f.Size(), size)
	}
	if f.Update(v, size) {
		t.Fatalf("unchanged view rasterized again")
	}
	v.ShowBorder(true)
	if !f.Update(v, size) {
		t.Fatalf("changed view was not rasterized")
	}
	if !f.Update(v, image.Pt(300, 150)) {
		t.Fatalf("resized view was not rasterized")
	}
	f.Invalidate()
	if !f.Update(v, image.Pt(300, 150)) {
		t.Fatalf("invalidated frame was not rasterized")
	}
}

func TestFrameObserve(t *testing.T) {
	v := ivwidget.New()
	v.SetSource(source(200, 100))
	size := v.Measure(image.Pt(400, 400))

	var sizes []image.Point
	f := Frame{Observe: func(size image.Point, took time.Duration) {
		if took < 0 {
			t.Errorf("negative duration %v", took)
		}
		sizes = append(sizes, size)
	}}
	f.Update(v, size)
	f.Update(v, size)
	f.Update(v, image.Pt(100, 50))
	want := []image.Point{size, image.Pt(100, 50)}
	if len(sizes) != len(want) || sizes[0] != want[0] || sizes[1] != want[1] {
		t.Fatalf("\n got:{%v} \nwant:{%v}\n", sizes, want)
	}
}

func TestLayout(t *testing.T) {
	for _, tt := range []struct {
		Label    string
		Source   image.Image
		Circular bool
		Max      image.Point
		Want     image.Point
	}{
		{
			Label:  "rectangle",
			Source: source(200, 100),
			Max:    image.Pt(400, 400),
			Want:   image.Pt(400, 200),
		},
		{
			Label:    "circle",
			Source:   source(200, 100),
			Circular: true,
			Max:      image.Pt(400, 300),
			Want:     image.Pt(300, 300),
		},
		{
			Label: "empty",
			Max:   image.Pt(400, 400),
			Want:  image.Point{},
		},
	} {
		t.Run(tt.Label, func(t *testing.T) {
			v := ivwidget.New()
			if tt.Source != nil {
				v.SetSource(tt.Source)
			}
			v.SetCircularImageView(tt.Circular)
			v.ShowShadow(true)
			gtx := layout.Context{
				Ops:         new(op.Ops),
				Constraints: layout.Constraints{Max: tt.Max},
			}
			var f Frame
			dims := ImageView(v, &f).Layout(gtx)
			if dims.Size != tt.Want {
				t.Fatalf("\n got:{%v} \nwant:{%v}\n", dims.Size, tt.Want)
			}
			if v.Changed() {
				t.Fatalf("layout left a pending redraw")
			}
		})
	}
}

func TestLayoutCapped(t *testing.T) {
	v := ivwidget.New()
	v.SetSource(source(200, 100))
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Constraints: layout.Constraints{Max: image.Pt(800, 800)},
	}
	style := ImageView(v, new(Frame))
	style.Width = 100
	if dims := style.Layout(gtx); dims.Size != image.Pt(100, 50) {
		t.Fatalf("\n got:{%v} \nwant:{%v}\n", dims.Size, image.Pt(100, 50))
	}
}

func BenchmarkImageView(b *testing.B) {
	const scale = 2
	sz := image.Point{X: 400 * scale, Y: 400 * scale}
	w, err := headless.NewWindow(sz.X, sz.Y)
	if err != nil {
		b.Skipf("headless window: %v", err)
	}
	v := ivwidget.New()
	v.SetSource(source(640, 480))
	v.ShowBorder(true)
	v.ShowShadow(true)
	v.SetBorderColor(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	var f Frame
	gtx := layout.Context{
		Ops: new(op.Ops),
		Metric: unit.Metric{
			PxPerDp: scale,
			PxPerSp: scale,
		},
		Constraints: layout.Exact(sz),
		Queue:       new(router.Router),
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gtx.Ops.Reset()
		// Force a rasterization every frame to measure compositing.
		v.ShowShadow(true)
		ImageView(v, &f).Layout(gtx)
		w.Frame(gtx.Ops)
	}
}
