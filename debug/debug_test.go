package debug

import (
	"image"
	"testing"

	"git.sr.ht/~gioverse/imageview/canvas"
	ivwidget "git.sr.ht/~gioverse/imageview/widget"
)

func TestContentBox(t *testing.T) {
	for _, tt := range []struct {
		Label    string
		Circular bool
		Max      image.Point
		Want     image.Rectangle
	}{
		{
			Label: "rectangle",
			Max:   image.Pt(400, 400),
			Want:  image.Rect(0, 0, 400, 200),
		},
		{
			Label:    "circle",
			Circular: true,
			Max:      image.Pt(400, 400),
			Want:     image.Rect(0, 0, 400, 200),
		},
		{
			Label: "nothing measured",
			Want:  image.Rectangle{},
		},
	} {
		t.Run(tt.Label, func(t *testing.T) {
			v := ivwidget.New()
			v.SetSource(image.NewNRGBA(image.Rect(0, 0, 200, 100)))
			v.SetCircularImageView(tt.Circular)
			v.Measure(tt.Max)
			if got := ContentBox(v); got != tt.Want {
				t.Fatalf("\n got:{%v} \nwant:{%v}\n", got, tt.Want)
			}
		})
	}
}

func TestEdges(t *testing.T) {
	got := edges(image.Rect(0, 0, 10, 5), 0)
	want := []image.Rectangle{
		image.Rect(0, 0, 10, 1),
		image.Rect(0, 4, 10, 5),
		image.Rect(0, 0, 1, 5),
		image.Rect(9, 0, 10, 5),
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("edge %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOps(t *testing.T) {
	r := canvas.NewRecorder(image.Pt(10, 10))
	r.FillRect(canvas.R(0, 0, 10, 10), &canvas.Paint{})
	r.FillCircle(canvas.Pt(5, 5), 4, &canvas.Paint{})
	lines := Ops(r)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), lines)
	}
	for i, line := range lines {
		if line != r.Ops[i].String() {
			t.Errorf("line %d = %q, want %q", i, line, r.Ops[i].String())
		}
	}
}
