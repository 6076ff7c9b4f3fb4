package layout

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/x/component"
)

// Backdrop lays out a widget over a colored background. Transparent parts
// of the widget, such as the corners around a circular view, show the
// backdrop color.
type Backdrop struct {
	Color color.NRGBA
	// Fill grows the backdrop to the minimum constraints and centers the
	// widget on it.
	Fill bool
}

func (b Backdrop) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	size := dims.Size
	if b.Fill {
		if size.X < gtx.Constraints.Min.X {
			size.X = gtx.Constraints.Min.X
		}
		if size.Y < gtx.Constraints.Min.Y {
			size.Y = gtx.Constraints.Min.Y
		}
	}
	return layout.Stack{Alignment: layout.Center}.Layout(
		gtx,
		layout.Expanded(component.Rect{
			Size:  size,
			Color: b.Color,
		}.Layout),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			call.Add(gtx.Ops)
			return dims
		}),
	)
}
