package widget

import (
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"git.sr.ht/~gioverse/imageview/layout"
)

func TestParseAttributes(t *testing.T) {
	a, err := ParseAttributes(strings.NewReader(`
border = true
border_width = 10
border_color = "#ff0000"
shadow = true
shadow_radius = 3.5
shadow_color = "#00ffff80"
circular = true
circular_radius = 42
`))
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	v, err := NewWithAttributes(a)
	if err != nil {
		t.Fatalf("applying: %v", err)
	}
	if !v.BorderVisible() || v.BorderWidth() != 10 {
		t.Errorf("border = %v/%d, want true/10", v.BorderVisible(), v.BorderWidth())
	}
	if got := v.Paints().Border.Color; got != (color.NRGBA{R: 0xff, A: 0xff}) {
		t.Errorf("border color = %v", got)
	}
	if !v.ShadowVisible() || v.ShadowRadius() != 3.5 {
		t.Errorf("shadow = %v/%g, want true/3.5", v.ShadowVisible(), v.ShadowRadius())
	}
	if got := v.Paints().Shadow.Shadow.Color; got != (color.NRGBA{G: 0xff, B: 0xff, A: 0x80}) {
		t.Errorf("shadow color = %v", got)
	}
	if v.Shape() != layout.Circle || v.CircularImageViewRadius() != 42 {
		t.Errorf("shape = %v/%d, want circle/42", v.Shape(), v.CircularImageViewRadius())
	}
	if v.Changed() {
		t.Errorf("constructed view reports a pending redraw")
	}
}

func TestParseAttributesErrors(t *testing.T) {
	for _, tt := range []struct {
		Label string
		TOML  string
	}{
		{Label: "unknown key", TOML: `bordr = true`},
		{Label: "wrong type", TOML: `border_width = "wide"`},
		{Label: "negative width", TOML: `border_width = -1`},
		{Label: "bad border color", TOML: `border_color = "white"`},
		{Label: "bad shadow color", TOML: `shadow_color = "cyan"`},
		{Label: "bad alpha", TOML: `shadow_color = "#000000zz"`},
	} {
		t.Run(tt.Label, func(t *testing.T) {
			if _, err := ParseAttributes(strings.NewReader(tt.TOML)); err == nil {
				t.Fatalf("parsing %q succeeded", tt.TOML)
			}
		})
	}
}

func TestAttributesOver(t *testing.T) {
	var (
		yes, no = true, false
		four    = 4
		twelve  = 12
		white   = "#ffffff"
	)
	style := Attributes{Border: &yes, BorderWidth: &twelve, BorderColor: &white}
	attrs := Attributes{BorderWidth: &four, Shadow: &no}
	want := Attributes{Border: &yes, BorderWidth: &four, BorderColor: &white, Shadow: &no}
	if diff := cmp.Diff(want, attrs.Over(style)); diff != "" {
		t.Fatalf("merged attributes (-want +got):\n%s", diff)
	}

	v, err := NewWithStyle(attrs, style)
	if err != nil {
		t.Fatalf("constructing: %v", err)
	}
	if !v.BorderVisible() || v.BorderWidth() != 4 || v.ShadowVisible() {
		t.Fatalf("view = border %v/%d shadow %v, want true/4 false",
			v.BorderVisible(), v.BorderWidth(), v.ShadowVisible())
	}
}

func TestParseColor(t *testing.T) {
	for _, tt := range []struct {
		In   string
		Want color.NRGBA
	}{
		{"#fff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#00ffff", color.NRGBA{G: 0xff, B: 0xff, A: 0xff}},
		{" #102030 ", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		{"#10203040", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
	} {
		got, err := ParseColor(tt.In)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.In, err)
			continue
		}
		if got != tt.Want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.In, got, tt.Want)
		}
		if back, _ := ParseColor(FormatColor(got)); back != got {
			t.Errorf("FormatColor(%v) = %q does not parse back", got, FormatColor(got))
		}
	}
}
