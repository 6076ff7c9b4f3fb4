package widget

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// Attributes is a declarative view configuration, usually decoded from TOML.
// Nil fields are unset and leave the view's current value alone.
//
//	border = true
//	border_width = 10
//	border_color = "#ffffff"
//	shadow = true
//	shadow_radius = 6.0
//	shadow_color = "#00ffff"
//	circular = true
type Attributes struct {
	Border         *bool    `toml:"border,omitempty"`
	BorderWidth    *int     `toml:"border_width,omitempty"`
	BorderColor    *string  `toml:"border_color,omitempty"`
	Shadow         *bool    `toml:"shadow,omitempty"`
	ShadowRadius   *float32 `toml:"shadow_radius,omitempty"`
	ShadowColor    *string  `toml:"shadow_color,omitempty"`
	Circular       *bool    `toml:"circular,omitempty"`
	CircularRadius *int     `toml:"circular_radius,omitempty"`
}

// ParseAttributes decodes TOML attributes from r. Unknown keys and
// malformed colors are errors.
func ParseAttributes(r io.Reader) (Attributes, error) {
	var a Attributes
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&a); err != nil {
		return Attributes{}, fmt.Errorf("decoding attributes: %w", err)
	}
	if err := a.Validate(); err != nil {
		return Attributes{}, err
	}
	return a, nil
}

// Validate checks the value ranges and color syntax.
func (a Attributes) Validate() error {
	if a.BorderWidth != nil && *a.BorderWidth < 0 {
		return fmt.Errorf("border_width: must not be negative, got %d", *a.BorderWidth)
	}
	if a.BorderColor != nil {
		if _, err := ParseColor(*a.BorderColor); err != nil {
			return fmt.Errorf("border_color: %w", err)
		}
	}
	if a.ShadowColor != nil {
		if _, err := ParseColor(*a.ShadowColor); err != nil {
			return fmt.Errorf("shadow_color: %w", err)
		}
	}
	return nil
}

// Over returns a with unset fields taken from base.
func (a Attributes) Over(base Attributes) Attributes {
	out := base
	if a.Border != nil {
		out.Border = a.Border
	}
	if a.BorderWidth != nil {
		out.BorderWidth = a.BorderWidth
	}
	if a.BorderColor != nil {
		out.BorderColor = a.BorderColor
	}
	if a.Shadow != nil {
		out.Shadow = a.Shadow
	}
	if a.ShadowRadius != nil {
		out.ShadowRadius = a.ShadowRadius
	}
	if a.ShadowColor != nil {
		out.ShadowColor = a.ShadowColor
	}
	if a.Circular != nil {
		out.Circular = a.Circular
	}
	if a.CircularRadius != nil {
		out.CircularRadius = a.CircularRadius
	}
	return out
}

// Apply sets every configured attribute on v through its setters.
func (a Attributes) Apply(v *ImageView) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.Border != nil {
		v.ShowBorder(*a.Border)
	}
	if a.BorderWidth != nil {
		v.SetBorderWidth(*a.BorderWidth)
	}
	if a.BorderColor != nil {
		c, _ := ParseColor(*a.BorderColor)
		v.SetBorderColor(c)
	}
	if a.Shadow != nil {
		v.ShowShadow(*a.Shadow)
	}
	if a.ShadowRadius != nil {
		v.SetShadowRadius(*a.ShadowRadius)
	}
	if a.ShadowColor != nil {
		c, _ := ParseColor(*a.ShadowColor)
		v.SetShadowColor(c)
	}
	if a.Circular != nil {
		v.SetCircularImageView(*a.Circular)
	}
	if a.CircularRadius != nil {
		v.SetCircularImageViewRadius(*a.CircularRadius)
	}
	return nil
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimSpace(s)
	alpha := uint8(0xff)
	if len(hex) == 9 && hex[0] == '#' {
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parsing alpha of %q: %w", s, err)
		}
		alpha = uint8(a)
		hex = hex[:7]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatColor renders c in the form ParseColor reads.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
