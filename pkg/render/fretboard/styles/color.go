package styles

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/chordview/pkg/errors"
)

var namedColors = map[string]string{
	"white":  "#ffffff",
	"black":  "#000000",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"gray":   "#808080",
	"grey":   "#808080",
	"orange": "#ffa500",
	"yellow": "#ffff00",
}

// ParseColor parses #rgb, #rrggbb, #aarrggbb (Android channel order),
// "transparent" or one of a few CSS color names.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return Transparent, nil
	}
	if hexStr, ok := namedColors[s]; ok {
		s = hexStr
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidStyle, "invalid color %q", s)
	}
	switch len(s) {
	case 4, 7, 9:
	default:
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidStyle, "invalid color %q (want #rgb, #rrggbb or #aarrggbb)", s)
	}

	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := hex.DecodeString(s[1:3])
		if err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid color %q", s)
		}
		alpha = a[0]
		s = "#" + s[3:]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatColor renders c as #rrggbb, or #aarrggbb when it is not opaque.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}

// hexColor adapts color.NRGBA to TOML text encoding.
type hexColor color.NRGBA

func (h hexColor) MarshalText() ([]byte, error) {
	return []byte(FormatColor(color.NRGBA(h))), nil
}

func (h *hexColor) UnmarshalText(b []byte) error {
	c, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*h = hexColor(c)
	return nil
}
