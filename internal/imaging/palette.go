package imaging

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// ParseColor parses a hex colour like "#0000FF", "0000ff" or "#00f".
//
// The result is fully opaque.
func ParseColor(hex string) (color.NRGBA, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return color.NRGBA{}, errors.New("empty color string")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "invalid color %q", hex)
	}

	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustParseColor is like ParseColor but panics on error. Intended for
// package-level defaults.
func MustParseColor(hex string) color.NRGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}
