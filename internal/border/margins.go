package border

import "fmt"

// Margins are per-edge pixel thresholds. A token whose left edge is less than
// Left touches the left border, and so on for the other edges.
type Margins struct {
	Left   int `json:"left" yaml:"left"`
	Right  int `json:"right" yaml:"right"`
	Top    int `json:"top" yaml:"top"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

// NewMargins returns margins inset by inset pixels from each edge of an image
// of the given size.
func NewMargins(width, height, inset int) Margins {
	return Margins{
		Left:   inset,
		Right:  width - inset,
		Top:    inset,
		Bottom: height - inset,
	}
}

// Widen moves every margin inward by padding pixels. Used when the tokens
// were detected on a copy padded by that many pixels on each side.
func (m Margins) Widen(padding int) Margins {
	return Margins{
		Left:   m.Left + padding,
		Right:  m.Right - padding,
		Top:    m.Top + padding,
		Bottom: m.Bottom - padding,
	}
}

func (m Margins) String() string {
	return fmt.Sprintf("left=%d right=%d top=%d bottom=%d", m.Left, m.Right, m.Top, m.Bottom)
}
