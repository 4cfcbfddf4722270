package border

import (
	"fmt"
	"strings"

	"github.com/ironsheep/border-text-filter/internal/geom"
	"github.com/ironsheep/border-text-filter/internal/ocr"
)

// lineArtifacts are single characters the detector reports for horizontal
// rules such as table borders and underlines.
var lineArtifacts = map[string]bool{
	"-": true,
	"~": true,
}

// Token is a detected word with its bounding box in raster coordinates.
type Token struct {
	geom.Rect  `yaml:",inline"`
	Text       string  `json:"text" yaml:"text"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// IsBlank reports whether the token's text is empty or whitespace.
func (t Token) IsBlank() bool {
	return strings.TrimSpace(t.Text) == ""
}

// IsLineArtifact reports whether the token is a single character the
// detector uses for horizontal rules.
func (t Token) IsLineArtifact() bool {
	return lineArtifacts[t.Text]
}

func (t Token) String() string {
	return fmt.Sprintf("%q %s", t.Text, t.Rect)
}

// TokensFromEntries converts detector rows to tokens. Structural rows are
// dropped; every other row becomes a token with right = left + width and
// bottom = top + height.
func TokensFromEntries(entries []ocr.WordEntry) []Token {
	tokens := make([]Token, 0, len(entries))
	for _, e := range entries {
		if e.IsStructural() {
			continue
		}
		tokens = append(tokens, Token{
			Rect: geom.Rect{
				Left:   e.Left,
				Top:    e.Top,
				Right:  e.Left + e.Width,
				Bottom: e.Top + e.Height,
			},
			Text:       e.Text,
			Confidence: e.Confidence,
		})
	}
	return tokens
}
