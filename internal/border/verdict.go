package border

import "strings"

// Edge identifies one side of an image.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Edges lists all edges in reporting order.
var Edges = []Edge{EdgeLeft, EdgeRight, EdgeTop, EdgeBottom}

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// MarshalText encodes the edge by name.
func (e Edge) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Verdict records which borders the text touches.
type Verdict struct {
	Left   bool `json:"left" yaml:"left"`
	Right  bool `json:"right" yaml:"right"`
	Top    bool `json:"top" yaml:"top"`
	Bottom bool `json:"bottom" yaml:"bottom"`
}

// Flush reports whether text touches all four borders.
func (v Verdict) Flush() bool {
	return v.Left && v.Right && v.Top && v.Bottom
}

// Has reports whether the given edge was hit.
func (v Verdict) Has(e Edge) bool {
	switch e {
	case EdgeLeft:
		return v.Left
	case EdgeRight:
		return v.Right
	case EdgeTop:
		return v.Top
	case EdgeBottom:
		return v.Bottom
	}
	return false
}

// Or returns the edge-wise union of two verdicts.
func (v Verdict) Or(o Verdict) Verdict {
	return Verdict{
		Left:   v.Left || o.Left,
		Right:  v.Right || o.Right,
		Top:    v.Top || o.Top,
		Bottom: v.Bottom || o.Bottom,
	}
}

// Count returns the number of edges hit.
func (v Verdict) Count() int {
	n := 0
	for _, e := range Edges {
		if v.Has(e) {
			n++
		}
	}
	return n
}

func (v Verdict) String() string {
	var hit []string
	for _, e := range Edges {
		if v.Has(e) {
			hit = append(hit, e.String())
		}
	}
	if len(hit) == 0 {
		return "none"
	}
	return strings.Join(hit, ",")
}

// Hit records a token that touches an edge.
type Hit struct {
	Edge  Edge  `json:"edge" yaml:"edge"`
	Token Token `json:"token" yaml:"token"`
}

// Touches returns the edges a single token touches. Blank tokens touch
// nothing. Line artifacts never touch the top or bottom edge.
func Touches(t Token, m Margins) Verdict {
	if t.IsBlank() {
		return Verdict{}
	}
	return Verdict{
		Left:   t.Left < m.Left,
		Right:  t.Right > m.Right,
		Top:    t.Top < m.Top && !t.IsLineArtifact(),
		Bottom: t.Bottom > m.Bottom && !t.IsLineArtifact(),
	}
}

// Evaluate folds Touches over all tokens. It returns the combined verdict and
// every individual edge hit in token order.
func Evaluate(tokens []Token, m Margins) (Verdict, []Hit) {
	var verdict Verdict
	var hits []Hit
	for _, t := range tokens {
		touched := Touches(t, m)
		for _, e := range Edges {
			if touched.Has(e) {
				hits = append(hits, Hit{Edge: e, Token: t})
			}
		}
		verdict = verdict.Or(touched)
	}
	return verdict, hits
}
