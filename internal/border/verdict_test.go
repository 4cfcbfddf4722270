package border

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/border-text-filter/internal/geom"
	"github.com/ironsheep/border-text-filter/internal/ocr"
)

func tok(text string, left, top, right, bottom int) Token {
	return Token{Rect: geom.Rect{Left: left, Top: top, Right: right, Bottom: bottom}, Text: text, Confidence: 90}
}

func TestNewMargins(t *testing.T) {
	m := NewMargins(12, 10, 2)
	assert.Equal(t, Margins{Left: 2, Right: 10, Top: 2, Bottom: 8}, m)
}

func TestMargins_Widen(t *testing.T) {
	m := NewMargins(32, 30, 2).Widen(10)
	assert.Equal(t, Margins{Left: 12, Right: 20, Top: 12, Bottom: 18}, m)
}

func TestTokensFromEntries(t *testing.T) {
	entries := []ocr.WordEntry{
		{Level: ocr.LevelPage, Left: 0, Top: 0, Width: 12, Height: 10, Confidence: ocr.StructuralConfidence},
		{Level: ocr.LevelLine, Left: 0, Top: 1, Width: 10, Height: 8, Confidence: ocr.StructuralConfidence},
		{Level: ocr.LevelWord, Text: "Hi", Left: 0, Top: 1, Width: 10, Height: 8, Confidence: 90},
		{Level: ocr.LevelWord, Text: " ", Left: 11, Top: 1, Width: 1, Height: 8, Confidence: 0},
	}

	tokens := TokensFromEntries(entries)

	assert.Equal(t, []Token{
		{Rect: geom.Rect{Left: 0, Top: 1, Right: 10, Bottom: 9}, Text: "Hi", Confidence: 90},
		{Rect: geom.Rect{Left: 11, Top: 1, Right: 12, Bottom: 9}, Text: " ", Confidence: 0},
	}, tokens)
}

func TestTokensFromEntries_OnlyStructural(t *testing.T) {
	entries := []ocr.WordEntry{
		{Level: ocr.LevelPage, Width: 12, Height: 10, Confidence: ocr.StructuralConfidence},
	}
	assert.Empty(t, TokensFromEntries(entries))
}

func TestTouches(t *testing.T) {
	m := Margins{Left: 2, Right: 10, Top: 2, Bottom: 8}

	tests := []struct {
		name  string
		token Token
		want  Verdict
	}{
		{"strictly inside", tok("ab", 3, 3, 9, 7), Verdict{}},
		{"on the margins exactly", tok("ab", 2, 2, 10, 8), Verdict{}},
		{"left only", tok("ab", 1, 3, 9, 7), Verdict{Left: true}},
		{"right only", tok("ab", 3, 3, 11, 7), Verdict{Right: true}},
		{"top only", tok("ab", 3, 1, 9, 7), Verdict{Top: true}},
		{"bottom only", tok("ab", 3, 3, 9, 9), Verdict{Bottom: true}},
		{"all four", tok("word", 0, 0, 12, 10), Verdict{Left: true, Right: true, Top: true, Bottom: true}},
		{"blank everywhere", tok("", 0, 0, 12, 10), Verdict{}},
		{"whitespace everywhere", tok(" \t\n", 0, 0, 12, 10), Verdict{}},
		{"hyphen past top and left", tok("-", 0, 0, 5, 1), Verdict{Left: true}},
		{"tilde past bottom and right", tok("~", 6, 9, 12, 10), Verdict{Right: true}},
		{"double hyphen is text", tok("--", 3, 0, 9, 1), Verdict{Top: true}},
		{"padded hyphen is text", tok(" -", 3, 0, 9, 1), Verdict{Top: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Touches(tt.token, m))
		})
	}
}

func TestEvaluate_IndependentEdges(t *testing.T) {
	m := Margins{Left: 2, Right: 10, Top: 2, Bottom: 8}

	// No single token touches more than one edge.
	tokens := []Token{
		tok("L", 0, 4, 4, 6),
		tok("R", 8, 4, 12, 6),
		tok("T", 4, 0, 6, 4),
		tok("B", 4, 6, 6, 10),
	}

	verdict, hits := Evaluate(tokens, m)

	assert.True(t, verdict.Flush())
	assert.Len(t, hits, 4)
	for i, e := range Edges {
		assert.Equal(t, e, hits[i].Edge)
		assert.Equal(t, tokens[i], hits[i].Token)
	}
}

func TestEvaluate_AllInside(t *testing.T) {
	m := Margins{Left: 2, Right: 10, Top: 2, Bottom: 8}
	tokens := []Token{tok("a", 3, 3, 5, 5), tok("b", 6, 3, 9, 7)}

	verdict, hits := Evaluate(tokens, m)

	assert.Equal(t, Verdict{}, verdict)
	assert.False(t, verdict.Flush())
	assert.Empty(t, hits)
}

func TestEvaluate_Empty(t *testing.T) {
	verdict, hits := Evaluate(nil, Margins{})
	assert.Equal(t, Verdict{}, verdict)
	assert.Nil(t, hits)
}

func TestEvaluate_WhitespaceNeverHits(t *testing.T) {
	m := Margins{Left: 2, Right: 10, Top: 2, Bottom: 8}
	tokens := []Token{tok("   ", 0, 0, 12, 10), tok("", -5, -5, 50, 50)}

	verdict, hits := Evaluate(tokens, m)

	assert.Equal(t, Verdict{}, verdict)
	assert.Empty(t, hits)
}

func TestEvaluate_ArtifactsOnlyExcludedVertically(t *testing.T) {
	m := Margins{Left: 2, Right: 10, Top: 2, Bottom: 8}
	tokens := []Token{
		tok("-", 0, 0, 12, 1),  // rule along the top edge, full width
		tok("~", 0, 9, 12, 10), // rule along the bottom edge, full width
	}

	verdict, hits := Evaluate(tokens, m)

	assert.Equal(t, Verdict{Left: true, Right: true}, verdict)
	assert.Len(t, hits, 4)
}

func TestEvaluate_HitsOnMultipleEdgesFromOneToken(t *testing.T) {
	m := Margins{Left: 2, Right: 10, Top: 2, Bottom: 8}

	_, hits := Evaluate([]Token{tok("Hi", 0, 1, 10, 9)}, m)

	edges := make([]Edge, 0, len(hits))
	for _, h := range hits {
		edges = append(edges, h.Edge)
	}
	assert.Equal(t, []Edge{EdgeLeft, EdgeTop, EdgeBottom}, edges)
}

func TestVerdict_Helpers(t *testing.T) {
	v := Verdict{Left: true, Bottom: true}

	assert.Equal(t, 2, v.Count())
	assert.Equal(t, "left,bottom", v.String())
	assert.Equal(t, "none", Verdict{}.String())
	assert.True(t, v.Has(EdgeBottom))
	assert.False(t, v.Has(EdgeTop))
	assert.Equal(t, Verdict{Left: true, Right: true, Bottom: true}, v.Or(Verdict{Right: true}))
}

func TestEdgeString(t *testing.T) {
	assert.Equal(t, "left", EdgeLeft.String())
	assert.Equal(t, "right", EdgeRight.String())
	assert.Equal(t, "top", EdgeTop.String())
	assert.Equal(t, "bottom", EdgeBottom.String())
	assert.Equal(t, "unknown", Edge(42).String())
}
