package ocr

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ironsheep/border-text-filter/internal/geom"
)

// StructuralConfidence marks a word row that is a layout container rather
// than recognised text.
const StructuralConfidence = -1

// ErrNothingDetected is wrapped by detector errors that only mean the engine
// found nothing to read.
var ErrNothingDetected = errors.New("ocr: nothing detected")

// Level identifies the layout level of a word row.
type Level int

const (
	LevelPage Level = iota + 1
	LevelBlock
	LevelParagraph
	LevelLine
	LevelWord
)

func (l Level) String() string {
	switch l {
	case LevelPage:
		return "page"
	case LevelBlock:
		return "block"
	case LevelParagraph:
		return "paragraph"
	case LevelLine:
		return "line"
	case LevelWord:
		return "word"
	default:
		return "unknown"
	}
}

// CharBox is one character reported by a character-level detector.
type CharBox struct {
	// Char is the recognised character. Kept for display only.
	Char string `json:"char"`

	// Box is the character's bounding box in box-file coordinates.
	Box geom.BoxRect `json:"box"`
}

// WordEntry is one row reported by a word-level detector.
type WordEntry struct {
	Level      Level   `json:"level"`
	Text       string  `json:"text"`
	Left       int     `json:"left"`
	Top        int     `json:"top"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"confidence"`
}

// IsStructural reports whether the row is a layout container.
func (w WordEntry) IsStructural() bool {
	return w.Confidence == StructuralConfidence
}

// CharDetector reports character-level boxes for an image file.
type CharDetector interface {
	DetectChars(ctx context.Context, imagePath string) ([]CharBox, error)
}

// WordDetector reports word-level rows for an image file.
type WordDetector interface {
	DetectWords(ctx context.Context, imagePath string) ([]WordEntry, error)
}
