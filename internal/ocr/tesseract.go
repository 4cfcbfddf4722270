package ocr

import (
	"context"
	"strings"

	"github.com/gardar/ocrchestra/pkg/hocr"
	"github.com/otiai10/gosseract/v2"
	"github.com/pkg/errors"

	"github.com/ironsheep/border-text-filter/internal/geom"
	"github.com/ironsheep/border-text-filter/internal/imaging"
)

// DefaultLanguage is used when Options.Language is empty.
const DefaultLanguage = "eng"

// Options configures a Tesseract detector.
type Options struct {
	// Language is the Tesseract language code (e.g., "eng"). The matching
	// traineddata must be installed.
	Language string

	// TessdataPrefix overrides the directory Tesseract loads traineddata from.
	// Empty means the engine default.
	TessdataPrefix string

	// Variables are passed to Tesseract with SetVariable before recognition.
	Variables map[string]string
}

// Tesseract implements CharDetector and WordDetector using a fresh gosseract
// client per call.
type Tesseract struct {
	opts      Options
	newClient func() *gosseract.Client
}

// NewTesseract creates a Tesseract-backed detector.
func NewTesseract(opts Options) *Tesseract {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	return &Tesseract{opts: opts, newClient: gosseract.NewClient}
}

// client creates and configures a gosseract client for one image. The caller
// must Close it.
func (t *Tesseract) client(imagePath string) (*gosseract.Client, error) {
	c := t.newClient()

	if t.opts.TessdataPrefix != "" {
		if err := c.SetTessdataPrefix(t.opts.TessdataPrefix); err != nil {
			c.Close()
			return nil, errors.Wrap(err, "failed to set tessdata path")
		}
	}

	if err := c.SetLanguage(t.opts.Language); err != nil {
		c.Close()
		return nil, errors.Wrap(err, "failed to set language")
	}

	for k, v := range t.opts.Variables {
		if err := c.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			c.Close()
			return nil, errors.Wrapf(err, "failed to set variable %s", k)
		}
	}

	if err := c.SetImage(imagePath); err != nil {
		c.Close()
		return nil, errors.Wrap(err, "failed to set image")
	}

	return c, nil
}

// DetectChars performs character-level recognition and returns one box per
// character in box-file coordinates, in the order Tesseract reports them.
//
// Tesseract's symbol iterator reports raster coordinates; they are flipped
// here against the image height so the result matches the engine's box-file
// output.
func (t *Tesseract) DetectChars(ctx context.Context, imagePath string) ([]CharBox, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dims, err := imaging.LoadDimensions(imagePath)
	if err != nil {
		return nil, err
	}

	c, err := t.client(imagePath)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_SYMBOL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get character boxes")
	}

	chars := make([]CharBox, 0, len(boxes))
	for _, b := range boxes {
		chars = append(chars, CharBox{
			Char: b.Word,
			Box:  geom.BoxFromRaster(geom.RectFromImage(b.Box), dims.Height),
		})
	}
	return chars, nil
}

// DetectWords performs word-level recognition and returns Tesseract's layout
// as flat rows: structural rows with StructuralConfidence followed by the
// words they contain, in document order.
func (t *Tesseract) DetectWords(ctx context.Context, imagePath string) ([]WordEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := t.client(imagePath)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	out, err := c.HOCRText()
	if err != nil {
		return nil, errors.Wrap(err, "OCR failed")
	}

	return ParseHOCR([]byte(out))
}

// lineClasses are the hOCR classes Tesseract uses for text lines. All of them
// are folded into ocr_line before parsing.
var lineClasses = strings.NewReplacer(
	"ocr_header", "ocr_line",
	"ocr_caption", "ocr_line",
	"ocr_textfloat", "ocr_line",
)

// ParseHOCR flattens a Tesseract hOCR document into word rows.
func ParseHOCR(data []byte) ([]WordEntry, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.Wrap(ErrNothingDetected, "empty hOCR output")
	}

	doc, err := hocr.ParseHOCR([]byte(lineClasses.Replace(string(data))))
	if err != nil {
		// No readable ocr_page means there is nothing to classify.
		return nil, errors.Wrapf(ErrNothingDetected, "parse hOCR: %v", err)
	}

	var rows []WordEntry
	for _, page := range doc.Pages {
		rows = append(rows, structural(LevelPage, page.BBox))
		for _, area := range page.Areas {
			rows = append(rows, structural(LevelBlock, area.BBox))
			for _, par := range area.Paragraphs {
				rows = appendParagraph(rows, par)
			}
			for _, line := range area.Lines {
				rows = appendLine(rows, line)
			}
			rows = appendWords(rows, area.Words)
		}
		for _, par := range page.Paragraphs {
			rows = appendParagraph(rows, par)
		}
		for _, line := range page.Lines {
			rows = appendLine(rows, line)
		}
	}
	return rows, nil
}

func appendParagraph(rows []WordEntry, par hocr.Paragraph) []WordEntry {
	rows = append(rows, structural(LevelParagraph, par.BBox))
	for _, line := range par.Lines {
		rows = appendLine(rows, line)
	}
	return appendWords(rows, par.Words)
}

func appendLine(rows []WordEntry, line hocr.Line) []WordEntry {
	rows = append(rows, structural(LevelLine, line.BBox))
	return appendWords(rows, line.Words)
}

func appendWords(rows []WordEntry, words []hocr.Word) []WordEntry {
	for _, w := range words {
		row := entry(LevelWord, w.BBox)
		row.Text = w.Text
		row.Confidence = w.Confidence
		rows = append(rows, row)
	}
	return rows
}

func structural(level Level, bbox hocr.BoundingBox) WordEntry {
	row := entry(level, bbox)
	row.Confidence = StructuralConfidence
	return row
}

func entry(level Level, bbox hocr.BoundingBox) WordEntry {
	return WordEntry{
		Level:  level,
		Left:   int(bbox.X1),
		Top:    int(bbox.Y1),
		Width:  int(bbox.X2 - bbox.X1),
		Height: int(bbox.Y2 - bbox.Y1),
	}
}

// TesseractVersion returns the installed Tesseract version.
func TesseractVersion() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}
