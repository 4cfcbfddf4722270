// Package boxes extracts character-level glyph boxes from an image and draws
// them back onto a copy of it.
package boxes

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/border-text-filter/internal/geom"
	"github.com/ironsheep/border-text-filter/internal/imaging"
	"github.com/ironsheep/border-text-filter/internal/logging"
	"github.com/ironsheep/border-text-filter/internal/ocr"
)

// Glyph is one character-level detection in box-file coordinates (origin at
// the bottom-left, Y grows upward).
type Glyph struct {
	geom.BoxRect

	// Char is the character the detector read, for display only.
	Char string `json:"char,omitempty"`
}

func (g Glyph) String() string {
	if g.Char == "" {
		return g.BoxRect.String()
	}
	return fmt.Sprintf("%q %s", g.Char, g.BoxRect)
}

// Extractor runs a character-level detector over images.
type Extractor struct {
	detector ocr.CharDetector
	stroke   imaging.Stroke
	log      *logrus.Entry
}

// NewExtractor creates an Extractor. A nil logger discards diagnostics.
func NewExtractor(detector ocr.CharDetector, stroke imaging.Stroke, logger *logrus.Logger) *Extractor {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Extractor{
		detector: detector,
		stroke:   stroke,
		log:      logger.WithField("component", "boxes"),
	}
}

// ExtractBoxes returns one Glyph per character the detector reports, in the
// order it reports them. No filtering, deduplication or reordering is applied.
//
// The image is opened first so that an unreadable file is reported as an
// *imaging.DecodeError. Detector errors are returned unmodified.
func (e *Extractor) ExtractBoxes(ctx context.Context, imagePath string) ([]Glyph, error) {
	if _, err := imaging.Open(imagePath); err != nil {
		return nil, err
	}

	chars, err := e.detector.DetectChars(ctx, imagePath)
	if err != nil {
		return nil, err
	}

	glyphs := make([]Glyph, 0, len(chars))
	for _, c := range chars {
		glyphs = append(glyphs, Glyph{BoxRect: c.Box, Char: c.Char})
	}

	e.log.WithFields(logrus.Fields{
		"image":  imagePath,
		"glyphs": len(glyphs),
	}).Debug("extracted glyph boxes")

	return glyphs, nil
}

// Annotate draws every glyph as a rectangle outline onto a copy of the image
// at imagePath and writes it to outputPath. The output format follows the
// extension of outputPath.
//
// Glyphs are converted from box-file to raster coordinates against the image
// height before drawing.
func (e *Extractor) Annotate(imagePath string, glyphs []Glyph, outputPath string) error {
	raster, err := imaging.ReadRaster(imagePath)
	if err != nil {
		return err
	}

	rects := RasterRects(glyphs, raster.Bounds().Dy())
	annotated := imaging.Annotate(raster, rects, e.stroke)

	if err := imaging.WriteRaster(outputPath, annotated); err != nil {
		return errors.Wrap(err, "failed to write annotated image")
	}

	e.log.WithFields(logrus.Fields{
		"image":  imagePath,
		"output": outputPath,
		"boxes":  len(rects),
	}).Debug("wrote annotated image")

	return nil
}

// RasterRects converts glyphs to raster rectangles for an image of the given
// height.
func RasterRects(glyphs []Glyph, height int) []geom.Rect {
	rects := make([]geom.Rect, 0, len(glyphs))
	for _, g := range glyphs {
		rects = append(rects, g.ToRaster(height))
	}
	return rects
}
