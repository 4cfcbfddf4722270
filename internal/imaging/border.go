package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// AddBorder returns a copy of src surrounded by a solid border of the given
// widths in pixels. The copy is positioned at the origin, so a point (x, y) in
// src lands at (x+left, y+top) in the result.
//
// Negative widths are treated as zero.
func AddBorder(src image.Image, top, bottom, left, right int, fill color.Color) *image.NRGBA {
	top, bottom, left, right = max(top, 0), max(bottom, 0), max(left, 0), max(right, 0)

	dims := DimensionsOf(src)
	canvas := imaging.New(dims.Width+left+right, dims.Height+top+bottom, fill)
	return imaging.Paste(canvas, src, image.Pt(left, top))
}

// AddUniformBorder adds a border of the same width on all four sides.
func AddUniformBorder(src image.Image, width int, fill color.Color) *image.NRGBA {
	return AddBorder(src, width, width, width, width, fill)
}
