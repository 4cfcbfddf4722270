package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"

	"github.com/ironsheep/border-text-filter/internal/geom"
)

// Stroke describes how rectangle outlines are drawn.
type Stroke struct {
	Color     color.Color
	Thickness int
}

// DefaultStroke is a 2 pixel blue outline.
var DefaultStroke = Stroke{
	Color:     MustParseColor("#0000FF"),
	Thickness: 2,
}

// Annotate returns a copy of src with an outline drawn around each rectangle.
// Rectangles must be in raster coordinates; parts outside the image are
// clipped.
func Annotate(src image.Image, rects []geom.Rect, stroke Stroke) *image.RGBA {
	dst := clone.AsRGBA(src)
	for _, r := range rects {
		DrawRect(dst, r, stroke)
	}
	return dst
}

// DrawRect draws the outline of r onto img. The outline grows inward from
// the rectangle's edges by stroke.Thickness pixels.
func DrawRect(img *image.RGBA, r geom.Rect, stroke Stroke) {
	rect := r.Image()
	thickness := stroke.Thickness
	if thickness < 1 {
		thickness = 1
	}

	for i := 0; i < thickness; i++ {
		inner := rect.Inset(i)
		if inner.Empty() {
			// Inset collapses to a point/line once the box is filled.
			inner = image.Rect(inner.Min.X, inner.Min.Y, inner.Min.X+1, inner.Min.Y+1)
		}
		x1, y1 := inner.Min.X, inner.Min.Y
		x2, y2 := inner.Max.X-1, inner.Max.Y-1

		for x := x1; x <= x2; x++ {
			setClipped(img, x, y1, stroke.Color)
			setClipped(img, x, y2, stroke.Color)
		}
		for y := y1; y <= y2; y++ {
			setClipped(img, x1, y, stroke.Color)
			setClipped(img, x2, y, stroke.Color)
		}
	}
}

func setClipped(img *image.RGBA, x, y int, c color.Color) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}
