// Package geom defines the two rectangle coordinate systems used in this module
// and the single conversion between them.
//
// # Coordinate Systems
//
// Raster coordinates (Rect) follow the Go image convention:
//   - Origin (0, 0) at the top-left corner
//   - X increases rightward
//   - Y increases downward, so Top <= Bottom
//
// Box-file coordinates (BoxRect) follow Tesseract's character box convention:
//   - Origin (0, 0) at the bottom-left corner
//   - X increases rightward
//   - Y increases upward, so Top >= Bottom
//
// Word-level detections are reported in raster coordinates. Character-level
// detections are reported in box-file coordinates. Anything that draws on a
// raster must go through BoxRect.ToRaster first.
package geom

import (
	"fmt"
	"image"
)

// Rect is an axis-aligned box in raster coordinates.
type Rect struct {
	Left   int `json:"left" yaml:"left"`
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Image returns the rectangle as an image.Rectangle. The result is canonical,
// so a Rect with swapped edges still yields a well-formed rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

func (r Rect) String() string {
	return fmt.Sprintf("(l=%d t=%d r=%d b=%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// BoxRect is an axis-aligned box in box-file coordinates, measured from the
// bottom edge of the image.
type BoxRect struct {
	Left   int `json:"left" yaml:"left"`
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

// ToRaster converts the box to raster coordinates for an image of the given
// height by flipping the vertical axis.
func (b BoxRect) ToRaster(height int) Rect {
	return Rect{
		Left:   b.Left,
		Top:    height - b.Top,
		Right:  b.Right,
		Bottom: height - b.Bottom,
	}
}

func (b BoxRect) String() string {
	return fmt.Sprintf("(l=%d t=%d r=%d b=%d)", b.Left, b.Top, b.Right, b.Bottom)
}

// BoxFromRaster is the inverse of BoxRect.ToRaster.
func BoxFromRaster(r Rect, height int) BoxRect {
	return BoxRect{
		Left:   r.Left,
		Top:    height - r.Top,
		Right:  r.Right,
		Bottom: height - r.Bottom,
	}
}

// RectFromImage converts an image.Rectangle to a raster Rect.
func RectFromImage(r image.Rectangle) Rect {
	return Rect{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y}
}
