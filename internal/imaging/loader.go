package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DecodeError reports an image that could not be opened or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to open image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Open loads and decodes an image file.
//
// Supported formats are PNG, JPEG, GIF, TIFF, BMP and WebP. EXIF orientation
// is ignored so that pixel coordinates match what the text detector sees.
//
// Returns a *DecodeError if the file cannot be read or decoded.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// Dimensions contains the width and height of an image.
type Dimensions struct {
	// Width is the image width in pixels.
	Width int `json:"width" yaml:"width"`

	// Height is the image height in pixels.
	Height int `json:"height" yaml:"height"`
}

// DimensionsOf returns the dimensions of a decoded image.
func DimensionsOf(img image.Image) Dimensions {
	bounds := img.Bounds()
	return Dimensions{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
}

// LoadDimensions opens an image file and returns its dimensions.
func LoadDimensions(path string) (*Dimensions, error) {
	img, err := Open(path)
	if err != nil {
		return nil, err
	}
	dims := DimensionsOf(img)
	return &dims, nil
}
