package imaging

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/pkg/errors"
)

// jpegQuality is used when a raster is written with a .jpg or .jpeg extension.
const jpegQuality = 95

// ReadRaster reads an image file into a mutable RGBA buffer.
func ReadRaster(path string) (*image.RGBA, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return clone.AsRGBA(img), nil
}

// WriteRaster encodes img to path. The format is chosen from the file
// extension: .png, .jpg/.jpeg and .bmp are supported.
func WriteRaster(path string, img image.Image) error {
	encoder, err := EncoderFor(path)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img, encoder); err != nil {
		return errors.Wrapf(err, "failed to write image %s", path)
	}
	return nil
}

// EncoderFor returns the bild encoder matching the extension of path.
func EncoderFor(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(jpegQuality), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, errors.Errorf("unsupported output format %q", filepath.Ext(path))
	}
}
