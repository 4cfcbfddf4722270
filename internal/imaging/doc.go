// Package imaging provides the raster operations the detectors and
// classifiers need: decoding, dimensions, padding, annotation and encoding.
//
// All operations work with standard Go image.Image types in raster
// coordinates, where (0,0) is the top-left corner, X increases rightward and
// Y increases downward. Callers holding box-file coordinates convert them
// with geom.BoxRect.ToRaster before drawing.
//
// # Formats
//
// Open decodes PNG, JPEG, GIF, BMP, TIFF and WebP. WriteRaster encodes PNG,
// JPEG and BMP, chosen by file extension; see EncoderFor.
//
// # Error Handling
//
// A file that cannot be opened or decoded is reported as a *DecodeError
// carrying the path. Encoding failures are wrapped with the output path.
package imaging
