// Package ocr provides the text detector used by the box extractor and the
// border classifier, backed by Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2) behind two
// narrow interfaces:
//
//   - CharDetector: one box per recognised character, in box-file coordinates
//     (origin at the bottom-left, Y grows upward)
//   - WordDetector: one row per page, block, paragraph, line and word, in
//     raster coordinates (origin at the top-left, Y grows downward)
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// A custom tessdata directory can be selected with Options.TessdataPrefix.
//
// # Word Rows
//
// Word mode mirrors Tesseract's tabular data output. Structural rows (page,
// block, paragraph, line) carry StructuralConfidence (-1) and exist only to
// delimit the words; callers interested in text discard them. Word rows carry
// the recognition confidence from 0 to 100.
//
// # Error Handling
//
// Detector methods return errors for:
//   - Missing or unreadable image files
//   - Unsupported language codes
//   - Tesseract initialization failures
//
// An engine response that means "there was nothing to read" is reported as an
// error wrapping ErrNothingDetected so callers can tell a detection miss from a
// real failure.
package ocr
