package border

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/border-text-filter/internal/imaging"
	"github.com/ironsheep/border-text-filter/internal/logging"
	"github.com/ironsheep/border-text-filter/internal/ocr"
)

// Classification is the final decision for one image.
type Classification int

const (
	// NoText means neither the original nor the padded copy had any text.
	NoText Classification = iota
	// PureText means text touches all four borders; the crop is likely just
	// text and can be filtered out.
	PureText
	// TextWithContext means text was found but it does not fill the frame.
	TextWithContext
)

func (c Classification) String() string {
	switch c {
	case NoText:
		return "no-text"
	case PureText:
		return "pure-text"
	case TextWithContext:
		return "text-with-context"
	default:
		return "unknown"
	}
}

// MarshalText encodes the classification by name.
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

const (
	// DefaultBaseMargin is the inset, in pixels, within which text counts as
	// touching a border.
	DefaultBaseMargin = 2

	// DefaultPadding is the border width, in pixels, added for the retry.
	DefaultPadding = 10

	// DefaultPaddedDir is where padded copies are written.
	DefaultPaddedDir = "padded"
)

// Options configures a Classifier.
type Options struct {
	// BaseMargin is the inset from each edge within which a token touches the
	// border.
	BaseMargin int

	// Padding is the width of the border added before the retry.
	Padding int

	// PadColor fills the added border. Nil means white.
	PadColor color.Color

	// PaddedDir receives the padded copies. It is created on first use.
	PaddedDir string

	// RetryOnFailure makes a detector error on the first attempt trigger the
	// padding retry instead of failing the image.
	RetryOnFailure bool
}

// DefaultOptions returns the options the batch tool uses when nothing is
// configured.
func DefaultOptions() Options {
	return Options{
		BaseMargin: DefaultBaseMargin,
		Padding:    DefaultPadding,
		PadColor:   color.White,
		PaddedDir:  DefaultPaddedDir,
	}
}

// Result is the typed outcome of classifying one image.
type Result struct {
	// Path is the image that was classified.
	Path string `json:"path" yaml:"path"`

	Classification Classification `json:"classification" yaml:"classification"`

	// FirstPass is the outcome of detection on the original image.
	FirstPass OutcomeKind `json:"first_pass" yaml:"first_pass"`

	// FirstPassErr is the detector error of the first attempt, if any.
	FirstPassErr error `json:"-" yaml:"-"`

	// Padded is set when tokens (or the lack of them) come from the padded
	// copy written to PaddedPath.
	Padded     bool   `json:"padded" yaml:"padded"`
	PaddedPath string `json:"padded_path,omitempty" yaml:"padded_path,omitempty"`

	// Dimensions are those of the image the tokens were detected on.
	Dimensions imaging.Dimensions `json:"dimensions" yaml:"dimensions"`

	// Margins are the thresholds the tokens were tested against. Zero when
	// no text was found.
	Margins Margins `json:"margins" yaml:"margins"`

	Verdict Verdict `json:"verdict" yaml:"verdict"`
	Hits    []Hit   `json:"hits,omitempty" yaml:"hits,omitempty"`
	Tokens  []Token `json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

// Text returns the non-blank token texts joined by spaces.
func (r *Result) Text() string {
	var words []string
	for _, t := range r.Tokens {
		if !t.IsBlank() {
			words = append(words, strings.TrimSpace(t.Text))
		}
	}
	return strings.Join(words, " ")
}

// Classifier runs the border-adjacency procedure against a word detector.
type Classifier struct {
	words ocr.WordDetector
	opts  Options
	log   *logrus.Entry
}

// New creates a Classifier. Zero-valued options fall back to the defaults,
// except RetryOnFailure. A nil logger discards diagnostics.
func New(words ocr.WordDetector, opts Options, logger *logrus.Logger) *Classifier {
	defaults := DefaultOptions()
	if opts.BaseMargin == 0 {
		opts.BaseMargin = defaults.BaseMargin
	}
	if opts.Padding == 0 {
		opts.Padding = defaults.Padding
	}
	if opts.PadColor == nil {
		opts.PadColor = defaults.PadColor
	}
	if opts.PaddedDir == "" {
		opts.PaddedDir = defaults.PaddedDir
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Classifier{
		words: words,
		opts:  opts,
		log:   logger.WithField("component", "border"),
	}
}

// Options returns the effective options.
func (c *Classifier) Options() Options {
	return c.opts
}

// ExtractText runs the word detector once and returns the tokens, with
// structural rows discarded.
func (c *Classifier) ExtractText(ctx context.Context, imagePath string) ([]Token, error) {
	entries, err := c.words.DetectWords(ctx, imagePath)
	if err != nil {
		return nil, err
	}
	return TokensFromEntries(entries), nil
}

// detect runs one attempt and classifies its outcome. A detector error that
// wraps ocr.ErrNothingDetected counts as an empty result.
func (c *Classifier) detect(ctx context.Context, imagePath string) Outcome {
	tokens, err := c.ExtractText(ctx, imagePath)
	switch {
	case errors.Is(err, ocr.ErrNothingDetected):
		return Outcome{Kind: DetectedEmpty}
	case err != nil:
		return Outcome{Kind: DetectionFailed, Err: err}
	case len(tokens) == 0:
		return Outcome{Kind: DetectedEmpty}
	default:
		return Outcome{Kind: Detected, Tokens: tokens}
	}
}

// Classify runs the full procedure on one image: detection on the original,
// at most one retry on a padded copy, then the border test.
//
// It returns an error when the image cannot be decoded, when the detector
// fails on the first attempt and RetryOnFailure is not set, when the padded
// copy cannot be written, or when the detector fails on the padded copy.
// Finding no text is not an error.
func (c *Classifier) Classify(ctx context.Context, imagePath string) (*Result, error) {
	img, err := imaging.Open(imagePath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := c.log.WithField("image", imagePath)
	result := &Result{
		Path:       imagePath,
		Dimensions: imaging.DimensionsOf(img),
	}

	first := c.detect(ctx, imagePath)
	result.FirstPass = first.Kind
	result.FirstPassErr = first.Err

	tokens := first.Tokens
	margins := NewMargins(result.Dimensions.Width, result.Dimensions.Height, c.opts.BaseMargin)

	switch first.Kind {
	case Detected:
	case DetectionFailed:
		if !c.opts.RetryOnFailure {
			return nil, errors.Wrapf(first.Err, "detect text in %s", imagePath)
		}
		log.WithError(first.Err).Warn("detection failed on first pass, retrying with padding")
		fallthrough
	case DetectedEmpty:
		log.Debug("nothing found on first pass, retrying with padding")

		paddedPath, dims, err := c.writePadded(img, imagePath)
		if err != nil {
			return nil, err
		}
		result.Padded = true
		result.PaddedPath = paddedPath
		result.Dimensions = dims

		second := c.detect(ctx, paddedPath)
		switch second.Kind {
		case DetectionFailed:
			return nil, errors.Wrapf(second.Err, "detect text in padded copy %s", paddedPath)
		case DetectedEmpty:
			log.Debug("no text found")
			result.Classification = NoText
			return result, nil
		}

		tokens = second.Tokens
		margins = NewMargins(dims.Width, dims.Height, c.opts.BaseMargin).Widen(c.opts.Padding)
	}

	verdict, hits := Evaluate(tokens, margins)
	result.Tokens = tokens
	result.Margins = margins
	result.Verdict = verdict
	result.Hits = hits

	if verdict.Flush() {
		result.Classification = PureText
	} else {
		result.Classification = TextWithContext
	}

	for _, h := range hits {
		log.WithFields(logrus.Fields{
			"edge":  h.Edge,
			"token": h.Token,
		}).Debug("border hit")
	}
	log.WithFields(logrus.Fields{
		"classification": result.Classification,
		"verdict":        verdict,
		"margins":        margins,
		"padded":         result.Padded,
	}).Debug("classified image")

	return result, nil
}

// writePadded writes a bordered copy of img into the padded directory and
// returns its path and dimensions.
func (c *Classifier) writePadded(img image.Image, imagePath string) (string, imaging.Dimensions, error) {
	if err := os.MkdirAll(c.opts.PaddedDir, 0755); err != nil {
		return "", imaging.Dimensions{}, errors.Wrap(err, "failed to create padded directory")
	}

	padded := imaging.AddUniformBorder(img, c.opts.Padding, c.opts.PadColor)
	paddedPath := PaddedPath(c.opts.PaddedDir, imagePath)
	if err := imaging.WriteRaster(paddedPath, padded); err != nil {
		return "", imaging.Dimensions{}, err
	}

	return paddedPath, imaging.DimensionsOf(padded), nil
}

// PaddedPath returns where the padded copy of imagePath is written: the same
// file name inside dir, with ".png" appended when the original format cannot
// be written.
func PaddedPath(dir, imagePath string) string {
	name := filepath.Base(imagePath)
	if _, err := imaging.EncoderFor(name); err != nil {
		name += ".png"
	}
	return filepath.Join(dir, name)
}
