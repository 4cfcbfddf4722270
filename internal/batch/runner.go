// Package batch classifies every image in a directory and reports the
// results, both as a human-readable narrative and as typed records.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/border-text-filter/internal/border"
	"github.com/ironsheep/border-text-filter/internal/logging"
)

// Classifier classifies one image.
type Classifier interface {
	Classify(ctx context.Context, imagePath string) (*border.Result, error)
}

// Runner walks an input directory and classifies each file in it, one at a
// time.
type Runner struct {
	classifier Classifier
	out        io.Writer
	verbose    bool
	log        *logrus.Entry
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where the narrative is written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithVerbose enables per-edge hit lines in the narrative.
func WithVerbose(verbose bool) Option {
	return func(r *Runner) { r.verbose = verbose }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(r *Runner) { r.log = logger.WithField("component", "batch") }
}

// NewRunner creates a Runner around a classifier.
func NewRunner(classifier Classifier, opts ...Option) *Runner {
	r := &Runner{
		classifier: classifier,
		out:        os.Stdout,
		log:        logging.Discard().WithField("component", "batch"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run classifies every regular file in inputDir in name order. A failure on
// one image is recorded in the report and does not stop the run. Run returns
// an error only when the directory cannot be listed or ctx is cancelled; in
// the latter case the partial report is returned too.
func (r *Runner) Run(ctx context.Context, inputDir string) (*Report, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list input directory %s", inputDir)
	}

	report := NewReport(inputDir)
	r.log.WithFields(logrus.Fields{
		"run_id":    report.RunID,
		"input_dir": inputDir,
		"entries":   len(entries),
	}).Info("starting batch")

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			report.finish()
			return report, err
		}
		if !entry.Type().IsRegular() {
			r.log.WithField("entry", entry.Name()).Debug("skipping non-regular entry")
			continue
		}

		report.add(r.processFile(ctx, inputDir, entry.Name()))
	}

	report.finish()
	r.log.WithFields(logrus.Fields{
		"run_id":            report.RunID,
		"total":             report.Summary.Total,
		"pure_text":         report.Summary.PureText,
		"text_with_context": report.Summary.TextWithContext,
		"no_text":           report.Summary.NoText,
		"failed":            report.Summary.Failed,
	}).Info("batch complete")

	return report, nil
}

func (r *Runner) processFile(ctx context.Context, dir, name string) ImageResult {
	path := filepath.Join(dir, name)
	fmt.Fprintln(r.out, "Processing file", name)

	res, err := r.classifier.Classify(ctx, path)
	if err != nil {
		r.log.WithError(err).WithField("image", path).Error("failed to classify image")
		fmt.Fprintf(r.out, "Could not process this image: %v\n\n", err)
		return ImageResult{Name: name, Error: err.Error()}
	}

	if res.Padded {
		fmt.Fprintln(r.out, "Nothing found on first pass, might be a self-contained line of text. "+
			"Trying more aggressive extraction...")
	}

	switch res.Classification {
	case border.NoText:
		fmt.Fprintln(r.out, "I didn't find any text in this image.")
	case border.PureText:
		r.printHits(res.Hits)
		fmt.Fprintf(r.out, "I found text in this image: '%s'\n", res.Text())
		fmt.Fprintln(r.out, "It looks like it's right up against the edges, so it's probably just a word "+
			"or just a line of text and nothing else. Filter out this segment.")
	case border.TextWithContext:
		r.printHits(res.Hits)
		fmt.Fprintln(r.out, "I found text in the image, but it's in the middle, probably not just a word, but "+
			"something more.")
	}
	fmt.Fprintln(r.out)

	return ImageResult{Name: name, Result: res}
}

var hitLabels = map[border.Edge]string{
	border.EdgeLeft:   "Left",
	border.EdgeRight:  "Right",
	border.EdgeTop:    "Top",
	border.EdgeBottom: "Bottom",
}

func (r *Runner) printHits(hits []border.Hit) {
	if !r.verbose {
		return
	}
	for _, h := range hits {
		fmt.Fprintln(r.out, hitLabels[h.Edge], "hit", h.Token)
	}
}
