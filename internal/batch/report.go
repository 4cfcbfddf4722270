package batch

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/border-text-filter/internal/border"
)

// ImageResult is the record for one file. Exactly one of Result and Error is
// set.
type ImageResult struct {
	Name   string         `json:"name" yaml:"name"`
	Result *border.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the image could not be classified.
func (r ImageResult) Failed() bool {
	return r.Error != ""
}

// Summary counts images per classification.
type Summary struct {
	Total           int `json:"total" yaml:"total"`
	PureText        int `json:"pure_text" yaml:"pure_text"`
	TextWithContext int `json:"text_with_context" yaml:"text_with_context"`
	NoText          int `json:"no_text" yaml:"no_text"`
	Failed          int `json:"failed" yaml:"failed"`
}

// Report collects the results of one run.
type Report struct {
	RunID      string        `json:"run_id" yaml:"run_id"`
	InputDir   string        `json:"input_dir" yaml:"input_dir"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time     `json:"finished_at" yaml:"finished_at"`
	Summary    Summary       `json:"summary" yaml:"summary"`
	Images     []ImageResult `json:"images" yaml:"images"`
}

// NewReport starts an empty report with a fresh run identifier.
func NewReport(inputDir string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		InputDir:  inputDir,
		StartedAt: time.Now().UTC(),
		Images:    []ImageResult{},
	}
}

func (r *Report) add(res ImageResult) {
	r.Images = append(r.Images, res)
	r.Summary.Total++

	if res.Failed() {
		r.Summary.Failed++
		return
	}
	switch res.Result.Classification {
	case border.PureText:
		r.Summary.PureText++
	case border.TextWithContext:
		r.Summary.TextWithContext++
	case border.NoText:
		r.Summary.NoText++
	}
}

func (r *Report) finish() {
	r.FinishedAt = time.Now().UTC()
}

// PureText returns the names of images classified as pure text, the ones a
// caller would filter out.
func (r *Report) PureText() []string {
	var names []string
	for _, img := range r.Images {
		if img.Result != nil && img.Result.Classification == border.PureText {
			names = append(names, img.Name)
		}
	}
	return names
}

// EncodeYAML writes the report as YAML.
func (r *Report) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "failed to encode report")
	}
	return enc.Close()
}

// WriteYAML writes the report to path, replacing any existing file.
func (r *Report) WriteYAML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create report %s", path)
	}
	if err := r.EncodeYAML(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "failed to close report %s", path)
}
