package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/border-text-filter/internal/config"
	"github.com/ironsheep/border-text-filter/internal/imaging"
	"github.com/ironsheep/border-text-filter/internal/ocr"
)

// fakeDetector answers by file name. Files it does not know yield nothing.
type fakeDetector struct {
	rows map[string][]ocr.WordEntry
}

func (f *fakeDetector) DetectWords(_ context.Context, imagePath string) ([]ocr.WordEntry, error) {
	return f.rows[filepath.Base(imagePath)], nil
}

func useDetector(t *testing.T, f *fakeDetector) {
	t.Helper()
	prev := newDetector
	newDetector = func(ocr.Options) ocr.WordDetector { return f }
	t.Cleanup(func() { newDetector = prev })
}

func writeImage(t *testing.T, dir, name string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	require.NoError(t, imaging.WriteRaster(filepath.Join(dir, name), img))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newCommand(config.Default())
	cmd.Writer = &out
	cmd.ErrWriter = &errOut
	cmd.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	err := cmd.Run(context.Background(), append([]string{"border-filter"}, args...))
	return out.String(), err
}

func TestFilter_ClassifiesDirectory(t *testing.T) {
	root := t.TempDir()
	inputDir := filepath.Join(root, "examples")
	paddedDir := filepath.Join(root, "padded")
	reportPath := filepath.Join(root, "report.yaml")
	require.NoError(t, os.Mkdir(inputDir, 0755))

	writeImage(t, inputDir, "hi.png", 12, 10)
	writeImage(t, inputDir, "word.png", 12, 10)
	writeImage(t, inputDir, "blank.png", 12, 10)
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("not an image"), 0644))

	useDetector(t, &fakeDetector{rows: map[string][]ocr.WordEntry{
		"hi.png":   {{Level: ocr.LevelWord, Text: "Hi", Left: 0, Top: 1, Width: 10, Height: 8, Confidence: 90}},
		"word.png": {{Level: ocr.LevelWord, Text: "Word", Left: 1, Top: 1, Width: 10, Height: 8, Confidence: 90}},
	}})

	out, err := run(t,
		"--input-dir", inputDir,
		"--padded-dir", paddedDir,
		"--report", reportPath,
		"--verbose",
	)
	require.NoError(t, err, "a bad file must not fail the run")

	assert.Contains(t, out, "Processing file blank.png\n"+
		"Nothing found on first pass, might be a self-contained line of text. Trying more aggressive extraction...\n"+
		"I didn't find any text in this image.\n")
	assert.Contains(t, out, "Left hit \"Hi\" (l=0 t=1 r=10 b=9)\n")
	assert.Contains(t, out, "I found text in this image: 'Word'\n")
	assert.Contains(t, out, "Processing file notes.txt\nCould not process this image:")

	_, err = os.Stat(filepath.Join(paddedDir, "blank.png"))
	assert.NoError(t, err, "padded copy written")

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report struct {
		Summary struct {
			Total           int `yaml:"total"`
			PureText        int `yaml:"pure_text"`
			TextWithContext int `yaml:"text_with_context"`
			NoText          int `yaml:"no_text"`
			Failed          int `yaml:"failed"`
		} `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(data, &report))
	assert.Equal(t, 4, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.PureText)
	assert.Equal(t, 1, report.Summary.TextWithContext)
	assert.Equal(t, 1, report.Summary.NoText)
	assert.Equal(t, 1, report.Summary.Failed)
}

func TestFilter_MissingInputDir(t *testing.T) {
	useDetector(t, &fakeDetector{})

	_, err := run(t, "--input-dir", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}

func TestFilter_InvalidFlags(t *testing.T) {
	useDetector(t, &fakeDetector{})
	dir := t.TempDir()

	tests := [][]string{
		{"--input-dir", dir, "--margin", "0"},
		{"--input-dir", dir, "--padding", "0"},
		{"--input-dir", dir, "--pad-color", "nope"},
		{"--input-dir", dir, "--log-level", "chatty"},
	}
	for _, args := range tests {
		_, err := run(t, args...)
		var exitErr cli.ExitCoder
		if assert.ErrorAs(t, err, &exitErr, "args %v", args) {
			assert.Equal(t, 2, exitErr.ExitCode())
		}
	}
}
