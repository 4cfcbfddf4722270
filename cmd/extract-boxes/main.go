package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ironsheep/border-text-filter/internal/boxes"
	"github.com/ironsheep/border-text-filter/internal/config"
	"github.com/ironsheep/border-text-filter/internal/imaging"
	"github.com/ironsheep/border-text-filter/internal/logging"
	"github.com/ironsheep/border-text-filter/internal/ocr"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// newDetector is replaced in tests.
var newDetector = func(opts ocr.Options) ocr.CharDetector {
	return ocr.NewTesseract(opts)
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cli.VersionPrinter = printVersion
	if err := newCommand(cfg).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printVersion(cmd *cli.Command) {
	w := cmd.Root().Writer
	fmt.Fprintf(w, "%s %s\n", cmd.Name, Version)
	fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Tesseract:  %s\n", ocr.TesseractVersion())
}

func newCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "extract-boxes",
		Usage:     "extract bounding boxes of all characters",
		ArgsUsage: "input_image",
		Version:   Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "optional file to output with bounding boxes annotated",
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "outline colour as hex",
				Value: cfg.BoxColor,
			},
			&cli.IntFlag{
				Name:  "thickness",
				Usage: "outline thickness in pixels",
				Value: cfg.BoxThickness,
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Tesseract language code",
				Value: cfg.Language,
			},
			&cli.StringFlag{
				Name:  "tessdata",
				Usage: "directory holding Tesseract traineddata files",
				Value: cfg.TessdataPrefix,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "diagnostic log level (debug, info, warn, error)",
				Value: cfg.LogLevel,
			},
		},
		Action: extractBoxes,
	}
}

func extractBoxes(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return cli.Exit("expected exactly one input_image argument", 2)
	}
	inputPath := cmd.Args().First()
	outputPath := cmd.String("output")

	logger, err := logging.New(cmd.String("log-level"), cmd.Root().ErrWriter)
	if err != nil {
		return cli.Exit(err, 2)
	}

	boxColor, err := imaging.ParseColor(cmd.String("color"))
	if err != nil {
		return cli.Exit(err, 2)
	}
	if cmd.Int("thickness") < 1 {
		return cli.Exit("--thickness must be at least 1", 2)
	}
	stroke := imaging.Stroke{Color: boxColor, Thickness: cmd.Int("thickness")}

	detector := newDetector(ocr.Options{
		Language:       cmd.String("lang"),
		TessdataPrefix: cmd.String("tessdata"),
	})
	extractor := boxes.NewExtractor(detector, stroke, logger)

	glyphs, err := extractor.ExtractBoxes(ctx, inputPath)
	if err != nil {
		return cli.Exit(err, 1)
	}

	out := cmd.Root().Writer
	if len(glyphs) == 0 {
		fmt.Fprintln(out, "No boxes found")
		return nil
	}

	fmt.Fprintln(out, "Boxes found:")
	for _, g := range glyphs {
		fmt.Fprintln(out, g)
	}

	if outputPath != "" {
		if err := extractor.Annotate(inputPath, glyphs, outputPath); err != nil {
			return cli.Exit(err, 1)
		}
		fmt.Fprintln(out, "Boxes printed on image at", outputPath)
	}

	return nil
}
