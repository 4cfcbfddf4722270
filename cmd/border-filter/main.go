package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/ironsheep/border-text-filter/internal/batch"
	"github.com/ironsheep/border-text-filter/internal/border"
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
var newDetector = func(opts ocr.Options) ocr.WordDetector {
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

	// Stop between images on Ctrl-C.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.VersionPrinter = printVersion
	if err := newCommand(cfg).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
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
		Name:    "border-filter",
		Usage:   "find cropped images that are nothing but text running into the borders",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "input-dir",
				Usage: "directory of images to classify",
				Value: cfg.InputDir,
			},
			&cli.StringFlag{
				Name:  "padded-dir",
				Usage: "directory receiving padded copies for the retry",
				Value: cfg.PaddedDir,
			},
			&cli.IntFlag{
				Name:  "margin",
				Usage: "inset in pixels within which text touches a border",
				Value: cfg.Margin,
			},
			&cli.IntFlag{
				Name:  "padding",
				Usage: "border width in pixels added for the retry",
				Value: cfg.Padding,
			},
			&cli.StringFlag{
				Name:  "pad-color",
				Usage: "colour of the added border as hex",
				Value: cfg.PadColor,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "print every border hit",
				Value: cfg.Verbose,
			},
			&cli.BoolFlag{
				Name:  "retry-on-failure",
				Usage: "retry on a padded copy when detection fails outright",
				Value: cfg.RetryOnFailure,
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "write a YAML report of all results to this file",
				Value: cfg.Report,
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
		Action: filterImages,
	}
}

func filterImages(ctx context.Context, cmd *cli.Command) error {
	logger, err := logging.New(cmd.String("log-level"), cmd.Root().ErrWriter)
	if err != nil {
		return cli.Exit(err, 2)
	}

	padColor, err := imaging.ParseColor(cmd.String("pad-color"))
	if err != nil {
		return cli.Exit(err, 2)
	}
	if cmd.Int("margin") < 1 {
		return cli.Exit("--margin must be at least 1", 2)
	}
	if cmd.Int("padding") < 1 {
		return cli.Exit("--padding must be at least 1", 2)
	}

	detector := newDetector(ocr.Options{
		Language:       cmd.String("lang"),
		TessdataPrefix: cmd.String("tessdata"),
	})

	opts := border.Options{
		BaseMargin:     cmd.Int("margin"),
		Padding:        cmd.Int("padding"),
		PadColor:       padColor,
		PaddedDir:      cmd.String("padded-dir"),
		RetryOnFailure: cmd.Bool("retry-on-failure"),
	}
	classifier := border.New(detector, opts, logger)

	runner := batch.NewRunner(classifier,
		batch.WithOutput(cmd.Root().Writer),
		batch.WithVerbose(cmd.Bool("verbose")),
		batch.WithLogger(logger),
	)

	report, runErr := runner.Run(ctx, cmd.String("input-dir"))
	if report != nil && cmd.String("report") != "" {
		if err := report.WriteYAML(cmd.String("report")); err != nil {
			return cli.Exit(err, 1)
		}
		logger.WithField("path", cmd.String("report")).Info("wrote report")
	}
	if runErr != nil {
		return cli.Exit(runErr, 1)
	}
	return nil
}
