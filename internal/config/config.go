// Package config loads tool settings from BORDERTEXT_* environment variables.
//
// Command-line flags take their defaults from the loaded Config, so the
// environment (or a .env file) sets the baseline and flags override it.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/border-text-filter/internal/imaging"
)

// Prefix is prepended to every variable name.
const Prefix = "BORDERTEXT_"

// DotEnvFile is loaded by LoadDotEnv when present.
const DotEnvFile = ".env"

// Config holds settings shared by both commands.
type Config struct {
	// Batch traversal
	InputDir  string
	PaddedDir string
	Report    string

	// Border test
	Margin         int
	Padding        int
	PadColor       string
	RetryOnFailure bool
	Verbose        bool

	// Annotation
	BoxColor     string
	BoxThickness int

	// Tesseract
	Language       string
	TessdataPrefix string

	LogLevel string
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		InputDir:     "examples",
		PaddedDir:    "padded",
		Margin:       2,
		Padding:      10,
		PadColor:     "#FFFFFF",
		BoxColor:     "#0000FF",
		BoxThickness: 2,
		Language:     "eng",
		LogLevel:     "info",
	}
}

// LoadDotEnv loads DotEnvFile into the environment. A missing file is not an
// error; variables already set are not overridden.
func LoadDotEnv() error {
	if err := godotenv.Load(DotEnvFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, "failed to load %s", DotEnvFile)
	}
	return nil
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	def := Default()
	var errs []string

	cfg := &Config{
		InputDir:       getEnvOrDefault("INPUT_DIR", def.InputDir),
		PaddedDir:      getEnvOrDefault("PADDED_DIR", def.PaddedDir),
		Report:         getEnvOrDefault("REPORT", def.Report),
		Margin:         getEnvAsIntOrDefault("MARGIN", def.Margin, &errs),
		Padding:        getEnvAsIntOrDefault("PADDING", def.Padding, &errs),
		PadColor:       getEnvOrDefault("PAD_COLOR", def.PadColor),
		RetryOnFailure: getEnvAsBoolOrDefault("RETRY_ON_FAILURE", def.RetryOnFailure, &errs),
		Verbose:        getEnvAsBoolOrDefault("VERBOSE", def.Verbose, &errs),
		BoxColor:       getEnvOrDefault("BOX_COLOR", def.BoxColor),
		BoxThickness:   getEnvAsIntOrDefault("BOX_THICKNESS", def.BoxThickness, &errs),
		Language:       getEnvOrDefault("LANG", def.Language),
		TessdataPrefix: getEnvOrDefault("TESSDATA_PREFIX", def.TessdataPrefix),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", def.LogLevel),
	}
	if len(errs) > 0 {
		return nil, errors.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return errors.New(Prefix + "INPUT_DIR must not be empty")
	}
	if c.PaddedDir == "" {
		return errors.New(Prefix + "PADDED_DIR must not be empty")
	}
	if c.Margin < 1 {
		return errors.Errorf("%sMARGIN must be at least 1, got %d", Prefix, c.Margin)
	}
	if c.Padding < 1 {
		return errors.Errorf("%sPADDING must be at least 1, got %d", Prefix, c.Padding)
	}
	if c.BoxThickness < 1 {
		return errors.Errorf("%sBOX_THICKNESS must be at least 1, got %d", Prefix, c.BoxThickness)
	}
	if _, err := imaging.ParseColor(c.PadColor); err != nil {
		return errors.Wrap(err, Prefix+"PAD_COLOR")
	}
	if _, err := imaging.ParseColor(c.BoxColor); err != nil {
		return errors.Wrap(err, Prefix+"BOX_COLOR")
	}
	if c.Language == "" {
		return errors.New(Prefix + "LANG must not be empty")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, Prefix+"LOG_LEVEL")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(Prefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int, errs *[]string) int {
	raw := os.Getenv(Prefix + key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		*errs = append(*errs, Prefix+key+" is not an integer: "+raw)
		return defaultValue
	}
	return value
}

func getEnvAsBoolOrDefault(key string, defaultValue bool, errs *[]string) bool {
	raw := os.Getenv(Prefix + key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		*errs = append(*errs, Prefix+key+" is not a boolean: "+raw)
		return defaultValue
	}
	return value
}
