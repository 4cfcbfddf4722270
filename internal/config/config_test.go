package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"INPUT_DIR", "PADDED_DIR", "REPORT", "MARGIN", "PADDING", "PAD_COLOR",
		"RETRY_ON_FAILURE", "VERBOSE", "BOX_COLOR", "BOX_THICKNESS", "LANG",
		"TESSDATA_PREFIX", "LOG_LEVEL",
	} {
		t.Setenv(Prefix+key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "examples", cfg.InputDir)
	assert.Equal(t, "padded", cfg.PaddedDir)
	assert.Equal(t, 2, cfg.Margin)
	assert.Equal(t, 10, cfg.Padding)
	assert.False(t, cfg.RetryOnFailure)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("BORDERTEXT_INPUT_DIR", "crops")
	t.Setenv("BORDERTEXT_PADDED_DIR", "/tmp/pad")
	t.Setenv("BORDERTEXT_MARGIN", "3")
	t.Setenv("BORDERTEXT_PADDING", " 12 ")
	t.Setenv("BORDERTEXT_PAD_COLOR", "000000")
	t.Setenv("BORDERTEXT_RETRY_ON_FAILURE", "true")
	t.Setenv("BORDERTEXT_VERBOSE", "1")
	t.Setenv("BORDERTEXT_BOX_THICKNESS", "4")
	t.Setenv("BORDERTEXT_LANG", "deu")
	t.Setenv("BORDERTEXT_LOG_LEVEL", "debug")
	t.Setenv("BORDERTEXT_REPORT", "report.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "crops", cfg.InputDir)
	assert.Equal(t, "/tmp/pad", cfg.PaddedDir)
	assert.Equal(t, 3, cfg.Margin)
	assert.Equal(t, 12, cfg.Padding)
	assert.Equal(t, "000000", cfg.PadColor)
	assert.True(t, cfg.RetryOnFailure)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 4, cfg.BoxThickness)
	assert.Equal(t, "deu", cfg.Language)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "report.yaml", cfg.Report)
}

func TestLoad_MalformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("BORDERTEXT_MARGIN", "two")
	t.Setenv("BORDERTEXT_VERBOSE", "sometimes")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BORDERTEXT_MARGIN is not an integer")
	assert.Contains(t, err.Error(), "BORDERTEXT_VERBOSE is not a boolean")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero margin", func(c *Config) { c.Margin = 0 }, "MARGIN"},
		{"negative margin", func(c *Config) { c.Margin = -1 }, "MARGIN"},
		{"zero padding", func(c *Config) { c.Padding = 0 }, "PADDING"},
		{"zero thickness", func(c *Config) { c.BoxThickness = 0 }, "BOX_THICKNESS"},
		{"bad pad color", func(c *Config) { c.PadColor = "white" }, "PAD_COLOR"},
		{"bad box color", func(c *Config) { c.BoxColor = "#zzzzzz" }, "BOX_COLOR"},
		{"empty input dir", func(c *Config) { c.InputDir = "" }, "INPUT_DIR"},
		{"empty padded dir", func(c *Config) { c.PaddedDir = "" }, "PADDED_DIR"},
		{"empty language", func(c *Config) { c.Language = "" }, "LANG"},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }, "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Run("missing file is fine", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv())
	})

	t.Run("file values are picked up", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, DotEnvFile), []byte("BORDERTEXT_LANG=fra\n"), 0644))
		// Load only fills unset variables; clearEnv left it empty, so unset it.
		require.NoError(t, os.Unsetenv("BORDERTEXT_LANG"))

		require.NoError(t, LoadDotEnv())
		t.Cleanup(func() { _ = os.Unsetenv("BORDERTEXT_LANG") })

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "fra", cfg.Language)
	})
}
