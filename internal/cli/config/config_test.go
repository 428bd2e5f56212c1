package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("log-level", "", "")
	fs.String("log-format", "", "")
	fs.StringP("output", "o", "", "")
	fs.String("optional-wrapper", "", "")
	fs.String("out-dir", "", "")
	fs.IntP("jobs", "j", 0, "")
	require.NoError(t, fs.Parse(args))

	return fs
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	loaded, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), loaded.Config)
	assert.Empty(t, loaded.File)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, dir, ".context-variants.yaml", `
output: yaml
optional_wrapper: "Option<%s>"
out_dir: from-file
jobs: 2
`)

	t.Run("file over defaults", func(t *testing.T) {
		loaded, err := Load("", newFlags(t))
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, ".context-variants.yaml"), loaded.File)
		assert.Equal(t, OutputYAML, loaded.Config.Output)
		assert.Equal(t, "Option<%s>", loaded.Config.OptionalWrapper)
		assert.Equal(t, "from-file", loaded.Config.OutDir)
		assert.Equal(t, 2, loaded.Config.Jobs)
		assert.Equal(t, DefaultLogLevel, loaded.Config.LogLevel)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("CONTEXT_VARIANTS_OUT_DIR", "from-env")
		t.Setenv("CONTEXT_VARIANTS_LOG_LEVEL", "debug")

		loaded, err := Load("", newFlags(t))
		require.NoError(t, err)

		assert.Equal(t, "from-env", loaded.Config.OutDir)
		assert.Equal(t, "debug", loaded.Config.LogLevel)
		assert.Equal(t, OutputYAML, loaded.Config.Output)
	})

	t.Run("changed flags over env", func(t *testing.T) {
		t.Setenv("CONTEXT_VARIANTS_OUT_DIR", "from-env")

		loaded, err := Load("", newFlags(t, "--out-dir", "from-flag", "-o", "json", "-j", "8"))
		require.NoError(t, err)

		assert.Equal(t, "from-flag", loaded.Config.OutDir)
		assert.Equal(t, OutputJSON, loaded.Config.Output)
		assert.Equal(t, 8, loaded.Config.Jobs)
		// unset flags keep the lower layers
		assert.Equal(t, "Option<%s>", loaded.Config.OptionalWrapper)
	})
}

func TestLoadExplicitConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	path := writeFile(t, t.TempDir(), "custom.yaml", "log_format: json\n")

	loaded, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, loaded.File)
	assert.Equal(t, LogFormatJSON, loaded.Config.LogFormat)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		errSubstr string
	}{
		{name: "bad yaml", file: "output: [", errSubstr: "error reading config file"},
		{name: "bad output", file: "output: xml", errSubstr: `output must be table, yaml or json, got "xml"`},
		{name: "bad log level", file: "log_level: loud", errSubstr: "log_level"},
		{name: "bad log format", file: "log_format: logfmt", errSubstr: "log_format must be console or json"},
		{name: "bad wrapper", file: "optional_wrapper: Maybe", errSubstr: "optional_wrapper"},
		{name: "bad jobs", file: "jobs: 0", errSubstr: "jobs must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())

			path := writeFile(t, t.TempDir(), "cfg.yaml", tt.file)

			_, err := Load(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	cfg := Default()
	cfg.LogFormat = LogFormatJSON
	cfg.LogLevel = "info"

	log := cfg.NewLogger(&buf)
	log.Debug().Msg("hidden")
	log.Info().Str("entity", "User").Msg("resolved")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"entity":"User"`)
	assert.Contains(t, out, `"message":"resolved"`)
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, Default(), FromContext(ctx))

	cfg := Default()
	cfg.Jobs = 1
	ctx = WithConfig(ctx, cfg)
	assert.Same(t, cfg, FromContext(ctx))

	var buf bytes.Buffer
	ctx = WithLogger(ctx, Default().NewLogger(&buf))
	l := Logger(ctx)
	l.Error().Msg("boom")
	assert.Contains(t, buf.String(), "boom")
}
