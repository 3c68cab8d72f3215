package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "keikaku.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, t.TempDir(), `output: json
log_level: debug
max_depth: 64
repl:
  prompt: "kk> "
  history_file: /tmp/kk_history
`)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 64, cfg.MaxDepth)
	assert.Equal(t, "kk> ", cfg.REPL.Prompt)
	assert.Equal(t, "/tmp/kk_history", cfg.REPL.HistoryFile)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

func TestLoadConfig_FindsFileUpward(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	writeConfig(t, root, "max_depth: 7\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxDepth)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, t.TempDir(), "max_depth: 10\nrepl:\n  prompt: from_file\n")
	t.Setenv("KEIKAKU_MAX_DEPTH", "20")
	t.Setenv("KEIKAKU_REPL__PROMPT", "from_env")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.MaxDepth, "env var should override config file")
	assert.Equal(t, "from_env", cfg.REPL.Prompt)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, t.TempDir(), "max_depth: 10\noutput: yaml\n")
	t.Setenv("KEIKAKU_MAX_DEPTH", "20")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-depth", 0, "max depth")
	flags.String("output", "", "output format")
	flags.String("history-file", "", "history file")
	require.NoError(t, flags.Set("max-depth", "30"))
	require.NoError(t, flags.Set("history-file", "hist"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.MaxDepth, "flag value should override config file and env var")
	assert.Equal(t, "yaml", cfg.OutputFormat, "unset flag should not override the file")
	assert.Equal(t, "hist", cfg.REPL.HistoryFile)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{name: "zero depth", content: "max_depth: 0\n", errSubstr: "max_depth must be positive"},
		{name: "bad output", content: "output: html\n", errSubstr: "unknown output format"},
		{name: "bad level", content: "log_level: loud\n", errSubstr: "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			_, err := LoadConfig(writeConfig(t, t.TempDir(), tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Verbose = true

	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)
	logger.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := slog.New(slog.DiscardHandler)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))

	cfg := Default()
	cfg.MaxDepth = 5
	assert.Same(t, cfg, FromContext(WithConfig(context.Background(), cfg)))
}
