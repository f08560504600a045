package config

import (
	"log/slog"
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
	fs.Bool(FlagName(KeyShowSecret), false, "")
	fs.Bool(FlagName(KeyURIParams), false, "")
	fs.Uint(FlagName(KeySkew), 1, "")
	fs.String(FlagName(KeyLogLevel), "warn", "")
	fs.Bool(FlagName(KeyNoColor), false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoadDefaults tests the built-in defaults
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.False(t, cfg.ShowSecret)
	assert.False(t, cfg.URIParams)
	assert.Equal(t, uint(1), cfg.Skew)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.False(t, cfg.NoColor)
}

// TestLoadFile tests reading every key from a yaml file
func TestLoadFile(t *testing.T) {
	path := writeFile(t, "totp.yaml", "show_secret: true\nuri_params: true\nskew: 3\nlog_level: debug\nno_color: true\n")

	cfg, err := Load(path, newFlags(t))
	require.NoError(t, err)

	assert.True(t, cfg.ShowSecret)
	assert.True(t, cfg.URIParams)
	assert.Equal(t, uint(3), cfg.Skew)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.NoColor)
}

// TestLoadFlagsOverrideFile tests that explicitly set flags win over the file
func TestLoadFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "totp.json", `{"skew": 3, "log_level": "debug"}`)

	cfg, err := Load(path, newFlags(t, "--skew=0", "--log-level=error", "--show-secret"))
	require.NoError(t, err)

	assert.Equal(t, uint(0), cfg.Skew)
	assert.Equal(t, slog.LevelError, cfg.LogLevel)
	assert.True(t, cfg.ShowSecret)
}

// TestLoadRejectsLargeSkewFlag tests the upper bound on skew given as a flag
func TestLoadRejectsLargeSkewFlag(t *testing.T) {
	_, err := Load("", newFlags(t, "--skew=4294967295"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skew must be between 0 and 10")
}

// TestLoadErrors tests rejected config files
func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.yaml") },
		},
		{
			name: "bad level",
			path: func(t *testing.T) string { return writeFile(t, "c.yaml", "log_level: loud\n") },
		},
		{
			name: "negative skew",
			path: func(t *testing.T) string { return writeFile(t, "c.yaml", "skew: -2\n") },
		},
		{
			name: "skew above maximum",
			path: func(t *testing.T) string { return writeFile(t, "c.yaml", "skew: 11\n") },
		},
		{
			name: "malformed yaml",
			path: func(t *testing.T) string { return writeFile(t, "c.yaml", "skew: [\n") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t), nil)
			require.Error(t, err)
		})
	}
}
