package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/daedalus/internal/config"
)

// writeFile is a test helper that creates a temporary file with the given content.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestNewDefaultConfigValues(t *testing.T) {
	cfg := config.NewDefaultConfig()

	assert.Equal(t, "127.0.0.1:1420", cfg.ListenAddr)
	assert.Equal(t, "daedalus.json", cfg.ProjectFile)
	assert.Equal(t, 300*time.Millisecond, cfg.WatchDebounce())
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.IverilogPath)
}

func TestWhitelistedVarsHasNoDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, v := range config.WhitelistedVars {
		assert.False(t, seen[v], "duplicate whitelist entry %s", v)
		seen[v] = true
	}
}

func TestToolOverrides(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.VVPPath = "/opt/iverilog/bin/vvp"

	overrides := cfg.ToolOverrides()

	assert.Len(t, overrides, 3)
	assert.Equal(t, "/opt/iverilog/bin/vvp", overrides["vvp"])
	assert.Empty(t, overrides["iverilog"])
}

// ---------------------------------------------------------------------------
// LoadFile tests
// ---------------------------------------------------------------------------

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected map[string]string
	}{
		{
			name:     "basic key value",
			content:  "VVP_PATH=/usr/bin/vvp\nLISTEN_ADDR=:8080\n",
			expected: map[string]string{"VVP_PATH": "/usr/bin/vvp", "LISTEN_ADDR": ":8080"},
		},
		{
			name:     "comments and blank lines",
			content:  "# tools\n\nVERBOSE=true\n   # indented comment\n",
			expected: map[string]string{"VERBOSE": "true"},
		},
		{
			name:     "whitespace trimmed",
			content:  "  IVERILOG_FLAGS  =  -g2012 -Wall  \n",
			expected: map[string]string{"IVERILOG_FLAGS": "-g2012 -Wall"},
		},
		{
			name:     "unknown keys ignored",
			content:  "AI_CLI=claude\nPROJECT_FILE=cpu.json\n",
			expected: map[string]string{"PROJECT_FILE": "cpu.json"},
		},
		{
			name:     "lines without equals skipped",
			content:  "garbage\nVERBOSE=1\n",
			expected: map[string]string{"VERBOSE": "1"},
		},
		{
			name:     "value keeps later equals",
			content:  "IVERILOG_FLAGS=-DWIDTH=8\n",
			expected: map[string]string{"IVERILOG_FLAGS": "-DWIDTH=8"},
		},
		{
			name:     "export prefix and quotes",
			content:  "export GTKWAVE_PATH=\"/Applications/gtkwave/bin/gtkwave\"\nIVERILOG_FLAGS='-g2005'\n",
			expected: map[string]string{"GTKWAVE_PATH": "/Applications/gtkwave/bin/gtkwave", "IVERILOG_FLAGS": "-g2005"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config", tt.content)

			m, err := config.LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
		})
	}
}

func TestLoadFileReturnsErrorForMissingFile(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// ---------------------------------------------------------------------------
// LoadWithPrecedence tests
// ---------------------------------------------------------------------------

func TestLoadWithPrecedenceDefaultsOnly(t *testing.T) {
	cfg, err := config.LoadWithPrecedence("", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, config.NewDefaultConfig(), cfg)
}

func TestLoadWithPrecedenceFullChain(t *testing.T) {
	dir := t.TempDir()
	global := writeFile(t, dir, "global", "VVP_PATH=/global/vvp\nIVERILOG_PATH=/global/iverilog\nGTKWAVE_PATH=/global/gtkwave\nLISTEN_ADDR=:1\n")
	project := writeFile(t, dir, "project", "IVERILOG_PATH=/project/iverilog\nGTKWAVE_PATH=/project/gtkwave\nLISTEN_ADDR=:2\n")
	explicit := writeFile(t, dir, "explicit", "GTKWAVE_PATH=/explicit/gtkwave\nLISTEN_ADDR=:3\n")

	cfg, err := config.LoadWithPrecedence(global, project, explicit, map[string]string{"LISTEN_ADDR": ":4"})
	require.NoError(t, err)

	assert.Equal(t, "/global/vvp", cfg.VVPPath)
	assert.Equal(t, "/project/iverilog", cfg.IverilogPath)
	assert.Equal(t, "/explicit/gtkwave", cfg.GTKWavePath)
	assert.Equal(t, ":4", cfg.ListenAddr)
	assert.Equal(t, explicit, cfg.ConfigFile)
}

func TestLoadWithPrecedenceMissingOptionalFilesAreNotErrors(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.LoadWithPrecedence(filepath.Join(dir, "g"), filepath.Join(dir, "p"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "daedalus.json", cfg.ProjectFile)
}

func TestLoadWithPrecedenceMissingExplicitIsError(t *testing.T) {
	_, err := config.LoadWithPrecedence("", "", filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "explicit config")
}

func TestLoadWithPrecedenceUnreadableGlobalIsError(t *testing.T) {
	// A directory cannot be scanned as a config file.
	dir := t.TempDir()

	_, err := config.LoadWithPrecedence(dir, "", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "global config")
}

// ---------------------------------------------------------------------------
// ApplyMapToConfig tests
// ---------------------------------------------------------------------------

func TestApplyMapToConfigBooleanVariations(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := config.NewDefaultConfig()
			config.ApplyMapToConfig(cfg, map[string]string{"VERBOSE": tt.value})
			assert.Equal(t, tt.expected, cfg.Verbose)
		})
	}
}

func TestApplyMapToConfigIgnoresInvalidDebounce(t *testing.T) {
	cfg := config.NewDefaultConfig()

	config.ApplyMapToConfig(cfg, map[string]string{"WATCH_DEBOUNCE_MS": "soon"})
	assert.Equal(t, 300, cfg.WatchDebounceMs)

	config.ApplyMapToConfig(cfg, map[string]string{"WATCH_DEBOUNCE_MS": "-5"})
	assert.Equal(t, 300, cfg.WatchDebounceMs)

	config.ApplyMapToConfig(cfg, map[string]string{"WATCH_DEBOUNCE_MS": "50"})
	assert.Equal(t, 50, cfg.WatchDebounceMs)
}

func TestApplyMapToConfigSimTimeout(t *testing.T) {
	cfg := config.NewDefaultConfig()
	assert.Zero(t, cfg.SimTimeout())

	config.ApplyMapToConfig(cfg, map[string]string{"SIM_TIMEOUT_S": "30"})
	assert.Equal(t, 30*time.Second, cfg.SimTimeout())

	config.ApplyMapToConfig(cfg, map[string]string{"SIM_TIMEOUT_S": "x"})
	assert.Equal(t, 30, cfg.SimTimeoutS)
}
