// Package config defines the daedalus configuration model and default values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < global config file < project config file <
// explicit config file < CLI flag overrides.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// WhitelistedVars lists every configuration variable name that may appear in
// config files. Variables not in this list are silently ignored during loading.
var WhitelistedVars = [9]string{
	"IVERILOG_PATH",
	"VVP_PATH",
	"GTKWAVE_PATH",
	"IVERILOG_FLAGS",
	"LISTEN_ADDR",
	"PROJECT_FILE",
	"VERBOSE",
	"WATCH_DEBOUNCE_MS",
	"SIM_TIMEOUT_S",
}

// Config holds every configuration field for the daedalus CLI.
type Config struct {
	// Explicit tool locations. Empty means resolve via PATH.
	IverilogPath string
	VVPPath      string
	GTKWavePath  string

	// Extra flags passed to iverilog when the project sets none.
	IverilogFlags string

	// Command bridge listen address.
	ListenAddr string

	// Project settings file used by compile, simulate, wave and watch.
	ProjectFile string

	Verbose bool

	WatchDebounceMs int

	// Seconds before a running simulation is killed; 0 disables the limit.
	SimTimeoutS int

	// CLI-only flags (not loaded from config files).
	ConfigFile string
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		ListenAddr:      "127.0.0.1:1420",
		ProjectFile:     "daedalus.json",
		WatchDebounceMs: 300,
	}
}

// ToolOverrides maps tool names to the explicit paths configured for them.
func (c *Config) ToolOverrides() map[string]string {
	return map[string]string{
		"iverilog": c.IverilogPath,
		"vvp":      c.VVPPath,
		"gtkwave":  c.GTKWavePath,
	}
}

// WatchDebounce returns the watch debounce interval.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMs) * time.Millisecond
}

// SimTimeout returns the simulation time limit, zero when disabled.
func (c *Config) SimTimeout() time.Duration {
	return time.Duration(c.SimTimeoutS) * time.Second
}

// GlobalConfigPath returns the per-user config file location, or "" when the
// user config directory cannot be determined.
func GlobalConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "daedalus", "config")
}

// ProjectConfigPath returns the project-local config file location.
func ProjectConfigPath() string {
	return filepath.Join(".daedalus", "config")
}
