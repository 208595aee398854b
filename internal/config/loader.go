package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// whitelistSet is a precomputed lookup table for fast whitelist membership checks.
var whitelistSet map[string]bool

func init() {
	whitelistSet = make(map[string]bool, len(WhitelistedVars))
	for _, v := range WhitelistedVars {
		whitelistSet[v] = true
	}
}

// LoadFile parses a KEY=VALUE config file at the given path.
//
// Lines are processed according to these rules:
//   - Empty lines and lines starting with # are skipped.
//   - An optional leading "export " is ignored, so the file can be sourced.
//   - Lines without an = sign are skipped.
//   - Keys and values are trimmed; one pair of matching quotes around the
//     value is removed.
//   - Keys not present in WhitelistedVars are silently ignored.
func LoadFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	result := make(map[string]string)
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if !whitelistSet[key] {
			continue
		}
		result[key] = unquote(strings.TrimSpace(value))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return result, nil
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// LoadWithPrecedence assembles a Config by merging sources in order of
// increasing priority:
//
//  1. Built-in defaults
//  2. Global config file (globalPath)
//  3. Project config file (projectPath)
//  4. Explicit config file (explicitPath)
//  5. CLI overrides (cliOverrides map)
//
// Empty paths are skipped. Missing global and project files are tolerated;
// an explicit file must exist.
func LoadWithPrecedence(globalPath, projectPath, explicitPath string, cliOverrides map[string]string) (*Config, error) {
	cfg := NewDefaultConfig()

	optional := []struct {
		label string
		path  string
	}{
		{"global config", globalPath},
		{"project config", projectPath},
	}
	for _, src := range optional {
		if src.path == "" {
			continue
		}
		m, err := LoadFile(src.path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.label, err)
		}
		ApplyMapToConfig(cfg, m)
	}

	if explicitPath != "" {
		m, err := LoadFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("explicit config: %w", err)
		}
		ApplyMapToConfig(cfg, m)
	}

	ApplyMapToConfig(cfg, cliOverrides)
	cfg.ConfigFile = explicitPath

	return cfg, nil
}

// Load resolves configuration from the standard global and project locations
// plus an optional explicit file and CLI overrides.
func Load(explicitPath string, cliOverrides map[string]string) (*Config, error) {
	return LoadWithPrecedence(GlobalConfigPath(), ProjectConfigPath(), explicitPath, cliOverrides)
}

// ApplyMapToConfig sets fields on cfg from the key-value pairs in m.
// Keys must use the WhitelistedVars naming convention (e.g., "VVP_PATH").
// Unknown keys are silently ignored. Integer fields that fail to parse
// or are negative are silently ignored (the previous value is preserved).
func ApplyMapToConfig(cfg *Config, m map[string]string) {
	for key, value := range m {
		switch key {
		case "IVERILOG_PATH":
			cfg.IverilogPath = value
		case "VVP_PATH":
			cfg.VVPPath = value
		case "GTKWAVE_PATH":
			cfg.GTKWavePath = value
		case "IVERILOG_FLAGS":
			cfg.IverilogFlags = value
		case "LISTEN_ADDR":
			cfg.ListenAddr = value
		case "PROJECT_FILE":
			cfg.ProjectFile = value
		case "VERBOSE":
			cfg.Verbose = parseBool(value)
		case "SIM_TIMEOUT_S":
			if v, err := strconv.Atoi(value); err == nil && v >= 0 {
				cfg.SimTimeoutS = v
			}
		case "WATCH_DEBOUNCE_MS":
			if v, err := strconv.Atoi(value); err == nil && v >= 0 {
				cfg.WatchDebounceMs = v
			}
		}
	}
}

// parseBool interprets common boolean representations.
// "true", "1", "yes" (case-insensitive) return true; everything else returns false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
