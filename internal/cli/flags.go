// Package cli provides flag binding, validation, and help text for the
// daedalus CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/daedalus/internal/config"
)

// BindFlags registers the persistent flags shared by every subcommand.
// The flags write directly into cfg; BuildOverrides later turns the ones the
// user actually set into config overrides.
func BindFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.PersistentFlags()

	// Tool locations
	flags.StringVar(&cfg.IverilogPath, "iverilog", "", "Path to the iverilog executable")
	flags.StringVar(&cfg.VVPPath, "vvp", "", "Path to the vvp executable")
	flags.StringVar(&cfg.GTKWavePath, "gtkwave", "", "Path to the gtkwave executable")
	flags.StringVar(&cfg.IverilogFlags, "iverilog-flags", "", "Default iverilog flags when the project sets none")

	// Project & bridge
	flags.StringVarP(&cfg.ProjectFile, "project", "p", cfg.ProjectFile, "Project settings file")
	flags.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "Command bridge listen address")
	flags.IntVar(&cfg.WatchDebounceMs, "debounce-ms", cfg.WatchDebounceMs, "Quiet period before watch recompiles")
	flags.IntVar(&cfg.SimTimeoutS, "sim-timeout", cfg.SimTimeoutS, "Seconds before a simulation is killed (0: no limit)")

	flags.StringVar(&cfg.ConfigFile, "config", "", "Path to additional config file")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug output")
}

// ValidateFlags checks flag values after parsing.
func ValidateFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cfg.ConfigFile != "" {
		if _, err := os.Stat(cfg.ConfigFile); err != nil {
			return fmt.Errorf("--config: %w", err)
		}
	}
	if cmd.Flags().Changed("debounce-ms") && cfg.WatchDebounceMs < 0 {
		return fmt.Errorf("--debounce-ms must be >= 0, got: %d", cfg.WatchDebounceMs)
	}
	if cmd.Flags().Changed("sim-timeout") && cfg.SimTimeoutS < 0 {
		return fmt.Errorf("--sim-timeout must be >= 0, got: %d", cfg.SimTimeoutS)
	}
	if cmd.Flags().Changed("listen") && cfg.ListenAddr == "" {
		return fmt.Errorf("--listen must not be empty")
	}
	return nil
}

// BuildOverrides returns config overrides for the flags explicitly set on the
// command line, so config file values are not clobbered by flag defaults.
func BuildOverrides(cmd *cobra.Command, cfg *config.Config) map[string]string {
	overrides := make(map[string]string)

	stringFlags := map[string]struct {
		key string
		val string
	}{
		"iverilog":       {"IVERILOG_PATH", cfg.IverilogPath},
		"vvp":            {"VVP_PATH", cfg.VVPPath},
		"gtkwave":        {"GTKWAVE_PATH", cfg.GTKWavePath},
		"iverilog-flags": {"IVERILOG_FLAGS", cfg.IverilogFlags},
		"project":        {"PROJECT_FILE", cfg.ProjectFile},
		"listen":         {"LISTEN_ADDR", cfg.ListenAddr},
	}
	for flag, mapping := range stringFlags {
		if cmd.Flags().Changed(flag) {
			overrides[mapping.key] = mapping.val
		}
	}

	if cmd.Flags().Changed("debounce-ms") {
		overrides["WATCH_DEBOUNCE_MS"] = fmt.Sprintf("%d", cfg.WatchDebounceMs)
	}
	if cmd.Flags().Changed("sim-timeout") {
		overrides["SIM_TIMEOUT_S"] = fmt.Sprintf("%d", cfg.SimTimeoutS)
	}
	if cmd.Flags().Changed("verbose") {
		overrides["VERBOSE"] = fmt.Sprintf("%t", cfg.Verbose)
	}

	return overrides
}
