package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/daedalus/internal/banner"
	"github.com/CodexForgeBR/daedalus/internal/bridge"
	"github.com/CodexForgeBR/daedalus/internal/clean"
	"github.com/CodexForgeBR/daedalus/internal/deps"
	"github.com/CodexForgeBR/daedalus/internal/exitcode"
	"github.com/CodexForgeBR/daedalus/internal/greet"
	"github.com/CodexForgeBR/daedalus/internal/logging"
	"github.com/CodexForgeBR/daedalus/internal/toolchain"
)

func newDepsCmd(a *app) *cobra.Command {
	var asJSON, require bool
	cmd := &cobra.Command{
		Use:   "deps [extra-tools...]",
		Short: "Report which simulation tools are on PATH",
		RunE: func(cmd *cobra.Command, args []string) error {
			prober := a.prober()
			paths := prober.Resolve()
			status := paths.Status()
			extra := prober.CheckAvailability(args...)
			if asJSON {
				data, err := depsJSON(status, extra)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			} else {
				banner.PrintDependencyTable(paths)
				banner.PrintExtraTools(args, extra)
			}
			if !require {
				return nil
			}
			missing := status.Missing()
			for _, tool := range args {
				if !extra[tool] {
					missing = append(missing, tool)
				}
			}
			if len(missing) > 0 {
				return &exitError{
					code: exitcode.MissingDependency,
					err:  fmt.Errorf("missing tools: %s", strings.Join(missing, ", ")),
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the status as a JSON object")
	cmd.Flags().BoolVar(&require, "require", false, "Exit 2 if any tool is missing")
	return cmd
}

// depsJSON encodes the fixed status record, with any extra tools added as
// further flat fields.
func depsJSON(status deps.DependencyStatus, extra map[string]bool) ([]byte, error) {
	if len(extra) == 0 {
		return json.Marshal(status)
	}
	merged := make(map[string]bool, len(extra)+len(deps.Tools))
	for tool, ok := range extra {
		merged[tool] = ok
	}
	merged[deps.Iverilog] = status.Iverilog
	merged[deps.VVP] = status.VVP
	merged[deps.GTKWave] = status.GTKWave
	return json.Marshal(merged)
}

func newGreetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "greet <name>",
		Short: "Round-trip check used by the frontend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), greet.Greet(args[0]))
			return nil
		},
	}
}

func newCleanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean [paths...]",
		Short: "Delete generated files (default: the project's vvp and vcd outputs)",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				s, err := a.loadProject()
				if err != nil {
					return err
				}
				paths = clean.CleanupTargets(s)
			}
			report := clean.CleanProject(paths)
			for _, p := range report.Deleted {
				logging.Success("deleted " + p)
			}
			for _, p := range report.Missing {
				logging.Debug("already gone: " + p)
			}
			if n := len(report.Failed); n > 0 {
				return fmt.Errorf("%d file(s) could not be deleted", n)
			}
			return nil
		},
	}
}

func newCompileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Compile the project with iverilog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadProject()
			if err != nil {
				return err
			}
			return report(a.runner().Compile(cmd.Context(), s))
		},
	}
}

func newSimulateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Run the compiled image with vvp",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadProject()
			if err != nil {
				return err
			}
			return report(a.runner().Simulate(cmd.Context(), s))
		},
	}
}

// report prints the summary of a finished run and passes err through.
func report(res *toolchain.Result, err error) error {
	if res != nil && res.ExitCode >= 0 {
		banner.PrintRunSummary(res)
	}
	return err
}

func newWaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "wave",
		Short: "Open the project's waveform in gtkwave",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadProject()
			if err != nil {
				return err
			}
			if err := a.runner().ViewWaveform(s); err != nil {
				return err
			}
			logging.Success("gtkwave started on " + s.VCDPath)
			return nil
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP command bridge for the frontend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prober := a.prober()
			banner.PrintServeBanner(version, a.cfg.ListenAddr, prober.Probe())
			srv := &bridge.Server{
				Addr:         a.cfg.ListenAddr,
				Version:      version,
				Prober:       prober,
				DefaultFlags: a.cfg.IverilogFlags,
				SimTimeout:   a.cfg.SimTimeout(),
			}
			return srv.Start(cmd.Context())
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of bridge commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := bridge.MarshalSchema()
			if err != nil {
				return fmt.Errorf("marshal schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

// relativeTo expresses path relative to the project file's directory when
// possible so project files stay portable.
func relativeTo(projectFile, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	base, err := filepath.Abs(filepath.Dir(projectFile))
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return abs
	}
	return rel
}
