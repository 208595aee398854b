// Package banner provides colored banner display functions for the daedalus CLI.
//
// Banners write to logging.Stdout so tests and the command bridge can
// redirect them with the rest of the CLI output.
package banner

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/CodexForgeBR/daedalus/internal/deps"
	"github.com/CodexForgeBR/daedalus/internal/logging"
	"github.com/CodexForgeBR/daedalus/internal/toolchain"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
)

const rule = "═══════════════════════════════════════════════════"

func writeln(a ...any) {
	fmt.Fprintln(logging.Stdout, a...)
}

func writef(format string, a ...any) {
	fmt.Fprintf(logging.Stdout, format, a...)
}

// PrintServeBanner displays the command bridge startup banner.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  daedalus - Verilog workbench backend
//	═══════════════════════════════════════════════════
//	  Version:   v0.3.0
//	  Listening: http://127.0.0.1:1420
//	  Tools:     iverilog ✓  vvp ✓  gtkwave ✗
//	═══════════════════════════════════════════════════
func PrintServeBanner(version, addr string, status deps.DependencyStatus) {
	sep := headerColor(rule)
	writeln(sep)
	writeln(headerColor("  daedalus - Verilog workbench backend"))
	writeln(sep)
	writef("  Version:   %s\n", version)
	writef("  Listening: http://%s\n", addr)
	writef("  Tools:     %s\n", toolSummary(status))
	writeln(sep)
}

// PrintDependencyTable lists each known tool with its resolved location.
//
// Example output:
//
//	──────────────────────────────────────────────────
//	  ✓ iverilog  /usr/bin/iverilog
//	  ✓ vvp       /usr/bin/vvp
//	  ✗ gtkwave   not found
//	──────────────────────────────────────────────────
func PrintDependencyTable(paths deps.ToolPaths) {
	sep := strings.Repeat("─", 50)
	writeln(sep)
	rows := []struct{ name, path string }{
		{deps.Iverilog, paths.Iverilog},
		{deps.VVP, paths.VVP},
		{deps.GTKWave, paths.GTKWave},
	}
	for _, row := range rows {
		if row.path != "" {
			writef("  %s %-9s %s\n", successColor("✓"), row.name, row.path)
		} else {
			writef("  %s %-9s %s\n", errorColor("✗"), row.name, "not found")
		}
	}
	writeln(sep)
}

// PrintExtraTools lists additional executables in the order given.
func PrintExtraTools(tools []string, available map[string]bool) {
	for _, tool := range tools {
		if available[tool] {
			writef("  %s %s\n", successColor("✓"), tool)
		} else {
			writef("  %s %-9s %s\n", errorColor("✗"), tool, "not found")
		}
	}
}

// PrintRunSummary reports the outcome of a toolchain run.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  ✓ iverilog finished
//	  Exit code: 0
//	  Duration:  350ms
//	═══════════════════════════════════════════════════
func PrintRunSummary(res *toolchain.Result) {
	colorize := successColor
	mark := "✓"
	if res.ExitCode != 0 {
		colorize = errorColor
		mark = "✗"
	}
	sep := colorize(rule)
	writeln(sep)
	writeln(colorize(fmt.Sprintf("  %s %s finished", mark, res.Tool)))
	writef("  Exit code: %d\n", res.ExitCode)
	writef("  Duration:  %s\n", logging.FormatDuration(durationOf(res)))
	writeln(sep)
}

func durationOf(res *toolchain.Result) time.Duration {
	return time.Duration(res.DurationMs) * time.Millisecond
}

func toolSummary(s deps.DependencyStatus) string {
	mark := func(ok bool) string {
		if ok {
			return "✓"
		}
		return "✗"
	}
	return fmt.Sprintf("%s %s  %s %s  %s %s",
		deps.Iverilog, mark(s.Iverilog), deps.VVP, mark(s.VVP), deps.GTKWave, mark(s.GTKWave))
}
