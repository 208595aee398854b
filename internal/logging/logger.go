// Package logging provides colored, leveled log output for the daedalus CLI.
//
// Informational output goes to Stdout and errors to Stderr; both default to
// the process streams and may be redirected. Debug output is suppressed unless
// verbose mode is enabled via SetVerbose(true).
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

// verbose controls whether Debug() produces output.
var verbose bool

// Output streams.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Color printers for each log level.
var (
	infoPrefix    = color.New(color.FgBlue).SprintFunc()
	successPrefix = color.New(color.FgGreen).SprintFunc()
	warnPrefix    = color.New(color.FgYellow).SprintFunc()
	errorPrefix   = color.New(color.FgRed).SprintFunc()
	toolPrefix    = color.New(color.FgCyan).SprintFunc()
	debugPrefix   = color.New(color.FgBlue).SprintFunc()
)

// SetVerbose enables or disables Debug output.
func SetVerbose(v bool) {
	verbose = v
}

// Verbose reports whether debug output is enabled.
func Verbose() bool {
	return verbose
}

// Info prints an informational message in blue.
func Info(msg string) {
	fmt.Fprintln(Stdout, infoPrefix("[INFO]")+" "+msg)
}

// Success prints a success message in green.
func Success(msg string) {
	fmt.Fprintln(Stdout, successPrefix("[SUCCESS]")+" "+msg)
}

// Warn prints a warning message in yellow.
func Warn(msg string) {
	fmt.Fprintln(Stdout, warnPrefix("[WARN]")+" "+msg)
}

// Error prints an error message to Stderr in red.
func Error(msg string) {
	fmt.Fprintln(Stderr, errorPrefix("[ERROR]")+" "+msg)
}

// Tool prints a header announcing an external tool invocation.
func Tool(name, cmdline string) {
	fmt.Fprintln(Stdout, toolPrefix("[RUN]")+" "+name+": "+cmdline)
}

// Debug prints a debug message, only when verbose mode is enabled.
func Debug(msg string) {
	if !verbose {
		return
	}
	fmt.Fprintln(Stdout, debugPrefix("[DEBUG]")+" "+msg)
}

// FormatDuration renders d rounded to milliseconds below one second and to
// whole seconds otherwise.
//
// Examples:
//
//	FormatDuration(350*time.Millisecond) => "350ms"
//	FormatDuration(45*time.Second)       => "45s"
//	FormatDuration(90*time.Second)       => "1m 30s"
//	FormatDuration(3661*time.Second)     => "1h 1m 1s"
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	seconds := int(d.Round(time.Second).Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
