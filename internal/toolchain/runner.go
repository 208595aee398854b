// Package toolchain drives the Icarus Verilog compiler and simulator and the
// GTKWave viewer for a project.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CodexForgeBR/daedalus/internal/deps"
	"github.com/CodexForgeBR/daedalus/internal/logging"
	"github.com/CodexForgeBR/daedalus/internal/project"
)

var (
	// ErrToolMissing is returned when a required executable was not resolved.
	ErrToolMissing = errors.New("required tool not found")
	// ErrToolFailed is returned when a tool exits with a non-zero status.
	ErrToolFailed = errors.New("tool failed")
	// ErrNoSources is returned when compiling a project without Verilog files.
	ErrNoSources = errors.New("no verilog files in project")
	// ErrTimeout is returned when a run is killed at its deadline.
	ErrTimeout = errors.New("tool timed out")
)

// Result describes one finished tool run.
type Result struct {
	ID         string   `json:"id"`
	Tool       string   `json:"tool"`
	Command    []string `json:"command"`
	ExitCode   int      `json:"exitCode"`
	Output     string   `json:"output"`
	DurationMs int64    `json:"durationMs"`
}

// Runner executes toolchain steps with the resolved tool paths. Combined
// stdout and stderr of every run is captured in the Result and, when Output
// is set, streamed to it as the tool produces it.
type Runner struct {
	Paths        deps.ToolPaths
	Output       io.Writer
	DefaultFlags string
	// SimTimeout bounds a simulation; testbenches without $finish never exit.
	// Zero means no limit.
	SimTimeout time.Duration
}

// NewRunner returns a Runner for the given tool paths.
func NewRunner(paths deps.ToolPaths, out io.Writer) *Runner {
	return &Runner{Paths: paths, Output: out}
}

// CompileArgs constructs the iverilog argument list for s.
func (r *Runner) CompileArgs(s *project.Settings) []string {
	flags := s.IverilogFlags
	if strings.TrimSpace(flags) == "" {
		flags = r.DefaultFlags
	}
	args := strings.Fields(flags)
	args = append(args, "-o", s.VVPPath)
	return append(args, s.VerilogFiles...)
}

// Compile runs iverilog over the project's sources in order.
func (r *Runner) Compile(ctx context.Context, s *project.Settings) (*Result, error) {
	if r.Paths.Iverilog == "" {
		return nil, fmt.Errorf("%w: %s", ErrToolMissing, deps.Iverilog)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if len(s.VerilogFiles) == 0 {
		return nil, ErrNoSources
	}
	if dir := filepath.Dir(s.VVPPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	return r.run(ctx, deps.Iverilog, r.Paths.Iverilog, "", r.CompileArgs(s))
}

// Simulate runs vvp on the compiled image from its own directory, so relative
// $dumpfile paths land next to it.
func (r *Runner) Simulate(ctx context.Context, s *project.Settings) (*Result, error) {
	if r.Paths.VVP == "" {
		return nil, fmt.Errorf("%w: %s", ErrToolMissing, deps.VVP)
	}
	if s.VVPPath == "" {
		return nil, fmt.Errorf("%w: compiled output path (vvpPath) is empty", project.ErrInvalid)
	}
	abs, err := filepath.Abs(s.VVPPath)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", s.VVPPath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("compiled output %s: %w", s.VVPPath, err)
	}
	if r.SimTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.SimTimeout)
		defer cancel()
	}
	return r.run(ctx, deps.VVP, r.Paths.VVP, filepath.Dir(abs), []string{abs})
}

// ViewWaveform launches gtkwave on the project's waveform file and returns
// without waiting for the viewer to exit.
func (r *Runner) ViewWaveform(s *project.Settings) error {
	if r.Paths.GTKWave == "" {
		return fmt.Errorf("%w: %s", ErrToolMissing, deps.GTKWave)
	}
	if s.VCDPath == "" {
		return fmt.Errorf("%w: waveform path (vcdPath) is empty", project.ErrInvalid)
	}
	if _, err := os.Stat(s.VCDPath); err != nil {
		return fmt.Errorf("waveform %s: %w", s.VCDPath, err)
	}

	cmd := exec.Command(r.Paths.GTKWave, s.VCDPath)
	logging.Tool(deps.GTKWave, cmdline(r.Paths.GTKWave, s.VCDPath))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start gtkwave: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func (r *Runner) run(ctx context.Context, tool, path, dir string, args []string) (*Result, error) {
	res := &Result{
		ID:      uuid.NewString(),
		Tool:    tool,
		Command: append([]string{path}, args...),
	}
	logging.Tool(tool, cmdline(path, args...))

	var buf bytes.Buffer
	var sink io.Writer = &buf
	if r.Output != nil {
		sink = io.MultiWriter(&buf, r.Output)
	}
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Stdout = sink
	cmd.Stderr = sink
	cmd.WaitDelay = time.Second

	start := time.Now()
	runErr := cmd.Run()
	res.DurationMs = time.Since(start).Milliseconds()
	res.Output = buf.String()

	if runErr == nil {
		logging.Debug(fmt.Sprintf("%s finished in %s", tool, logging.FormatDuration(time.Since(start))))
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		res.ExitCode = -1
		if errors.Is(err, context.DeadlineExceeded) {
			return res, fmt.Errorf("%w: %s killed after %s: %w", ErrTimeout, tool, logging.FormatDuration(time.Since(start)), err)
		}
		return res, fmt.Errorf("%s interrupted: %w", tool, err)
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, fmt.Errorf("%w: %s exited with code %d", ErrToolFailed, tool, res.ExitCode)
	}
	res.ExitCode = -1
	return res, fmt.Errorf("run %s: %w", tool, runErr)
}

func cmdline(path string, args ...string) string {
	parts := append([]string{filepath.Base(path)}, args...)
	return strings.Join(parts, " ")
}
