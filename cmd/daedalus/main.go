package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/daedalus/internal/cli"
	"github.com/CodexForgeBR/daedalus/internal/config"
	"github.com/CodexForgeBR/daedalus/internal/deps"
	"github.com/CodexForgeBR/daedalus/internal/exitcode"
	"github.com/CodexForgeBR/daedalus/internal/logging"
	"github.com/CodexForgeBR/daedalus/internal/project"
	sighandler "github.com/CodexForgeBR/daedalus/internal/signal"
	"github.com/CodexForgeBR/daedalus/internal/toolchain"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// app carries the resolved configuration into subcommands.
type app struct {
	flags *config.Config
	cfg   *config.Config
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	intr := sighandler.Watch(ctx, cancel, func(os.Signal) {
		logging.Warn("Interrupted, stopping...")
	})

	root := newRootCmd()
	err := root.ExecuteContext(ctx)
	if intr.Received() {
		cancel()
		os.Exit(exitcode.Interrupted)
	}
	if err != nil {
		logging.Error(err.Error())
		cancel()
		os.Exit(codeFor(err))
	}
}

func newRootCmd() *cobra.Command {
	a := &app{flags: config.NewDefaultConfig()}

	root := &cobra.Command{
		Use:     "daedalus",
		Short:   "Verilog workbench backend",
		Long:    "daedalus drives Icarus Verilog and GTKWave for the workbench frontend.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.BindFlags(root, a.flags)
	cli.SetCustomHelp(root)

	root.AddCommand(
		newDepsCmd(a),
		newGreetCmd(),
		newCleanCmd(a),
		newCompileCmd(a),
		newSimulateCmd(a),
		newWaveCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
		newSchemaCmd(),
		newProjectCmd(a),
	)
	return root
}

// load validates flags and merges them over the config files.
func (a *app) load(cmd *cobra.Command) error {
	if err := cli.ValidateFlags(cmd, a.flags); err != nil {
		return err
	}
	cfg, err := config.Load(a.flags.ConfigFile, cli.BuildOverrides(cmd, a.flags))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	logging.SetVerbose(cfg.Verbose)
	logging.Debug("project file: " + cfg.ProjectFile)
	return nil
}

func (a *app) prober() *deps.Prober {
	return deps.NewProber(a.cfg.ToolOverrides())
}

func (a *app) runner() *toolchain.Runner {
	r := toolchain.NewRunner(a.prober().Resolve(), logging.Stdout)
	r.DefaultFlags = a.cfg.IverilogFlags
	r.SimTimeout = a.cfg.SimTimeout()
	return r
}

func (a *app) loadProject() (*project.Settings, error) {
	s, err := project.LoadResolved(a.cfg.ProjectFile)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", a.cfg.ProjectFile, err)
	}
	return s, nil
}

// exitError carries an explicit exit code for errors that have no sentinel.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func codeFor(err error) int {
	var ee *exitError
	switch {
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, toolchain.ErrToolMissing):
		return exitcode.MissingDependency
	case errors.Is(err, toolchain.ErrToolFailed), errors.Is(err, toolchain.ErrTimeout):
		return exitcode.ToolFailed
	case errors.Is(err, context.Canceled):
		return exitcode.Interrupted
	default:
		return exitcode.Error
	}
}
