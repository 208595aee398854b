package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/daedalus/internal/logging"
	"github.com/CodexForgeBR/daedalus/internal/toolchain"
	"github.com/CodexForgeBR/daedalus/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var simulate bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompile whenever a project source changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadProject()
			if err != nil {
				return err
			}
			if len(s.VerilogFiles) == 0 {
				return toolchain.ErrNoSources
			}
			runner := a.runner()

			build := func(ctx context.Context) {
				res, err := runner.Compile(ctx, s)
				if err == nil && simulate {
					res, err = runner.Simulate(ctx, s)
				}
				switch {
				case err == nil:
					logging.Success(fmt.Sprintf("%s ok (%dms)", res.Tool, res.DurationMs))
				case errors.Is(err, toolchain.ErrToolMissing):
					// Nothing in the loop can fix a missing tool.
					logging.Error(err.Error())
				default:
					logging.Warn(err.Error())
				}
			}

			build(cmd.Context())
			logging.Info(fmt.Sprintf("watching %d file(s), Ctrl-C to stop", len(s.VerilogFiles)))

			w := &watch.Watcher{
				Files:    s.VerilogFiles,
				Debounce: a.cfg.WatchDebounce(),
				OnChange: func(ctx context.Context, changed []string) {
					for _, f := range changed {
						logging.Info("changed: " + f)
					}
					build(ctx)
				},
			}
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&simulate, "simulate", false, "Also run vvp after each successful compile")
	return cmd
}
