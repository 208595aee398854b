package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/daedalus/internal/logging"
	"github.com/CodexForgeBR/daedalus/internal/project"
)

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create or edit the project file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [files...]",
		Short: "Create a project file with default outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.ProjectFile
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			s := project.Default()
			s.IverilogFlags = a.cfg.IverilogFlags
			for _, f := range args {
				s.AddFiles(relativeTo(path, f))
			}
			if err := project.Save(s, path); err != nil {
				return err
			}
			logging.Success(fmt.Sprintf("created %s with %d source(s)", path, len(s.VerilogFiles)))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing project file")

	addCmd := &cobra.Command{
		Use:   "add <files...>",
		Short: "Append Verilog sources in compile order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editProject(func(s *project.Settings) error {
				rel := make([]string, len(args))
				for i, f := range args {
					rel[i] = relativeTo(a.cfg.ProjectFile, f)
				}
				n := s.AddFiles(rel...)
				logging.Info(fmt.Sprintf("added %d source(s)", n))
				return nil
			})
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <file>",
		Short: "Remove a Verilog source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editProject(func(s *project.Settings) error {
				if !s.RemoveFile(relativeTo(a.cfg.ProjectFile, args[0])) && !s.RemoveFile(args[0]) {
					return fmt.Errorf("%s is not in the project", args[0])
				}
				return nil
			})
		},
	}

	cmd.AddCommand(initCmd, addCmd, rmCmd)
	return cmd
}

// editProject loads the project file unresolved, applies fn, and saves it.
func (a *app) editProject(fn func(*project.Settings) error) error {
	s, err := project.Load(a.cfg.ProjectFile)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s not found (run 'daedalus project init')", a.cfg.ProjectFile)
	}
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return project.Save(s, a.cfg.ProjectFile)
}
