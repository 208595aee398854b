package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/daedalus/internal/exitcode"
	"github.com/CodexForgeBR/daedalus/internal/logging"
	"github.com/CodexForgeBR/daedalus/internal/project"
	"github.com/CodexForgeBR/daedalus/internal/toolchain"
)

func init() {
	color.NoColor = true
}

// execute runs the root command with an isolated config dir and PATH.
func execute(t *testing.T, pathDir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PATH", pathDir)

	var out bytes.Buffer
	oldOut := logging.Stdout
	logging.Stdout = &out
	t.Cleanup(func() { logging.Stdout = oldOut })

	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func stubTools(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("#!/bin/sh\nexit 0\n"), 0755))
	}
	return dir
}

func TestDepsJSON(t *testing.T) {
	out, err := execute(t, stubTools(t, "gtkwave"), "deps", "--json")
	require.NoError(t, err)

	assert.JSONEq(t, `{"iverilog":false,"vvp":false,"gtkwave":true}`, out)
}

func TestDepsRequire(t *testing.T) {
	_, err := execute(t, stubTools(t, "iverilog"), "deps", "--require")
	require.Error(t, err)

	assert.Equal(t, exitcode.MissingDependency, codeFor(err))
	assert.Contains(t, err.Error(), "vvp, gtkwave")
}

func TestDepsOverrideFlag(t *testing.T) {
	custom := stubTools(t, "vvp-custom")

	out, err := execute(t, stubTools(t), "deps", "--json", "--vvp", filepath.Join(custom, "vvp-custom"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"iverilog":false,"vvp":true,"gtkwave":false}`, out)
}

func TestDepsExtraTools(t *testing.T) {
	pathDir := stubTools(t, "gtkwave", "yosys")

	out, err := execute(t, pathDir, "deps", "--json", "yosys", "verilator")
	require.NoError(t, err)
	assert.JSONEq(t, `{"iverilog":false,"vvp":false,"gtkwave":true,"yosys":true,"verilator":false}`, out)

	_, err = execute(t, stubTools(t, "iverilog", "vvp", "gtkwave"), "deps", "--require", "verilator")
	require.Error(t, err)
	assert.Equal(t, exitcode.MissingDependency, codeFor(err))
	assert.Contains(t, err.Error(), "verilator")
}

func TestGreet(t *testing.T) {
	out, err := execute(t, stubTools(t), "greet", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Ada! You've been greeted from Go!\n", out)
}

func TestProjectInitAddRm(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cpu.json")
	bin := stubTools(t)

	_, err := execute(t, bin, "-p", file, "project", "init", filepath.Join(dir, "alu.v"))
	require.NoError(t, err)

	_, err = execute(t, bin, "-p", file, "project", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, bin, "-p", file, "project", "add", filepath.Join(dir, "rtl", "cpu.v"), filepath.Join(dir, "alu.v"))
	require.NoError(t, err)

	s, err := project.Load(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"alu.v", filepath.Join("rtl", "cpu.v")}, s.VerilogFiles)

	_, err = execute(t, bin, "-p", file, "project", "rm", filepath.Join(dir, "alu.v"))
	require.NoError(t, err)
	_, err = execute(t, bin, "-p", file, "project", "rm", "ghost.v")
	require.Error(t, err)

	s, err = project.Load(file)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("rtl", "cpu.v")}, s.VerilogFiles)
}

func TestCompileMissingTool(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "p.json")
	s := project.Default()
	s.AddFiles("top.v")
	require.NoError(t, project.Save(s, file))

	_, err := execute(t, stubTools(t), "-p", file, "compile")
	require.Error(t, err)

	assert.Equal(t, exitcode.MissingDependency, codeFor(err))
}

func TestCleanDefaultsToProjectOutputs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "p.json")
	require.NoError(t, project.Save(project.Default(), file))
	vvp := filepath.Join(dir, project.DefaultVVPPath)
	require.NoError(t, os.WriteFile(vvp, nil, 0644))

	out, err := execute(t, stubTools(t), "-p", file, "clean")
	require.NoError(t, err)

	assert.NoFileExists(t, vvp)
	assert.Contains(t, out, "deleted "+vvp)
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, stubTools(t), "schema")
	require.NoError(t, err)

	assert.Contains(t, out, `"check_dependencies"`)
	assert.Contains(t, out, `"/api/invoke/compile"`)
}

func TestCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{errors.New("plain"), exitcode.Error},
		{fmt.Errorf("wrap: %w", toolchain.ErrToolMissing), exitcode.MissingDependency},
		{fmt.Errorf("wrap: %w", toolchain.ErrToolFailed), exitcode.ToolFailed},
		{fmt.Errorf("%w: vvp: %w", toolchain.ErrTimeout, context.DeadlineExceeded), exitcode.ToolFailed},
		{context.Canceled, exitcode.Interrupted},
		{&exitError{code: 7, err: errors.New("custom")}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.code, codeFor(tt.err))
		})
	}
}

func TestRelativeTo(t *testing.T) {
	dir := t.TempDir()
	projectFile := filepath.Join(dir, "p.json")

	assert.Equal(t, "top.v", relativeTo(projectFile, filepath.Join(dir, "top.v")))
	assert.Equal(t, filepath.Join("rtl", "alu.v"), relativeTo(projectFile, filepath.Join(dir, "rtl", "alu.v")))

	outside := filepath.Join(filepath.Dir(dir), "elsewhere.v")
	assert.Equal(t, outside, relativeTo(projectFile, outside))
}
