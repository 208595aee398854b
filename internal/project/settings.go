// Package project models a workbench project: the ordered Verilog sources to
// compile, the compiler flags, the simulation and waveform output paths, and
// the editor tabs the frontend had open.
package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
)

// Default output file names for a new project.
const (
	DefaultVVPPath = "design.vvp"
	DefaultVCDPath = "waveform.vcd"
)

// ErrInvalid is wrapped by every settings validation error.
var ErrInvalid = errors.New("invalid project")

// EditorFile is one open editor tab.
type EditorFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	IsSaved bool   `json:"isSaved"`
}

// Settings is the persisted project document.
type Settings struct {
	IverilogFlags  string       `json:"iverilogFlags"`
	VVPPath        string       `json:"vvpPath"`
	VCDPath        string       `json:"vcdPath"`
	VerilogFiles   []string     `json:"verilogFiles"`
	OpenFiles      []EditorFile `json:"openFiles"`
	ActiveFilePath *string      `json:"activeFilePath"`
}

// Default returns the settings of a freshly created project.
func Default() *Settings {
	return &Settings{
		VVPPath:      DefaultVVPPath,
		VCDPath:      DefaultVCDPath,
		VerilogFiles: []string{},
		OpenFiles:    []EditorFile{},
	}
}

// Validate checks the settings are usable for a toolchain run.
func (s *Settings) Validate() error {
	if s.VVPPath == "" {
		return fmt.Errorf("%w: compiled output path (vvpPath) is empty", ErrInvalid)
	}
	seen := make(map[string]bool, len(s.VerilogFiles))
	for _, f := range s.VerilogFiles {
		if f == "" {
			return fmt.Errorf("%w: verilog file list contains an empty path", ErrInvalid)
		}
		if seen[f] {
			return fmt.Errorf("%w: verilog file listed twice: %s", ErrInvalid, f)
		}
		seen[f] = true
	}
	return nil
}

// AddFiles appends paths not already present, preserving order. It returns
// the number of files added.
func (s *Settings) AddFiles(paths ...string) int {
	added := 0
	for _, p := range paths {
		if p == "" || slices.Contains(s.VerilogFiles, p) {
			continue
		}
		s.VerilogFiles = append(s.VerilogFiles, p)
		added++
	}
	return added
}

// RemoveFile drops path from the source list. It reports whether it was present.
func (s *Settings) RemoveFile(path string) bool {
	i := slices.Index(s.VerilogFiles, path)
	if i < 0 {
		return false
	}
	s.VerilogFiles = slices.Delete(s.VerilogFiles, i, i+1)
	return true
}

// MoveUp swaps the file at index i with its predecessor.
func (s *Settings) MoveUp(i int) bool {
	if i <= 0 || i >= len(s.VerilogFiles) {
		return false
	}
	s.VerilogFiles[i-1], s.VerilogFiles[i] = s.VerilogFiles[i], s.VerilogFiles[i-1]
	return true
}

// MoveDown swaps the file at index i with its successor.
func (s *Settings) MoveDown(i int) bool {
	if i < 0 || i >= len(s.VerilogFiles)-1 {
		return false
	}
	s.VerilogFiles[i+1], s.VerilogFiles[i] = s.VerilogFiles[i], s.VerilogFiles[i+1]
	return true
}

// Resolve returns a copy of s with every relative path made relative to dir.
func (s *Settings) Resolve(dir string) *Settings {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	out := *s
	out.VVPPath = abs(s.VVPPath)
	out.VCDPath = abs(s.VCDPath)
	out.VerilogFiles = make([]string, len(s.VerilogFiles))
	for i, f := range s.VerilogFiles {
		out.VerilogFiles[i] = abs(f)
	}
	return &out
}
