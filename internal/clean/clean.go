// Package clean removes generated simulation artifacts.
package clean

import (
	"errors"
	"fmt"
	"os"

	"github.com/CodexForgeBR/daedalus/internal/logging"
	"github.com/CodexForgeBR/daedalus/internal/project"
)

// Failure records a path that could not be removed.
type Failure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Report summarizes a cleanup pass.
type Report struct {
	Deleted []string  `json:"deleted"`
	Missing []string  `json:"missing"`
	Failed  []Failure `json:"failed"`
}

// CleanProject removes each non-empty path. A path that does not exist is
// recorded as missing; any other error is logged and recorded, and the pass
// continues with the next path.
func CleanProject(paths []string) Report {
	r := Report{Deleted: []string{}, Missing: []string{}, Failed: []Failure{}}
	for _, path := range paths {
		if path == "" {
			continue
		}
		err := os.Remove(path)
		switch {
		case err == nil:
			logging.Debug("deleted " + path)
			r.Deleted = append(r.Deleted, path)
		case errors.Is(err, os.ErrNotExist):
			r.Missing = append(r.Missing, path)
		default:
			logging.Error(fmt.Sprintf("delete %s: %v", path, err))
			r.Failed = append(r.Failed, Failure{Path: path, Error: err.Error()})
		}
	}
	return r
}

// CleanupTargets returns the generated files of a project: the compiled
// simulation image and the waveform dump.
func CleanupTargets(s *project.Settings) []string {
	return []string{s.VVPPath, s.VCDPath}
}
