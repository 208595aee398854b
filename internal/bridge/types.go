package bridge

import (
	"path/filepath"

	"github.com/CodexForgeBR/daedalus/internal/project"
	"github.com/CodexForgeBR/daedalus/internal/toolchain"
)

// GreetRequest is the payload of the greet command.
type GreetRequest struct {
	Name string `json:"name" jsonschema:"description=Name to greet"`
}

// CleanRequest lists files to delete. Empty entries are skipped. Relative
// paths are taken against ProjectFile's directory when it is set, otherwise
// against the server's working directory.
type CleanRequest struct {
	Paths       []string `json:"paths" jsonschema:"description=Files to delete"`
	ProjectFile string   `json:"projectFile,omitempty" jsonschema:"description=Project file that relative paths belong to"`
}

func (r *CleanRequest) resolved() []string {
	if r.ProjectFile == "" {
		return r.Paths
	}
	dir := filepath.Dir(r.ProjectFile)
	paths := make([]string, len(r.Paths))
	for i, p := range r.Paths {
		if p != "" && !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		paths[i] = p
	}
	return paths
}

// ProjectRequest carries the project a toolchain step runs against. Relative
// paths in Project resolve the same way as in CleanRequest.
type ProjectRequest struct {
	Project     *project.Settings `json:"project" binding:"required"`
	ProjectFile string            `json:"projectFile,omitempty" jsonschema:"description=Project file that relative paths belong to"`
}

func (r *ProjectRequest) settings() *project.Settings {
	if r.ProjectFile == "" {
		return r.Project
	}
	return r.Project.Resolve(filepath.Dir(r.ProjectFile))
}

// OpenRequest names a project file to load. Paths inside the returned
// settings are left as stored.
type OpenRequest struct {
	Path string `json:"path" binding:"required"`
}

// SaveRequest names a project file and the settings to write to it.
type SaveRequest struct {
	Path    string            `json:"path" binding:"required"`
	Project *project.Settings `json:"project" binding:"required"`
}

// RunResponse is returned by compile and simulate. Result is present whenever
// the tool was started, including when it failed.
type RunResponse struct {
	Result *toolchain.Result `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// ErrorResponse is returned for malformed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
