// Package deps reports which external simulation tools are resolvable on the
// host's search path.
package deps

import "os/exec"

// Names of the external executables the workbench drives.
const (
	Iverilog = "iverilog"
	VVP      = "vvp"
	GTKWave  = "gtkwave"
)

// Tools lists every known tool name in probe order.
var Tools = []string{Iverilog, VVP, GTKWave}

// DependencyStatus records whether each known tool can be located.
// It is built fresh for every probe and never mutated afterwards.
type DependencyStatus struct {
	Iverilog bool `json:"iverilog"`
	VVP      bool `json:"vvp"`
	GTKWave  bool `json:"gtkwave"`
}

// Missing returns the names of tools whose flag is false.
func (s DependencyStatus) Missing() []string {
	var missing []string
	if !s.Iverilog {
		missing = append(missing, Iverilog)
	}
	if !s.VVP {
		missing = append(missing, VVP)
	}
	if !s.GTKWave {
		missing = append(missing, GTKWave)
	}
	return missing
}

// AllPresent reports whether every known tool was found.
func (s DependencyStatus) AllPresent() bool {
	return s.Iverilog && s.VVP && s.GTKWave
}

// ToolPaths holds the resolved executable path for each tool.
// An empty string means the tool could not be located.
type ToolPaths struct {
	Iverilog string `json:"iverilog"`
	VVP      string `json:"vvp"`
	GTKWave  string `json:"gtkwave"`
}

// Status collapses resolved paths into presence flags.
func (p ToolPaths) Status() DependencyStatus {
	return DependencyStatus{
		Iverilog: p.Iverilog != "",
		VVP:      p.VVP != "",
		GTKWave:  p.GTKWave != "",
	}
}

// Prober resolves tool executables. Overrides maps a tool name to an explicit
// executable path that takes precedence over the search path when it points at
// an executable.
type Prober struct {
	Overrides map[string]string

	// lookPath is exec.LookPath unless replaced in tests.
	lookPath func(string) (string, error)
}

// NewProber returns a Prober that consults the given overrides before PATH.
func NewProber(overrides map[string]string) *Prober {
	return &Prober{Overrides: overrides, lookPath: exec.LookPath}
}

// Probe checks every known tool. A failed lookup yields false for that tool
// and never aborts the probe.
func (p *Prober) Probe() DependencyStatus {
	return p.Resolve().Status()
}

// Resolve looks up every known tool and returns the resolved paths.
func (p *Prober) Resolve() ToolPaths {
	return ToolPaths{
		Iverilog: p.resolve(Iverilog),
		VVP:      p.resolve(VVP),
		GTKWave:  p.resolve(GTKWave),
	}
}

func (p *Prober) resolve(tool string) string {
	look := p.lookPath
	if look == nil {
		look = exec.LookPath
	}
	if override := p.Overrides[tool]; override != "" {
		if path, err := look(override); err == nil {
			return path
		}
	}
	path, err := look(tool)
	if err != nil {
		return ""
	}
	return path
}

// Probe checks the known tools against PATH with no overrides.
func Probe() DependencyStatus {
	return NewProber(nil).Probe()
}

// CheckAvailability reports, for each named executable, whether it resolves
// through the prober. Names outside Tools are looked up on PATH only.
func (p *Prober) CheckAvailability(tools ...string) map[string]bool {
	available := make(map[string]bool, len(tools))
	for _, tool := range tools {
		available[tool] = p.resolve(tool) != ""
	}
	return available
}

// CheckAvailability checks arbitrary executables against PATH.
func CheckAvailability(tools ...string) map[string]bool {
	return NewProber(nil).CheckAvailability(tools...)
}
