// Package exitcode defines named exit codes for the daedalus CLI.
package exitcode

const (
	Success           = 0   // Command completed
	Error             = 1   // Invalid args, file not found, misconfiguration
	MissingDependency = 2   // A required external tool is not installed
	ToolFailed        = 3   // An external tool ran and exited non-zero
	Interrupted       = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case MissingDependency:
		return "MissingDependency"
	case ToolFailed:
		return "ToolFailed"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}
