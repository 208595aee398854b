package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const helpTemplate = `daedalus - Verilog workbench backend

USAGE
  daedalus <command> [flags]

COMMANDS
  deps                     Report which simulation tools are on PATH
  greet <name>             Round-trip check used by the frontend
  clean [paths...]         Delete generated files (default: project outputs)
  compile                  Compile the project with iverilog
  simulate                 Run the compiled image with vvp
  wave                     Open the project's waveform in gtkwave
  watch                    Recompile whenever a project source changes
  serve                    Run the HTTP command bridge for the frontend
  schema                   Print the JSON schema of bridge commands
  project init|add|rm      Create or edit the project file

FLAGS
  Tools:
    --iverilog <path>            Explicit iverilog executable (default: PATH)
    --vvp <path>                 Explicit vvp executable (default: PATH)
    --gtkwave <path>             Explicit gtkwave executable (default: PATH)
    --iverilog-flags <flags>     Flags used when the project sets none

  Project & Bridge:
    -p, --project <file>         Project settings file (default: daedalus.json)
    --listen <addr>              Bridge listen address (default: 127.0.0.1:1420)
    --debounce-ms <int>          Watch quiet period (default: 300)
    --sim-timeout <secs>         Kill simulations running longer (default: 0, off)

  General:
    --config <path>              Path to additional config file
    -v, --verbose                Enable debug output
    -h, --help                   Show this help text
    --version                    Show version, commit, build date

CONFIG FILES
  KEY=VALUE files read in order, later wins:
    ~/.config/daedalus/config, .daedalus/config, --config <path>
  Keys: IVERILOG_PATH VVP_PATH GTKWAVE_PATH IVERILOG_FLAGS LISTEN_ADDR
        PROJECT_FILE VERBOSE WATCH_DEBOUNCE_MS SIM_TIMEOUT_S

EXIT CODES
  0   Success              Command completed
  1   Error                Invalid arguments, file not found, misconfiguration
  2   MissingDependency    A required tool is not installed
  3   ToolFailed           iverilog or vvp exited non-zero or timed out
  130 Interrupted          SIGINT or SIGTERM received

EXAMPLES
  # Which tools are installed? (JSON for scripts)
  daedalus deps --json

  # Also check optional tools, failing if any is missing
  daedalus deps --require yosys verilator

  # Compile and simulate a project
  daedalus -p cpu.json compile && daedalus -p cpu.json simulate

  # Serve the frontend on a custom port
  daedalus serve --listen 127.0.0.1:9000
`

// SetCustomHelp shows the full help text for the root command and cobra's
// default help for subcommands.
func SetCustomHelp(root *cobra.Command) {
	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != root {
			defaultHelp(cmd, args)
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), helpTemplate)
	})
}
