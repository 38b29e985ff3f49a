// Package cli parses the kastle command line and runs its subcommands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Command is a parsed kastle invocation.
type Command struct {
	Name string
	// Path is the HCL file or directory for compile and validate, and the
	// stored world name or HCL path for inspect.
	Path      string
	WorldName string
	Output    string
	Enrich    bool
	Save      bool
	// Empty log settings fall back to the environment configuration.
	LogLevel  string
	LogFormat string
}

const usage = `
Kastle - compile text-adventure worlds.

Usage:
  kastle [options] <command> [command options] [args]

Commands:
  compile [-o FILE] [-name NAME] [-enrich] PATH
      Compile the .hcl world at PATH (file or directory) and store it.
  validate PATH
      Compile the world at PATH and report integrity issues.
  list
      List stored worlds.
  show NAME
      Print a stored world as YAML.
  delete NAME
      Remove a stored world from the database.
  inspect NAME|PATH
      Browse a stored or .hcl world in the terminal.
  demo [-save]
      Print the built-in demo world as YAML.

Options:
`

// Parse processes command-line arguments. It returns the Command to run, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Command, bool, error) {
	slog.Debug("CLI parser started.")
	cmd := &Command{}

	global := flag.NewFlagSet("kastle", flag.ContinueOnError)
	global.SetOutput(output)
	global.Usage = func() {
		fmt.Fprint(output, usage)
		global.PrintDefaults()
	}
	logFlags(global, cmd)

	if err := global.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if global.NArg() == 0 || global.Arg(0) == "help" {
		global.Usage()
		return nil, true, nil
	}

	cmd.Name = global.Arg(0)
	sub := flag.NewFlagSet("kastle "+cmd.Name, flag.ContinueOnError)
	sub.SetOutput(output)
	logFlags(sub, cmd)

	var want string
	switch cmd.Name {
	case "compile":
		sub.StringVar(&cmd.Output, "o", "", "Also write the compiled world as YAML to this file ('-' for stdout).")
		sub.StringVar(&cmd.WorldName, "name", "", "Name to store the world under. Defaults to the file or directory name.")
		sub.BoolVar(&cmd.Enrich, "enrich", false, "Generate missing descriptions with Gemini (needs GEMINI_API_KEY).")
		want = "PATH"
	case "validate":
		want = "PATH"
	case "show", "delete":
		want = "NAME"
	case "inspect":
		want = "NAME|PATH"
	case "demo":
		sub.BoolVar(&cmd.Save, "save", false, "Also store the demo world.")
	case "list":
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", cmd.Name)}
	}

	if err := sub.Parse(global.Args()[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.", "command", cmd.Name)

	switch {
	case want == "" && sub.NArg() > 0:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("%s takes no arguments", cmd.Name)}
	case want != "" && sub.NArg() != 1:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("usage: kastle %s %s", cmd.Name, want)}
	case want == "NAME":
		cmd.WorldName = sub.Arg(0)
	case want != "":
		cmd.Path = sub.Arg(0)
	}

	if cmd.LogFormat != "" {
		cmd.LogFormat = strings.ToLower(cmd.LogFormat)
		if cmd.LogFormat != "text" && cmd.LogFormat != "json" {
			return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
		}
	}
	if cmd.LogLevel != "" {
		cmd.LogLevel = strings.ToLower(cmd.LogLevel)
		switch cmd.LogLevel {
		case "debug", "info", "warn", "error":
			// valid
		default:
			return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
		}
	}

	slog.Debug("CLI parser finished successfully.", "command", cmd)
	return cmd, false, nil
}

func logFlags(fs *flag.FlagSet, cmd *Command) {
	fs.StringVar(&cmd.LogLevel, "log-level", cmd.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'. Defaults to KASTLE_LOG_LEVEL.")
	fs.StringVar(&cmd.LogFormat, "log-format", cmd.LogFormat, "Log output format. Options: 'text' or 'json'. Defaults to KASTLE_LOG_FORMAT.")
}
