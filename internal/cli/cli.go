package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/specialistvlad/hclsketch/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("vsk", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
vsk - Render generative plotter sketches written in HCL.

Usage:
  vsk [options] SKETCH_PATH

Arguments:
  SKETCH_PATH
    Path to a sketch script, or to a directory containing sketch.hcl.
    With -list, the directory to search for sketch_*.hcl scripts.

Options:
`)
		flagSet.PrintDefaults()
	}

	seedFlag := flagSet.String("seed", "", "Seed for every randomness source. Empty leaves them unseeded.")
	finalizeFlag := flagSet.Bool("finalize", false, "Run the sketch's finalize block before saving.")
	configFlag := flagSet.String("config", "", "Param set to apply: a name in the sketch's config directory, or a path.")
	saveConfigFlag := flagSet.Bool("save-config", false, "Save the sketch's parameters to its config directory.")
	outputFlag := flagSet.String("output", "", "Directory for rendered SVG files. Defaults to 'output' next to the sketch.")
	listFlag := flagSet.Bool("list", false, "List the sketches found under SKETCH_PATH.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No sketch path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "expected a single SKETCH_PATH argument"}
	}
	path := flagSet.Arg(0)
	slog.Debug("Sketch path determined.", "path", path)

	var seed *int64
	if *seedFlag != "" {
		v, err := strconv.ParseInt(*seedFlag, 10, 64)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid seed %q: must be an integer", *seedFlag)}
		}
		seed = &v
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SketchPath: path,
		Seed:       seed,
		Finalize:   *finalizeFlag,
		ConfigName: *configFlag,
		SaveConfig: *saveConfigFlag,
		OutputDir:  *outputFlag,
		List:       *listFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
