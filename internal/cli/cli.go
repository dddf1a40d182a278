package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/coursekit/coursegraph/internal/app"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("coursegraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
coursegraph - Validate a tutorial content corpus and derive course sequences.

Usage:
  coursegraph [options] [CONTENT_PATH]

Arguments:
  CONTENT_PATH
    Directory containing .md/.mdx content files with YAML frontmatter.

Options:
`)
		flagSet.PrintDefaults()
	}

	contentFlag := flagSet.String("content", "", "Path to the content directory.")
	cFlag := flagSet.String("c", "", "Path to the content directory (shorthand).")
	configFlag := flagSet.String("config", "", "Path to a site.hcl build configuration file.")
	courseFlag := flagSet.String("course", "", "Print the navigation table for this course slug.")
	completedFlag := flagSet.String("completed", "", "Comma-separated completed slugs for the navigation table.")
	strictFlag := flagSet.Bool("strict", false, "Exit non-zero when the corpus has any issue.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *contentFlag != "" {
		path = *contentFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Content path determined.", "path", path)

	if path == "" && *configFlag == "" {
		slog.Debug("No content path or config provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
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

	var completed []string
	for _, slug := range strings.Split(*completedFlag, ",") {
		if trimmed := strings.TrimSpace(slug); trimmed != "" {
			completed = append(completed, trimmed)
		}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ContentPath: path,
		ConfigPath:  *configFlag,
		Course:      *courseFlag,
		Completed:   completed,
		Strict:      *strictFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
