package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/cleangrid/internal/app"
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
	defaults := app.DefaultConfig()

	flagSet := flag.NewFlagSet("cleangrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
cleangrid - simulates cleaning agents wandering a dirty room.

Usage:
  cleangrid [options] [SCENARIO_PATH]

Arguments:
  SCENARIO_PATH
    Path to a single .hcl file or a directory containing .hcl scenario files.
    Without it, a single scenario is built from the inline options.

Options:
`)
		flagSet.PrintDefaults()
	}

	scenarioFlag := flagSet.String("scenario-path", "", "Path to the scenario file or directory.")
	sFlag := flagSet.String("s", "", "Path to the scenario file or directory (shorthand).")
	nameFlag := flagSet.String("name", "", "Run only the scenario with this name.")
	widthFlag := flagSet.Int("width", defaults.Width, "Inline scenario: grid width.")
	heightFlag := flagSet.Int("height", defaults.Height, "Inline scenario: grid height.")
	agentsFlag := flagSet.Int("agents", defaults.Agents, "Inline scenario: number of cleaning agents.")
	dirtyFlag := flagSet.Float64("dirty", defaults.DirtyPercentage, "Inline scenario: fraction of dirty cells, 0 to 1.")
	maxTimeFlag := flagSet.Int("max-time", defaults.MaxTime, "Inline scenario: maximum number of ticks.")
	seedFlag := flagSet.Int64("seed", 0, "Root random seed. 0 picks a time based seed.")
	historyFlag := flagSet.String("history", "", "Write the per-tick metrics history as JSON to this file.")
	reportFormatFlag := flagSet.String("report-format", defaults.ReportFormat, "Report output format. Options: 'text' or 'json'.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *scenarioFlag != "" {
		path = *scenarioFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one scenario path, got %d", flagSet.NArg())}
	}
	slog.Debug("Scenario path determined.", "path", path)

	config, err := app.NewConfig(app.Config{
		ScenarioPath:    path,
		ScenarioName:    *nameFlag,
		Width:           *widthFlag,
		Height:          *heightFlag,
		Agents:          *agentsFlag,
		DirtyPercentage: *dirtyFlag,
		MaxTime:         *maxTimeFlag,
		Seed:            *seedFlag,
		HistoryPath:     *historyFlag,
		ReportFormat:    strings.ToLower(*reportFormatFlag),
		LogFormat:       strings.ToLower(*logFormatFlag),
		LogLevel:        strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
