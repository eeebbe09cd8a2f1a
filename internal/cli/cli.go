package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/uimetricsgo/internal/app"
	"github.com/vk/uimetricsgo/internal/engine"
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
	flagSet := flag.NewFlagSet("uimetrics", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
uimetrics - Computes a configurable battery of metrics over a UI screenshot.

Usage:
  uimetrics [options] [IMAGE_PATH]

Arguments:
  IMAGE_PATH
    Path to a single screenshot (PNG) to evaluate.

Options:
`)
		flagSet.PrintDefaults()
	}

	imageFlag := flagSet.String("image", "", "Path to the screenshot to evaluate.")
	iFlag := flagSet.String("i", "", "Path to the screenshot to evaluate (shorthand).")
	evaluateFlag := flagSet.String("evaluate-dir", "", "Directory of PNG designs to batch-evaluate into a CSV table.")
	serveFlag := flagSet.String("serve-addr", "", "Address for the WebSocket server (e.g. ':8888'). Empty is disabled.")
	guiTypeFlag := flagSet.String("gui-type", "desktop", "GUI type of the input: 'desktop' or 'mobile'.")
	configFlag := flagSet.String("config", "metrics.yaml", "Path to the YAML run configuration.")
	metricsPathFlag := flagSet.String("metrics-path", "metrics", "Path to the metrics catalog root.")
	outputFlag := flagSet.String("output", "", "Result destination. Default: stdout (single image) or evaluation.csv (batch).")
	watchFlag := flagSet.Bool("watch", false, "Rebuild the registry when the metrics catalog changes on disk.")
	timeoutFlag := flagSet.Duration("timeout", engine.DefaultTimeout, "Per-metric execution deadline.")
	workersFlag := flagSet.Int("workers", engine.DefaultWorkers, "Number of concurrent workers for metric execution.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	imagePath := ""
	if *imageFlag != "" {
		imagePath = *imageFlag
	} else if *iFlag != "" {
		imagePath = *iFlag
	} else if flagSet.NArg() > 0 {
		imagePath = flagSet.Arg(0)
	}

	if imagePath == "" && *evaluateFlag == "" && *serveFlag == "" {
		slog.Debug("No input provided, printing usage and exiting.")
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

	guiType := strings.ToLower(*guiTypeFlag)
	if guiType != "desktop" && guiType != "mobile" {
		return nil, false, &ExitError{Code: 2, Message: "invalid gui-type: must be 'desktop' or 'mobile'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ImagePath:   imagePath,
		EvaluateDir: *evaluateFlag,
		ServeAddr:   *serveFlag,
		GuiType:     guiType,
		ConfigPath:  *configFlag,
		MetricsPath: *metricsPathFlag,
		OutputPath:  *outputFlag,
		Watch:       *watchFlag,
		Timeout:     *timeoutFlag,
		Workers:     *workersFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
