package app

import (
	"errors"
	"time"
)

// Config holds everything an App instance needs to run.
type Config struct {
	// ImagePath selects single-image mode: evaluate one screenshot and emit
	// a JSON result set.
	ImagePath string

	// EvaluateDir selects batch mode: evaluate every PNG under the
	// directory and emit a CSV table.
	EvaluateDir string

	// ServeAddr selects serve mode: expose the engine on a WebSocket
	// endpoint at this address (e.g. ":8888").
	ServeAddr string

	// GuiType is "desktop" or "mobile"; applies to single-image and batch
	// modes.
	GuiType string

	// ConfigPath is the YAML run configuration location.
	ConfigPath string

	// MetricsPath is the metrics catalog root.
	MetricsPath string

	// OutputPath is the result destination. Empty means stdout for
	// single-image mode and "evaluation.csv" for batch mode.
	OutputPath string

	// Watch enables the catalog watcher: registry snapshots are rebuilt and
	// swapped when the catalog changes on disk.
	Watch bool

	Timeout   time.Duration
	Workers   int
	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	modes := 0
	for _, selected := range []bool{cfg.ImagePath != "", cfg.EvaluateDir != "", cfg.ServeAddr != ""} {
		if selected {
			modes++
		}
	}
	if modes == 0 {
		return nil, errors.New("one of an image path, an evaluation directory, or a serve address is required")
	}
	if modes > 1 {
		return nil, errors.New("image, evaluate, and serve modes are mutually exclusive")
	}

	if cfg.MetricsPath == "" {
		return nil, errors.New("MetricsPath is a required configuration field and cannot be empty")
	}
	if cfg.ServeAddr == "" && cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is required outside serve mode")
	}

	return &cfg, nil
}
