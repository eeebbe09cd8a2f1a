package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vk/uimetricsgo/internal/ctxlog"
	"github.com/vk/uimetricsgo/internal/engine"
	"github.com/vk/uimetricsgo/internal/evaluator"
	"github.com/vk/uimetricsgo/internal/imgutil"
	"github.com/vk/uimetricsgo/internal/metric"
	"github.com/vk/uimetricsgo/internal/registry"
	"github.com/vk/uimetricsgo/internal/runconfig"
	"github.com/vk/uimetricsgo/internal/server"
)

// Run executes the selected mode based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	coordinator := engine.New(engine.Options{
		Timeout: a.config.Timeout,
		Workers: a.config.Workers,
	})

	if a.config.Watch {
		go func() {
			if err := registry.WatchCatalog(ctx, a.config.MetricsPath, a.handle, a.rebuild); err != nil {
				a.logger.Error("Catalog watcher stopped.", "error", err)
			}
		}()
	}

	switch {
	case a.config.ServeAddr != "":
		srv := server.New(a.config.ServeAddr, a.handle, coordinator, a.logger)
		return srv.ListenAndServe(ctx)

	case a.config.EvaluateDir != "":
		return a.runEvaluate(ctx, coordinator)

	default:
		return a.runSingle(ctx, coordinator)
	}
}

// runSingle evaluates one screenshot and emits a JSON result set.
func (a *App) runSingle(ctx context.Context, coordinator *engine.Coordinator) error {
	guiType, err := metric.ParseGuiType(a.config.GuiType)
	if err != nil {
		return err
	}

	raw, err := runconfig.Load(a.config.ConfigPath)
	if err != nil {
		return err
	}

	payload, err := imgutil.ReadImageBase64(a.config.ImagePath)
	if err != nil {
		// No metric can operate without a payload: abort the whole run.
		return err
	}

	reg := a.handle.Current()
	cfg, err := runconfig.Resolve(raw, reg)
	if err != nil {
		return err
	}

	run, err := coordinator.Execute(ctx, cfg, reg, &metric.GuiImage{Data: payload, GuiType: guiType})
	if err != nil {
		return fmt.Errorf("run aborted: %w", err)
	}

	out := a.outW
	if a.config.OutputPath != "" {
		f, err := os.Create(a.config.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

// runEvaluate batch-evaluates a directory of designs into a CSV table.
func (a *App) runEvaluate(ctx context.Context, coordinator *engine.Coordinator) error {
	guiType, err := metric.ParseGuiType(a.config.GuiType)
	if err != nil {
		return err
	}

	raw, err := runconfig.Load(a.config.ConfigPath)
	if err != nil {
		return err
	}

	output := a.config.OutputPath
	if output == "" {
		output = "evaluation.csv"
	}

	ev := evaluator.New(coordinator, a.handle.Current(), raw)
	return ev.Run(ctx, a.config.EvaluateDir, output, guiType)
}
