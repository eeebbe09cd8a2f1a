// Package evaluator batch-evaluates a directory of GUI design screenshots
// and serializes the results to a CSV table, one row per design.
package evaluator

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/uimetricsgo/internal/ctxlog"
	"github.com/vk/uimetricsgo/internal/engine"
	"github.com/vk/uimetricsgo/internal/fsutil"
	"github.com/vk/uimetricsgo/internal/imgutil"
	"github.com/vk/uimetricsgo/internal/metric"
	"github.com/vk/uimetricsgo/internal/registry"
	"github.com/vk/uimetricsgo/internal/result"
	"github.com/vk/uimetricsgo/internal/runconfig"
)

// Evaluator drives one run per input design through the coordinator.
type Evaluator struct {
	coordinator *engine.Coordinator
	registry    *registry.Registry
	raw         *runconfig.Raw
}

// New creates an Evaluator over a fixed registry snapshot and raw run
// configuration. The configuration is resolved once; every design is
// evaluated against the same plan.
func New(coordinator *engine.Coordinator, reg *registry.Registry, raw *runconfig.Raw) *Evaluator {
	return &Evaluator{coordinator: coordinator, registry: reg, raw: raw}
}

// Run evaluates every PNG in inputDir (recursively, sorted by path) and
// writes the CSV table to outputFile. A design whose image cannot be read or
// whose run aborts is logged and skipped; the batch itself continues.
func (e *Evaluator) Run(ctx context.Context, inputDir, outputFile string, guiType metric.GuiType) error {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(inputDir, ".png")
	if err != nil {
		return fmt.Errorf("failed to list input designs: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("No PNG designs found in input directory.", "dir", inputDir)
	}

	cfg, err := runconfig.Resolve(e.raw, e.registry)
	if err != nil {
		return fmt.Errorf("failed to resolve run configuration: %w", err)
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(header(cfg)); err != nil {
		return err
	}

	for _, file := range files {
		payload, err := imgutil.ReadImageBase64(file)
		if err != nil {
			logger.Error("Skipping unreadable design.", "file", file, "error", err)
			continue
		}
		image := &metric.GuiImage{Data: payload, GuiType: guiType}

		start := time.Now()
		run, err := e.coordinator.Execute(ctx, cfg, e.registry, image)
		if err != nil {
			logger.Error("Skipping design: run aborted.", "file", file, "error", err)
			continue
		}

		if err := w.Write(row(filepath.Base(file), time.Since(start), run)); err != nil {
			return err
		}
		// Flush after every design so a crash loses at most one row.
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}

		logger.Info("Design evaluated.", "file", filepath.Base(file),
			"succeeded", run.Succeeded, "failed", run.Failed, "skipped", run.Skipped)
	}

	w.Flush()
	return w.Error()
}

// header builds the column list: bookkeeping columns followed by three
// columns per planned metric.
func header(cfg *runconfig.RunConfig) []string {
	cols := []string{"filename", "evaluation_date", "total_evaluation_time_s"}
	for _, entry := range cfg.Entries {
		cols = append(cols,
			entry.Id+"_status",
			entry.Id+"_results",
			entry.Id+"_time_s",
		)
	}
	return cols
}

// row renders one design's outcomes in header order.
func row(filename string, total time.Duration, run *result.RunResult) []string {
	cols := []string{
		filename,
		time.Now().Format("2006-01-02"),
		fmt.Sprintf("%.4f", total.Seconds()),
	}
	for _, r := range run.Results {
		cols = append(cols, string(r.Status), measuresCell(r), fmt.Sprintf("%.4f", r.Duration.Seconds()))
	}
	return cols
}

// measuresCell joins a result's measures into one semicolon-separated cell.
func measuresCell(r result.MetricResult) string {
	if r.Status != result.StatusSuccess {
		return r.Error
	}
	cell := ""
	for i, m := range r.Measures {
		if i > 0 {
			cell += ";"
		}
		cell += result.FormatMeasure(m)
	}
	return cell
}
