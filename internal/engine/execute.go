package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/uimetricsgo/internal/ctxlog"
	"github.com/vk/uimetricsgo/internal/metric"
	"github.com/vk/uimetricsgo/internal/registry"
	"github.com/vk/uimetricsgo/internal/result"
	"github.com/vk/uimetricsgo/internal/runconfig"
)

// Execute runs every entry of the run plan against one image and returns the
// aggregated result set.
//
// Entries are dispatched onto a bounded worker pool, but the emitted results
// always match run configuration order: each worker writes into the slot
// addressed by its entry's index, never by completion order. Executing the
// identical plan against the identical image reproduces identical measures
// for deterministic metrics; the coordinator itself introduces no
// nondeterminism.
//
// The only run-level failure is an unusable image payload: in that case
// Execute returns a non-nil error wrapping ErrUnreadableImage and no result
// set. Every per-metric fault is isolated and reported inline.
func (c *Coordinator) Execute(ctx context.Context, cfg *runconfig.RunConfig, reg *registry.Registry, image *metric.GuiImage) (*result.RunResult, error) {
	logger := ctxlog.FromContext(ctx)

	if image == nil || len(image.Data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrUnreadableImage)
	}

	n := len(cfg.Entries)
	results := make([]result.MetricResult, n)

	workers := c.opts.Workers
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(n)

	for w := 0; w < workers; w++ {
		go func(workerID int) {
			logger.Debug("Worker started.", "workerID", workerID)
			for i := range jobs {
				results[i] = c.runEntry(ctx, cfg.Entries[i], reg, image)
				wg.Done()
			}
			logger.Debug("Worker finished.", "workerID", workerID)
		}(w)
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	run := result.Aggregate(results)
	logger.Info("Run complete.",
		"metrics", n, "succeeded", run.Succeeded, "failed", run.Failed, "skipped", run.Skipped)
	return run, nil
}
