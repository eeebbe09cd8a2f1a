package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/uimetricsgo/internal/ctxlog"
	"github.com/vk/uimetricsgo/internal/metric"
	"github.com/vk/uimetricsgo/internal/registry"
	"github.com/vk/uimetricsgo/internal/result"
	"github.com/vk/uimetricsgo/internal/runconfig"
)

// invocationOutcome carries a finished invocation out of its goroutine.
type invocationOutcome struct {
	measures []cty.Value
	err      error
}

// runEntry produces the result for one run plan entry. Every fault raised by
// the invocable — error return, panic, or deadline expiry — is converted to
// a result at this boundary; nothing propagates out, so a buggy or slow
// metric can never corrupt or halt its siblings.
func (c *Coordinator) runEntry(ctx context.Context, entry runconfig.Entry, reg *registry.Registry, image *metric.GuiImage) result.MetricResult {
	logger := ctxlog.FromContext(ctx).With("metric", entry.Id)
	start := time.Now()

	res := result.MetricResult{Id: entry.Id}
	finish := func() result.MetricResult {
		res.Duration = time.Since(start)
		return res
	}

	regEntry, known := reg.Lookup(entry.Id)
	if entry.Missing || !known {
		res.Status = result.StatusSkipped
		res.Error = "unknown metric"
		logger.Warn("Skipping unknown metric.")
		return finish()
	}

	if !regEntry.Descriptor.AppliesTo(image.GuiType) {
		res.Status = result.StatusSkipped
		res.Error = "not applicable to gui_type"
		logger.Debug("Skipping inapplicable metric.", "gui_type", image.GuiType.String())
		return finish()
	}

	invCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	done := make(chan invocationOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- invocationOutcome{err: fmt.Errorf("metric panicked: %v", r)}
			}
		}()
		measures, err := regEntry.Invocable.Execute(invCtx, image, entry.Params)
		done <- invocationOutcome{measures: measures, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			res.Status = result.StatusFailure
			res.Error = out.err.Error()
			logger.Error("Metric failed.", "error", out.err)
			return finish()
		}
		// No measures is a valid success: the metric declined to produce
		// output for this image.
		res.Status = result.StatusSuccess
		res.Measures = out.measures
		logger.Debug("Metric succeeded.", "measures", len(out.measures))
		return finish()

	case <-invCtx.Done():
		// Abandon the runaway invocation; metrics are pure functions over
		// the supplied image, so nothing externally visible leaks.
		res.Status = result.StatusFailure
		if errors.Is(invCtx.Err(), context.Canceled) {
			res.Error = "run cancelled"
		} else {
			res.Error = fmt.Sprintf("metric timed out after %s", c.opts.Timeout)
		}
		logger.Error("Metric did not finish.", "error", res.Error)
		return finish()
	}
}
