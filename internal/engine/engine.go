// Package engine implements the execution coordinator: it runs every planned
// metric against one image, isolating per-metric failures and timeouts, and
// returns results in run configuration order.
package engine

import (
	"errors"
	"time"
)

// Defaults for the execution options. Deployments tune both via
// configuration; neither is part of the external contract.
const (
	DefaultTimeout = 10 * time.Second
	DefaultWorkers = 4
)

// ErrUnreadableImage marks a run aborted because no metric could operate on
// the supplied image payload. Callers receive this (wrapped) instead of a
// partial or misleadingly complete result set.
var ErrUnreadableImage = errors.New("unreadable gui image")

// Options bound a coordinator's resource usage.
type Options struct {
	// Timeout is the per-metric invocation deadline.
	Timeout time.Duration

	// Workers is the size of the bounded worker pool metric invocations are
	// dispatched onto.
	Workers int
}

// Coordinator executes run plans. It holds no per-run state and is safe for
// concurrent use: invocations share only the read-only image and the
// read-only registry snapshot.
type Coordinator struct {
	opts Options
}

// New creates a Coordinator, applying defaults for unset options.
func New(opts Options) *Coordinator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &Coordinator{opts: opts}
}
