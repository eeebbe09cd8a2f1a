// Package result defines per-metric outcomes and the aggregated result set
// returned to callers.
package result

import (
	"time"

	"github.com/zclconf/go-cty/cty"
)

// Status classifies the outcome of one metric invocation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusSkipped Status = "skipped"
)

// MetricResult is the outcome of one planned metric invocation.
type MetricResult struct {
	// Id is the metric identifier the result belongs to.
	Id string

	// Status is success, failure, or skipped.
	Status Status

	// Measures is the ordered sequence of values the metric produced.
	// Empty for skipped/failed metrics and for metrics that legitimately
	// declined to produce output.
	Measures []cty.Value

	// Error carries the failure or skip detail; empty on success.
	Error string

	// Duration is the wall-clock time of the invocation, recorded for every
	// outcome regardless of status.
	Duration time.Duration
}

// RunResult is the ordered result set for one run: one entry per enabled run
// configuration entry, in run configuration order, plus summary counts.
type RunResult struct {
	Results   []MetricResult
	Succeeded int
	Failed    int
	Skipped   int
}

// Aggregate collects per-metric outcomes into one result set. Input order is
// preserved exactly and no entry is ever dropped, even when upstream
// reported only partial progress.
func Aggregate(results []MetricResult) *RunResult {
	run := &RunResult{Results: results}
	for _, r := range results {
		switch r.Status {
		case StatusSuccess:
			run.Succeeded++
		case StatusFailure:
			run.Failed++
		case StatusSkipped:
			run.Skipped++
		}
	}
	return run
}
