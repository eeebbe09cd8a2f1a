// Package runconfig models the per-invocation run configuration: which
// metrics to execute, in what order, and with which parameters.
//
// The raw document is declarative YAML loaded from a configurable location.
// Resolving it against a registry snapshot yields the ordered run plan the
// execution coordinator consumes. A raw document may reference identifiers
// the registry does not know; that is a valid, representable state (the
// entry is retained with a missing marker), not a construction error.
package runconfig

import "github.com/vk/uimetricsgo/internal/metric"

// Entry is one planned metric invocation.
type Entry struct {
	// Id is the metric identifier in canonical "m<number>" form.
	Id string

	// Missing marks an identifier the registry snapshot does not know.
	// Retained so downstream reporting can surface it instead of silently
	// dropping the request.
	Missing bool

	// Params holds the merged parameters: descriptor defaults overlaid with
	// run-supplied overrides, override winning key by key. Nil for missing
	// entries.
	Params metric.Params
}

// RunConfig is the ordered, parameter-resolved run plan for one invocation.
// Order is preserved from the raw document and is part of the external
// contract: results are emitted in exactly this order.
type RunConfig struct {
	Entries []Entry
}

// Raw is the declarative run configuration document as authored.
type Raw struct {
	Metrics []RawEntry `yaml:"metrics"`
}

// RawEntry selects and parameterizes a single metric.
type RawEntry struct {
	Id         string         `yaml:"id"`
	Enabled    bool           `yaml:"enabled"`
	Parameters map[string]any `yaml:"parameters"`
}
