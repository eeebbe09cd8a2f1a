package registry

import (
	"context"
	"sort"

	"github.com/vk/uimetricsgo/internal/catalog"
	"github.com/vk/uimetricsgo/internal/ctxlog"
	"github.com/vk/uimetricsgo/internal/metric"
)

// Entry pairs a discovered descriptor with its validated invocable.
type Entry struct {
	Descriptor *catalog.Descriptor
	Invocable  metric.Metric
}

// Registry is an immutable snapshot of validated metrics: identifier to
// (descriptor, invocable). Once Build returns, the snapshot is read-only and
// safe for concurrent lookups without locking.
type Registry struct {
	entries map[string]Entry
}

// Build joins the catalog's descriptors with the registration table. Every
// entry is loaded and structurally validated before insertion; entries that
// fail validation are logged as startup warnings and excluded. Registered
// implementations with no matching manifest produce a parity warning.
func Build(ctx context.Context, descriptors map[string]*catalog.Descriptor, loader *Loader) *Registry {
	logger := ctxlog.FromContext(ctx)

	ids := make([]string, 0, len(descriptors))
	for id := range descriptors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make(map[string]Entry, len(descriptors))
	for _, id := range ids {
		desc := descriptors[id]
		invocable, err := loader.Load(desc)
		if err != nil {
			logger.Warn("Excluding metric from registry.", "id", id, "error", err)
			continue
		}
		entries[id] = Entry{Descriptor: desc, Invocable: invocable}
	}

	for _, id := range loader.table.Ids() {
		if _, ok := descriptors[id]; !ok {
			logger.Warn("Implementation registered but no manifest discovered.", "id", id)
		}
	}

	logger.Info("Metric registry built.", "metrics", len(entries))
	return &Registry{entries: entries}
}

// Lookup returns the entry for an identifier.
func (r *Registry) Lookup(id string) (Entry, bool) {
	entry, ok := r.entries[id]
	return entry, ok
}

// Len returns the number of validated metrics in the snapshot.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Ids returns the identifiers in the snapshot in sorted order.
func (r *Registry) Ids() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
