package registry

import (
	"fmt"
	"log/slog"
	"sort"
)

// Module is the interface metric packages implement to be registered.
type Module interface {
	Register(t *Table)
}

// Table is the build-time registration table: metric identifier to the raw,
// not-yet-validated implementation value. Registration deliberately accepts
// `any` so that conformance is checked structurally by the Loader rather
// than at the registration call site; a package that registers a value
// without the Execute capability is excluded at build time with a warning
// instead of failing compilation of the whole table.
type Table struct {
	impls map[string]any
}

// NewTable creates an empty registration table.
func NewTable() *Table {
	return &Table{impls: make(map[string]any)}
}

// RegisterMetric registers an implementation under a metric identifier.
// Registering the same identifier twice is a programmer error.
func (t *Table) RegisterMetric(id string, impl any) {
	if _, exists := t.impls[id]; exists {
		panic(fmt.Sprintf("metric implementation with id '%s' already registered", id))
	}
	slog.Debug("Registering metric implementation.", "id", id)
	t.impls[id] = impl
}

// Ids returns the registered identifiers in sorted order.
func (t *Table) Ids() []string {
	ids := make([]string, 0, len(t.impls))
	for id := range t.impls {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// lookup returns the raw registered value for an identifier.
func (t *Table) lookup(id string) (any, bool) {
	impl, ok := t.impls[id]
	return impl, ok
}
