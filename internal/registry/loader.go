package registry

import (
	"fmt"
	"sync"

	"github.com/vk/uimetricsgo/internal/catalog"
	"github.com/vk/uimetricsgo/internal/metric"
)

// ValidationError reports a catalog entry whose implementation does not
// satisfy the execution contract. It excludes the entry from the registry
// but is never fatal to startup.
type ValidationError struct {
	Id     string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("metric %s failed validation: %s", e.Id, e.Reason)
}

// Loader turns a descriptor into a validated invocable. Successful loads are
// memoized by identifier, so repeated loads return the cached invocable.
type Loader struct {
	table *Table

	mu    sync.Mutex
	cache map[string]metric.Metric
}

// NewLoader creates a Loader backed by the given registration table.
func NewLoader(table *Table) *Loader {
	return &Loader{
		table: table,
		cache: make(map[string]metric.Metric),
	}
}

// Load resolves the implementation registered under the descriptor's
// identifier and validates it structurally: the value must satisfy the
// metric.Metric interface (the Execute capability). Anything else yields a
// *ValidationError.
func (l *Loader) Load(desc *catalog.Descriptor) (metric.Metric, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.cache[desc.Id]; ok {
		return cached, nil
	}

	impl, ok := l.table.lookup(desc.Id)
	if !ok {
		return nil, &ValidationError{Id: desc.Id, Reason: "no implementation registered"}
	}

	invocable, ok := impl.(metric.Metric)
	if !ok {
		return nil, &ValidationError{
			Id:     desc.Id,
			Reason: fmt.Sprintf("registered value of type %T does not offer Execute", impl),
		}
	}

	l.cache[desc.Id] = invocable
	return invocable, nil
}
