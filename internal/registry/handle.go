package registry

import "sync/atomic"

// Handle holds the process-wide current registry snapshot. Reads are
// lock-free; a rebuild replaces the whole snapshot atomically, so concurrent
// runs observe either the fully-old or fully-new registry.
type Handle struct {
	current atomic.Pointer[Registry]
}

// NewHandle creates a handle holding the given initial snapshot.
func NewHandle(r *Registry) *Handle {
	h := &Handle{}
	h.current.Store(r)
	return h
}

// Current returns the registry snapshot in effect right now.
func (h *Handle) Current() *Registry {
	return h.current.Load()
}

// Replace atomically swaps in a new snapshot. In-flight runs keep the
// snapshot they started with.
func (h *Handle) Replace(r *Registry) {
	h.current.Store(r)
}
