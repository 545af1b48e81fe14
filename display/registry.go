// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"errors"
	"sort"
	"sync"

	"github.com/gogpu/donut"
)

// Factory opens a new Display with the given options.
// Implementations should validate options and return descriptive errors.
type Factory func(opts Options) (Display, error)

// Entry represents a registered display backend.
type Entry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Built-in priorities:
	//   - 100: interactive terminal
	//   - 10: text stream
	//   - 0: file outputs (never picked automatically)
	Priority int

	// Factory opens display instances.
	Factory Factory

	// Available reports if the backend can open on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry manages registered display backends.
//
// Example usage:
//
//	d, err := display.Open("png", display.Options{Width: 800, Height: 800, Path: "out"})
//	// or pick the best interactive backend:
//	d, err := display.OpenBest(display.Options{})
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Open.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

// Register adds a backend to the global registry.
//
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Available returns names of all available backends sorted by priority.
func Available() []string {
	return globalRegistry.Available()
}

// Get returns information about a specific backend.
func Get(name string) (*Entry, bool) {
	return globalRegistry.Get(name)
}

// Open opens a display using a specific named backend.
func Open(name string, opts Options) (Display, error) {
	return globalRegistry.Open(name, opts)
}

// OpenBest opens a display using the best available backend with a
// positive priority.
func OpenBest(opts Options) (Display, error) {
	return globalRegistry.OpenBest(opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &Entry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns information about a specific backend.
func (r *Registry) Get(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	// Return a copy to prevent modification
	entryCopy := *entry
	return &entryCopy, true
}

// OpenBest opens a display using the best available backend.
// Backends with priority 0 or lower are skipped.
func (r *Registry) OpenBest(opts Options) (Display, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	priorities := make(map[string]int, len(available))
	for _, name := range available {
		priorities[name] = r.entries[name].Priority
	}
	r.mu.RUnlock()

	var lastErr error
	for _, name := range available {
		if priorities[name] <= 0 {
			continue
		}
		d, err := r.Open(name, opts)
		if err == nil {
			return d, nil
		}
		donut.Logger().Warn("display: backend failed, trying next", "backend", name, "err", err)
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoBackendAvailable
}

// Open opens a display using a specific backend.
func (r *Registry) Open(name string, opts Options) (Display, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}

	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	d, err := entry.Factory(opts)
	if err != nil {
		return nil, &OpenError{Name: name, Err: err}
	}
	donut.Logger().Info("display: opened", "backend", name, "width", d.Width(), "height", d.Height())
	return d, nil
}

// sortedNames returns backend names sorted by priority (highest first),
// ties broken by name.
// If onlyAvailable is true, filters to available backends only.
// Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	type entry struct {
		name     string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Errors.
var (
	// ErrNoBackendAvailable is returned when no display backends are
	// registered or available on the current system.
	ErrNoBackendAvailable = errors.New("display: no backend available")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "display: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "display: backend unavailable: " + e.Name
}

// OpenError wraps a failure to acquire a backend's resources.
type OpenError struct {
	Name string
	Err  error
}

func (e *OpenError) Error() string {
	return "display: open " + e.Name + ": " + e.Err.Error()
}

func (e *OpenError) Unwrap() error { return e.Err }

// init registers the built-in backends.
func init() {
	Register("term", 100, openTerm, termAvailable)
	Register("text", 10, openText, nil)
	Register("png", 0, openPNG, nil)
	Register("gif", 0, openGIF, nil)
}
