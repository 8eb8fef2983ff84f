// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"sort"
	"sync"
)

// defaultFramebuffer is the device opened by OpenBest when no device is
// given for the fbdev backend.
const defaultFramebuffer = "/dev/fb0"

// Factory maps a device and returns a surface for it. The meaning of the
// device string is backend specific: a device path for "fbdev", a geometry
// such as "800x480" for "memory".
type Factory func(device string) (Surface, error)

// RegistryEntry represents a registered surface backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	//   - 100: hardware display (fbdev)
	//   - 10: memory
	Priority int

	// Factory creates surface instances.
	Factory Factory

	// Available reports if the backend is usable on this system.
	Available func() bool
}

var globalRegistry = NewRegistry()

// Registry manages registered surface backends.
//
// Example registration:
//
//	func init() {
//	    surface.Register("drm", 120, drmFactory, drmAvailable)
//	}
//
// Example usage:
//
//	s, err := surface.Open("fbdev", "/dev/fb1")
//	// or pick the best available backend:
//	s, err := surface.OpenBest("")
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Open.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
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

// Open maps device with the named backend.
func Open(name, device string) (Surface, error) {
	return globalRegistry.Open(name, device)
}

// OpenBest maps device with the highest-priority available backend that
// succeeds.
func OpenBest(device string) (Surface, error) {
	return globalRegistry.OpenBest(device)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
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

// Get returns a copy of the entry for a backend.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	entryCopy := *entry
	return &entryCopy, true
}

// OpenBest tries each available backend in priority order.
func (r *Registry) OpenBest(device string) (Surface, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	var lastErr error
	for _, name := range available {
		s, err := r.Open(name, device)
		if err == nil {
			return s, nil
		}
		Logger().Debug("surface: backend failed", "backend", name, "device", device, "err", err)
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoBackend
}

// Open maps device with the named backend.
func (r *Registry) Open(name, device string) (Surface, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	return entry.Factory(device)
}

// sortedNames returns backend names sorted by priority (highest first),
// ties broken by name. Must be called with lock held.
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

// init registers the built-in backends.
func init() {
	Register("fbdev", 100, func(device string) (Surface, error) {
		if device == "" {
			device = defaultFramebuffer
		}
		fb, err := OpenFramebuffer(device, WithGraphicsConsole("/dev/tty0"))
		if err != nil {
			return nil, err
		}
		return fb, nil
	}, framebufferAvailable)

	Register("memory", 10, func(device string) (Surface, error) {
		if device == "" {
			device = "800x480"
		}
		w, h, format, err := ParseGeometry(device)
		if err != nil {
			return nil, err
		}
		return NewMemorySurface(w, h, format), nil
	}, nil)
}
