// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"slices"
	"testing"
)

func memoryFactory(device string) (Surface, error) {
	w, h, f, err := ParseGeometry(device)
	if err != nil {
		return nil, err
	}
	return NewMemorySurface(w, h, f), nil
}

// TestRegistryRegister tests backend registration.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	r.Register("test", 50, memoryFactory, nil)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("registered backend not found")
	}

	if entry.Name != "test" {
		t.Errorf("Name = %s, want test", entry.Name)
	}
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50", entry.Priority)
	}
	if !entry.Available() {
		t.Error("backend should be available (nil Available func)")
	}
}

// TestRegistryUnregister tests backend removal.
func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()

	r.Register("temp", 10, memoryFactory, nil)

	if _, ok := r.Get("temp"); !ok {
		t.Fatal("backend should exist before unregister")
	}

	r.Unregister("temp")

	if _, ok := r.Get("temp"); ok {
		t.Error("backend should not exist after unregister")
	}
}

// TestRegistryList tests listing backends.
func TestRegistryList(t *testing.T) {
	r := NewRegistry()

	if r.List() != nil {
		t.Error("empty registry should list nil")
	}

	r.Register("low", 10, memoryFactory, nil)
	r.Register("high", 100, memoryFactory, nil)
	r.Register("mid", 50, memoryFactory, nil)
	r.Register("also-mid", 50, memoryFactory, nil)

	want := []string{"high", "also-mid", "mid", "low"}
	if got := r.List(); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

// TestRegistryAvailable tests filtering by availability.
func TestRegistryAvailable(t *testing.T) {
	r := NewRegistry()

	r.Register("available", 100, memoryFactory, func() bool { return true })
	r.Register("unavailable", 200, memoryFactory, func() bool { return false })

	available := r.Available()

	if len(available) != 1 {
		t.Fatalf("expected 1 available backend, got %d", len(available))
	}
	if available[0] != "available" {
		t.Errorf("expected 'available', got %s", available[0])
	}
}

// TestRegistryOpen tests opening a named backend.
func TestRegistryOpen(t *testing.T) {
	r := NewRegistry()
	r.Register("specific", 50, memoryFactory, nil)

	s, err := r.Open("specific", "50x40")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if buf := s.Buffer(); buf.Width != 50 || buf.Height != 40 {
		t.Errorf("size = %dx%d, want 50x40", buf.Width, buf.Height)
	}
}

// TestRegistryOpenNotFound tests error for unknown backend.
func TestRegistryOpenNotFound(t *testing.T) {
	r := NewRegistry()

	_, err := r.Open("nonexistent", "")
	var notFound *BackendNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected BackendNotFoundError, got %T (%v)", err, err)
	}
	if notFound.Name != "nonexistent" {
		t.Errorf("error name = %s, want nonexistent", notFound.Name)
	}
}

// TestRegistryOpenUnavailable tests error for unavailable backend.
func TestRegistryOpenUnavailable(t *testing.T) {
	r := NewRegistry()
	r.Register("unavailable", 50, memoryFactory, func() bool { return false })

	_, err := r.Open("unavailable", "10x10")
	var unavailable *BackendUnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("expected BackendUnavailableError, got %T", err)
	}
}

// TestRegistryNoBackend tests error when no backends available.
func TestRegistryNoBackend(t *testing.T) {
	r := NewRegistry()

	_, err := r.OpenBest("")
	if !errors.Is(err, ErrNoBackend) {
		t.Errorf("expected ErrNoBackend, got %v", err)
	}
}

// TestRegistryFactoryError tests handling of factory errors.
func TestRegistryFactoryError(t *testing.T) {
	r := NewRegistry()

	expectedErr := errors.New("creation failed")
	r.Register("failing", 50, func(string) (Surface, error) {
		return nil, expectedErr
	}, nil)

	if _, err := r.Open("failing", ""); !errors.Is(err, expectedErr) {
		t.Errorf("Open: expected factory error, got %v", err)
	}
	if _, err := r.OpenBest(""); !errors.Is(err, expectedErr) {
		t.Errorf("OpenBest: expected last factory error, got %v", err)
	}
}

// TestRegistryPrioritySelection tests that highest priority is selected.
func TestRegistryPrioritySelection(t *testing.T) {
	r := NewRegistry()

	var selected string
	r.Register("low", 10, func(d string) (Surface, error) {
		selected = "low"
		return memoryFactory(d)
	}, nil)
	r.Register("high", 100, func(d string) (Surface, error) {
		selected = "high"
		return memoryFactory(d)
	}, nil)

	s, err := r.OpenBest("10x10")
	if err != nil {
		t.Fatalf("OpenBest failed: %v", err)
	}
	defer s.Close()

	if selected != "high" {
		t.Errorf("selected = %s, want high (highest priority)", selected)
	}
}

// TestRegistryFallback tests that OpenBest moves on when a backend fails.
func TestRegistryFallback(t *testing.T) {
	r := NewRegistry()

	r.Register("broken", 100, func(string) (Surface, error) {
		return nil, ErrUnsupported
	}, nil)
	r.Register("memory", 10, memoryFactory, nil)

	s, err := r.OpenBest("8x8")
	if err != nil {
		t.Fatalf("OpenBest failed: %v", err)
	}
	defer s.Close()

	if _, ok := s.(*MemorySurface); !ok {
		t.Errorf("OpenBest returned %T, want *MemorySurface", s)
	}
}

// TestRegistryOverwrite tests that re-registering overwrites.
func TestRegistryOverwrite(t *testing.T) {
	r := NewRegistry()

	r.Register("test", 10, memoryFactory, nil)
	r.Register("test", 50, memoryFactory, nil)

	entry, _ := r.Get("test")
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50 (should be overwritten)", entry.Priority)
	}
}

// TestGlobalRegistry tests the built-in backends.
func TestGlobalRegistry(t *testing.T) {
	list := List()
	if !slices.Contains(list, "memory") || !slices.Contains(list, "fbdev") {
		t.Fatalf("List() = %v, want fbdev and memory registered", list)
	}
	if !slices.Contains(Available(), "memory") {
		t.Error("'memory' backend should always be available")
	}

	s, err := Open("memory", "")
	if err != nil {
		t.Fatalf("Open(memory) failed: %v", err)
	}
	defer s.Close()

	if buf := s.Buffer(); buf.Width != 800 || buf.Height != 480 {
		t.Errorf("default memory size = %dx%d, want 800x480", buf.Width, buf.Height)
	}

	if _, err := Open("memory", "bogus"); !errors.Is(err, ErrBadGeometry) {
		t.Errorf("Open(memory, bogus) = %v, want ErrBadGeometry", err)
	}
}

// TestBackendNotFoundError tests error message formatting.
func TestBackendNotFoundError(t *testing.T) {
	err := &BackendNotFoundError{Name: "vulkan"}
	if msg := err.Error(); msg != "surface: backend not found: vulkan" {
		t.Errorf("error message = %q, unexpected format", msg)
	}
}

// TestBackendUnavailableError tests error message formatting.
func TestBackendUnavailableError(t *testing.T) {
	err := &BackendUnavailableError{Name: "metal"}
	if msg := err.Error(); msg != "surface: backend unavailable: metal" {
		t.Errorf("error message = %q, unexpected format", msg)
	}
}
