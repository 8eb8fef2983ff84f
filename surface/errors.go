// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "errors"

// Sentinel errors for the surface package.
var (
	// ErrNoBackend is returned when no surface backend is registered or
	// available on the current system.
	ErrNoBackend = errors.New("surface: no backend available")

	// ErrUnsupported is returned by backends that cannot work on this
	// platform.
	ErrUnsupported = errors.New("surface: not supported on this platform")

	// ErrClosed is returned when a closed surface is committed.
	ErrClosed = errors.New("surface: closed")

	// ErrBadGeometry is returned for impossible width/height/stride
	// combinations.
	ErrBadGeometry = errors.New("surface: bad geometry")

	// ErrUnsupportedDepth is returned for pixel depths other than 16 and 32
	// bits.
	ErrUnsupportedDepth = errors.New("surface: unsupported pixel depth")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}
