// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !linux

package surface

import "image"

// Framebuffer is only available on Linux.
type Framebuffer struct{}

// FramebufferOption configures OpenFramebuffer.
type FramebufferOption func(*fbOptions)

type fbOptions struct {
	tty string
}

// WithGraphicsConsole is a no-op outside Linux.
func WithGraphicsConsole(tty string) FramebufferOption {
	return func(o *fbOptions) {
		o.tty = tty
	}
}

// OpenFramebuffer always fails with ErrUnsupported outside Linux.
func OpenFramebuffer(device string, opts ...FramebufferOption) (*Framebuffer, error) {
	return nil, ErrUnsupported
}

func (f *Framebuffer) Buffer() Buffer                 { return Buffer{} }
func (f *Framebuffer) Commit(r image.Rectangle) error { return ErrUnsupported }
func (f *Framebuffer) ID() string                     { return "" }
func (f *Framebuffer) Close() error                   { return nil }

func framebufferAvailable() bool { return false }
