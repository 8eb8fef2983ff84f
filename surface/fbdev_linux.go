// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build linux

package surface

import (
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux fbdev and console ioctls (linux/fb.h, linux/kd.h).
const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
	fbioPanDisplay     = 0x4606

	kdSetMode  = 0x4B3A
	kdText     = 0x00
	kdGraphics = 0x01
)

type fbBitfield struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

// fbVarScreenInfo mirrors struct fb_var_screeninfo.
type fbVarScreenInfo struct {
	Xres, Yres               uint32
	XresVirtual, YresVirtual uint32
	Xoffset, Yoffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp fbBitfield
	Nonstd                   uint32
	Activate                 uint32
	Height, Width            uint32
	AccelFlags               uint32
	Pixclock                 uint32
	LeftMargin, RightMargin  uint32
	UpperMargin, LowerMargin uint32
	HsyncLen, VsyncLen       uint32
	Sync, Vmode, Rotate      uint32
	Colorspace               uint32
	Reserved                 [4]uint32
}

// fbFixScreenInfo mirrors struct fb_fix_screeninfo.
type fbFixScreenInfo struct {
	ID                            [16]byte
	SmemStart                     uintptr
	SmemLen                       uint32
	Type, TypeAux, Visual         uint32
	Xpanstep, Ypanstep, Ywrapstep uint16
	LineLength                    uint32
	MmioStart                     uintptr
	MmioLen                       uint32
	Accel                         uint32
	Capabilities                  uint16
	Reserved                      [2]uint16
}

// Framebuffer is a Linux fbdev surface. The device memory is mapped shared,
// so pixels written to Buffer are visible immediately and Commit only
// validates the region.
type Framebuffer struct {
	fd     int
	tty    string
	mem    []byte
	buf    Buffer
	id     string
	closed bool
}

// FramebufferOption configures OpenFramebuffer.
type FramebufferOption func(*fbOptions)

type fbOptions struct {
	tty string
}

// WithGraphicsConsole switches the given virtual terminal (usually
// "/dev/tty0") to graphics mode while the framebuffer is open, which hides
// the text cursor and console output. Failure to switch is logged, not
// fatal.
func WithGraphicsConsole(tty string) FramebufferOption {
	return func(o *fbOptions) {
		o.tty = tty
	}
}

// OpenFramebuffer opens and maps a framebuffer device such as "/dev/fb0".
func OpenFramebuffer(device string, opts ...FramebufferOption) (*Framebuffer, error) {
	var o fbOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.tty != "" {
		if err := setConsoleMode(o.tty, kdGraphics); err != nil {
			Logger().Warn("surface: console graphics mode", "tty", o.tty, "err", err)
			o.tty = ""
		}
	}

	fb, err := mapFramebuffer(device)
	if err != nil {
		if o.tty != "" {
			_ = setConsoleMode(o.tty, kdText)
		}
		return nil, err
	}
	fb.tty = o.tty

	Logger().Info("surface: framebuffer mapped",
		"device", device, "id", fb.id,
		"width", fb.buf.Width, "height", fb.buf.Height,
		"stride", fb.buf.Stride, "format", fb.buf.Format.String(),
		"size", len(fb.mem))
	return fb, nil
}

func mapFramebuffer(device string) (*Framebuffer, error) {
	fd, err := unix.Open(device, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("surface: open %s: %w", device, err)
	}

	var fix fbFixScreenInfo
	if err := ioctl(fd, fbioGetFScreenInfo, unsafe.Pointer(&fix)); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("surface: FBIOGET_FSCREENINFO %s: %w", device, err)
	}
	var vinfo fbVarScreenInfo
	if err := ioctl(fd, fbioGetVScreenInfo, unsafe.Pointer(&vinfo)); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("surface: FBIOGET_VSCREENINFO %s: %w", device, err)
	}

	format, ok := FormatForDepth(int(vinfo.BitsPerPixel))
	if !ok {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("%w: %s is %d bpp", ErrUnsupportedDepth, device, vinfo.BitsPerPixel)
	}

	mem, err := unix.Mmap(fd, 0, int(fix.SmemLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("surface: mmap %s: %w", device, err)
	}

	buf := Buffer{
		Pix:    mem,
		Width:  int(vinfo.Xres),
		Height: int(vinfo.Yres),
		Stride: int(fix.LineLength),
		Format: format,
	}
	if err := buf.Validate(); err != nil {
		_ = unix.Munmap(mem)
		_ = unix.Close(fd)
		return nil, fmt.Errorf("surface: %s: %w", device, err)
	}

	// Draw into the first page of the virtual screen.
	if vinfo.Xoffset != 0 || vinfo.Yoffset != 0 {
		vinfo.Xoffset, vinfo.Yoffset = 0, 0
		if err := ioctl(fd, fbioPanDisplay, unsafe.Pointer(&vinfo)); err != nil {
			Logger().Warn("surface: FBIOPAN_DISPLAY failed", "device", device, "err", err)
		}
	}

	return &Framebuffer{
		fd:  fd,
		mem: mem,
		buf: buf,
		id:  unix.ByteSliceToString(fix.ID[:]),
	}, nil
}

// Buffer returns the mapped device memory.
func (f *Framebuffer) Buffer() Buffer {
	return f.buf
}

// Commit validates r. The mapping is shared, so the pixels are already on
// the device.
func (f *Framebuffer) Commit(r image.Rectangle) error {
	if f.closed {
		return ErrClosed
	}
	if !r.In(f.buf.Bounds()) {
		return fmt.Errorf("%w: commit %v outside %v", ErrBadGeometry, r, f.buf.Bounds())
	}
	return nil
}

// ID returns the driver identification string.
func (f *Framebuffer) ID() string {
	return f.id
}

// Close unmaps the framebuffer, closes the device and restores text mode
// on the console if it was switched.
func (f *Framebuffer) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	var firstErr error
	if err := unix.Munmap(f.mem); err != nil {
		firstErr = fmt.Errorf("surface: munmap: %w", err)
	}
	f.mem = nil
	f.buf.Pix = nil
	if err := unix.Close(f.fd); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("surface: close: %w", err)
	}
	if f.tty != "" {
		if err := setConsoleMode(f.tty, kdText); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func setConsoleMode(tty string, mode uintptr) error {
	fd, err := unix.Open(tty, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("surface: open %s: %w", tty, err)
	}
	defer func() {
		_ = unix.Close(fd)
	}()

	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), kdSetMode, mode); errno != 0 {
		return fmt.Errorf("surface: KDSETMODE %s: %w", tty, errno)
	}
	return nil
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg)); errno != 0 {
		return errno
	}
	return nil
}

func framebufferAvailable() bool {
	return unix.Access(defaultFramebuffer, unix.R_OK|unix.W_OK) == nil
}
