package fbdraw

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fbdraw package.
var (
	// ErrNoSurface is returned when an engine is attached to a nil surface.
	ErrNoSurface = errors.New("fbdraw: no surface")

	// ErrInvalidBitmap is returned for bitmaps whose buffer cannot hold
	// their geometry.
	ErrInvalidBitmap = errors.New("fbdraw: invalid bitmap")

	// ErrUnknownFormat is returned for bitmap formats the compositor does not
	// know.
	ErrUnknownFormat = errors.New("fbdraw: unknown bitmap format")
)

// MapError reports a failure to map a display surface. After a MapError
// the engine keeps drawing into its canvas but Flush does nothing until a
// later Map or Attach succeeds.
type MapError struct {
	Backend string
	Device  string
	Err     error
}

func (e *MapError) Error() string {
	switch {
	case e.Backend == "" && e.Device == "":
		return fmt.Sprintf("fbdraw: map surface: %v", e.Err)
	case e.Device == "":
		return fmt.Sprintf("fbdraw: map %s: %v", e.Backend, e.Err)
	default:
		return fmt.Sprintf("fbdraw: map %s %q: %v", e.Backend, e.Device, e.Err)
	}
}

func (e *MapError) Unwrap() error {
	return e.Err
}
