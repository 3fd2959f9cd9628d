package platform

import (
	"errors"
	"fmt"
	"image"
)

// ErrNoDisplay is returned when no source could report a usable screen size.
var ErrNoDisplay = errors.New("no active display")

// FallbackDisplay queries each Display in order and returns the first usable
// geometry. The primary source is per-monitor; later ones may report the
// whole virtual screen, which is still better than nothing.
type FallbackDisplay []Display

// PrimarySize implements Display.
func (f FallbackDisplay) PrimarySize() (Geometry, error) {
	var errs []error
	for _, d := range f {
		g, err := d.PrimarySize()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if g.Width <= 0 || g.Height <= 0 {
			errs = append(errs, fmt.Errorf("invalid geometry %s", g))
			continue
		}
		return g, nil
	}
	if len(errs) == 0 {
		return Geometry{}, ErrNoDisplay
	}
	return Geometry{}, fmt.Errorf("%w: %w", ErrNoDisplay, errors.Join(errs...))
}

// PrimaryIndex returns the index of the monitor whose bounds contain the
// desktop origin, which is where the OS places the primary display. It
// returns 0 when no monitor does.
func PrimaryIndex(bounds []image.Rectangle) int {
	for i, b := range bounds {
		if image.Pt(0, 0).In(b) {
			return i
		}
	}
	return 0
}
