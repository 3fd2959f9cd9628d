// Package robot implements the platform collaborators on top of robotgo for
// pointer input and kbinani/screenshot for monitor bounds.
package robot

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"

	"github.com/stigoleg/jiggle/internal/platform"
)

// ErrMoveBlocked is returned when a synthesized move did not reach the cursor,
// usually because the OS denied input injection.
var ErrMoveBlocked = errors.New("mouse movement appears blocked (input permission not granted)")

// settleDelay gives the window server time to apply a warp before read-back.
const settleDelay = 10 * time.Millisecond

// Pointer drives the OS cursor through robotgo.
type Pointer struct{}

// NewPointer returns a robotgo-backed pointer.
func NewPointer() *Pointer {
	return &Pointer{}
}

// Location implements platform.Pointer.
func (p *Pointer) Location() (platform.Point, error) {
	x, y := robotgo.Location()
	return platform.Point{X: x, Y: y}, nil
}

// MoveTo implements platform.Pointer. The move is verified by reading the
// cursor back.
func (p *Pointer) MoveTo(target platform.Point) error {
	robotgo.Move(target.X, target.Y)
	time.Sleep(settleDelay)

	x, y := robotgo.Location()
	if got := (platform.Point{X: x, Y: y}); !got.Near(target, platform.MoveTolerance) {
		return fmt.Errorf("%w: wanted %s, cursor at %s", ErrMoveBlocked, target, got)
	}
	return nil
}

// Warp implements platform.Warper. It moves without settling or read-back.
func (p *Pointer) Warp(target platform.Point) error {
	robotgo.Move(target.X, target.Y)
	return nil
}

// Click implements platform.Clicker with a single left click.
func (p *Pointer) Click() error {
	robotgo.Click("left", false)
	return nil
}

// Display reports the primary monitor through screenshot, which enumerates
// monitors individually. Enumeration order is not guaranteed to put the
// primary first, so the monitor containing the desktop origin wins.
type Display struct{}

// PrimarySize implements platform.Display.
func (Display) PrimarySize() (platform.Geometry, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return platform.Geometry{}, platform.ErrNoDisplay
	}
	bounds := make([]image.Rectangle, n)
	for i := range bounds {
		bounds[i] = screenshot.GetDisplayBounds(i)
	}
	b := bounds[platform.PrimaryIndex(bounds)]
	return platform.Geometry{Width: b.Dx(), Height: b.Dy()}, nil
}

// ScreenSize reports the main screen as robotgo sees it. On multi-monitor
// setups this may be the whole virtual screen, so it is only a fallback.
type ScreenSize struct{}

// PrimarySize implements platform.Display.
func (ScreenSize) PrimarySize() (platform.Geometry, error) {
	w, h := robotgo.GetScreenSize()
	return platform.Geometry{Width: w, Height: h}, nil
}

// NewDisplay returns the display chain used in production.
func NewDisplay() platform.Display {
	return platform.FallbackDisplay{Display{}, ScreenSize{}}
}
