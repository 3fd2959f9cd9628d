package platform

import (
	"errors"
	"sync/atomic"
)

// ErrClickUnsupported is returned by Failsafe.Click when the wrapped pointer
// cannot click.
var ErrClickUnsupported = errors.New("pointer does not support clicking")

// ErrFailsafe is returned when the cursor is observed at the top-left corner
// while the failsafe is armed. It is an operator abort, not a fault.
var ErrFailsafe = errors.New("failsafe triggered: cursor parked at top-left corner")

// Failsafe wraps a Pointer and aborts all synthesized input once the operator
// parks the cursor at Origin.
type Failsafe struct {
	pointer Pointer
	armed   atomic.Bool
}

// NewFailsafe returns a guard around p.
func NewFailsafe(p Pointer, armed bool) *Failsafe {
	f := &Failsafe{pointer: p}
	f.armed.Store(armed)
	return f
}

// SetArmed toggles the corner abort.
func (f *Failsafe) SetArmed(armed bool) {
	f.armed.Store(armed)
}

// Armed reports whether the corner abort is enabled.
func (f *Failsafe) Armed() bool {
	return f.armed.Load()
}

// Location returns the live cursor position. When armed and the cursor sits
// at Origin it also returns ErrFailsafe.
func (f *Failsafe) Location() (Point, error) {
	p, err := f.pointer.Location()
	if err != nil {
		return p, err
	}
	if f.Armed() && p == Origin {
		return p, ErrFailsafe
	}
	return p, nil
}

// MoveTo checks the corner before moving and never moves the cursor onto it.
func (f *Failsafe) MoveTo(p Point) error {
	if _, err := f.Location(); err != nil {
		return err
	}
	if f.Armed() && p == Origin {
		return ErrFailsafe
	}
	return f.pointer.MoveTo(p)
}

// Warp moves without reading the live cursor first. It still refuses Origin.
// Pointers that cannot warp fall back to MoveTo.
func (f *Failsafe) Warp(p Point) error {
	if f.Armed() && p == Origin {
		return ErrFailsafe
	}
	if w, ok := f.pointer.(Warper); ok {
		return w.Warp(p)
	}
	return f.pointer.MoveTo(p)
}

// Click checks the corner and presses the primary button.
func (f *Failsafe) Click() error {
	if _, err := f.Location(); err != nil {
		return err
	}
	c, ok := f.pointer.(Clicker)
	if !ok {
		return ErrClickUnsupported
	}
	return c.Click()
}

// CanClick reports whether p can click, looking through a Failsafe.
func CanClick(p Pointer) bool {
	if f, ok := p.(*Failsafe); ok {
		p = f.pointer
	}
	_, ok := p.(Clicker)
	return ok
}
