// Package platform defines the collaborators the jiggler drives: the pointer
// that synthesizes mouse input and the display that reports screen geometry.
package platform

import "fmt"

// Point is a position in screen coordinates of the primary display.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Near reports whether p lies within tol pixels of q on both axes.
func (p Point) Near(q Point, tol int) bool {
	return abs(p.X-q.X) <= tol && abs(p.Y-q.Y) <= tol
}

// MoveTolerance is how far a synthesized move may land from its target and
// still count as reaching it. Scaled displays round warps by a pixel or two.
const MoveTolerance = 2

// Origin is the top-left screen corner reserved for the failsafe.
var Origin = Point{}

// Geometry is the size of the primary display in pixels.
type Geometry struct {
	Width  int
	Height int
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// Center returns the middle of the screen.
func (g Geometry) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// Pointer reads and moves the OS cursor. Implementations may fail on any call.
type Pointer interface {
	Location() (Point, error)
	MoveTo(p Point) error
}

// Warper is implemented by pointers that can move without verifying where
// the cursor landed. Glides use it for intermediate steps.
type Warper interface {
	Warp(p Point) error
}

// Clicker is implemented by pointers that can press the primary button.
type Clicker interface {
	Click() error
}

// Display reports the primary display size.
type Display interface {
	PrimarySize() (Geometry, error)
}

// Capability is the result of checking whether this session can synthesize
// pointer input at all.
type Capability struct {
	// CanSimulate indicates whether pointer moves will reach the desktop
	CanSimulate bool

	// ErrorMessage is a user-friendly reason when CanSimulate is false
	ErrorMessage string

	// Instructions describes how to fix or grant access
	Instructions string
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
