package jiggler

import (
	"fmt"

	"github.com/stigoleg/jiggle/internal/platform"
)

// Edge is the screen edge the taskbar is docked to.
type Edge string

const (
	EdgeBottom Edge = "bottom"
	EdgeTop    Edge = "top"
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
)

// Valid reports whether e names a screen edge.
func (e Edge) Valid() bool {
	switch e {
	case EdgeBottom, EdgeTop, EdgeLeft, EdgeRight:
		return true
	}
	return false
}

// Size is a width and height in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

func (s Size) empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Zone is a screen rectangle no target may land in. Bounds are inclusive.
type Zone struct {
	Name string
	XMin int
	YMin int
	XMax int
	YMax int
}

// Contains reports whether p lies inside the zone.
func (z Zone) Contains(p platform.Point) bool {
	return p.X >= z.XMin && p.X <= z.XMax && p.Y >= z.YMin && p.Y <= z.YMax
}

func (z Zone) String() string {
	return fmt.Sprintf("%s[%d,%d..%d,%d]", z.Name, z.XMin, z.YMin, z.XMax, z.YMax)
}

// ZoneSizes holds the heuristic sizes of the regions presumed to contain UI
// controls. The numbers are tunable defaults, not a contract.
type ZoneSizes struct {
	// TopRight covers the close/maximize/minimize buttons of maximized windows.
	TopRight Size

	// StartMenu covers the start button at the leading end of the taskbar.
	StartMenu Size

	// TaskbarHeight is the thickness of the taskbar band along TaskbarEdge.
	TaskbarHeight int
	TaskbarEdge   Edge

	// CornerGuard keeps targets away from the failsafe corner.
	CornerGuard int
}

// DefaultZoneSizes returns the sizes used when nothing is configured.
func DefaultZoneSizes() ZoneSizes {
	return ZoneSizes{
		TopRight:      Size{Width: 120, Height: 40},
		StartMenu:     Size{Width: 60, Height: 40},
		TaskbarHeight: 40,
		TaskbarEdge:   EdgeBottom,
		CornerGuard:   4,
	}
}

// DeriveZones computes the avoidance zones for a screen. Empty sizes produce
// no zone.
func DeriveZones(g platform.Geometry, s ZoneSizes) []Zone {
	w, h := g.Width, g.Height
	right, bottom := w-1, h-1
	zones := make([]Zone, 0, 4)

	if !s.TopRight.empty() {
		zones = append(zones, Zone{
			Name: "window-controls",
			XMin: max(0, w-s.TopRight.Width),
			YMin: 0,
			XMax: right,
			YMax: min(bottom, s.TopRight.Height-1),
		})
	}

	if t := s.TaskbarHeight; t > 0 {
		z := Zone{Name: "taskbar", XMin: 0, YMin: 0, XMax: right, YMax: bottom}
		switch s.TaskbarEdge {
		case EdgeTop:
			z.YMax = min(bottom, t-1)
		case EdgeLeft:
			z.XMax = min(right, t-1)
		case EdgeRight:
			z.XMin = max(0, w-t)
		default:
			z.YMin = max(0, h-t)
		}
		zones = append(zones, z)
	}

	if !s.StartMenu.empty() {
		sw, sh := s.StartMenu.Width, s.StartMenu.Height
		z := Zone{Name: "start-menu", XMin: 0, YMin: 0, XMax: min(right, sw-1), YMax: min(bottom, sh-1)}
		switch s.TaskbarEdge {
		case EdgeTop, EdgeLeft:
		case EdgeRight:
			z.XMin, z.XMax = max(0, w-sw), right
		default:
			z.YMin, z.YMax = max(0, h-sh), bottom
		}
		zones = append(zones, z)
	}

	if c := s.CornerGuard; c > 0 {
		zones = append(zones, Zone{Name: "failsafe-corner", XMin: 0, YMin: 0, XMax: c - 1, YMax: c - 1})
	}

	return zones
}

// InAnyZone reports whether p lies inside any of the zones.
func InAnyZone(p platform.Point, zones []Zone) bool {
	for _, z := range zones {
		if z.Contains(p) {
			return true
		}
	}
	return false
}
