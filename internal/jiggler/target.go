package jiggler

import (
	"math/rand"

	"github.com/stigoleg/jiggle/internal/platform"
)

// randomMargin keeps absolute targets away from the screen edges.
const randomMargin = 50

// chooser picks tick targets. It is owned by the worker goroutine.
type chooser struct {
	rnd        *rand.Rand
	mode       Mode
	radius     int
	maxRetries int
}

// choose returns a target outside every zone. When all samples land in a
// zone the screen center is returned and fallback is true.
func (c *chooser) choose(p platform.Point, g platform.Geometry, zones []Zone) (target platform.Point, fallback bool) {
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		candidate := c.candidate(p, g)
		if !InAnyZone(candidate, zones) {
			return candidate, false
		}
	}
	return g.Center(), true
}

func (c *chooser) candidate(p platform.Point, g platform.Geometry) platform.Point {
	if c.mode == ModeRandom {
		mx := min(randomMargin, g.Width/4)
		my := min(randomMargin, g.Height/4)
		return clampToScreen(platform.Point{
			X: mx + c.rnd.Intn(max(1, g.Width-2*mx)),
			Y: my + c.rnd.Intn(max(1, g.Height-2*my)),
		}, g)
	}

	dx, dy := jitterOffset(c.rnd, c.radius)
	return clampToScreen(platform.Point{X: p.X + dx, Y: p.Y + dy}, g)
}

// jitterOffset returns a non-zero offset inside the disk of radius r, or
// zero when r is zero.
func jitterOffset(rnd *rand.Rand, r int) (int, int) {
	if r <= 0 {
		return 0, 0
	}
	for {
		dx := rnd.Intn(2*r+1) - r
		dy := rnd.Intn(2*r+1) - r
		if (dx != 0 || dy != 0) && dx*dx+dy*dy <= r*r {
			return dx, dy
		}
	}
}

// clampToScreen keeps p inside [1, W-1] x [1, H-1]. The 1 pixel margin keeps
// targets off the failsafe corner and the outer edges.
func clampToScreen(p platform.Point, g platform.Geometry) platform.Point {
	return platform.Point{
		X: min(max(p.X, 1), max(1, g.Width-1)),
		Y: min(max(p.Y, 1), max(1, g.Height-1)),
	}
}
