// Package motion turns a single cursor move into a short glide of eased
// steps with slightly irregular timing.
package motion

import (
	"math"
	"math/rand"
	"time"

	"github.com/stigoleg/jiggle/internal/platform"
)

const (
	// MinStepPixels is the smallest distance worth splitting into steps.
	MinStepPixels = 2.0

	// MaxSteps caps the number of intermediate moves for one glide.
	MaxSteps = 60

	// Step timing varies between these factors of the even split.
	StepSpeedFactorMin = 0.7
	StepSpeedFactorMax = 1.3
)

// Step is one intermediate move. Delay is how long to wait after reaching
// Point before the next step.
type Step struct {
	Point platform.Point
	Delay time.Duration
}

// Generator builds glides from a random source.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator creates a new glide generator.
func NewGenerator(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Glide returns the steps that move the cursor from `from` to `to` over
// roughly d. Every step lies on the segment between the two points and the
// last step is exactly `to`. A zero duration yields a single jump.
func (g *Generator) Glide(from, to platform.Point, d time.Duration) []Step {
	dist := Distance(from, to)
	if d <= 0 || dist < MinStepPixels {
		return []Step{{Point: to}}
	}

	n := int(dist / MinStepPixels)
	if n < 2 {
		n = 2
	}
	if n > MaxSteps {
		n = MaxSteps
	}
	base := float64(d) / float64(n)

	steps := make([]Step, 0, n)
	last := from
	for i := 1; i <= n; i++ {
		p := to
		if i < n {
			p = lerp(from, to, EaseInOutCubic(float64(i)/float64(n)))
			if p == last {
				continue
			}
		}
		speed := StepSpeedFactorMin + g.rnd.Float64()*(StepSpeedFactorMax-StepSpeedFactorMin)
		steps = append(steps, Step{Point: p, Delay: time.Duration(base * speed)})
		last = p
	}
	steps[len(steps)-1].Delay = 0
	return steps
}

// EaseInOutCubic accelerates through the first half and decelerates through
// the second. t is clamped to [0,1].
func EaseInOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Distance is the Euclidean distance between two points.
func Distance(a, b platform.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func lerp(a, b platform.Point, t float64) platform.Point {
	return platform.Point{
		X: int(math.Round(float64(a.X) + float64(b.X-a.X)*t)),
		Y: int(math.Round(float64(a.Y) + float64(b.Y-a.Y)*t)),
	}
}
