package motion

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stigoleg/jiggle/internal/platform"
)

func TestNewGenerator(t *testing.T) {
	if NewGenerator(rand.New(rand.NewSource(42))) == nil {
		t.Fatal("NewGenerator returned nil")
	}
}

func TestGlideInstant(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(42)))
	from := platform.Point{X: 100, Y: 100}
	to := platform.Point{X: 400, Y: 300}

	steps := gen.Glide(from, to, 0)
	if len(steps) != 1 {
		t.Fatalf("expected a single step, got %d", len(steps))
	}
	if steps[0].Point != to || steps[0].Delay != 0 {
		t.Errorf("unexpected step %+v", steps[0])
	}
}

func TestGlideShortDistance(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(42)))
	from := platform.Point{X: 100, Y: 100}
	to := platform.Point{X: 101, Y: 100}

	steps := gen.Glide(from, to, 250*time.Millisecond)
	if len(steps) != 1 || steps[0].Point != to {
		t.Errorf("expected a direct jump, got %+v", steps)
	}
}

func TestGlideStaysOnSegment(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(7)))
	from := platform.Point{X: 10, Y: 20}
	to := platform.Point{X: 610, Y: 420}
	glide := 300 * time.Millisecond

	steps := gen.Glide(from, to, glide)
	if len(steps) < 2 || len(steps) > MaxSteps {
		t.Fatalf("step count %d out of range", len(steps))
	}
	if last := steps[len(steps)-1]; last.Point != to || last.Delay != 0 {
		t.Errorf("last step = %+v, want %v with no delay", last, to)
	}

	total := Distance(from, to)
	prev := 0.0
	var sum time.Duration
	for i, s := range steps {
		along := Distance(from, s.Point)
		// on the segment: distance from both ends adds up to the total
		if d := along + Distance(s.Point, to) - total; d > 1.5 {
			t.Errorf("step %d %v strays %.2fpx off the segment", i, s.Point, d)
		}
		if along+1 < prev {
			t.Errorf("step %d moves backwards (%.2f < %.2f)", i, along, prev)
		}
		prev = along
		sum += s.Delay
	}

	maxTotal := time.Duration(float64(glide) * StepSpeedFactorMax)
	if sum > maxTotal {
		t.Errorf("total delay %v exceeds %v", sum, maxTotal)
	}
}

func TestGlideDeterministic(t *testing.T) {
	from := platform.Point{X: 0, Y: 500}
	to := platform.Point{X: 300, Y: 200}

	a := NewGenerator(rand.New(rand.NewSource(12345))).Glide(from, to, time.Second)
	b := NewGenerator(rand.New(rand.NewSource(12345))).Glide(from, to, time.Second)

	if len(a) != len(b) {
		t.Fatalf("step counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("step %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := EaseInOutCubic(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EaseInOutCubic(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := EaseInOutCubic(float64(i) / 100)
		if v < prev {
			t.Fatalf("not monotonic at %d", i)
		}
		prev = v
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b platform.Point
		want float64
	}{
		{"same point", platform.Point{X: 3, Y: 3}, platform.Point{X: 3, Y: 3}, 0},
		{"3-4-5 triangle", platform.Point{}, platform.Point{X: 3, Y: 4}, 5},
		{"negative direction", platform.Point{X: 10, Y: 10}, platform.Point{X: 4, Y: 2}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
		})
	}
}
