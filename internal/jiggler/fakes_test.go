package jiggler

import (
	"errors"
	"sync"

	"github.com/stigoleg/jiggle/internal/platform"
)

var errFakeOS = errors.New("simulated OS failure")

// fakePointer records every move. Failures are injected per call kind.
type fakePointer struct {
	mu          sync.Mutex
	pos         platform.Point
	moves       []platform.Point
	failMoves   int
	failReads   int
	panicOnRead bool
	drift       int
}

func newFakePointer(p platform.Point) *fakePointer {
	return &fakePointer{pos: p}
}

func (f *fakePointer) Location() (platform.Point, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicOnRead {
		f.panicOnRead = false
		panic("driver exploded")
	}
	if f.failReads > 0 {
		f.failReads--
		return platform.Point{}, errFakeOS
	}
	return f.pos, nil
}

func (f *fakePointer) MoveTo(p platform.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMoves > 0 {
		f.failMoves--
		return errFakeOS
	}
	f.pos = platform.Point{X: p.X + f.drift, Y: p.Y}
	f.moves = append(f.moves, p)
	return nil
}

// Set moves the cursor as a user would.
func (f *fakePointer) Set(p platform.Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos = p
}

func (f *fakePointer) Moves() []platform.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]platform.Point(nil), f.moves...)
}

func (f *fakePointer) FailNextMoves(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failMoves = n
}

// warpingPointer tells warps apart from verified moves and counts clicks.
type warpingPointer struct {
	*fakePointer
	warps  int
	clicks []platform.Point
}

func (w *warpingPointer) Warp(p platform.Point) error {
	w.mu.Lock()
	w.warps++
	w.mu.Unlock()
	return w.fakePointer.MoveTo(p)
}

func (w *warpingPointer) Click() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clicks = append(w.clicks, w.pos)
	return nil
}

// Counts returns warps, verified moves and clicks.
func (w *warpingPointer) Counts() (warps, verified int, clicks []platform.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.warps, len(w.moves) - w.warps, append([]platform.Point(nil), w.clicks...)
}

type fakeDisplay struct {
	mu       sync.Mutex
	g        platform.Geometry
	failures int
	always   bool
}

func (f *fakeDisplay) PrimarySize() (platform.Geometry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.always {
		return platform.Geometry{}, errFakeOS
	}
	if f.failures > 0 {
		f.failures--
		return platform.Geometry{}, errFakeOS
	}
	return f.g, nil
}

func (f *fakeDisplay) Resize(g platform.Geometry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.g = g
}
