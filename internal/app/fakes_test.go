package app

import (
	"bytes"
	"sync"

	"github.com/stigoleg/jiggle/internal/platform"
)

type memPointer struct {
	mu    sync.Mutex
	pos   platform.Point
	moves int
}

func (p *memPointer) Location() (platform.Point, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos, nil
}

func (p *memPointer) MoveTo(to platform.Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = to
	p.moves++
	return nil
}

func (p *memPointer) Set(to platform.Point) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = to
}

func (p *memPointer) Moves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.moves
}

// clickPointer is a memPointer that can click.
type clickPointer struct {
	memPointer
	clicks int
}

func (p *clickPointer) Click() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clicks++
	return nil
}

func (p *clickPointer) Clicks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clicks
}

type staticDisplay struct {
	g   platform.Geometry
	err error
}

func (d staticDisplay) PrimarySize() (platform.Geometry, error) {
	return d.g, d.err
}

// syncBuffer is a bytes.Buffer safe for the concurrent writes of a run.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
