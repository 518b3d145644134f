// Package pointer keeps the last known cursor position in viewport pixels.
package pointer

import "sync"

// Source reports the current cursor position. ebiten.CursorPosition fits.
type Source interface {
	CursorPosition() (x, y int)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (int, int)

func (f SourceFunc) CursorPosition() (int, int) { return f() }

// Tracker records every movement sample as is, with no smoothing.
type Tracker struct {
	mu       sync.RWMutex
	x, y     float64
	moved    bool
	samples  uint64
	detached bool
}

// Move records a sample. Samples after Detach are dropped.
func (t *Tracker) Move(x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.detached {
		return
	}
	t.x, t.y = x, y
	t.moved = true
	t.samples++
}

// Poll reads src and records the position if it changed since the last
// sample. It reports whether a movement was recorded.
func (t *Tracker) Poll(src Source) bool {
	ix, iy := src.CursorPosition()
	x, y := float64(ix), float64(iy)

	t.mu.RLock()
	same := t.moved && x == t.x && y == t.y
	off := t.detached
	t.mu.RUnlock()
	if same || off {
		return false
	}
	// the cursor starts at the origin before the first real event
	if !t.Moved() && x == 0 && y == 0 {
		return false
	}
	t.Move(x, y)
	return true
}

// Position is the last recorded sample, (0,0) before the first one.
func (t *Tracker) Position() (x, y float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.x, t.y
}

// Moved reports whether any sample has been recorded.
func (t *Tracker) Moved() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.moved
}

// Samples counts recorded movements.
func (t *Tracker) Samples() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.samples
}

// Detach stops recording. Position keeps returning the last sample.
func (t *Tracker) Detach() {
	t.mu.Lock()
	t.detached = true
	t.mu.Unlock()
}
