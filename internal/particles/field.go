// Package particles is the full-viewport field of drifting, pulsing,
// pointer-repelled dots linked to their neighbours.
package particles

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Jay-Lokhande/lazmy/internal/canvas"
	"github.com/Jay-Lokhande/lazmy/internal/config"
	"github.com/Jay-Lokhande/lazmy/internal/logging"
	"github.com/Jay-Lokhande/lazmy/internal/palette"
)

type State int

const (
	Uninitialized State = iota
	Ready
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Disposed:
		return "disposed"
	}
	return "unknown"
}

// Field owns its particles. Pointer position and color are read-only
// inputs to every frame.
type Field struct {
	rng *rand.Rand
	log *zap.Logger

	state         State
	width, height float64
	particles     []Particle
}

func NewField(rng *rand.Rand, log *zap.Logger) *Field {
	return &Field{rng: rng, log: logging.OrNop(log)}
}

// Count is the number of particles for a w×h viewport.
func Count(w, h int) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	n := w * h / config.AreaPerParticle
	return min(config.MaxParticles, n)
}

// Initialize sizes the field and recreates every particle. A non-positive
// viewport leaves the field untouched. It reports whether the field was
// (re)built.
func (f *Field) Initialize(w, h int) bool {
	if f.state == Disposed {
		return false
	}
	if w <= 0 || h <= 0 {
		f.log.Debug("particle field skipped empty viewport", zap.Int("width", w), zap.Int("height", h))
		return false
	}

	f.width, f.height = float64(w), float64(h)
	n := Count(w, h)
	f.particles = f.particles[:0]
	for i := 0; i < n; i++ {
		f.particles = append(f.particles, newParticle(f.rng, f.width, f.height))
	}
	f.state = Ready
	f.log.Debug("particle field initialized", zap.Int("width", w), zap.Int("height", h), zap.Int("particles", n))
	return true
}

// Resize rebuilds the field when the viewport changed.
func (f *Field) Resize(w, h int) bool {
	if f.state == Ready && float64(w) == f.width && float64(h) == f.height {
		return false
	}
	return f.Initialize(w, h)
}

// Step moves every particle by one frame.
func (f *Field) Step(mx, my float64) {
	if f.state != Ready {
		return
	}
	for i := range f.particles {
		f.particles[i].update(mx, my, f.width, f.height)
	}
}

// Draw paints links first, then dots, in color c.
func (f *Field) Draw(dst canvas.Surface, c palette.Color) {
	if f.state != Ready {
		return
	}
	dst.Clear()

	ps := f.particles
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if d >= config.LinkDistance {
				continue
			}
			o := LinkOpacity(d)
			dst.StrokeLine(
				float32(ps[i].X), float32(ps[i].Y), float32(ps[j].X), float32(ps[j].Y),
				float32(o*config.LinkWidth), c.WithAlpha(o*config.LinkAlpha),
			)
		}
	}

	fill := c.NRGBA()
	for i := range ps {
		dst.FillCircle(float32(ps[i].X), float32(ps[i].Y), float32(ps[i].Size), fill)
	}
}

// Tick advances one frame and repaints.
func (f *Field) Tick(mx, my float64, c palette.Color, dst canvas.Surface) {
	f.Step(mx, my)
	f.Draw(dst, c)
}

// Dispose drops the particles. Later calls are no-ops.
func (f *Field) Dispose() {
	f.particles = nil
	f.state = Disposed
}

func (f *Field) State() State { return f.state }

func (f *Field) Size() (w, h float64) { return f.width, f.height }

// Particles returns a copy of the current particles.
func (f *Field) Particles() []Particle {
	return append([]Particle(nil), f.particles...)
}

// LinkOpacity is 1 for touching particles and 0 at LinkDistance or beyond.
func LinkOpacity(d float64) float64 {
	if d >= config.LinkDistance {
		return 0
	}
	return 1 - math.Max(0, d)/config.LinkDistance
}
