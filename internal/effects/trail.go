package effects

import (
	"math/rand/v2"
	"time"

	"github.com/Jay-Lokhande/lazmy/internal/canvas"
	"github.com/Jay-Lokhande/lazmy/internal/config"
	"github.com/Jay-Lokhande/lazmy/internal/palette"
)

const trailStartAlpha = 0.7

// Dot is one trail mark, born at scene time Born.
type Dot struct {
	X, Y float64
	Size float64
	Born time.Duration
}

// Trail drops a fading dot at every pointer movement.
type Trail struct {
	rng  *rand.Rand
	dots []Dot
}

func NewTrail(rng *rand.Rand) *Trail {
	return &Trail{rng: rng}
}

// Add records a movement sample at scene time now. The origin is skipped:
// it only shows up before the pointer has ever moved.
func (t *Trail) Add(x, y float64, now time.Duration) {
	if x == 0 && y == 0 {
		return
	}
	t.dots = append(t.dots, Dot{X: x, Y: y, Size: t.rng.Float64()*10 + 5, Born: now})
	if n := len(t.dots); n > config.TrailMaxDots {
		t.dots = append(t.dots[:0], t.dots[n-config.TrailMaxDots:]...)
	}
}

// Prune drops dots older than the trail lifetime.
func (t *Trail) Prune(now time.Duration) {
	kept := t.dots[:0]
	for _, d := range t.dots {
		if now-d.Born < config.TrailLife {
			kept = append(kept, d)
		}
	}
	t.dots = kept
}

func (t *Trail) Dots() []Dot { return append([]Dot(nil), t.dots...) }

// DotStyle is the opacity and scale of a dot of the given age.
func DotStyle(age time.Duration) (alpha, scale float64) {
	e := EaseOut(Progress(age, 0, config.TrailLife))
	return trailStartAlpha * (1 - e), 1 - e
}

// Draw paints every live dot centred on its sample point.
func (t *Trail) Draw(dst canvas.Surface, c palette.Color, now time.Duration) {
	for _, d := range t.dots {
		alpha, scale := DotStyle(now - d.Born)
		r := d.Size / 2 * scale
		if r <= 0 || alpha <= 0 {
			continue
		}
		dst.FillCircle(float32(d.X), float32(d.Y), float32(r), c.WithAlpha(alpha))
	}
}
