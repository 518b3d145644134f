package text

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	entryDelay   = 500 * time.Millisecond
	entryStagger = 60 * time.Millisecond
	entryDrop    = 20

	highlightStart = 2 * time.Second
	highlightOn    = 300 * time.Millisecond
	highlightOff   = 200 * time.Millisecond

	liftY     = -10
	liftScale = 1.2
	maxTilt   = 5
)

// Spring constants as stiffness/damping with unit mass.
var (
	entryFrequency, entryDamping = springParams(100, 12)
	liftFrequency, liftDamping   = springParams(300, 10)
)

func springParams(stiffness, damping float64) (angularFrequency, ratio float64) {
	w := math.Sqrt(stiffness)
	return w, damping / (2 * w)
}

type motion struct{ pos, vel float64 }

func (m *motion) step(s harmonica.Spring, target float64) float64 {
	m.pos, m.vel = s.Update(m.pos, m.vel, target)
	return m.pos
}

type letter struct {
	r rune

	y, opacity        motion
	lift, scale, tilt motion
	tiltTarget        float64
	wasActive         bool
}

// Letter is one glyph's animated state for drawing.
type Letter struct {
	Rune     rune
	Y        float64
	Opacity  float64
	Scale    float64
	Rotation float64
	Active   bool
}

// Highlighter springs its letters in one by one, then walks a highlight
// across them. A hovered letter takes over from the walking highlight.
type Highlighter struct {
	rng     *rand.Rand
	letters []letter
	entry   harmonica.Spring
	lift    harmonica.Spring

	now   time.Duration
	hover int
}

// NewHighlighter steps its springs at fps frames per second.
func NewHighlighter(s string, rng *rand.Rand, fps int) *Highlighter {
	h := &Highlighter{
		rng:   rng,
		entry: harmonica.NewSpring(harmonica.FPS(fps), entryFrequency, entryDamping),
		lift:  harmonica.NewSpring(harmonica.FPS(fps), liftFrequency, liftDamping),
		hover: -1,
	}
	for _, r := range s {
		l := letter{r: r}
		l.y.pos = entryDrop
		l.scale.pos = 1
		h.letters = append(h.letters, l)
	}
	return h
}

// HighlightAt is the index lit by the walking highlight at scene time t,
// or -1 between letters and before it starts.
func HighlightAt(t time.Duration, n int) int {
	if n == 0 || t < highlightStart {
		return -1
	}
	period := highlightOn + highlightOff
	since := t - highlightStart
	if since%period >= highlightOn {
		return -1
	}
	return int(since/period) % n
}

// SetHover marks letter i as hovered; -1 clears it.
func (h *Highlighter) SetHover(i int) {
	if i < -1 || i >= len(h.letters) {
		i = -1
	}
	h.hover = i
}

// Active is the hovered letter, or else the highlighted one, or -1.
func (h *Highlighter) Active() int {
	if h.hover >= 0 {
		return h.hover
	}
	return HighlightAt(h.now, len(h.letters))
}

// Update advances every spring by one frame at scene time now.
func (h *Highlighter) Update(now time.Duration) {
	h.now = now
	active := h.Active()
	for i := range h.letters {
		l := &h.letters[i]

		yTarget, oTarget := float64(entryDrop), 0.0
		if now >= entryDelay+time.Duration(i)*entryStagger {
			yTarget, oTarget = 0, 1
		}
		l.y.step(h.entry, yTarget)
		l.opacity.step(h.entry, oTarget)

		on := i == active
		if on && !l.wasActive {
			l.tiltTarget = h.rng.Float64()*2*maxTilt - maxTilt
		}
		l.wasActive = on
		if on {
			l.lift.step(h.lift, liftY)
			l.scale.step(h.lift, liftScale)
			l.tilt.step(h.lift, l.tiltTarget)
		} else {
			l.lift.step(h.lift, 0)
			l.scale.step(h.lift, 1)
			l.tilt.step(h.lift, 0)
		}
	}
}

// Letters returns the drawable state of every letter.
func (h *Highlighter) Letters() []Letter {
	active := h.Active()
	out := make([]Letter, len(h.letters))
	for i, l := range h.letters {
		out[i] = Letter{
			Rune:     l.r,
			Y:        l.y.pos + l.lift.pos,
			Opacity:  math.Max(0, math.Min(1, l.opacity.pos)),
			Scale:    l.scale.pos,
			Rotation: l.tilt.pos,
			Active:   i == active,
		}
	}
	return out
}

func (h *Highlighter) Len() int { return len(h.letters) }
