// Package text animates the page's two headings: one that scrambles into
// place and one whose letters spring in and take turns lighting up.
package text

import (
	"math/rand/v2"
	"time"
)

const (
	ScrambleGlyphs = "!<>-_\\/[]{}—=+*^?#________"

	scrambleFirstRun = 2 * time.Second
	scrambleInterval = 30 * time.Millisecond
	scrambleRepeat   = 5 * time.Second
	scrambleStep     = 1.0 / 3
)

// Scrambler reveals its text left to right out of random glyphs. It is
// driven by scene time, so it only moves when Update is called.
type Scrambler struct {
	rng    *rand.Rand
	text   []rune
	glyphs []rune
	shown  []rune

	running   bool
	iteration float64
	nextTick  time.Duration
	nextRun   time.Duration
	idle      bool
	runs      int
}

func NewScrambler(s string, rng *rand.Rand) *Scrambler {
	r := []rune(s)
	return &Scrambler{
		rng:     rng,
		text:    r,
		glyphs:  []rune(ScrambleGlyphs),
		shown:   append([]rune(nil), r...),
		nextRun: scrambleFirstRun,
	}
}

// Update catches the animation up to scene time now.
func (s *Scrambler) Update(now time.Duration) {
	if !s.running && !s.idle && now >= s.nextRun {
		s.start(s.nextRun)
	}
	for s.running && now >= s.nextTick {
		s.step(s.nextTick)
		s.nextTick += scrambleInterval
	}
}

// Click starts a run at now unless one is already going. It reports
// whether a run started.
func (s *Scrambler) Click(now time.Duration) bool {
	if s.running {
		return false
	}
	s.start(now)
	return true
}

// Stop halts the animation for good.
func (s *Scrambler) Stop() {
	s.running = false
	s.idle = true
}

func (s *Scrambler) start(at time.Duration) {
	s.running = true
	s.iteration = 0
	s.nextTick = at + scrambleInterval
	s.runs++
}

func (s *Scrambler) step(at time.Duration) {
	for i := range s.text {
		if float64(i) < s.iteration {
			s.shown[i] = s.text[i]
			continue
		}
		s.shown[i] = s.glyphs[s.rng.IntN(len(s.glyphs))]
	}
	if s.iteration >= float64(len(s.text)) {
		s.running = false
		if !s.idle {
			s.nextRun = at + scrambleRepeat
		}
	}
	s.iteration += scrambleStep
}

func (s *Scrambler) Text() string { return string(s.shown) }

func (s *Scrambler) Running() bool { return s.running }

// Runs counts started runs.
func (s *Scrambler) Runs() int { return s.runs }
