// Package effects holds the decorative animations drawn around the
// particle field: the pointer trail, floating outline shapes, the edge
// waveform, brush strokes and bobbing icons. Every animation is a pure
// function of scene time so frames can be replayed in tests.
package effects

import (
	"math"
	"time"
)

// Ease maps progress in [0,1] to eased progress.
type Ease func(t float64) float64

// CubicBezier returns the CSS cubic-bezier(x1, y1, x2, y2) timing function.
func CubicBezier(x1, y1, x2, y2 float64) Ease {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	solve := func(x float64) float64 {
		s := x
		for i := 0; i < 8; i++ {
			d := sampleX(s) - x
			if math.Abs(d) < 1e-7 {
				return s
			}
			dx := slopeX(s)
			if math.Abs(dx) < 1e-6 {
				break
			}
			s -= d / dx
		}
		// Newton stalled; bisect.
		lo, hi := 0.0, 1.0
		s = x
		for i := 0; i < 64 && lo < hi; i++ {
			v := sampleX(s)
			if math.Abs(v-x) < 1e-7 {
				return s
			}
			if x > v {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return s
	}

	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		return sampleY(solve(t))
	}
}

var (
	EaseInOut = CubicBezier(0.42, 0, 0.58, 1)
	EaseOut   = CubicBezier(0, 0, 0.58, 1)
	Linear    = Ease(func(t float64) float64 { return clamp01(t) })
)

// Progress is how far into [delay, delay+dur] the time t is, in [0,1].
func Progress(t, delay, dur time.Duration) float64 {
	if dur <= 0 {
		if t >= delay {
			return 1
		}
		return 0
	}
	return clamp01(float64(t-delay) / float64(dur))
}

// Keyframes interpolates evenly spaced values at progress p, easing each
// segment separately.
func Keyframes(values []float64, p float64, ease Ease) float64 {
	switch len(values) {
	case 0:
		return 0
	case 1:
		return values[0]
	}
	p = clamp01(p)
	segs := float64(len(values) - 1)
	i := int(p * segs)
	if i >= len(values)-1 {
		return values[len(values)-1]
	}
	local := p*segs - float64(i)
	return lerp(values[i], values[i+1], ease(local))
}

// Loop is the progress within a repeating cycle of length period that
// starts after delay. Before the delay it is 0.
func Loop(t, delay, period time.Duration) float64 {
	if t < delay || period <= 0 {
		return 0
	}
	return float64((t-delay)%period) / float64(period)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
