package effects

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Jay-Lokhande/lazmy/internal/canvas"
	"github.com/Jay-Lokhande/lazmy/internal/palette"
)

// Waveform lines are authored in a 100×800 box and stretched to the strip.
const (
	waveBoxW = 100
	waveBoxH = 800

	waveDrawTime = 2 * time.Second
	waveWidth    = 2
)

type point struct{ X, Y float64 }

// WaveLine is one zig-zag polyline down the left edge.
type WaveLine struct {
	Points []point
	Delay  time.Duration
}

// Waveform is the three edge lines that draw themselves in on start.
var Waveform = []WaveLine{
	{Delay: 0, Points: []point{
		{20, 0}, {20, 120}, {40, 150}, {40, 250}, {10, 300}, {10, 400}, {30, 450},
		{30, 550}, {5, 600}, {5, 700}, {25, 750}, {25, 800},
	}},
	{Delay: 500 * time.Millisecond, Points: []point{
		{40, 0}, {40, 100}, {20, 150}, {20, 220}, {50, 280}, {50, 380}, {30, 450},
		{30, 520}, {55, 580}, {55, 680}, {35, 750}, {35, 800},
	}},
	{Delay: time.Second, Points: []point{
		{60, 0}, {60, 80}, {30, 130}, {30, 200}, {70, 260}, {70, 360}, {50, 430},
		{50, 500}, {75, 560}, {75, 660}, {55, 730}, {55, 800},
	}},
}

// StripWidth is the width of the waveform strip for a viewport width.
func StripWidth(viewportW float64) float64 {
	if viewportW >= 768 {
		return 128
	}
	return 96
}

// Reveal is the drawn fraction (and opacity) of the line at scene time t.
func (l WaveLine) Reveal(t time.Duration) float64 {
	return EaseInOut(Progress(t, l.Delay, waveDrawTime))
}

// scaled maps the line into a w×h strip.
func (l WaveLine) scaled(w, h float64) []point {
	out := make([]point, len(l.Points))
	for i, p := range l.Points {
		out[i] = point{p.X / waveBoxW * w, p.Y / waveBoxH * h}
	}
	return out
}

// PartialPath follows pts for the first frac of their total length.
func PartialPath(pts []point, frac float64) (*vector.Path, float64) {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	var p vector.Path
	if len(pts) == 0 || frac <= 0 {
		return &p, 0
	}
	want := total * clamp01(frac)
	p.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	drawn := 0.0
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := math.Hypot(b.X-a.X, b.Y-a.Y)
		if drawn+seg >= want {
			r := 0.0
			if seg > 0 {
				r = (want - drawn) / seg
			}
			p.LineTo(float32(lerp(a.X, b.X, r)), float32(lerp(a.Y, b.Y, r)))
			return &p, want
		}
		p.LineTo(float32(b.X), float32(b.Y))
		drawn += seg
	}
	return &p, drawn
}

// DrawWaveform strokes the revealed part of every line.
func DrawWaveform(dst canvas.Surface, c palette.Color, t time.Duration, stripW, h float64) {
	for _, l := range Waveform {
		r := l.Reveal(t)
		if r <= 0 {
			continue
		}
		path, _ := PartialPath(l.scaled(stripW, h), r)
		dst.StrokePath(path, waveWidth, c.WithAlpha(r))
	}
}
