package effects

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Jay-Lokhande/lazmy/internal/canvas"
	"github.com/Jay-Lokhande/lazmy/internal/palette"
)

const (
	StrokeStripW = 448
	StrokeStripH = 96

	strokeThickness = 4
	strokeHoverGain = 1.2

	strokesFadeDelay = 1500 * time.Millisecond
	strokesFadeTime  = time.Second
)

// BrushStroke is one bar that grows to Target of its lane and picks a
// random color when clicked.
type BrushStroke struct {
	// Left is where the bar's lane starts, as a fraction of the strip.
	Left   float64
	Target float64
	Top    float64
	Delay  time.Duration
	Grow   time.Duration
}

var BrushStrokes = []BrushStroke{
	{Left: 0, Target: 0.75, Top: 0, Delay: 2 * time.Second, Grow: 2 * time.Second},
	{Left: 0.25, Target: 0.5, Top: 16, Delay: 2500 * time.Millisecond, Grow: 1500 * time.Millisecond},
	{Left: 1.0 / 3, Target: 0.33, Top: 32, Delay: 3 * time.Second, Grow: time.Second},
}

// Bounds is the bar's box at scene time t inside a strip whose top-left
// corner is (ox, oy).
func (b BrushStroke) Bounds(ox, oy float64, t time.Duration) canvas.Rect {
	w := StrokeStripW * b.Target * EaseOut(Progress(t, b.Delay, b.Grow))
	laneX := StrokeStripW * b.Left
	laneW := StrokeStripW - laneX
	return canvas.Rect{X: ox + laneX + (laneW-w)/2, Y: oy + b.Top, W: w, H: strokeThickness}
}

// StrokesOpacity is the fade-in of the whole strip.
func StrokesOpacity(t time.Duration) float64 {
	return Progress(t, strokesFadeDelay, strokesFadeTime)
}

// HitStroke returns the index of the bar under (x, y), or -1.
func HitStroke(ox, oy float64, t time.Duration, x, y float64) int {
	if StrokesOpacity(t) <= 0 {
		return -1
	}
	for i, b := range BrushStrokes {
		r := b.Bounds(ox, oy, t)
		if r.W > 0 && r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// DrawStrokes paints the bars with rounded ends; hovered is the index under
// the pointer or -1.
func DrawStrokes(dst canvas.Surface, c palette.Color, ox, oy float64, t time.Duration, hovered int) {
	alpha := StrokesOpacity(t)
	if alpha <= 0 {
		return
	}
	for i, b := range BrushStrokes {
		r := b.Bounds(ox, oy, t)
		if r.W <= 0 {
			continue
		}
		clr := c
		if i == hovered {
			clr = c.Brighten(strokeHoverGain)
		}
		half := r.H / 2
		var p vector.Path
		p.MoveTo(float32(r.X+half), float32(r.Y+half))
		p.LineTo(float32(r.X+max(half, r.W-half)), float32(r.Y+half))
		dst.StrokePath(&p, float32(r.H), clr.WithAlpha(alpha))
	}
}
