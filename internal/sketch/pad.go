// Package sketch is the free-hand drawing pad: brush and eraser strokes on
// a translucent black sheet that can be exported as a PNG.
package sketch

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Jay-Lokhande/lazmy/internal/canvas"
	"github.com/Jay-Lokhande/lazmy/internal/palette"
)

const (
	MinBrush     = 1
	MaxBrush     = 20
	DefaultBrush = 5

	DefaultFilename = "lazmy-art-creation.png"
)

// Background is the sheet color; the eraser paints with it too.
var Background = color.NRGBA{A: 179}

// Pad turns pointer strokes into drawing calls on a surface sized w×h.
type Pad struct {
	dst  canvas.Surface
	w, h float64

	brush   int
	eraser  bool
	drawing bool
	lastX   float64
	lastY   float64
	strokes int
}

// NewPad paints the background and returns an idle pad.
func NewPad(dst canvas.Surface, w, h float64) *Pad {
	p := &Pad{dst: dst, w: w, h: h, brush: DefaultBrush}
	p.fill()
	return p
}

func (p *Pad) fill() {
	p.dst.FillRect(0, 0, float32(p.w), float32(p.h), Background)
}

// Begin starts a stroke at pad coordinates (x, y).
func (p *Pad) Begin(x, y float64) {
	p.drawing = true
	p.lastX, p.lastY = x, y
	p.strokes++
}

// Move extends the current stroke to (x, y) in color c. It reports
// whether anything was drawn.
func (p *Pad) Move(x, y float64, c palette.Color) bool {
	if !p.drawing {
		return false
	}
	clr := color.Color(c.NRGBA())
	if p.eraser {
		clr = Background
	}
	var path vector.Path
	path.MoveTo(float32(p.lastX), float32(p.lastY))
	path.LineTo(float32(x), float32(y))
	p.dst.StrokePath(&path, float32(p.brush), clr)
	p.lastX, p.lastY = x, y
	return true
}

// End finishes the stroke. Leaving the pad ends it too.
func (p *Pad) End() { p.drawing = false }

// Clear repaints the background over everything.
func (p *Pad) Clear() { p.fill() }

// SetBrush sets the brush diameter, clamped to [MinBrush, MaxBrush].
func (p *Pad) SetBrush(n int) {
	p.brush = max(MinBrush, min(MaxBrush, n))
}

func (p *Pad) Brush() int { return p.brush }

func (p *Pad) ToggleEraser() { p.eraser = !p.eraser }

func (p *Pad) Eraser() bool { return p.eraser }

func (p *Pad) Drawing() bool { return p.drawing }

// Strokes counts started strokes.
func (p *Pad) Strokes() int { return p.strokes }

// Contains reports whether pad coordinates (x, y) are on the sheet.
func (p *Pad) Contains(x, y float64) bool {
	return x >= 0 && y >= 0 && x < p.w && y < p.h
}

func (p *Pad) Size() (w, h float64) { return p.w, p.h }
