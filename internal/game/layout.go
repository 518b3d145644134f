package game

import (
	"github.com/Jay-Lokhande/lazmy/internal/canvas"
	"github.com/Jay-Lokhande/lazmy/internal/config"
	"github.com/Jay-Lokhande/lazmy/internal/effects"
	"github.com/Jay-Lokhande/lazmy/internal/sketch"
)

const (
	headerTop    = 64
	sectionGap   = 48
	headingPad   = 32
	footerHeight = 24
	footerBottom = 32

	narrowViewport = 768

	titleSize        = 72
	titleSizeNarrow  = 48
	highlightSize    = 40
	scrambleSize     = 28
	footerSize       = 16
	panelSize        = 14
	lineHeightFactor = 1.3
)

// TextWidths are measured advances of the page's fixed strings.
type TextWidths struct {
	Title     float64
	Highlight []float64
	Scramble  float64
	Footer    float64
}

// PageLayout is where every block of the page sits for one viewport. The
// blocks stack in a column: header, main (sketch pad, icons, headings,
// brush strokes) and footer; main is centred between the other two.
type PageLayout struct {
	W, H float64

	TitleSize float64
	Title     canvas.Rect

	SketchOpen bool
	Sketch     sketch.Layout

	IconsX, IconsY float64

	Highlight    canvas.Rect
	HighlightBox []canvas.Rect
	Scramble     canvas.Rect

	StrokesX, StrokesY float64

	Footer canvas.Rect

	Buttons []canvas.Rect
}

func titleSizeFor(w float64) float64 {
	if w < narrowViewport {
		return titleSizeNarrow
	}
	return titleSize
}

// NewPageLayout lays the page out. buttons is how many round controls sit
// in the top-right corner.
func NewPageLayout(w, h float64, widths TextWidths, sketchOpen bool, buttons int) PageLayout {
	l := PageLayout{W: w, H: h, TitleSize: titleSizeFor(w), SketchOpen: sketchOpen}

	l.Title = centred(w, widths.Title, headerTop, l.TitleSize*lineHeightFactor)

	hlH := highlightSize * lineHeightFactor
	scH := scrambleSize * lineHeightFactor
	headingsH := headingPad + hlH + scH + headingPad

	mainH := effects.IconAreaH + sectionGap + headingsH + sectionGap + effects.StrokeStripH
	if sketchOpen {
		mainH += sketch.NewLayout(w, 0).Height() + sectionGap
	}

	l.Footer = centred(w, widths.Footer, h-footerBottom-footerHeight, footerHeight)

	top := l.Title.Y + l.Title.H + sectionGap
	bottom := l.Footer.Y - sectionGap
	y := top
	if free := bottom - top - mainH; free > 0 {
		y += free / 2
	}

	if sketchOpen {
		l.Sketch = sketch.NewLayout(w, y)
		y += l.Sketch.Height() + sectionGap
	}

	l.IconsX = (w - effects.IconAreaW) / 2
	l.IconsY = y
	y += effects.IconAreaH + sectionGap

	y += headingPad
	total := 0.0
	for _, a := range widths.Highlight {
		total += a
	}
	l.Highlight = centred(w, total, y, hlH)
	l.HighlightBox = letterBoxes(l.Highlight, widths.Highlight)
	y += hlH
	l.Scramble = centred(w, widths.Scramble, y, scH)
	y += scH + headingPad + sectionGap

	l.StrokesX = (w - effects.StrokeStripW) / 2
	l.StrokesY = y

	l.Buttons = buttonRects(w, buttons)
	return l
}

func centred(viewportW, w, y, h float64) canvas.Rect {
	return canvas.Rect{X: (viewportW - w) / 2, Y: y, W: w, H: h}
}

func letterBoxes(line canvas.Rect, advances []float64) []canvas.Rect {
	boxes := make([]canvas.Rect, len(advances))
	x := line.X
	for i, a := range advances {
		boxes[i] = canvas.Rect{X: x, Y: line.Y, W: a, H: line.H}
		x += a
	}
	return boxes
}

// HitLetter returns the index of the highlighted heading's letter under
// (x, y), or -1.
func (l PageLayout) HitLetter(x, y float64) int {
	for i, b := range l.HighlightBox {
		if b.Contains(x, y) {
			return i
		}
	}
	return -1
}

// buttonRects right-aligns n round buttons in the top-right corner, in
// order from left to right.
func buttonRects(viewportW float64, n int) []canvas.Rect {
	rects := make([]canvas.Rect, n)
	x := viewportW - config.ButtonMargin - float64(n)*config.ButtonSize - float64(max(n-1, 0))*config.ButtonGap
	for i := range rects {
		rects[i] = canvas.Rect{X: x, Y: config.ButtonMargin, W: config.ButtonSize, H: config.ButtonSize}
		x += config.ButtonSize + config.ButtonGap
	}
	return rects
}
