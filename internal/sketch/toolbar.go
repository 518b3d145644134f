package sketch

import "github.com/Jay-Lokhande/lazmy/internal/canvas"

// Tool is a toolbar control.
type Tool int

const (
	ToolNone Tool = iota
	ToolSlider
	ToolEraser
	ToolClear
	ToolDownload
)

const (
	PadMaxWidth = 672

	ToolbarHeight = 32
	toolbarGap    = 8
	toolButton    = 32
	sliderWidth   = 96
)

// Layout places the toolbar and the sheet for a viewport w wide, with the
// block's top edge at y.
type Layout struct {
	Toolbar  canvas.Rect
	Slider   canvas.Rect
	Swatch   canvas.Rect
	Eraser   canvas.Rect
	Clear    canvas.Rect
	Download canvas.Rect
	Sheet    canvas.Rect
}

// NewLayout sizes the sheet to a 16:9 box at most PadMaxWidth wide,
// centred horizontally.
func NewLayout(viewportW, y float64) Layout {
	w := min(PadMaxWidth, viewportW-32)
	w = max(w, 160)
	x := (viewportW - w) / 2

	l := Layout{
		Toolbar: canvas.Rect{X: x, Y: y, W: w, H: ToolbarHeight},
		Sheet:   canvas.Rect{X: x, Y: y + ToolbarHeight + toolbarGap, W: w, H: w * 9 / 16},
	}
	l.Slider = canvas.Rect{X: x, Y: y + 8, W: sliderWidth, H: 16}
	l.Swatch = canvas.Rect{X: x + sliderWidth + toolbarGap, Y: y + 4, W: 24, H: 24}
	right := x + w
	l.Download = canvas.Rect{X: right - toolButton, Y: y, W: toolButton, H: toolButton}
	l.Clear = canvas.Rect{X: l.Download.X - toolbarGap - toolButton, Y: y, W: toolButton, H: toolButton}
	l.Eraser = canvas.Rect{X: l.Clear.X - toolbarGap - toolButton, Y: y, W: toolButton, H: toolButton}
	return l
}

// Height is the whole block's height.
func (l Layout) Height() float64 { return l.Sheet.Y + l.Sheet.H - l.Toolbar.Y }

// Hit returns the control under (x, y).
func (l Layout) Hit(x, y float64) Tool {
	switch {
	case l.Slider.Contains(x, y):
		return ToolSlider
	case l.Eraser.Contains(x, y):
		return ToolEraser
	case l.Clear.Contains(x, y):
		return ToolClear
	case l.Download.Contains(x, y):
		return ToolDownload
	}
	return ToolNone
}

// SliderValue maps a pointer x on the slider to a brush size.
func (l Layout) SliderValue(x float64) int {
	f := (x - l.Slider.X) / l.Slider.W
	f = max(0, min(1, f))
	return MinBrush + int(f*float64(MaxBrush-MinBrush)+0.5)
}

// SliderKnob is the knob's x for brush size n.
func (l Layout) SliderKnob(n int) float64 {
	return l.Slider.X + float64(n-MinBrush)/float64(MaxBrush-MinBrush)*l.Slider.W
}

// ToSheet converts viewport coordinates to sheet coordinates.
func (l Layout) ToSheet(x, y float64) (float64, float64) {
	return x - l.Sheet.X, y - l.Sheet.Y
}
