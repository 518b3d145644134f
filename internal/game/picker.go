package game

import (
	"github.com/Jay-Lokhande/lazmy/internal/canvas"
)

const (
	pickerTop     = 64
	pickerMargin  = 16
	pickerPad     = 16
	swatchSize    = 32
	swatchGap     = 8
	swatchColumns = 5
	resetSize     = 24
	headerHeight  = 20
	labelHeight   = 16
	fieldHeight   = 32
)

// PickerTarget is the part of the color picker panel under the pointer.
type PickerTarget int

const (
	PickNone PickerTarget = iota
	PickPanel
	PickSwatch
	PickReset
	PickDialog
	PickField
)

// Picker is the color picker panel: palette swatches, a reset button
// shown while a custom color is pinned, a native color dialog swatch and a
// free-text hex field.
type Picker struct {
	Panel    canvas.Rect
	Reset    canvas.Rect
	Swatches []canvas.Rect
	Dialog   canvas.Rect
	Field    canvas.Rect
	Label    canvas.Rect
	Title    canvas.Rect

	colors  []string
	value   []rune
	focused bool
}

// NewPicker lays out a panel for colors in the top-right corner of a
// viewport w wide. The field starts with initial.
func NewPicker(w float64, colors []string, initial string) *Picker {
	p := &Picker{colors: colors, value: []rune(initial)}
	p.Layout(w)
	return p
}

// Layout places the panel against the right edge.
func (p *Picker) Layout(w float64) {
	rows := (len(p.colors) + swatchColumns - 1) / swatchColumns
	inner := float64(swatchColumns*swatchSize + (swatchColumns-1)*swatchGap)
	gridH := float64(rows*swatchSize + max(rows-1, 0)*swatchGap)

	x := w - pickerMargin - inner - 2*pickerPad
	y := float64(pickerTop)
	left := x + pickerPad
	right := left + inner

	p.Title = canvas.Rect{X: left, Y: y + pickerPad, W: inner - resetSize, H: headerHeight}
	p.Reset = canvas.Rect{X: right - resetSize, Y: y + pickerPad - 2, W: resetSize, H: resetSize}

	gridY := y + pickerPad + headerHeight + 12
	p.Swatches = make([]canvas.Rect, len(p.colors))
	for i := range p.colors {
		col, row := i%swatchColumns, i/swatchColumns
		p.Swatches[i] = canvas.Rect{
			X: left + float64(col*(swatchSize+swatchGap)),
			Y: gridY + float64(row*(swatchSize+swatchGap)),
			W: swatchSize,
			H: swatchSize,
		}
	}

	labelY := gridY + gridH + 8
	p.Label = canvas.Rect{X: left, Y: labelY, W: inner, H: labelHeight}
	rowY := labelY + labelHeight + 4
	p.Dialog = canvas.Rect{X: left, Y: rowY, W: swatchSize, H: fieldHeight}
	p.Field = canvas.Rect{X: left + swatchSize + swatchGap, Y: rowY, W: inner - swatchSize - swatchGap, H: fieldHeight}

	p.Panel = canvas.Rect{X: x, Y: y, W: inner + 2*pickerPad, H: rowY + fieldHeight + pickerPad - y}
}

// Hit reports what is under (x, y). The reset button only counts when
// custom is set. For swatches the index is returned too.
func (p *Picker) Hit(x, y float64, custom bool) (PickerTarget, int) {
	if !p.Panel.Contains(x, y) {
		return PickNone, -1
	}
	if custom && p.Reset.Contains(x, y) {
		return PickReset, -1
	}
	for i, r := range p.Swatches {
		if r.Contains(x, y) {
			return PickSwatch, i
		}
	}
	switch {
	case p.Dialog.Contains(x, y):
		return PickDialog, -1
	case p.Field.Contains(x, y):
		return PickField, -1
	}
	return PickPanel, -1
}

// Color returns the i-th swatch color.
func (p *Picker) Color(i int) string { return p.colors[i] }

func (p *Picker) Colors() []string { return p.colors }

// Value is the text shown in the hex field.
func (p *Picker) Value() string { return string(p.value) }

// SetValue replaces the field text, as picking a swatch does.
func (p *Picker) SetValue(s string) { p.value = []rune(s) }

func (p *Picker) Focus(on bool) { p.focused = on }

func (p *Picker) Focused() bool { return p.focused }

// Type applies one frame of typing to the focused field: chars are
// appended, then backspaces delete from the end. It reports whether the
// text changed; every change is applied as the new color.
func (p *Picker) Type(chars []rune, backspaces int) bool {
	if !p.focused {
		return false
	}
	changed := false
	for _, r := range chars {
		if r < 0x20 || r == 0x7f {
			continue
		}
		p.value = append(p.value, r)
		changed = true
	}
	for ; backspaces > 0 && len(p.value) > 0; backspaces-- {
		p.value = p.value[:len(p.value)-1]
		changed = true
	}
	return changed
}
