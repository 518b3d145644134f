package game

import (
	"github.com/Jay-Lokhande/lazmy/internal/canvas"
)

// Control identifies a round button in the top-right corner.
type Control int

const (
	ControlPalette Control = iota
	ControlBrush
	ControlSound
)

func (c Control) String() string {
	switch c {
	case ControlPalette:
		return "palette"
	case ControlBrush:
		return "brush"
	case ControlSound:
		return "sound"
	}
	return "unknown"
}

const (
	buttonHoverScale = 1.1
	buttonPressScale = 0.95
)

// Button tracks hover and press state. A click is a press and a release
// that both happen over the button.
type Button struct {
	Control Control
	Rect    canvas.Rect

	hovered bool
	pressed bool
}

// Update feeds one frame of pointer state and reports a click.
func (b *Button) Update(in *frameInput) bool {
	b.hovered = b.Rect.Contains(in.X, in.Y)
	if b.hovered && in.JustPressed {
		b.pressed = true
	}
	clicked := false
	if in.JustReleased {
		clicked = b.pressed && b.hovered
		b.pressed = false
	}
	return clicked
}

func (b *Button) Hovered() bool { return b.hovered }

func (b *Button) Pressed() bool { return b.pressed }

// Scale is the draw scale: pressed buttons shrink, hovered ones grow.
func (b *Button) Scale() float64 {
	switch {
	case b.pressed:
		return buttonPressScale
	case b.hovered:
		return buttonHoverScale
	}
	return 1
}

// controlsFor lists the corner buttons. The sound control only exists
// when at least one sound asset is present.
func controlsFor(sound bool) []Control {
	if sound {
		return []Control{ControlPalette, ControlBrush, ControlSound}
	}
	return []Control{ControlPalette, ControlBrush}
}

// syncButtons rebuilds the button row when the set of controls or the
// viewport changed, keeping press state for buttons that survive.
func syncButtons(buttons []Button, controls []Control, rects []canvas.Rect) []Button {
	same := len(buttons) == len(controls)
	for i := 0; same && i < len(controls); i++ {
		same = buttons[i].Control == controls[i]
	}
	if !same {
		buttons = make([]Button, len(controls))
		for i, c := range controls {
			buttons[i].Control = c
		}
	}
	for i := range buttons {
		buttons[i].Rect = rects[i]
	}
	return buttons
}
