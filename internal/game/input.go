package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// frameInput is one frame of pointer and keyboard state.
type frameInput struct {
	X, Y float64

	Down         bool
	JustPressed  bool
	JustReleased bool

	Keys       []ebiten.Key
	Chars      []rune
	Backspaces int

	Closing bool
}

// CursorPosition lets a frame feed the pointer tracker.
func (in *frameInput) CursorPosition() (int, int) { return int(in.X), int(in.Y) }

func (in *frameInput) pressed(k ebiten.Key) bool {
	for _, key := range in.Keys {
		if key == k {
			return true
		}
	}
	return false
}

var shortcutKeys = []ebiten.Key{
	ebiten.KeyEscape,
	ebiten.KeyQ,
	ebiten.KeyP,
	ebiten.KeyB,
	ebiten.KeyM,
	ebiten.KeyR,
	ebiten.KeyBackspace,
}

// inputReader turns Ebitengine's polled state into frameInputs. The first
// active touch stands in for the mouse.
type inputReader struct {
	prevKey   map[ebiten.Key]bool
	touches   []ebiten.TouchID
	touchDown bool
	chars     []rune
}

func newInputReader() *inputReader {
	return &inputReader{prevKey: map[ebiten.Key]bool{}}
}

func (r *inputReader) read() frameInput {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !r.prevKey[k]
		r.prevKey[k] = pressed
		return jp
	}

	var in frameInput
	mx, my := ebiten.CursorPosition()
	in.X, in.Y = float64(mx), float64(my)
	in.Down = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	r.touches = ebiten.AppendTouchIDs(r.touches[:0])
	if len(r.touches) > 0 {
		tx, ty := ebiten.TouchPosition(r.touches[0])
		in.X, in.Y = float64(tx), float64(ty)
		in.Down = true
		in.JustPressed = in.JustPressed || !r.touchDown
	} else if r.touchDown {
		in.JustReleased = true
	}
	r.touchDown = len(r.touches) > 0

	for _, k := range shortcutKeys {
		if justPressed(k) {
			in.Keys = append(in.Keys, k)
		}
	}
	if in.pressed(ebiten.KeyBackspace) {
		in.Backspaces++
	}
	r.chars = ebiten.AppendInputChars(r.chars[:0])
	in.Chars = r.chars

	in.Closing = ebiten.IsWindowBeingClosed()
	return in
}
