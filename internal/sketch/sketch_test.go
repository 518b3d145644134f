package sketch

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jay-Lokhande/lazmy/internal/canvas"
	"github.com/Jay-Lokhande/lazmy/internal/palette"
)

func TestNewPadFillsBackground(t *testing.T) {
	var r canvas.Recorder
	p := NewPad(&r, 672, 378)

	require.Len(t, r.Ops, 1)
	op := r.Ops[0]
	assert.Equal(t, canvas.OpFillRect, op.Kind)
	assert.Equal(t, float32(672), op.W)
	assert.Equal(t, Background, op.Color)
	assert.Equal(t, DefaultBrush, p.Brush())
	assert.False(t, p.Eraser())
}

func TestPadStroke(t *testing.T) {
	var r canvas.Recorder
	p := NewPad(&r, 100, 100)
	c := palette.ParseHex("#FF1493")

	assert.False(t, p.Move(10, 10, c), "no stroke before Begin")

	p.Begin(5, 5)
	assert.True(t, p.Drawing())
	assert.True(t, p.Move(10, 10, c))
	assert.True(t, p.Move(20, 10, c))
	p.End()
	assert.False(t, p.Move(30, 10, c))

	paths := r.Of(canvas.OpStrokePath)
	require.Len(t, paths, 2)
	assert.Equal(t, float32(DefaultBrush), paths[0].Width)
	assert.Equal(t, c.NRGBA(), paths[0].Color)
	assert.Equal(t, 1, p.Strokes())
}

func TestPadEraserAndBrush(t *testing.T) {
	var r canvas.Recorder
	p := NewPad(&r, 100, 100)

	p.SetBrush(50)
	assert.Equal(t, MaxBrush, p.Brush())
	p.SetBrush(0)
	assert.Equal(t, MinBrush, p.Brush())
	p.SetBrush(12)

	p.ToggleEraser()
	p.Begin(0, 0)
	p.Move(1, 1, palette.White)
	op := r.Of(canvas.OpStrokePath)[0]
	assert.Equal(t, Background, op.Color)
	assert.Equal(t, float32(12), op.Width)

	p.ToggleEraser()
	assert.False(t, p.Eraser())
}

func TestPadClear(t *testing.T) {
	var r canvas.Recorder
	p := NewPad(&r, 100, 50)
	p.Clear()
	assert.Equal(t, 2, r.Count(canvas.OpFillRect))
	assert.True(t, p.Contains(0, 0))
	assert.False(t, p.Contains(100, 10))
	assert.False(t, p.Contains(-1, 10))
}

func TestLayout(t *testing.T) {
	l := NewLayout(1280, 100)
	assert.Equal(t, float64(PadMaxWidth), l.Sheet.W)
	assert.InDelta(t, 378, l.Sheet.H, 1e-9)
	assert.InDelta(t, (1280-672)/2.0, l.Sheet.X, 1e-9)
	assert.Equal(t, 140.0, l.Sheet.Y)
	assert.InDelta(t, 40+378, l.Height(), 1e-9)

	small := NewLayout(400, 0)
	assert.Equal(t, 368.0, small.Sheet.W)

	assert.Equal(t, ToolDownload, l.Hit(l.Download.X+1, l.Download.Y+1))
	assert.Equal(t, ToolClear, l.Hit(l.Clear.X+1, l.Clear.Y+1))
	assert.Equal(t, ToolEraser, l.Hit(l.Eraser.X+1, l.Eraser.Y+1))
	assert.Equal(t, ToolSlider, l.Hit(l.Slider.X+1, l.Slider.Y+1))
	assert.Equal(t, ToolNone, l.Hit(0, 0))

	assert.Equal(t, MinBrush, l.SliderValue(l.Slider.X-50))
	assert.Equal(t, MaxBrush, l.SliderValue(l.Slider.X+l.Slider.W+50))
	assert.InDelta(t, l.Slider.X+l.Slider.W, l.SliderKnob(MaxBrush), 1e-9)
	assert.Equal(t, 7, l.SliderValue(l.SliderKnob(7)))

	x, y := l.ToSheet(l.Sheet.X+3, l.Sheet.Y+4)
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)
}

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	return img
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, testImage()))

	got, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), got.Bounds())
	r, _, _, a := got.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestSavePNG(t *testing.T) {
	dir := t.TempDir()

	out, err := SavePNG(filepath.Join(dir, "art"), testImage())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "art.png"), out)
	_, err = os.Stat(out)
	require.NoError(t, err)

	out, err = SavePNG(filepath.Join(dir, DefaultFilename), testImage())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultFilename), out)

	_, err = SavePNG(filepath.Join(dir, "missing", "x.png"), testImage())
	assert.Error(t, err)
}
