// Package canvas is the drawing surface the scene paints on. The
// Ebitengine implementation draws with the vector package; Recorder keeps
// the calls for tests.
package canvas

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface is a 2D paint target in viewport pixels.
type Surface interface {
	Clear()
	FillRect(x, y, w, h float32, clr color.Color)
	FillCircle(cx, cy, r float32, clr color.Color)
	StrokeLine(x0, y0, x1, y1, width float32, clr color.Color)
	StrokePath(p *vector.Path, width float32, clr color.Color)
}

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	pix := make([]byte, 4*3*3)
	for i := range pix {
		pix[i] = 0xff
	}
	whiteImage.WritePixels(pix)
}

// Image draws onto an *ebiten.Image.
type Image struct {
	Dst       *ebiten.Image
	AntiAlias bool

	vs []ebiten.Vertex
	is []uint16
}

func NewImage(dst *ebiten.Image) *Image {
	return &Image{Dst: dst, AntiAlias: true}
}

func (s *Image) Clear() { s.Dst.Clear() }

func (s *Image) FillRect(x, y, w, h float32, clr color.Color) {
	vector.DrawFilledRect(s.Dst, x, y, w, h, clr, s.AntiAlias)
}

func (s *Image) FillCircle(cx, cy, r float32, clr color.Color) {
	if r <= 0 {
		return
	}
	vector.DrawFilledCircle(s.Dst, cx, cy, r, clr, s.AntiAlias)
}

func (s *Image) StrokeLine(x0, y0, x1, y1, width float32, clr color.Color) {
	if width <= 0 {
		return
	}
	vector.StrokeLine(s.Dst, x0, y0, x1, y1, width, clr, s.AntiAlias)
}

func (s *Image) StrokePath(p *vector.Path, width float32, clr color.Color) {
	if width <= 0 {
		return
	}
	s.vs, s.is = p.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], &vector.StrokeOptions{
		Width:    width,
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})

	r, g, b, a := clr.RGBA()
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = float32(r) / 0xffff
		s.vs[i].ColorG = float32(g) / 0xffff
		s.vs[i].ColorB = float32(b) / 0xffff
		s.vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = s.AntiAlias
	s.Dst.DrawTriangles(s.vs, s.is, whiteSubImage, op)
}

// Rect is an axis-aligned box in viewport pixels.
type Rect struct{ X, Y, W, H float64 }

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}
