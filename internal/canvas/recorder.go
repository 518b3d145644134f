package canvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/vector"
)

type OpKind int

const (
	OpClear OpKind = iota
	OpFillRect
	OpFillCircle
	OpStrokeLine
	OpStrokePath
)

// Op is one recorded call. Unused coordinates stay zero.
type Op struct {
	Kind           OpKind
	X0, Y0, X1, Y1 float32
	W, H, R        float32
	Width          float32
	Color          color.NRGBA
}

// Recorder is a Surface that only remembers what it was asked to draw.
type Recorder struct {
	Ops []Op
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (r *Recorder) Clear() { r.Ops = append(r.Ops, Op{Kind: OpClear}) }

func (r *Recorder) FillRect(x, y, w, h float32, clr color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, X0: x, Y0: y, W: w, H: h, Color: toNRGBA(clr)})
}

func (r *Recorder) FillCircle(cx, cy, rad float32, clr color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, X0: cx, Y0: cy, R: rad, Color: toNRGBA(clr)})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float32, clr color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Color: toNRGBA(clr)})
}

func (r *Recorder) StrokePath(_ *vector.Path, width float32, clr color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokePath, Width: width, Color: toNRGBA(clr)})
}

// Count returns how many recorded ops are of kind k.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Of returns the recorded ops of kind k in call order.
func (r *Recorder) Of(k OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
