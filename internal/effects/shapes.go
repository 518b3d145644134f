package effects

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Jay-Lokhande/lazmy/internal/canvas"
	"github.com/Jay-Lokhande/lazmy/internal/palette"
)

type ShapeKind int

const (
	Circle ShapeKind = iota
	Square
	Triangle
	Star
	Brush
)

var shapeKinds = []ShapeKind{Circle, Square, Triangle, Star, Brush}

func (k ShapeKind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	case Star:
		return "star"
	case Brush:
		return "brush"
	}
	return "unknown"
}

// Shape is one floating outline. XPct and YPct place its top-left corner
// as a percentage of the viewport.
type Shape struct {
	Kind       ShapeKind
	XPct, YPct float64
	Size       float64
	Cycle      time.Duration
	Delay      time.Duration
	DriftX     float64
	DriftY     float64
	Rotation   float64
}

// ShapePose is a shape's animated offset, rotation in degrees and opacity.
type ShapePose struct {
	DX, DY   float64
	Rotation float64
	Opacity  float64
}

// NewShapes scatters n shapes with random placement and timing.
func NewShapes(rng *rand.Rand, n int) []Shape {
	shapes := make([]Shape, 0, n)
	for i := 0; i < n; i++ {
		shapes = append(shapes, Shape{
			XPct:     rng.Float64() * 100,
			YPct:     rng.Float64() * 100,
			Size:     rng.Float64()*40 + 10,
			Cycle:    time.Duration((rng.Float64()*20 + 10) * float64(time.Second)),
			Delay:    time.Duration(rng.Float64() * 5 * float64(time.Second)),
			Kind:     shapeKinds[rng.IntN(len(shapeKinds))],
			Rotation: rng.Float64() * 360,
			DriftX:   rng.Float64()*100 - 50,
			DriftY:   rng.Float64()*100 - 50,
		})
	}
	return shapes
}

// Pose is the shape's state at scene time t. The loop runs out and back:
// drift [0,d,0], rotation [r,r+360,r], opacity [0.1,0.6,0.1].
func (s Shape) Pose(t time.Duration) ShapePose {
	p := Loop(t, s.Delay, s.Cycle)
	return ShapePose{
		DX:       Keyframes([]float64{0, s.DriftX, 0}, p, EaseInOut),
		DY:       Keyframes([]float64{0, s.DriftY, 0}, p, EaseInOut),
		Rotation: Keyframes([]float64{s.Rotation, s.Rotation + 360, s.Rotation}, p, EaseInOut),
		Opacity:  Keyframes([]float64{0.1, 0.6, 0.1}, p, EaseInOut),
	}
}

// Path builds the shape's outline in viewport pixels for a w×h viewport,
// rotated about its centre.
func (s Shape) Path(pose ShapePose, w, h float64) *vector.Path {
	n := s.Size
	ox := s.XPct/100*w + pose.DX
	oy := s.YPct/100*h + pose.DY
	sin, cos := math.Sincos(pose.Rotation * math.Pi / 180)
	pt := func(x, y float64) (float32, float32) {
		x -= n / 2
		y -= n / 2
		return float32(ox + n/2 + x*cos - y*sin), float32(oy + n/2 + x*sin + y*cos)
	}
	poly := func(p *vector.Path, pts ...[2]float64) {
		for i, v := range pts {
			x, y := pt(v[0], v[1])
			if i == 0 {
				p.MoveTo(x, y)
			} else {
				p.LineTo(x, y)
			}
		}
		p.Close()
	}

	var p vector.Path
	switch s.Kind {
	case Circle:
		cx, cy := pt(n/2, n/2)
		p.Arc(cx, cy, float32(n/2), 0, 2*math.Pi, vector.Clockwise)
		p.Close()
	case Square:
		poly(&p, [2]float64{0, 0}, [2]float64{n, 0}, [2]float64{n, n}, [2]float64{0, n})
	case Triangle:
		poly(&p, [2]float64{n / 2, 0}, [2]float64{n, n}, [2]float64{0, n})
	case Star:
		poly(&p,
			[2]float64{n / 2, 0}, [2]float64{n * 0.6, n * 0.4}, [2]float64{n, n * 0.5},
			[2]float64{n * 0.7, n * 0.7}, [2]float64{n * 0.8, n}, [2]float64{n / 2, n * 0.8},
			[2]float64{n * 0.2, n}, [2]float64{n * 0.3, n * 0.7}, [2]float64{0, n * 0.5},
			[2]float64{n * 0.4, n * 0.4},
		)
	case Brush:
		curve := func(c1x, c1y, c2x, c2y, x, y float64) {
			ax, ay := pt(c1x, c1y)
			bx, by := pt(c2x, c2y)
			ex, ey := pt(x, y)
			p.CubicTo(ax, ay, bx, by, ex, ey)
		}
		x, y := pt(n*0.2, n*0.8)
		p.MoveTo(x, y)
		curve(n*0.1, n*0.6, n*0.3, n*0.2, n*0.5, n*0.3)
		curve(n*0.7, n*0.4, n*0.8, n*0.6, n*0.7, n*0.8)
		curve(n*0.6, n, n*0.3, n, n*0.2, n*0.8)
		p.Close()
	}
	return &p
}

// DrawShapes outlines every shape at scene time t.
func DrawShapes(dst canvas.Surface, shapes []Shape, c palette.Color, t time.Duration, w, h float64) {
	for _, s := range shapes {
		pose := s.Pose(t)
		dst.StrokePath(s.Path(pose, w, h), 1, c.WithAlpha(pose.Opacity))
	}
}
