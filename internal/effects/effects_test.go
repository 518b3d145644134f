package effects

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jay-Lokhande/lazmy/internal/canvas"
	"github.com/Jay-Lokhande/lazmy/internal/palette"
)

func seeded(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed)) }

func TestCubicBezier(t *testing.T) {
	for _, ease := range []Ease{EaseInOut, EaseOut, Linear} {
		assert.Equal(t, 0.0, ease(0))
		assert.Equal(t, 1.0, ease(1))
		assert.Equal(t, 0.0, ease(-1))
		assert.Equal(t, 1.0, ease(2))

		prev := 0.0
		for i := 1; i <= 100; i++ {
			v := ease(float64(i) / 100)
			assert.GreaterOrEqual(t, v, prev-1e-9)
			prev = v
		}
	}
	assert.InDelta(t, 0.5, EaseInOut(0.5), 1e-6)
	assert.Greater(t, EaseOut(0.5), 0.5)
	assert.Less(t, EaseInOut(0.2), 0.2)
	assert.InDelta(t, 0.3, CubicBezier(0, 0, 1, 1)(0.3), 1e-6)
}

func TestKeyframes(t *testing.T) {
	vs := []float64{0, 10, 0}
	assert.Equal(t, 0.0, Keyframes(vs, 0, Linear))
	assert.InDelta(t, 10, Keyframes(vs, 0.5, Linear), 1e-9)
	assert.InDelta(t, 5, Keyframes(vs, 0.25, Linear), 1e-9)
	assert.InDelta(t, 5, Keyframes(vs, 0.75, Linear), 1e-9)
	assert.Equal(t, 0.0, Keyframes(vs, 1, Linear))
	assert.Equal(t, 0.0, Keyframes(nil, 0.5, Linear))
	assert.Equal(t, 3.0, Keyframes([]float64{3}, 0.5, Linear))
}

func TestProgressAndLoop(t *testing.T) {
	assert.Equal(t, 0.0, Progress(0, time.Second, time.Second))
	assert.InDelta(t, 0.5, Progress(1500*time.Millisecond, time.Second, time.Second), 1e-9)
	assert.Equal(t, 1.0, Progress(5*time.Second, time.Second, time.Second))
	assert.Equal(t, 1.0, Progress(time.Second, 0, 0))

	assert.Equal(t, 0.0, Loop(time.Second, 2*time.Second, 10*time.Second))
	assert.InDelta(t, 0.5, Loop(7*time.Second, 2*time.Second, 10*time.Second), 1e-9)
	assert.InDelta(t, 0.1, Loop(13*time.Second, 2*time.Second, 10*time.Second), 1e-9)
}

func TestTrailIgnoresOrigin(t *testing.T) {
	tr := NewTrail(seeded(1))
	tr.Add(0, 0, 0)
	assert.Empty(t, tr.Dots())
	tr.Add(0, 5, 0)
	assert.Len(t, tr.Dots(), 1)
}

func TestTrailKeepsNewest(t *testing.T) {
	tr := NewTrail(seeded(1))
	for i := 1; i <= 20; i++ {
		tr.Add(float64(i), 1, time.Duration(i)*time.Millisecond)
	}
	dots := tr.Dots()
	require.Len(t, dots, 15)
	assert.Equal(t, 6.0, dots[0].X)
	assert.Equal(t, 20.0, dots[14].X)
	for _, d := range dots {
		assert.True(t, d.Size >= 5 && d.Size < 15)
	}
}

func TestTrailPrune(t *testing.T) {
	tr := NewTrail(seeded(1))
	tr.Add(1, 1, 0)
	tr.Add(2, 2, 500*time.Millisecond)
	tr.Prune(time.Second)
	dots := tr.Dots()
	require.Len(t, dots, 1)
	assert.Equal(t, 2.0, dots[0].X)
}

func TestDotStyle(t *testing.T) {
	a, s := DotStyle(0)
	assert.InDelta(t, 0.7, a, 1e-9)
	assert.InDelta(t, 1, s, 1e-9)

	a, s = DotStyle(time.Second)
	assert.Zero(t, a)
	assert.Zero(t, s)

	a1, _ := DotStyle(200 * time.Millisecond)
	a2, _ := DotStyle(600 * time.Millisecond)
	assert.Greater(t, a1, a2)
}

func TestTrailDraw(t *testing.T) {
	tr := NewTrail(seeded(1))
	tr.Add(10, 20, 0)
	tr.Add(30, 40, 400*time.Millisecond)

	var r canvas.Recorder
	tr.Draw(&r, palette.White, 500*time.Millisecond)
	circles := r.Of(canvas.OpFillCircle)
	require.Len(t, circles, 2)
	assert.Equal(t, float32(10), circles[0].X0)
	assert.Less(t, circles[0].Color.A, circles[1].Color.A)
}

func TestNewShapes(t *testing.T) {
	shapes := NewShapes(seeded(3), 15)
	require.Len(t, shapes, 15)
	for _, s := range shapes {
		assert.True(t, s.XPct >= 0 && s.XPct < 100)
		assert.True(t, s.YPct >= 0 && s.YPct < 100)
		assert.True(t, s.Size >= 10 && s.Size < 50)
		assert.True(t, s.Cycle >= 10*time.Second && s.Cycle < 30*time.Second)
		assert.True(t, s.Delay >= 0 && s.Delay < 5*time.Second)
		assert.True(t, s.DriftX >= -50 && s.DriftX < 50)
		assert.NotEqual(t, "unknown", s.Kind.String())
	}
}

func TestShapePose(t *testing.T) {
	s := Shape{Rotation: 30, DriftX: 40, DriftY: -20, Cycle: 10 * time.Second, Delay: time.Second}

	start := s.Pose(0)
	assert.InDelta(t, 0.1, start.Opacity, 1e-9)
	assert.InDelta(t, 30, start.Rotation, 1e-9)
	assert.Zero(t, start.DX)

	mid := s.Pose(6 * time.Second)
	assert.InDelta(t, 0.6, mid.Opacity, 1e-6)
	assert.InDelta(t, 390, mid.Rotation, 1e-6)
	assert.InDelta(t, 40, mid.DX, 1e-6)
	assert.InDelta(t, -20, mid.DY, 1e-6)

	again := s.Pose(11 * time.Second)
	assert.InDelta(t, start.Opacity, again.Opacity, 1e-9)
}

func TestDrawShapes(t *testing.T) {
	shapes := NewShapes(seeded(3), 15)
	var r canvas.Recorder
	DrawShapes(&r, shapes, palette.White, 3*time.Second, 800, 600)
	paths := r.Of(canvas.OpStrokePath)
	require.Len(t, paths, 15)
	for _, p := range paths {
		assert.Equal(t, float32(1), p.Width)
		assert.True(t, p.Color.A >= 25 && p.Color.A <= 154, "alpha %d", p.Color.A)
	}
}

func TestWaveformReveal(t *testing.T) {
	require.Len(t, Waveform, 3)
	assert.Zero(t, Waveform[0].Reveal(0))
	assert.Equal(t, 1.0, Waveform[0].Reveal(2*time.Second))
	assert.Zero(t, Waveform[2].Reveal(time.Second))
	assert.InDelta(t, 0.5, Waveform[2].Reveal(2*time.Second), 1e-6)
	assert.Equal(t, 1.0, Waveform[2].Reveal(3*time.Second))

	var r canvas.Recorder
	DrawWaveform(&r, palette.White, 0, 128, 800)
	assert.Empty(t, r.Ops)
	DrawWaveform(&r, palette.White, 10*time.Second, 128, 800)
	assert.Equal(t, 3, r.Count(canvas.OpStrokePath))
}

func TestPartialPath(t *testing.T) {
	pts := []point{{0, 0}, {0, 10}, {10, 10}}
	_, l := PartialPath(pts, 0.5)
	assert.InDelta(t, 10, l, 1e-9)
	_, l = PartialPath(pts, 1)
	assert.InDelta(t, 20, l, 1e-9)
	_, l = PartialPath(pts, 0)
	assert.Zero(t, l)
}

func TestStripWidth(t *testing.T) {
	assert.Equal(t, 96.0, StripWidth(500))
	assert.Equal(t, 128.0, StripWidth(1280))
}

func TestBrushStrokes(t *testing.T) {
	r := BrushStrokes[0].Bounds(0, 0, time.Second)
	assert.Zero(t, r.W)

	r = BrushStrokes[0].Bounds(100, 50, 10*time.Second)
	assert.InDelta(t, 336, r.W, 1e-9)
	assert.InDelta(t, 100+56, r.X, 1e-9)
	assert.Equal(t, 50.0, r.Y)

	r = BrushStrokes[1].Bounds(0, 0, 10*time.Second)
	assert.InDelta(t, 224, r.W, 1e-9)
	assert.InDelta(t, 112+56, r.X, 1e-9)
	assert.Equal(t, 16.0, r.Y)

	assert.Equal(t, -1, HitStroke(0, 0, time.Second, 200, 2))
	assert.Equal(t, 0, HitStroke(0, 0, 10*time.Second, 200, 2))
	assert.Equal(t, 1, HitStroke(0, 0, 10*time.Second, 200, 18))
	assert.Equal(t, -1, HitStroke(0, 0, 10*time.Second, 10, 18))
}

func TestDrawStrokesHoverBrightens(t *testing.T) {
	c := palette.ParseHex("#804020")
	var r canvas.Recorder
	DrawStrokes(&r, c, 0, 0, 10*time.Second, 1)
	paths := r.Of(canvas.OpStrokePath)
	require.Len(t, paths, 3)
	assert.Equal(t, c.NRGBA(), paths[0].Color)
	assert.Greater(t, paths[1].Color.R, c.R)
}

func TestIcons(t *testing.T) {
	require.Len(t, FloatingIcons, 4)
	assert.Equal(t, OpenSketch, FloatingIcons[0].Action)
	assert.Equal(t, ToggleSound, FloatingIcons[3].Action)

	pose := FloatingIcons[0].Pose(0, 0, 0, false)
	assert.InDelta(t, 192+16, pose.CX, 1e-9)
	assert.InDelta(t, 80+16, pose.CY, 1e-9)
	assert.Equal(t, 1.0, pose.Scale)

	mid := FloatingIcons[0].Pose(0, 0, 2*time.Second, false)
	assert.InDelta(t, 80+16-15, mid.CY, 1e-6)
	assert.InDelta(t, 1.1, mid.Scale, 1e-6)

	hov := FloatingIcons[0].Pose(0, 0, 0, true)
	assert.Equal(t, 1.2, hov.Scale)
	assert.Equal(t, 15.0, hov.Rotation)

	assert.Equal(t, 0, HitIcon(0, 0, 0, 208, 96))
	assert.Equal(t, -1, HitIcon(0, 0, 0, 5, 5))

	var r canvas.Recorder
	DrawIcons(&r, palette.White, 0, 0, 0, -1)
	assert.Equal(t, 4, r.Count(canvas.OpStrokePath))
}
