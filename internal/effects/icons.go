package effects

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Jay-Lokhande/lazmy/internal/canvas"
	"github.com/Jay-Lokhande/lazmy/internal/palette"
)

const (
	IconSize   = 32
	IconAreaW  = 768
	IconAreaH  = 160
	iconStroke = 2

	iconHoverScale = 1.2
)

// IconAction is what clicking a floating icon does.
type IconAction int

const (
	OpenSketch IconAction = iota
	OpenPicker
	RandomColor
	ToggleSound
)

type IconGlyph int

const (
	GlyphBrush IconGlyph = iota
	GlyphPen
	GlyphPalette
	GlyphLayers
)

// FloatingIcon bobs around an anchor inside the icon area. Anchor is the
// icon's top-left corner as fractions of the area.
type FloatingIcon struct {
	Glyph   IconGlyph
	Action  IconAction
	AnchorX float64
	AnchorY float64
	Bob     float64
	Tilt    float64
	Period  time.Duration
	// HoverTilt replaces the bobbing tilt while hovered, in degrees.
	HoverTilt float64
}

var FloatingIcons = []FloatingIcon{
	{Glyph: GlyphBrush, Action: OpenSketch, AnchorX: 0.25, AnchorY: 0.5, Bob: -15, Tilt: 5, Period: 4 * time.Second, HoverTilt: 15},
	{Glyph: GlyphPen, Action: OpenPicker, AnchorX: 0.75, AnchorY: 1.0 / 3, Bob: 15, Tilt: -5, Period: 5 * time.Second, HoverTilt: -15},
	{Glyph: GlyphPalette, Action: RandomColor, AnchorX: 1.0 / 3, AnchorY: 1, Bob: -20, Tilt: 10, Period: 6 * time.Second, HoverTilt: 20},
	{Glyph: GlyphLayers, Action: ToggleSound, AnchorX: 2.0 / 3, AnchorY: 0, Bob: 20, Tilt: -10, Period: 7 * time.Second, HoverTilt: -20},
}

// IconPose is the icon centre and its rotation (degrees) and scale.
type IconPose struct {
	CX, CY   float64
	Rotation float64
	Scale    float64
}

// Pose places the icon inside an area whose top-left corner is (ox, oy).
// Right-anchored icons measure from the right edge, bottom-anchored ones
// sit on the bottom edge.
func (ic FloatingIcon) Pose(ox, oy float64, t time.Duration, hovered bool) IconPose {
	x := ox + IconAreaW*ic.AnchorX
	if ic.AnchorX > 0.5 {
		x = ox + IconAreaW*ic.AnchorX - IconSize
	}
	y := oy + IconAreaH*ic.AnchorY
	if ic.AnchorY >= 1 {
		y = oy + IconAreaH - IconSize
	}
	p := Loop(t, 0, ic.Period)
	pose := IconPose{
		CX:       x + IconSize/2,
		CY:       y + IconSize/2 + Keyframes([]float64{0, ic.Bob, 0}, p, EaseInOut),
		Rotation: Keyframes([]float64{0, ic.Tilt, 0}, p, EaseInOut),
		Scale:    Keyframes([]float64{1, 1.1, 1}, p, EaseInOut),
	}
	if hovered {
		pose.Scale = iconHoverScale
		pose.Rotation = ic.HoverTilt
	}
	return pose
}

// Hit reports whether (x, y) falls on the icon at the given pose.
func (p IconPose) Hit(x, y float64) bool {
	half := IconSize * p.Scale / 2
	return math.Abs(x-p.CX) <= half && math.Abs(y-p.CY) <= half
}

// HitIcon returns the icon under (x, y), or -1.
func HitIcon(ox, oy float64, t time.Duration, x, y float64) int {
	for i, ic := range FloatingIcons {
		if ic.Pose(ox, oy, t, false).Hit(x, y) {
			return i
		}
	}
	return -1
}

// GlyphPath draws g in a 24-unit box centred on the pose.
func GlyphPath(g IconGlyph, pose IconPose) *vector.Path {
	k := IconSize / 24.0 * pose.Scale
	sin, cos := math.Sincos(pose.Rotation * math.Pi / 180)
	pt := func(x, y float64) (float32, float32) {
		x, y = (x-12)*k, (y-12)*k
		return float32(pose.CX + x*cos - y*sin), float32(pose.CY + x*sin + y*cos)
	}
	var p vector.Path
	move := func(x, y float64) { p.MoveTo(pt(x, y)) }
	line := func(x, y float64) { p.LineTo(pt(x, y)) }
	circle := func(cx, cy, r float64) {
		x, y := pt(cx, cy)
		p.MoveTo(x+float32(r*k), y)
		p.Arc(x, y, float32(r*k), 0, 2*math.Pi, vector.Clockwise)
		p.Close()
	}

	switch g {
	case GlyphBrush:
		move(20, 3)
		line(10, 13)
		move(10, 13)
		line(7, 14)
		line(4, 20)
		line(10, 17)
		line(11, 14)
		p.Close()
	case GlyphPen:
		move(12, 19)
		line(19, 12)
		line(22, 15)
		line(15, 22)
		p.Close()
		move(18, 13)
		line(16.5, 5.5)
		line(2, 2)
		line(5.5, 16.5)
		p.Close()
		move(2, 2)
		line(9.6, 9.6)
		circle(11, 11, 2)
	case GlyphPalette:
		circle(12, 12, 10)
		circle(13.5, 6.5, 0.5)
		circle(17.5, 10.5, 0.5)
		circle(8.5, 7.5, 0.5)
		circle(6.5, 12.5, 0.5)
	case GlyphLayers:
		move(12, 2)
		line(22, 7)
		line(12, 12)
		line(2, 7)
		p.Close()
		move(2, 12)
		line(12, 17)
		line(22, 12)
		move(2, 17)
		line(12, 22)
		line(22, 17)
	}
	return &p
}

// DrawIcons strokes every icon; hovered is the index under the pointer or
// -1.
func DrawIcons(dst canvas.Surface, c palette.Color, ox, oy float64, t time.Duration, hovered int) {
	for i, ic := range FloatingIcons {
		pose := ic.Pose(ox, oy, t, i == hovered)
		dst.StrokePath(GlyphPath(ic.Glyph, pose), iconStroke, c.NRGBA())
	}
}
