package game

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Jay-Lokhande/lazmy/internal/canvas"
	"github.com/Jay-Lokhande/lazmy/internal/effects"
	"github.com/Jay-Lokhande/lazmy/internal/palette"
	"github.com/Jay-Lokhande/lazmy/internal/sketch"
)

var (
	gray300    = color.NRGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}
	gray400    = color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
	gray700    = color.NRGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xff}
	gray800    = color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	panelBlack = color.NRGBA{A: 204}
	gridDot    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 8}
)

const (
	gridSpacing = 24

	headerFade  = 800 * time.Millisecond
	headerDrop  = 20
	footerDelay = 3500 * time.Millisecond
	footerFade  = time.Second

	glyphButtonSize = 20
	toolGlyphSize   = 16
)

func (g *Game) Draw(screen *ebiten.Image) {
	if g.w <= 0 || g.h <= 0 {
		return
	}
	c := g.engine.Current()
	surf := canvas.NewImage(screen)
	w, h := float64(g.w), float64(g.h)

	screen.Fill(color.Black)
	g.drawGrid(screen)
	g.drawParticles(screen, c)

	g.trail.Draw(surf, c, g.now)
	effects.DrawShapes(surf, g.shapes, c, g.now, w, h)
	effects.DrawWaveform(surf, c, g.now, effects.StripWidth(w), h)

	g.drawTitle(screen, c)
	if g.sketchOpen {
		g.drawSketch(screen, surf, c)
	}
	effects.DrawIcons(surf, c, g.layout.IconsX, g.layout.IconsY, g.now, g.hoverIcon)
	g.drawHeadings(screen, c)
	effects.DrawStrokes(surf, c, g.layout.StrokesX, g.layout.StrokesY, g.now, g.hoverStroke)
	g.drawFooter(screen)

	g.drawButtons(surf, c)
	if g.pickerOpen {
		g.drawPicker(screen, surf, c)
	}
}

// drawGrid stamps the faint dot grid, cached per viewport size.
func (g *Game) drawGrid(screen *ebiten.Image) {
	if g.grid == nil || g.grid.Bounds().Dx() != g.w || g.grid.Bounds().Dy() != g.h {
		if g.grid != nil {
			g.grid.Deallocate()
		}
		g.grid = ebiten.NewImage(g.w, g.h)
		for y := gridSpacing / 2; y < g.h; y += gridSpacing {
			for x := gridSpacing / 2; x < g.w; x += gridSpacing {
				vector.DrawFilledCircle(g.grid, float32(x), float32(y), 1, gridDot, true)
			}
		}
	}
	screen.DrawImage(g.grid, nil)
}

// drawParticles paints the field on its own layer so the whole layer can
// be faded at once.
func (g *Game) drawParticles(screen *ebiten.Image, c palette.Color) {
	if g.particleLayer == nil {
		g.particleLayer = ebiten.NewImage(g.w, g.h)
	}
	g.field.Draw(canvas.NewImage(g.particleLayer), c)

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(g.cfg.Particles.Opacity))
	screen.DrawImage(g.particleLayer, op)
}

// drawText draws s with its top edge at y, aligned on x.
func drawText(dst *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(dst, s, face, op)
}

// titleGlow is the text-shadow strength: a faint halo that swells with
// the ambient sound and goes full while hovered.
func titleGlow(level float64, hovered bool) float64 {
	if hovered {
		return 1
	}
	return math.Min(1, 0.25+0.75*level)
}

func (g *Game) drawTitle(screen *ebiten.Image, c palette.Color) {
	face := g.fonts.titleFace(float64(g.w))
	r := g.layout.Title
	enter := effects.EaseInOut(effects.Progress(g.now, 0, headerFade))
	y := r.Y - headerDrop*(1-enter)

	scale := 1.0
	if g.titleHovered {
		scale = 1.05
	}
	cx, cy := r.X+r.W/2, y+r.H/2

	draw := func(dx, dy float64, clr color.Color, alpha float64) {
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(cx+dx, cy+dy)
		op.ColorScale.ScaleWithColor(clr)
		op.ColorScale.ScaleAlpha(float32(alpha * enter))
		text.Draw(screen, titleText, face, op)
	}

	glow := titleGlow(g.level, g.titleHovered)
	for i := range 8 {
		a := float64(i) * math.Pi / 4
		draw(4*math.Cos(a), 4*math.Sin(a), c.NRGBA(), glow*0.12)
	}
	draw(0, 0, c.NRGBA(), 1)
}

func (g *Game) drawHeadings(screen *ebiten.Image, c palette.Color) {
	for i, l := range g.highlighter.Letters() {
		if i >= len(g.layout.HighlightBox) {
			break
		}
		box := g.layout.HighlightBox[i]
		clr := c.NRGBA()
		if l.Active {
			clr = palette.White.NRGBA()
		}
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.GeoM.Scale(l.Scale, l.Scale)
		op.GeoM.Rotate(l.Rotation * math.Pi / 180)
		op.GeoM.Translate(box.X+box.W/2, box.Y+box.H/2+l.Y)
		op.ColorScale.ScaleWithColor(clr)
		op.ColorScale.ScaleAlpha(float32(l.Opacity))
		text.Draw(screen, string(l.Rune), g.fonts.highlight, op)
	}

	r := g.layout.Scramble
	drawText(screen, g.scrambler.Text(), g.fonts.scramble, r.X+r.W/2, r.Y, c.NRGBA(), text.AlignCenter)
}

func (g *Game) drawFooter(screen *ebiten.Image) {
	a := effects.Progress(g.now, footerDelay, footerFade)
	if a <= 0 {
		return
	}
	r := g.layout.Footer
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(r.X+r.W/2, r.Y)
	op.ColorScale.ScaleWithColor(gray300)
	op.ColorScale.ScaleAlpha(float32(a))
	text.Draw(screen, footerText, g.fonts.footer, op)
}

func (g *Game) drawButtons(surf canvas.Surface, c palette.Color) {
	for i := range g.buttons {
		b := &g.buttons[i]
		r := b.Rect
		cx, cy := r.X+r.W/2, r.Y+r.H/2
		s := b.Scale()
		surf.FillCircle(float32(cx), float32(cy), float32(r.W/2*s), c.NRGBA())

		pose := effects.IconPose{CX: cx, CY: cy, Scale: glyphButtonSize / float64(effects.IconSize) * s}
		var p *vector.Path
		switch b.Control {
		case ControlPalette:
			p = effects.GlyphPath(effects.GlyphPalette, pose)
		case ControlBrush:
			p = effects.GlyphPath(effects.GlyphBrush, pose)
		case ControlSound:
			p = speakerPath(cx, cy, glyphButtonSize*s, g.player.Enabled())
		}
		surf.StrokePath(p, 2, color.Black)
	}
}

// speakerPath is a speaker cone with sound waves when on and a cross when
// muted, in a size×size box centred on (cx, cy).
func speakerPath(cx, cy, size float64, on bool) *vector.Path {
	var p vector.Path
	pt := func(x, y float64) (float32, float32) {
		return float32(cx + (x-0.5)*size), float32(cy + (y-0.5)*size)
	}
	p.MoveTo(pt(0.1, 0.4))
	p.LineTo(pt(0.3, 0.4))
	p.LineTo(pt(0.5, 0.2))
	p.LineTo(pt(0.5, 0.8))
	p.LineTo(pt(0.3, 0.6))
	p.LineTo(pt(0.1, 0.6))
	p.Close()
	if on {
		for _, r := range []float64{0.15, 0.3} {
			x, y := pt(0.55+r*math.Cos(-math.Pi/4), 0.5+r*math.Sin(-math.Pi/4))
			p.MoveTo(x, y)
			ax, ay := pt(0.55, 0.5)
			p.Arc(ax, ay, float32(r*size), -math.Pi/4, math.Pi/4, vector.Clockwise)
		}
		return &p
	}
	p.MoveTo(pt(0.65, 0.38))
	p.LineTo(pt(0.9, 0.62))
	p.MoveTo(pt(0.9, 0.38))
	p.LineTo(pt(0.65, 0.62))
	return &p
}

func (g *Game) drawSketch(screen *ebiten.Image, surf canvas.Surface, c palette.Color) {
	l := g.layout.Sketch
	if g.pad == nil {
		return
	}

	// brush slider and preview swatch
	s := l.Slider
	mid := float32(s.Y + s.H/2)
	surf.StrokeLine(float32(s.X), mid, float32(s.X+s.W), mid, 4, gray700)
	surf.FillCircle(float32(l.SliderKnob(g.pad.Brush())), mid, 7, c.NRGBA())

	sw := l.Swatch
	preview := c.NRGBA()
	if g.pad.Eraser() {
		preview = color.NRGBA{A: 0xff}
	}
	r := float32(g.pad.Brush()) / 2
	scx, scy := float32(sw.X+sw.W/2), float32(sw.Y+sw.H/2)
	surf.FillCircle(scx, scy, r, preview)
	var ring vector.Path
	ring.MoveTo(scx+r, scy)
	ring.Arc(scx, scy, r, 0, 2*math.Pi, vector.Clockwise)
	surf.StrokePath(&ring, 1, color.White)

	for _, tool := range []sketch.Tool{sketch.ToolEraser, sketch.ToolClear, sketch.ToolDownload} {
		var b canvas.Rect
		switch tool {
		case sketch.ToolEraser:
			b = l.Eraser
		case sketch.ToolClear:
			b = l.Clear
		case sketch.ToolDownload:
			b = l.Download
		}
		bg, fg := color.Color(gray800), color.Color(color.White)
		if tool == sketch.ToolEraser && g.pad.Eraser() {
			bg, fg = color.White, color.Black
		}
		cx, cy := b.X+b.W/2, b.Y+b.H/2
		surf.FillCircle(float32(cx), float32(cy), float32(b.W/2), bg)
		surf.StrokePath(toolPath(tool, cx, cy, toolGlyphSize), 1.5, fg)
	}

	if g.sheet != nil {
		sh := l.Sheet
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(sh.W/g.sheetW, sh.H/g.sheetH)
		op.GeoM.Translate(sh.X, sh.Y)
		screen.DrawImage(g.sheet.Image(), op)
	}
}

// toolPath draws the eraser, trash can and download arrow glyphs.
func toolPath(tool sketch.Tool, cx, cy, size float64) *vector.Path {
	var p vector.Path
	pt := func(x, y float64) (float32, float32) {
		return float32(cx + (x-0.5)*size), float32(cy + (y-0.5)*size)
	}
	switch tool {
	case sketch.ToolEraser:
		p.MoveTo(pt(0.15, 0.65))
		p.LineTo(pt(0.55, 0.2))
		p.LineTo(pt(0.85, 0.45))
		p.LineTo(pt(0.45, 0.9))
		p.LineTo(pt(0.3, 0.9))
		p.Close()
		p.MoveTo(pt(0.35, 0.42))
		p.LineTo(pt(0.65, 0.7))
	case sketch.ToolClear:
		p.MoveTo(pt(0.15, 0.25))
		p.LineTo(pt(0.85, 0.25))
		p.MoveTo(pt(0.4, 0.25))
		p.LineTo(pt(0.4, 0.12))
		p.LineTo(pt(0.6, 0.12))
		p.LineTo(pt(0.6, 0.25))
		p.MoveTo(pt(0.25, 0.25))
		p.LineTo(pt(0.3, 0.9))
		p.LineTo(pt(0.7, 0.9))
		p.LineTo(pt(0.75, 0.25))
	case sketch.ToolDownload:
		p.MoveTo(pt(0.5, 0.1))
		p.LineTo(pt(0.5, 0.65))
		p.MoveTo(pt(0.3, 0.45))
		p.LineTo(pt(0.5, 0.65))
		p.LineTo(pt(0.7, 0.45))
		p.MoveTo(pt(0.15, 0.7))
		p.LineTo(pt(0.15, 0.88))
		p.LineTo(pt(0.85, 0.88))
		p.LineTo(pt(0.85, 0.7))
	}
	return &p
}

func (g *Game) drawPicker(screen *ebiten.Image, surf canvas.Surface, c palette.Color) {
	p := g.picker
	pn := p.Panel
	surf.FillRect(float32(pn.X), float32(pn.Y), float32(pn.W), float32(pn.H), panelBlack)
	strokeRect(surf, pn, 1, gray700)

	drawText(screen, pickerTitle, g.fonts.panel, p.Title.X, p.Title.Y, color.White, text.AlignStart)
	if g.engine.Custom() {
		r := p.Reset
		cx, cy := float32(r.X+r.W/2), float32(r.Y+r.H/2)
		surf.FillCircle(cx, cy, float32(r.W/2), gray700)
		var arrow vector.Path
		arrow.MoveTo(cx+6, cy)
		arrow.Arc(cx, cy, 6, 0, 1.5*math.Pi, vector.Clockwise)
		arrow.MoveTo(cx, cy-9)
		arrow.LineTo(cx+3, cy-6)
		arrow.LineTo(cx, cy-3)
		surf.StrokePath(&arrow, 1.5, color.White)
	}

	for i, r := range p.Swatches {
		s := 1.0
		if r.Contains(g.tracker.Position()) {
			s = 1.2
		}
		sc := palette.ParseHex(p.Color(i))
		surf.FillCircle(float32(r.X+r.W/2), float32(r.Y+r.H/2), float32(r.W/2*s), sc.NRGBA())
	}

	drawText(screen, pickerLabel, g.fonts.panel, p.Label.X, p.Label.Y, gray400, text.AlignStart)

	d := p.Dialog
	value := palette.ParseHex(p.Value())
	surf.FillRect(float32(d.X), float32(d.Y), float32(d.W), float32(d.H), value.NRGBA())
	strokeRect(surf, d, 1, gray700)

	f := p.Field
	surf.FillRect(float32(f.X), float32(f.Y), float32(f.W), float32(f.H), color.Black)
	border := color.Color(gray700)
	if p.Focused() {
		border = c.NRGBA()
	}
	strokeRect(surf, f, 1, border)
	shown := p.Value()
	if shown == "" && !p.Focused() {
		drawText(screen, "#RRGGBB", g.fonts.panel, f.X+8, f.Y+8, gray400, text.AlignStart)
	} else {
		if p.Focused() && (g.now/(500*time.Millisecond))%2 == 0 {
			shown += "|"
		}
		drawText(screen, shown, g.fonts.panel, f.X+8, f.Y+8, color.White, text.AlignStart)
	}
}

func strokeRect(surf canvas.Surface, r canvas.Rect, width float32, clr color.Color) {
	var p vector.Path
	p.MoveTo(float32(r.X), float32(r.Y))
	p.LineTo(float32(r.X+r.W), float32(r.Y))
	p.LineTo(float32(r.X+r.W), float32(r.Y+r.H))
	p.LineTo(float32(r.X), float32(r.Y+r.H))
	p.Close()
	surf.StrokePath(&p, width, clr)
}
