// Package game is the page itself: an ebiten.Game that composes the
// particle field, the effects, the animated headings, the controls and
// the sketch pad, all tinted by the shared accent color.
package game

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Jay-Lokhande/lazmy/internal/audio"
	"github.com/Jay-Lokhande/lazmy/internal/config"
	"github.com/Jay-Lokhande/lazmy/internal/effects"
	"github.com/Jay-Lokhande/lazmy/internal/logging"
	"github.com/Jay-Lokhande/lazmy/internal/palette"
	"github.com/Jay-Lokhande/lazmy/internal/particles"
	"github.com/Jay-Lokhande/lazmy/internal/pointer"
	"github.com/Jay-Lokhande/lazmy/internal/sketch"
	"github.com/Jay-Lokhande/lazmy/internal/text"
)

const frameRate = 60

// Options wires the game to its collaborators. Engine is required; a nil
// Player means the page has no sound at all.
type Options struct {
	Config  *config.Config
	Logger  *zap.Logger
	Engine  *palette.Engine
	Player  *audio.Player
	Rand    *rand.Rand
	Dialogs Dialogs
}

type Game struct {
	cfg *config.Config
	log *zap.Logger
	rng *rand.Rand

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	engine  *palette.Engine
	tracker *pointer.Tracker
	field   *particles.Field
	player  *audio.Player
	dialogs Dialogs
	input   *inputReader
	fonts   *fonts

	trail       *effects.Trail
	shapes      []effects.Shape
	highlighter *text.Highlighter
	scrambler   *text.Scrambler

	// scene time, advanced by one frame per Update
	now   time.Duration
	level float64

	w, h    int
	dirty   bool
	layout  PageLayout
	buttons []Button

	pickerOpen bool
	picker     *Picker

	sketchOpen bool
	sheet      *sketch.Layer
	pad        *sketch.Pad
	sheetW     float64
	sheetH     float64
	sliding    bool
	// newPad builds the sketch sheet; tests record instead of drawing.
	newPad func(w, h int) (*sketch.Pad, *sketch.Layer)

	hoverIcon    int
	hoverStroke  int
	titleHovered bool

	particleLayer *ebiten.Image
	grid          *ebiten.Image

	dialogOpen bool
	dialogCh   chan dialogResult

	closeOnce sync.Once
}

// New builds the page. The particle field is sized on the first Layout.
func New(opts Options) (*Game, error) {
	if opts.Engine == nil {
		return nil, errors.New("game: color engine is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	dialogs := opts.Dialogs
	if dialogs == nil {
		dialogs = NativeDialogs{}
	}
	f, err := loadFonts()
	if err != nil {
		return nil, err
	}
	log := logging.OrNop(opts.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		cfg:         cfg,
		log:         log,
		rng:         rng,
		ctx:         ctx,
		cancel:      cancel,
		engine:      opts.Engine,
		tracker:     &pointer.Tracker{},
		field:       particles.NewField(rng, log.Named("particles")),
		player:      opts.Player,
		dialogs:     dialogs,
		input:       newInputReader(),
		fonts:       f,
		trail:       effects.NewTrail(rng),
		shapes:      effects.NewShapes(rng, config.ShapeCount),
		highlighter: text.NewHighlighter(highlightText, rng, frameRate),
		scrambler:   text.NewScrambler(scrambleText, rng),
		hoverIcon:   -1,
		hoverStroke: -1,
		dialogCh:    make(chan dialogResult, 1),
	}
	g.newPad = func(w, h int) (*sketch.Pad, *sketch.Layer) {
		l := sketch.NewLayer(w, h, g.log.Named("sketch"))
		return l.Pad, l
	}
	return g, nil
}

func (g *Game) Update() error {
	in := g.input.read()
	return g.update(&in)
}

// update runs one frame of logic for the given input.
func (g *Game) update(in *frameInput) error {
	g.drainDialogs()
	if in.Closing {
		return ebiten.Termination
	}
	// sound assets can appear while the page runs
	if g.dirty || len(g.buttons) != len(controlsFor(g.soundAvailable())) {
		g.relayout()
	}

	if err := g.handleKeys(in); err != nil {
		return err
	}

	if g.tracker.Poll(in) {
		x, y := g.tracker.Position()
		g.trail.Add(x, y, g.now)
	}
	g.handlePointer(in)

	g.now += time.Second / frameRate
	px, py := g.tracker.Position()
	g.field.Step(px, py)
	g.trail.Prune(g.now)
	g.scrambler.Update(g.now)
	g.highlighter.Update(g.now)
	if g.player != nil {
		g.level = g.player.Level()
	}
	return nil
}

func (g *Game) handleKeys(in *frameInput) error {
	if g.pickerOpen && g.picker.Focused() {
		if in.pressed(ebiten.KeyEscape) {
			g.picker.Focus(false)
			return nil
		}
		if g.picker.Type(in.Chars, in.Backspaces) {
			g.setCustomColor(g.picker.Value())
		}
		return nil
	}

	switch {
	case in.pressed(ebiten.KeyEscape), in.pressed(ebiten.KeyQ):
		return ebiten.Termination
	case in.pressed(ebiten.KeyP):
		g.togglePicker()
	case in.pressed(ebiten.KeyB):
		g.toggleSketch()
	case in.pressed(ebiten.KeyM):
		g.toggleSound()
	case in.pressed(ebiten.KeyR):
		g.engine.ResetToCycle()
	}
	return nil
}

// handlePointer routes clicks and hovers. Overlays take the pointer
// first: the corner buttons, then the picker panel, then the sketch pad.
func (g *Game) handlePointer(in *frameInput) {
	consumed := false
	for i := range g.buttons {
		b := &g.buttons[i]
		if b.Update(in) {
			g.pressControl(b.Control)
		}
		consumed = consumed || b.Hovered()
	}

	if g.pickerOpen && !consumed {
		consumed = g.handlePicker(in)
	}
	if g.sketchOpen && !consumed {
		consumed = g.handleSketch(in)
	}

	g.hoverIcon, g.hoverStroke, g.titleHovered = -1, -1, false
	g.highlighter.SetHover(-1)
	if consumed {
		return
	}

	iconsX, iconsY := g.layout.IconsX, g.layout.IconsY
	strokesX, strokesY := g.layout.StrokesX, g.layout.StrokesY
	g.hoverIcon = effects.HitIcon(iconsX, iconsY, g.now, in.X, in.Y)
	g.hoverStroke = effects.HitStroke(strokesX, strokesY, g.now, in.X, in.Y)
	g.titleHovered = g.layout.Title.Contains(in.X, in.Y)
	g.highlighter.SetHover(g.layout.HitLetter(in.X, in.Y))

	if !in.JustPressed {
		return
	}
	switch {
	case g.titleHovered:
		g.playInteraction()
		g.randomColor()
	case g.hoverIcon >= 0:
		g.iconAction(effects.FloatingIcons[g.hoverIcon].Action)
	case g.hoverStroke >= 0:
		g.playInteraction()
		g.randomColor()
	case g.layout.Scramble.Contains(in.X, in.Y):
		g.scrambler.Click(g.now)
	}
}

func (g *Game) handlePicker(in *frameInput) bool {
	target, i := g.picker.Hit(in.X, in.Y, g.engine.Custom())
	if !in.JustPressed {
		return target != PickNone
	}
	g.picker.Focus(target == PickField)
	switch target {
	case PickSwatch:
		g.picker.SetValue(g.picker.Color(i))
		g.setCustomColor(g.picker.Color(i))
	case PickReset:
		g.engine.ResetToCycle()
	case PickDialog:
		g.openDialog(dialogColor)
	}
	return target != PickNone
}

func (g *Game) handleSketch(in *frameInput) bool {
	l := g.layout.Sketch
	over := l.Toolbar.Contains(in.X, in.Y) || l.Sheet.Contains(in.X, in.Y)

	// a stroke draws from the first move after the press
	began := false
	if in.JustPressed {
		switch l.Hit(in.X, in.Y) {
		case sketch.ToolSlider:
			g.sliding = true
		case sketch.ToolEraser:
			g.pad.ToggleEraser()
		case sketch.ToolClear:
			g.pad.Clear()
		case sketch.ToolDownload:
			g.openDialog(dialogSave)
		default:
			if l.Sheet.Contains(in.X, in.Y) {
				g.pad.Begin(g.toSheet(in.X, in.Y))
				began = true
			}
		}
	}
	if g.sliding && in.Down {
		g.pad.SetBrush(l.SliderValue(in.X))
	}
	if g.pad.Drawing() && !began {
		if in.Down && l.Sheet.Contains(in.X, in.Y) {
			x, y := g.toSheet(in.X, in.Y)
			g.pad.Move(x, y, g.engine.Current())
		} else {
			g.pad.End()
		}
	}
	if in.JustReleased || !in.Down {
		g.sliding = false
	}
	return over || g.sliding
}

// toSheet maps viewport coordinates onto the sheet, which keeps the size
// it was created with while its on-screen box follows the layout.
func (g *Game) toSheet(x, y float64) (float64, float64) {
	sx, sy := g.layout.Sketch.ToSheet(x, y)
	s := g.layout.Sketch.Sheet
	if s.W <= 0 || s.H <= 0 {
		return sx, sy
	}
	return sx * g.sheetW / s.W, sy * g.sheetH / s.H
}

func (g *Game) pressControl(c Control) {
	switch c {
	case ControlPalette:
		g.togglePicker()
		g.playInteraction()
	case ControlBrush:
		g.toggleSketch()
		g.playInteraction()
	case ControlSound:
		g.toggleSound()
	}
}

func (g *Game) iconAction(a effects.IconAction) {
	g.playInteraction()
	switch a {
	case effects.OpenSketch:
		if !g.sketchOpen {
			g.toggleSketch()
		}
	case effects.OpenPicker:
		if !g.pickerOpen {
			g.togglePicker()
		}
	case effects.RandomColor:
		g.randomColor()
	case effects.ToggleSound:
		g.toggleSound()
	}
}

func (g *Game) togglePicker() {
	g.pickerOpen = !g.pickerOpen
	if g.pickerOpen {
		g.picker = NewPicker(float64(g.w), g.cfg.Palette.Colors, g.engine.Current().Hex)
	} else {
		g.picker = nil
	}
}

func (g *Game) toggleSketch() {
	g.sketchOpen = !g.sketchOpen
	if !g.sketchOpen {
		g.closeSketch()
	}
	g.relayout()
	if g.sketchOpen {
		s := g.layout.Sketch.Sheet
		g.sheetW, g.sheetH = s.W, s.H
		g.pad, g.sheet = g.newPad(int(s.W), int(s.H))
	}
}

func (g *Game) closeSketch() {
	if g.sheet != nil {
		g.sheet.Dispose()
	}
	g.sheet, g.pad = nil, nil
	g.sliding = false
}

// toggleSound flips the switch. Without any sound asset there is nothing
// to toggle.
func (g *Game) toggleSound() {
	if !g.soundAvailable() {
		return
	}
	on := g.player.Toggle()
	g.log.Debug("sound toggled", zap.Bool("enabled", on))
}

func (g *Game) soundAvailable() bool {
	return g.player != nil && (g.player.HasAmbient() || g.player.HasInteraction())
}

func (g *Game) playInteraction() {
	if g.player != nil {
		g.player.PlayInteraction()
	}
}

func (g *Game) randomColor() {
	g.setCustomColor(palette.Random(g.rng).Hex)
}

func (g *Game) setCustomColor(s string) {
	g.engine.SetCustomColor(s)
	g.log.Debug("custom color", zap.String("color", s))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.dirty = true
	}
	return outsideWidth, outsideHeight
}

// relayout recomputes every position for the current viewport and
// resizes the particle field.
func (g *Game) relayout() {
	g.dirty = false
	w, h := float64(g.w), float64(g.h)
	controls := controlsFor(g.soundAvailable())
	g.layout = NewPageLayout(w, h, g.fonts.widths(w), g.sketchOpen, len(controls))
	g.buttons = syncButtons(g.buttons, controls, g.layout.Buttons)
	if g.picker != nil {
		g.picker.Layout(w)
	}
	if g.field.Resize(g.w, g.h) && g.particleLayer != nil {
		g.particleLayer.Deallocate()
		g.particleLayer = nil
	}
}

// Close tears the page down: the field stops, the color timer stops, the
// tracker detaches, sound stops and pending dialogs are abandoned.
func (g *Game) Close() {
	g.closeOnce.Do(func() {
		g.cancel()
		g.field.Dispose()
		g.engine.Close()
		g.tracker.Detach()
		g.scrambler.Stop()
		if g.player != nil {
			g.player.Close()
		}
		g.closeSketch()
		for _, img := range []*ebiten.Image{g.particleLayer, g.grid} {
			if img != nil {
				img.Deallocate()
			}
		}
		g.particleLayer, g.grid = nil, nil
		g.wg.Wait()
		g.log.Debug("page closed")
	})
}

// Now is the scene time.
func (g *Game) Now() time.Duration { return g.now }
