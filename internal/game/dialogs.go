package game

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/Jay-Lokhande/lazmy/internal/palette"
	"github.com/Jay-Lokhande/lazmy/internal/sketch"
)

// Dialogs are the native dialogs the page opens. They block, so the game
// runs them off the frame loop.
type Dialogs interface {
	PickColor(ctx context.Context, initial color.Color) (color.Color, error)
	SavePath(ctx context.Context) (string, error)
}

// errDialogCanceled is returned by Dialogs when the user dismisses them.
var errDialogCanceled = sketch.ErrCanceled

// NativeDialogs uses the platform dialogs.
type NativeDialogs struct{}

func (NativeDialogs) PickColor(ctx context.Context, initial color.Color) (color.Color, error) {
	c, err := zenity.SelectColor(
		zenity.Context(ctx),
		zenity.Title("Custom color"),
		zenity.Color(initial),
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return nil, errDialogCanceled
	}
	if err != nil {
		return nil, fmt.Errorf("color dialog: %w", err)
	}
	return c, nil
}

func (NativeDialogs) SavePath(ctx context.Context) (string, error) {
	return sketch.AskSavePath(ctx)
}

type dialogKind int

const (
	dialogColor dialogKind = iota
	dialogSave
)

// dialogResult carries a finished dialog back to the frame loop.
type dialogResult struct {
	kind  dialogKind
	color color.Color
	path  string
	err   error
}

// openDialog runs one dialog in the background unless one is already
// open. The result is picked up by the next Update.
func (g *Game) openDialog(kind dialogKind) bool {
	if g.dialogOpen {
		return false
	}
	g.dialogOpen = true
	initial := color.Color(g.engine.Current().NRGBA())

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		res := dialogResult{kind: kind}
		switch kind {
		case dialogColor:
			res.color, res.err = g.dialogs.PickColor(g.ctx, initial)
		case dialogSave:
			res.path, res.err = g.dialogs.SavePath(g.ctx)
		}
		select {
		case g.dialogCh <- res:
		case <-g.ctx.Done():
		}
	}()
	return true
}

// drainDialogs applies finished dialogs. Saving reads pixels back, which
// only works on the game goroutine.
func (g *Game) drainDialogs() {
	for {
		select {
		case res := <-g.dialogCh:
			g.dialogOpen = false
			g.applyDialog(res)
		default:
			return
		}
	}
}

func (g *Game) applyDialog(res dialogResult) {
	if errors.Is(res.err, errDialogCanceled) {
		return
	}
	if res.err != nil {
		g.log.Warn("dialog failed", zap.Error(res.err))
		return
	}
	switch res.kind {
	case dialogColor:
		c := palette.FromColor(res.color)
		if g.picker != nil {
			g.picker.SetValue(c.Hex)
		}
		g.setCustomColor(c.Hex)
	case dialogSave:
		if g.sheet == nil {
			return
		}
		if _, err := g.sheet.Save(res.path); err != nil {
			g.log.Warn("failed to save sketch", zap.Error(err))
		}
	}
}
