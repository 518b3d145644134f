package sketch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/Jay-Lokhande/lazmy/internal/canvas"
	"github.com/Jay-Lokhande/lazmy/internal/logging"
)

// ErrCanceled is returned when the user dismisses the save dialog.
var ErrCanceled = errors.New("export canceled")

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to path, adding a .png extension when missing.
func SavePNG(path string, img image.Image) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		path += ".png"
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WritePNG(f, img); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

// AskSavePath shows the native save dialog with the default file name.
func AskSavePath(ctx context.Context) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Context(ctx),
		zenity.Title("Save your creation"),
		zenity.Filename(DefaultFilename),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", ErrCanceled
	}
	if err != nil {
		return "", fmt.Errorf("save dialog: %w", err)
	}
	return path, nil
}

// Layer is a pad backed by an offscreen Ebitengine image.
type Layer struct {
	*Pad
	img *ebiten.Image
	log *zap.Logger
}

// NewLayer allocates a w×h sheet.
func NewLayer(w, h int, log *zap.Logger) *Layer {
	img := ebiten.NewImage(w, h)
	return &Layer{
		Pad: NewPad(canvas.NewImage(img), float64(w), float64(h)),
		img: img,
		log: logging.OrNop(log),
	}
}

func (l *Layer) Image() *ebiten.Image { return l.img }

// Save writes the sheet to path. It must run on the game goroutine, where
// pixels can be read back.
func (l *Layer) Save(path string) (string, error) {
	out, err := SavePNG(path, l.img)
	if err != nil {
		return "", err
	}
	l.log.Info("sketch exported", zap.String("path", out))
	return out, nil
}

// Dispose frees the sheet.
func (l *Layer) Dispose() {
	if l.img != nil {
		l.img.Deallocate()
		l.img = nil
	}
}
