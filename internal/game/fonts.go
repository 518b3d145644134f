package game

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	titleText     = "lazmy.art"
	highlightText = "WE ARE COOKING"
	scrambleText  = "SOMETHING DELICIOUS"
	footerText    = "Thank you for your patience!"
	pickerTitle   = "Choose a color"
	pickerLabel   = "Custom color:"
)

// fonts holds the faces the page draws with.
type fonts struct {
	bold    *text.GoTextFaceSource
	regular *text.GoTextFaceSource

	title     *text.GoTextFace
	titleWide *text.GoTextFace
	highlight *text.GoTextFace
	scramble  *text.GoTextFace
	footer    *text.GoTextFace
	panel     *text.GoTextFace
}

func loadFonts() (*fonts, error) {
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}
	return &fonts{
		bold:      bold,
		regular:   regular,
		title:     &text.GoTextFace{Source: bold, Size: titleSizeNarrow},
		titleWide: &text.GoTextFace{Source: bold, Size: titleSize},
		highlight: &text.GoTextFace{Source: bold, Size: highlightSize},
		scramble:  &text.GoTextFace{Source: bold, Size: scrambleSize},
		footer:    &text.GoTextFace{Source: regular, Size: footerSize},
		panel:     &text.GoTextFace{Source: regular, Size: panelSize},
	}, nil
}

// titleFace picks the title size for the viewport width.
func (f *fonts) titleFace(w float64) *text.GoTextFace {
	if titleSizeFor(w) == titleSize {
		return f.titleWide
	}
	return f.title
}

// widths measures the fixed strings for a viewport w wide.
func (f *fonts) widths(w float64) TextWidths {
	tw := TextWidths{
		Title:    text.Advance(titleText, f.titleFace(w)),
		Scramble: text.Advance(scrambleText, f.scramble),
		Footer:   text.Advance(footerText, f.footer),
	}
	for _, r := range highlightText {
		tw.Highlight = append(tw.Highlight, text.Advance(string(r), f.highlight))
	}
	return tw
}
