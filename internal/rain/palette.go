package rain

import (
	"fmt"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"

	"matrix_rain/internal/terminal"
)

// Color ids and pairs registered by the palette. The gradient starts above
// the 16 basic colors so the terminal theme keeps them.
const (
	gradientBase terminal.ColorID = 128

	greenPair terminal.PairID = 1 // fallback body
	headPair  terminal.PairID = 2 // head cell in both modes
)

var (
	shadeDark   = colorful.Color{R: 0, G: 0, B: 0}
	shadeBright = colorful.Color{R: 0, G: 1, B: 0}
	white       = colorful.Color{R: 1, G: 1, B: 1}
)

// Palette records which coloring mode the session uses. It is chosen once
// from the surface capabilities and never changes.
type Palette struct {
	gradient bool
	shades   int
}

// NewPalette registers the session colors on the surface. Terminals that
// can redefine colors get shades+1 greens, darkest first; the others get a
// single green pair. Failing to register the gradient falls back to the
// two-tone mode.
func NewPalette(s Surface, shades int, logger *slog.Logger) (Palette, error) {
	if s.CanChangeColor() {
		err := registerGradient(s, shades)
		if err == nil {
			return Palette{gradient: true, shades: shades}, nil
		}
		logger.Warn("gradient colors unavailable, using two-tone rain", "err", err)
	}
	if err := s.DefinePair(greenPair, terminal.ColorGreen, terminal.ColorBlack); err != nil {
		return Palette{}, fmt.Errorf("failed to register green pair: %w", err)
	}
	if err := s.DefinePair(headPair, terminal.ColorWhite, terminal.ColorBlack); err != nil {
		return Palette{}, fmt.Errorf("failed to register head pair: %w", err)
	}
	return Palette{shades: shades}, nil
}

func registerGradient(s Surface, shades int) error {
	if err := s.DefineColor(terminal.ColorWhite, white); err != nil {
		return err
	}
	if err := s.DefineColor(terminal.ColorBlack, shadeDark); err != nil {
		return err
	}
	for i := 0; i <= shades; i++ {
		id := gradientBase + terminal.ColorID(i)
		if err := s.DefineColor(id, shadeDark.BlendRgb(shadeBright, float64(i)/float64(shades))); err != nil {
			return err
		}
		if err := s.DefinePair(terminal.PairID(id), id, terminal.ColorBlack); err != nil {
			return err
		}
	}
	return s.DefinePair(headPair, terminal.ColorWhite, terminal.ColorBlack)
}

// Gradient reports whether the multi-shade mode is active.
func (p Palette) Gradient() bool {
	return p.gradient
}

// Shades returns the brightest shade index.
func (p Palette) Shades() int {
	return p.shades
}

// ShadePair returns the pair registered for shade i.
func (p Palette) ShadePair(i int) terminal.PairID {
	return terminal.PairID(gradientBase) + terminal.PairID(i)
}

// GradientIndex returns the shade of body row i under head: the brightest
// shade right behind the head, one step darker for every row further up,
// clamped to 0..shades.
func GradientIndex(i, head, shades int) int {
	return min(max(shades-(head-i)+1, 0), shades)
}
