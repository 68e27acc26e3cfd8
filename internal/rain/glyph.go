package rain

import (
	"math/rand"

	"github.com/mattn/go-runewidth"
)

// glyphRange is an inclusive range of code points.
type glyphRange struct{ lo, hi rune }

// matrixCode is visible ASCII followed by half-width Katakana.
var matrixCode = buildGlyphs(
	glyphRange{0x21, 0x7D},
	glyphRange{0xFF66, 0xFF9C},
)

// buildGlyphs keeps only runes occupying a single cell, so every write
// covers exactly one column.
func buildGlyphs(ranges ...glyphRange) []rune {
	var set []rune
	for _, r := range ranges {
		for c := r.lo; c <= r.hi; c++ {
			if runewidth.RuneWidth(c) == 1 {
				set = append(set, c)
			}
		}
	}
	return set
}

// MatrixCode returns a copy of the glyph set.
func MatrixCode() []rune {
	return append([]rune(nil), matrixCode...)
}

// GlyphSource picks glyphs uniformly at random.
type GlyphSource struct {
	set    []rune
	random *rand.Rand
}

// NewGlyphSource creates a source over the matrix code set.
func NewGlyphSource(random *rand.Rand) *GlyphSource {
	return &GlyphSource{set: matrixCode, random: random}
}

// Next returns a random glyph.
func (g *GlyphSource) Next() rune {
	return g.set[g.random.Intn(len(g.set))]
}
