package terminal

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorID identifies a color entry. 0-7 are the basic ANSI colors.
type ColorID int

// PairID identifies a foreground/background pairing.
type PairID int

// Attr is a bitmask of cell attributes.
type Attr uint8

const (
	AttrBold     Attr = 1 << iota
	AttrStandout      // reverse video

	AttrNone Attr = 0
)

// Basic colors.
const (
	ColorBlack ColorID = 0
	ColorGreen ColorID = 2
	ColorWhite ColorID = 7
)

// DefaultPair is the cleared pair. It cannot be redefined.
const DefaultPair PairID = 0

// Key is a single keypress. Printable keys carry their rune.
type Key rune

const (
	KeyNone  Key = -1 // nothing pending
	KeyOther Key = -2 // a key without a rune (arrows, function keys)
)

var (
	ErrNoColorChange = errors.New("terminal cannot redefine colors")
	ErrUnknownColor  = errors.New("unknown color id")
	ErrReservedPair  = errors.New("pair 0 is reserved")
	ErrNotTerminal   = errors.New("stdout is not a terminal")
)

// basicRGB holds the xterm defaults for the eight basic colors.
var basicRGB = [8]colorful.Color{
	{R: 0, G: 0, B: 0},
	{R: 205.0 / 255, G: 0, B: 0},
	{R: 0, G: 205.0 / 255, B: 0},
	{R: 205.0 / 255, G: 205.0 / 255, B: 0},
	{R: 0, G: 0, B: 238.0 / 255},
	{R: 205.0 / 255, G: 0, B: 205.0 / 255},
	{R: 0, G: 205.0 / 255, B: 205.0 / 255},
	{R: 229.0 / 255, G: 229.0 / 255, B: 229.0 / 255},
}

type colorEntry struct {
	rgb    colorful.Color
	custom bool // redefined; basic colors without it render as palette indexes
}

type pair struct {
	fg, bg ColorID
}

// colorTable is the registry of colors and pairs behind both surfaces.
type colorTable struct {
	colors map[ColorID]colorEntry
	pairs  map[PairID]pair
}

func newColorTable() *colorTable {
	t := &colorTable{
		colors: make(map[ColorID]colorEntry, len(basicRGB)),
		pairs:  map[PairID]pair{DefaultPair: {fg: ColorWhite, bg: ColorBlack}},
	}
	for i, c := range basicRGB {
		t.colors[ColorID(i)] = colorEntry{rgb: c}
	}
	return t
}

func (t *colorTable) defineColor(id ColorID, c colorful.Color) error {
	if id < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownColor, id)
	}
	t.colors[id] = colorEntry{rgb: c.Clamped(), custom: true}
	return nil
}

func (t *colorTable) definePair(id PairID, fg, bg ColorID) error {
	if id == DefaultPair {
		return ErrReservedPair
	}
	if _, ok := t.colors[fg]; !ok {
		return fmt.Errorf("pair %d foreground: %w: %d", id, ErrUnknownColor, fg)
	}
	if _, ok := t.colors[bg]; !ok {
		return fmt.Errorf("pair %d background: %w: %d", id, ErrUnknownColor, bg)
	}
	t.pairs[id] = pair{fg: fg, bg: bg}
	return nil
}

// lookup resolves a pair, falling back to the default pair for unknown ids.
func (t *colorTable) lookup(id PairID) (fg, bg colorEntry, fgID, bgID ColorID) {
	p, ok := t.pairs[id]
	if !ok {
		p = t.pairs[DefaultPair]
	}
	return t.colors[p.fg], t.colors[p.bg], p.fg, p.bg
}
