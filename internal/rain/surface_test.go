package rain

import (
	"context"

	"github.com/lucasb-eyer/go-colorful"

	"matrix_rain/internal/terminal"
)

type fakeCell struct {
	glyph rune
	pair  terminal.PairID
	attr  terminal.Attr
}

// fakeSurface records cell writes and replays a scripted key sequence.
type fakeSurface struct {
	rows, cols int
	cells      map[[2]int]fakeCell

	canChange bool
	defineErr error
	colors    map[terminal.ColorID]colorful.Color
	pairs     map[terminal.PairID][2]terminal.ColorID

	keys         []terminal.Key
	shows        int
	cursorHidden bool
}

func newFakeSurface(rows, cols int) *fakeSurface {
	return &fakeSurface{
		rows:   rows,
		cols:   cols,
		cells:  make(map[[2]int]fakeCell),
		colors: make(map[terminal.ColorID]colorful.Color),
		pairs:  make(map[terminal.PairID][2]terminal.ColorID),
	}
}

func (f *fakeSurface) Size() (int, int) { return f.rows, f.cols }

func (f *fakeSurface) SetCell(row, col int, glyph rune, pair terminal.PairID, attr terminal.Attr) {
	if row < 0 || row >= f.rows || col < 0 || col >= f.cols {
		panic("write outside the surface")
	}
	f.cells[[2]int{row, col}] = fakeCell{glyph: glyph, pair: pair, attr: attr}
}

func (f *fakeSurface) cell(row, col int) (fakeCell, bool) {
	c, ok := f.cells[[2]int{row, col}]
	return c, ok
}

func (f *fakeSurface) Show() error {
	f.shows++
	return nil
}

func (f *fakeSurface) HideCursor() { f.cursorHidden = true }

func (f *fakeSurface) CanChangeColor() bool { return f.canChange }

func (f *fakeSurface) DefineColor(id terminal.ColorID, c colorful.Color) error {
	if f.defineErr != nil {
		return f.defineErr
	}
	if !f.canChange {
		return terminal.ErrNoColorChange
	}
	f.colors[id] = c
	return nil
}

func (f *fakeSurface) DefinePair(id terminal.PairID, fg, bg terminal.ColorID) error {
	f.pairs[id] = [2]terminal.ColorID{fg, bg}
	return nil
}

func (f *fakeSurface) PollKey() terminal.Key {
	if len(f.keys) == 0 {
		return terminal.KeyNone
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k
}

func (f *fakeSurface) WaitKey(ctx context.Context) (terminal.Key, error) {
	if len(f.keys) == 0 {
		<-ctx.Done()
		return terminal.KeyNone, ctx.Err()
	}
	return f.PollKey(), nil
}
