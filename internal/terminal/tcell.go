package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Tcell is a surface backed by a tcell.Screen.
type Tcell struct {
	screen     tcell.Screen
	table      *colorTable
	keys       chan Key
	rows, cols int
	closeOnce  sync.Once
}

// OpenTcell creates and initializes a tcell screen for the controlling
// terminal.
func OpenTcell() (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	return NewTcell(screen), nil
}

// NewTcell wraps an initialized screen. The size is read once.
func NewTcell(screen tcell.Screen) *Tcell {
	cols, rows := screen.Size()
	s := &Tcell{
		screen: screen,
		table:  newColorTable(),
		keys:   make(chan Key, 64),
		rows:   rows,
		cols:   cols,
	}
	screen.SetStyle(s.style(DefaultPair, AttrNone))
	screen.Clear()
	go s.pollEvents()
	return s
}

// pollEvents forwards key events until the screen is finalized.
func (s *Tcell) pollEvents() {
	defer close(s.keys)
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			s.keys <- keyFromEvent(ev)
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

func keyFromEvent(ev *tcell.EventKey) Key {
	if ev.Key() == tcell.KeyRune {
		return Key(ev.Rune())
	}
	if ev.Key() < tcell.KeyDEL {
		// Control keys: Ctrl-C, Escape, Enter and friends.
		return Key(ev.Key())
	}
	return KeyOther
}

func (s *Tcell) Size() (rows, cols int) {
	return s.rows, s.cols
}

func (s *Tcell) SetCell(row, col int, glyph rune, p PairID, attr Attr) {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return
	}
	s.screen.SetContent(col, row, glyph, nil, s.style(p, attr))
}

func (s *Tcell) style(p PairID, attr Attr) tcell.Style {
	fg, bg, fgID, bgID := s.table.lookup(p)
	st := tcell.StyleDefault.Foreground(tcellColor(fg, fgID)).Background(tcellColor(bg, bgID))
	if attr&AttrBold != 0 {
		st = st.Bold(true)
	}
	if attr&AttrStandout != 0 {
		st = st.Reverse(true)
	}
	return st
}

func tcellColor(e colorEntry, id ColorID) tcell.Color {
	if e.custom {
		r, g, b := e.rgb.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.PaletteColor(int(id))
}

func (s *Tcell) Show() error {
	s.screen.Show()
	return nil
}

func (s *Tcell) HideCursor() {
	s.screen.HideCursor()
}

// CanChangeColor reports whether the screen has at least 256 colors.
func (s *Tcell) CanChangeColor() bool {
	return s.screen.Colors() >= 256
}

func (s *Tcell) DefineColor(id ColorID, c colorful.Color) error {
	if !s.CanChangeColor() {
		return ErrNoColorChange
	}
	return s.table.defineColor(id, c)
}

func (s *Tcell) DefinePair(id PairID, fg, bg ColorID) error {
	return s.table.definePair(id, fg, bg)
}

func (s *Tcell) PollKey() Key {
	select {
	case k, ok := <-s.keys:
		if ok {
			return k
		}
	default:
	}
	return KeyNone
}

func (s *Tcell) WaitKey(ctx context.Context) (Key, error) {
	select {
	case <-ctx.Done():
		return KeyNone, ctx.Err()
	case k, ok := <-s.keys:
		if !ok {
			return KeyNone, io.EOF
		}
		return k, nil
	}
}

// Close finalizes the screen, restoring the terminal.
func (s *Tcell) Close() error {
	s.closeOnce.Do(s.screen.Fini)
	return nil
}
