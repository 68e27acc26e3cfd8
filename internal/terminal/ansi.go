package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// === FRAME ===

type cell struct {
	glyph rune
	pair  PairID
	attr  Attr
}

var blankCell = cell{glyph: ' ', pair: DefaultPair}

// frame is a row-major grid of cells.
type frame struct {
	cells      []cell
	rows, cols int
}

func newFrame(rows, cols int) *frame {
	f := &frame{
		cells: make([]cell, rows*cols),
		rows:  rows,
		cols:  cols,
	}
	for i := range f.cells {
		f.cells[i] = blankCell
	}
	return f
}

// === ANSI SURFACE ===

// ANSI is a surface that writes escape sequences through termenv.
// Cells are buffered and Show flushes only the ones that changed since the
// previous flush.
type ANSI struct {
	out     *termenv.Output
	table   *colorTable
	current *frame
	shown   *frame // nil forces a full render
	keys    chan Key
	done    chan struct{}

	rows, cols int
	altScreen  bool
	restore    func() error
	closeOnce  sync.Once
	closeErr   error
}

// NewANSI creates a surface of the given size writing to out with the given
// color profile and reading keys from in.
func NewANSI(out io.Writer, in io.Reader, rows, cols int, profile termenv.Profile) *ANSI {
	rows, cols = max(rows, 0), max(cols, 0)
	s := &ANSI{
		out:     termenv.NewOutput(out, termenv.WithProfile(profile)),
		table:   newColorTable(),
		current: newFrame(rows, cols),
		keys:    make(chan Key, 64),
		done:    make(chan struct{}),
		rows:    rows,
		cols:    cols,
	}
	go s.readKeys(in)
	return s
}

// OpenANSI takes over the controlling terminal: alternate screen, raw
// keyboard input, size and color profile from the environment.
func OpenANSI() (*ANSI, error) {
	outFd := os.Stdout.Fd()
	if !isatty.IsTerminal(outFd) && !isatty.IsCygwinTerminal(outFd) {
		return nil, ErrNotTerminal
	}
	cols, rows, err := term.GetSize(int(outFd))
	if err != nil {
		return nil, fmt.Errorf("failed to get terminal size: %w", err)
	}

	inFd := int(os.Stdin.Fd())
	var state *term.State
	if term.IsTerminal(inFd) {
		if state, err = term.MakeRaw(inFd); err != nil {
			return nil, fmt.Errorf("failed to enable raw input: %w", err)
		}
	}

	profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
	s := NewANSI(os.Stdout, os.Stdin, rows, cols, profile)
	s.altScreen = true
	s.restore = func() error {
		if state == nil {
			return nil
		}
		return term.Restore(inFd, state)
	}
	s.out.AltScreen()
	s.out.ClearScreen()
	return s, nil
}

// Size returns the dimensions fixed at creation.
func (s *ANSI) Size() (rows, cols int) {
	return s.rows, s.cols
}

// SetCell buffers one cell. Writes outside the surface are dropped.
func (s *ANSI) SetCell(row, col int, glyph rune, p PairID, attr Attr) {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return
	}
	s.current.cells[row*s.cols+col] = cell{glyph: glyph, pair: p, attr: attr}
}

// Show writes every cell that differs from the last flushed frame.
func (s *ANSI) Show() error {
	full := s.shown == nil
	if full {
		s.shown = newFrame(s.rows, s.cols)
	}

	var b strings.Builder
	for i, c := range s.current.cells {
		if !full && c == s.shown.cells[i] {
			continue
		}
		b.WriteString(termenv.CSI)
		fmt.Fprintf(&b, termenv.CursorPositionSeq, i/s.cols+1, i%s.cols+1)
		b.WriteString(s.styled(c))
	}
	copy(s.shown.cells, s.current.cells)

	if b.Len() == 0 {
		return nil
	}
	if _, err := s.out.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

func (s *ANSI) styled(c cell) string {
	fg, bg, fgID, bgID := s.table.lookup(c.pair)
	st := s.out.String(string(c.glyph)).
		Foreground(s.color(fg, fgID)).
		Background(s.color(bg, bgID))
	if c.attr&AttrBold != 0 {
		st = st.Bold()
	}
	if c.attr&AttrStandout != 0 {
		st = st.Reverse()
	}
	return st.String()
}

// color keeps basic colors as palette indexes so the terminal theme applies.
func (s *ANSI) color(e colorEntry, id ColorID) termenv.Color {
	if e.custom {
		return s.out.Color(e.rgb.Hex())
	}
	return s.out.Color(strconv.Itoa(int(id)))
}

// HideCursor hides the text cursor.
func (s *ANSI) HideCursor() {
	s.out.HideCursor()
}

// CanChangeColor reports whether the profile can show arbitrary RGB shades.
func (s *ANSI) CanChangeColor() bool {
	return s.out.Profile == termenv.TrueColor || s.out.Profile == termenv.ANSI256
}

// DefineColor sets the RGB value of a color entry. Cells already on screen
// are repainted with the new value on the next Show.
func (s *ANSI) DefineColor(id ColorID, c colorful.Color) error {
	if !s.CanChangeColor() {
		return ErrNoColorChange
	}
	if err := s.table.defineColor(id, c); err != nil {
		return err
	}
	s.shown = nil
	return nil
}

// DefinePair registers a foreground/background pairing.
func (s *ANSI) DefinePair(id PairID, fg, bg ColorID) error {
	return s.table.definePair(id, fg, bg)
}

// PollKey returns the next pending key or KeyNone without blocking.
func (s *ANSI) PollKey() Key {
	select {
	case k, ok := <-s.keys:
		if ok {
			return k
		}
	default:
	}
	return KeyNone
}

// WaitKey blocks until a key arrives, the input ends or ctx is done.
func (s *ANSI) WaitKey(ctx context.Context) (Key, error) {
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

func (s *ANSI) readKeys(in io.Reader) {
	defer close(s.keys)
	r := bufio.NewReader(in)
	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			return
		}
		select {
		case s.keys <- Key(ch):
		case <-s.done:
			return
		}
	}
}

// Close restores the terminal. It is safe to call more than once.
func (s *ANSI) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.out.Reset()
		s.out.ShowCursor()
		if s.altScreen {
			s.out.ExitAltScreen()
		}
		if s.restore != nil {
			s.closeErr = s.restore()
		}
	})
	return s.closeErr
}
