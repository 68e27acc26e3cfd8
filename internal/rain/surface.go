package rain

import (
	"context"

	"github.com/lucasb-eyer/go-colorful"

	"matrix_rain/internal/terminal"
)

// Surface is the terminal the rain is drawn on. Both terminal.ANSI and
// terminal.Tcell satisfy it.
type Surface interface {
	Size() (rows, cols int)
	SetCell(row, col int, glyph rune, pair terminal.PairID, attr terminal.Attr)
	Show() error
	HideCursor()

	CanChangeColor() bool
	DefineColor(id terminal.ColorID, c colorful.Color) error
	DefinePair(id terminal.PairID, fg, bg terminal.ColorID) error

	// PollKey must not block; it returns terminal.KeyNone when idle.
	PollKey() terminal.Key
	WaitKey(ctx context.Context) (terminal.Key, error)
}
