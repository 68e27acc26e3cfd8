package rain

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"matrix_rain/internal/terminal"
)

// === CONFIG ===

const (
	// DefaultFrameInterval paces the animation at about 25 frames per second.
	DefaultFrameInterval = 40 * time.Millisecond

	// GradientShades is the number of green shades above black in gradient
	// mode. Shade 0 is black, shade GradientShades is full green.
	GradientShades = 50

	// KeyToggleStyle switches the head emphasis.
	KeyToggleStyle terminal.Key = 'h'
	// KeyStep is ignored by the loop. It is kept free for single stepping.
	KeyStep terminal.Key = ' '
)

// HeadStyle is the emphasis used for the leading glyph of a stream.
type HeadStyle uint8

const (
	HeadStandout HeadStyle = iota // reverse video, reads better with small fonts
	HeadBold                      // bold, reads better with large fonts
)

// Attr returns the cell attribute for the style.
func (h HeadStyle) Attr() terminal.Attr {
	if h == HeadBold {
		return terminal.AttrBold
	}
	return terminal.AttrStandout
}

// Toggle returns the other style.
func (h HeadStyle) Toggle() HeadStyle {
	if h == HeadBold {
		return HeadStandout
	}
	return HeadBold
}

func (h HeadStyle) String() string {
	switch h {
	case HeadStandout:
		return "standout"
	case HeadBold:
		return "bold"
	default:
		return fmt.Sprintf("HeadStyle(%d)", h)
	}
}

// Options holds the rendering preferences of a session.
type Options struct {
	Head       HeadStyle // head emphasis, toggled at runtime
	MaxSpeed   int       // streams fall 1..MaxSpeed rows per frame
	MaxStreams int       // upper bound of concurrently falling streams
}

// NewOptions derives the options from the terminal size: one stream for
// every two columns, and faster streams on taller terminals.
func NewOptions(rows, cols int) Options {
	maxStreams := cols / 2
	if cols > 0 && maxStreams == 0 {
		maxStreams = 1
	}
	return Options{
		Head:       HeadStandout,
		MaxSpeed:   1 + max(rows, 0)/25,
		MaxStreams: maxStreams,
	}
}

// ToggleHead flips the head style.
func (o *Options) ToggleHead() {
	o.Head = o.Head.Toggle()
}

// Validate checks the options for validity.
func (o Options) Validate() error {
	if o.Head != HeadStandout && o.Head != HeadBold {
		return fmt.Errorf("unknown head style: %d", o.Head)
	}
	if o.MaxSpeed < 1 {
		return fmt.Errorf("max speed must be at least 1: got %d", o.MaxSpeed)
	}
	if o.MaxStreams < 0 {
		return fmt.Errorf("max streams cannot be negative: got %d", o.MaxStreams)
	}
	return nil
}

// Config holds everything a Scheduler needs besides its surface.
type Config struct {
	Options       Options
	FrameInterval time.Duration
	Seed          int64        // random source seed
	Logger        *slog.Logger // nil discards
}

// DefaultConfig returns the configuration for a terminal of the given size.
func DefaultConfig(rows, cols int) Config {
	return Config{
		Options:       NewOptions(rows, cols),
		FrameInterval: DefaultFrameInterval,
		Seed:          time.Now().UnixNano(),
	}
}

// Validate checks the configuration for validity.
func (c Config) Validate() error {
	if err := c.Options.Validate(); err != nil {
		return err
	}
	if c.FrameInterval <= 0 {
		return errors.New("frame interval must be positive")
	}
	return nil
}
