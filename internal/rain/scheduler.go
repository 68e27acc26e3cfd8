package rain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"matrix_rain/internal/terminal"
)

// Splash text shown before the rain starts.
const (
	splashStart = "Press any key to start. Press any key (except SPACE) to stop."
	splashStyle = "Press key 'h' to try a different style."
	splashTitle = "T H E   M A T R I X"
)

// Stats counts what happened during a session.
type Stats struct {
	Frames  int
	Spawned int
	Retired int
}

// Scheduler owns the live streams and drives them one frame at a time.
type Scheduler struct {
	surface  Surface
	options  Options
	pool     *ColumnPool
	glyphs   *GlyphSource
	painter  *Painter
	streams  []*Stream
	random   *rand.Rand
	interval time.Duration
	logger   *slog.Logger
	stats    Stats

	rows, cols int
	prepared   bool
}

// New creates a scheduler for the surface. Colors are registered by
// Prepare, which Run calls after the splash screen.
func New(s Surface, cfg Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rows, cols := s.Size()
	random := rand.New(rand.NewSource(cfg.Seed))

	sch := &Scheduler{
		surface:  s,
		options:  cfg.Options,
		pool:     NewColumnPool(cols, random),
		glyphs:   NewGlyphSource(random),
		random:   random,
		interval: cfg.FrameInterval,
		logger:   logger,
		rows:     max(rows, 0),
		cols:     max(cols, 0),
	}
	sch.painter = NewPainter(s, Palette{shades: GradientShades}, sch.glyphs, &sch.options)
	return sch, nil
}

// Options returns a copy of the current options.
func (s *Scheduler) Options() Options { return s.options }

// Pool returns the column pool.
func (s *Scheduler) Pool() *ColumnPool { return s.pool }

// Streams returns the live streams in step order.
func (s *Scheduler) Streams() []*Stream { return s.streams }

// Stats returns the session counters.
func (s *Scheduler) Stats() Stats { return s.stats }

// Palette returns the palette in use.
func (s *Scheduler) Palette() Palette { return s.painter.palette }

// Splash draws the instructions and blocks until a key is pressed.
func (s *Scheduler) Splash(ctx context.Context) error {
	s.drawText(0, 0, splashStart)
	s.drawText(1, 0, splashStyle)
	s.drawText(s.rows/3, s.cols/4, splashTitle)
	if err := s.surface.Show(); err != nil {
		return fmt.Errorf("failed to show splash: %w", err)
	}
	if _, err := s.surface.WaitKey(ctx); err != nil {
		return fmt.Errorf("waiting for start key: %w", err)
	}
	return nil
}

func (s *Scheduler) drawText(row, col int, text string) {
	for _, r := range text {
		if col >= s.cols {
			return
		}
		s.surface.SetCell(row, col, r, terminal.DefaultPair, terminal.AttrNone)
		col++
	}
}

// Prepare hides the cursor and registers the palette. Calling it again is
// a no-op.
func (s *Scheduler) Prepare() error {
	if s.prepared {
		return nil
	}
	s.surface.HideCursor()
	palette, err := NewPalette(s.surface, GradientShades, s.logger)
	if err != nil {
		return err
	}
	s.painter.palette = palette
	s.prepared = true
	s.logger.Info("rain started",
		"rows", s.rows,
		"cols", s.cols,
		"gradient", palette.Gradient(),
		"max_streams", s.options.MaxStreams,
		"max_speed", s.options.MaxSpeed)
	return nil
}

// Tick advances the animation by one frame without flushing it.
func (s *Scheduler) Tick() {
	s.spawn()
	for _, st := range s.streams {
		st.Step(s.painter)
	}
	s.retire()
	s.stats.Frames++
}

// spawn starts at most one stream per frame.
func (s *Scheduler) spawn() {
	if len(s.streams) >= s.options.MaxStreams {
		return
	}
	col, ok := s.pool.Acquire()
	if !ok {
		return
	}
	length := s.rows/2 + s.random.Intn(s.rows-s.rows/2+1)
	speed := 1 + s.random.Intn(s.options.MaxSpeed)
	s.streams = append(s.streams, NewStream(col, length, speed))
	s.stats.Spawned++
	s.logger.Debug("stream spawned", "column", col, "length", length, "speed", speed)
}

// retire drops finished streams after every stream has stepped, keeping
// the order of the others.
func (s *Scheduler) retire() {
	live := s.streams[:0]
	for _, st := range s.streams {
		if !st.Finished(s.rows) {
			live = append(live, st)
			continue
		}
		st.fade(s.painter)
		s.pool.Release(st.Column())
		s.stats.Retired++
		s.logger.Debug("stream retired", "column", st.Column())
	}
	clear(s.streams[len(live):])
	s.streams = live
}

// HandleKey applies a keypress and reports whether the loop should stop.
func (s *Scheduler) HandleKey(k terminal.Key) (quit bool) {
	switch k {
	case terminal.KeyNone, KeyStep:
		return false
	case KeyToggleStyle:
		s.options.ToggleHead()
		s.logger.Info("head style changed", "style", s.options.Head)
		return false
	default:
		return true
	}
}

// Run shows the splash screen, then animates until a quit key is pressed
// or ctx is done. Cancellation is not an error.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Splash(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	if err := s.Prepare(); err != nil {
		return err
	}
	defer func() {
		s.logger.Info("rain stopped",
			"frames", s.stats.Frames,
			"spawned", s.stats.Spawned,
			"retired", s.stats.Retired)
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.Tick()
		if err := s.surface.Show(); err != nil {
			return fmt.Errorf("failed to show frame: %w", err)
		}
		if s.HandleKey(s.surface.PollKey()) {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
