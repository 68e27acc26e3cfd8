package rain

// Stream is one column of falling glyphs: a bright head, a fading body and
// a tail behind which the column is blank again.
//
// A stream only holds its position. The Scheduler calls Step once per frame
// and retires the stream once Finished reports true.
type Stream struct {
	column int
	head   int // row of the head, may run past the bottom edge
	length int
	speed  int

	drawnTail int // tail painted by the last Step
}

// NewStream creates a stream whose head starts at row 0.
func NewStream(column, length, speed int) *Stream {
	return &Stream{
		column: column,
		length: max(length, 0),
		speed:  max(speed, 1),
	}
}

func (s *Stream) Column() int { return s.column }
func (s *Stream) Head() int   { return s.head }
func (s *Stream) Length() int { return s.length }
func (s *Stream) Speed() int  { return s.speed }

// Middle is the row where the emphasized half of the body starts.
func (s *Stream) Middle() int {
	return max(0, s.head-s.length/2)
}

// Tail is the first row still covered by the body.
func (s *Stream) Tail() int {
	return max(0, s.head-s.length)
}

// Finished reports whether the tail has passed the bottom of a screen
// with the given number of rows.
func (s *Stream) Finished(rows int) bool {
	return s.head-s.length >= rows
}

// Step paints the current frame and moves the head down by speed rows.
func (s *Stream) Step(p *Painter) {
	middle, tail := s.Middle(), s.Tail()
	if tail > 0 {
		p.Clear(s.column, tail-s.speed, tail)
	}
	p.Body(s.column, s.head, middle, tail)
	p.Head(s.column, s.head)
	s.drawnTail = tail
	s.head += s.speed
}

// fade blanks what the last Step left of the body, from its tail down to
// the bottom edge.
func (s *Stream) fade(p *Painter) {
	p.Clear(s.column, s.drawnTail, p.rows)
}
