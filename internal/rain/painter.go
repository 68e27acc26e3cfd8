package rain

import "matrix_rain/internal/terminal"

// Painter turns stream geometry into cell writes.
type Painter struct {
	surface Surface
	palette Palette
	glyphs  *GlyphSource
	options *Options
	rows    int
}

// NewPainter creates a painter. The options are read on every head paint.
func NewPainter(s Surface, palette Palette, glyphs *GlyphSource, options *Options) *Painter {
	rows, _ := s.Size()
	return &Painter{
		surface: s,
		palette: palette,
		glyphs:  glyphs,
		options: options,
		rows:    rows,
	}
}

// Clear blanks rows from..to-1 of col.
func (p *Painter) Clear(col, from, to int) {
	for i := max(from, 0); i < min(to, p.rows); i++ {
		p.surface.SetCell(i, col, ' ', terminal.DefaultPair, terminal.AttrNone)
	}
}

// Body paints rows tail..head-1 of col with fresh glyphs.
func (p *Painter) Body(col, head, middle, tail int) {
	end := min(head, p.rows)
	if p.palette.Gradient() {
		for i := max(tail, 0); i < end; i++ {
			shade := GradientIndex(i, head, p.palette.Shades())
			p.surface.SetCell(i, col, p.glyphs.Next(), p.palette.ShadePair(shade), terminal.AttrNone)
		}
		return
	}
	for i := max(tail, 0); i < min(middle, end); i++ {
		p.surface.SetCell(i, col, p.glyphs.Next(), greenPair, terminal.AttrNone)
	}
	for i := max(middle, 0); i < end; i++ {
		p.surface.SetCell(i, col, p.glyphs.Next(), greenPair, terminal.AttrBold)
	}
}

// Head paints the leading glyph when it is on screen.
func (p *Painter) Head(col, head int) {
	if head < 0 || head >= p.rows {
		return
	}
	p.surface.SetCell(head, col, p.glyphs.Next(), headPair, p.options.Head.Attr())
}
