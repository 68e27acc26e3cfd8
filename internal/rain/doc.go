// Package rain animates falling streams of glyphs on a terminal surface.
//
// A Scheduler owns every live Stream. Each frame it may start one new
// stream on a free column from the ColumnPool, steps every live stream
// exactly once, then retires the streams whose tail has left the screen
// and hands their columns back to the pool. Streams paint through a
// Painter, which picks between a multi-shade green gradient and a two-tone
// fallback depending on what the surface can display.
//
// Everything runs on the caller's goroutine. Streams are plain state
// holders advanced by Step; there is no per-stream goroutine.
package rain
