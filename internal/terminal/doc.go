// Package terminal provides the cell surfaces the rain is drawn on.
//
// Two surfaces share one vocabulary of color ids, color pairs and
// attributes:
//   - ANSI writes escape sequences through termenv, keeps a double buffer
//     and flushes only changed cells
//   - Tcell wraps a tcell.Screen, including the simulation screen
//
// Color ids follow the ANSI numbering: 0-7 are the basic colors and any
// other id must be defined before a pair can reference it. Pair 0 is the
// cleared pair (white on black) and always exists.
package terminal
