// @focus: #sys { term }
// Package terminal adapts a tcell screen into the character-cell driver used
// by the drawing and editing primitives.
//
// Features:
//   - Indexed color slots with redefinable RGB (thousandths, curses style)
//   - Numbered color pairs addressed through attribute bits
//   - Windows with their own cursor, position stack and current attribute
//   - Blocking, half-delay and non-blocking key reads
//   - Resize and interrupt callbacks delivered between reads, never mid-draw
//
// One Screen exists per process; see package session for lifecycle.
package terminal
