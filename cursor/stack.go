// Package cursor provides nested save/restore of a drawing surface's cursor.
package cursor

import "github.com/lixenwraith/curses/geom"

// Surface exposes the cursor of a single drawing surface
type Surface interface {
	CursorPosition() geom.Point
	MoveCursor(p geom.Point)
}

// Stack saves and restores surface positions in strict LIFO order.
// Not safe for concurrent use; one logical caller per surface at a time.
type Stack struct {
	surface Surface
	saved   []geom.Point
}

// NewStack binds a stack to s
func NewStack(s Surface) *Stack {
	return &Stack{surface: s}
}

// Push records the current position
func (st *Stack) Push() {
	st.saved = append(st.saved, st.surface.CursorPosition())
}

// PushTo records the current position, then moves the cursor to p
func (st *Stack) PushTo(p geom.Point) {
	st.Push()
	st.surface.MoveCursor(p)
}

// Pop restores the most recently pushed position.
// Panics on an empty stack: push/pop calls are unbalanced.
func (st *Stack) Pop() {
	n := len(st.saved)
	if n == 0 {
		panic("cursor: position stack is empty; unbalanced Pop")
	}
	p := st.saved[n-1]
	st.saved = st.saved[:n-1]
	st.surface.MoveCursor(p)
}

// Depth returns the number of saved positions
func (st *Stack) Depth() int {
	return len(st.saved)
}
