package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/curses/cursor"
	"github.com/lixenwraith/curses/geom"
	"github.com/lixenwraith/curses/glyph"
)

// Window is a rectangular drawing surface with its own cursor and current attribute
type Window struct {
	screen *Screen
	origin geom.Point
	size   geom.Size
	full   bool // tracks the screen size

	pos    geom.Point
	attr   Attr
	cursor *cursor.Stack

	bg     Attr // merged into every cell drawn
	bgRune rune // blank used by clears
	scroll bool
}

func newWindow(s *Screen, origin geom.Point, size geom.Size, full bool) *Window {
	w := &Window{
		screen: s,
		origin: origin,
		size:   size,
		full:   full,
		bgRune: ' ',
	}
	w.cursor = cursor.NewStack(w)
	return w
}

// Size returns the window extent clipped to the screen
func (w *Window) Size() geom.Size {
	scr := w.screen.Size()
	if w.full {
		return scr
	}
	size := w.size
	if w.origin.X+size.Width > scr.Width {
		size.Width = max(scr.Width-w.origin.X, 0)
	}
	if w.origin.Y+size.Height > scr.Height {
		size.Height = max(scr.Height-w.origin.Y, 0)
	}
	return size
}

// Origin returns the window's top-left corner in screen coordinates
func (w *Window) Origin() geom.Point {
	return w.origin
}

// Cursor returns the window's position stack
func (w *Window) Cursor() *cursor.Stack {
	return w.cursor
}

// CursorPosition returns the window-relative cursor
func (w *Window) CursorPosition() geom.Point {
	return w.pos
}

// MoveCursor positions the cursor, clamped to the window
func (w *Window) MoveCursor(p geom.Point) {
	size := w.Size()
	p.X = clamp(p.X, 0, size.Width-1)
	p.Y = clamp(p.Y, 0, size.Height-1)
	w.pos = p
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// --- Attributes ---

// Attr returns the current attribute
func (w *Window) Attr() Attr {
	return w.attr
}

// AttrOn turns on the bits of a; a pair in a replaces the current pair
func (w *Window) AttrOn(a Attr) {
	w.attr = w.attr.on(a)
}

// AttrOff turns off the style bits of a; a pair in a resets to the default pair
func (w *Window) AttrOff(a Attr) {
	w.attr = w.attr.off(a)
}

// AttrSet replaces the current attribute
func (w *Window) AttrSet(a Attr) {
	w.attr = a
}

// SetBackground sets the attribute merged into every cell the window draws
// and the rune clears paint with. A pair in attr applies only when the current
// attribute carries none. Cells already drawn keep their look until cleared.
func (w *Window) SetBackground(attr Attr, r rune) {
	if r == 0 || runewidth.RuneWidth(r) != 1 {
		r = ' '
	}
	w.bg = attr
	w.bgRune = r
}

// Background returns the background attribute and blank rune
func (w *Window) Background() (Attr, rune) {
	return w.bg, w.bgRune
}

// SetScroll chooses between scrolling the window up and dropping output
// when a write runs past the last line
func (w *Window) SetScroll(on bool) {
	w.scroll = on
}

// style renders the current attribute merged with the background into a tcell style
func (w *Window) style() tcell.Style {
	a := w.attr | w.bg.Style()
	if a.Pair() == 0 {
		a |= w.bg & AttrPair
	}
	st := w.screen.pairStyle(a.Pair())

	if a&AttrStandout != 0 {
		st = st.Reverse(true).Bold(true)
	}
	if a&AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if a&AttrReverse != 0 {
		st = st.Reverse(true)
	}
	if a&AttrBlink != 0 {
		st = st.Blink(true)
	}
	if a&AttrDim != 0 {
		st = st.Dim(true)
	}
	if a&AttrBold != 0 {
		st = st.Bold(true)
	}
	if a&AttrItalic != 0 {
		st = st.Italic(true)
	}
	if a&AttrInvisible != 0 {
		_, bg, _ := st.Decompose()
		st = st.Foreground(bg)
	}
	return st
}

// --- Output ---

// Write puts s at the cursor with the current attribute, advancing and wrapping the cursor.
// Past the last cell the window scrolls if enabled; otherwise output is dropped
// and the cursor stays on the last cell.
func (w *Window) Write(s string) {
	for _, r := range s {
		if !w.put(r) {
			return
		}
	}
}

// WriteRune writes a single rune
func (w *Window) WriteRune(r rune) {
	w.put(r)
}

func (w *Window) put(r rune) bool {
	size := w.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return false
	}

	if r == '\n' {
		w.ClearToEOL()
		return w.lineFeed(size)
	}

	width := runewidth.RuneWidth(r)
	if width == 0 {
		// Combining and control runes are not placed
		return true
	}

	st := w.style()
	w.screen.tc.SetContent(w.origin.X+w.pos.X, w.origin.Y+w.pos.Y, r, nil, st)

	next := w.pos.X + width
	if next < size.Width {
		w.pos.X = next
		return true
	}
	return w.lineFeed(size)
}

// lineFeed moves to the start of the next line, scrolling from the last one when enabled
func (w *Window) lineFeed(size geom.Size) bool {
	if w.pos.Y+1 < size.Height {
		w.pos = geom.Point{X: 0, Y: w.pos.Y + 1}
		return true
	}
	if !w.scroll {
		return false
	}
	w.scrollUp(size)
	w.pos = geom.Point{X: 0, Y: size.Height - 1}
	return true
}

// scrollUp shifts every line up by one and blanks the last line
func (w *Window) scrollUp(size geom.Size) {
	tc := w.screen.tc
	for y := 1; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			mainc, combc, st, _ := tc.GetContent(w.origin.X+x, w.origin.Y+y)
			tc.SetContent(w.origin.X+x, w.origin.Y+y-1, mainc, combc, st)
		}
	}
	w.fill(0, size.Height-1, size.Width)
}

// fill paints n background blanks from (x, y) without moving the cursor
func (w *Window) fill(x, y, n int) {
	st := w.style()
	for i := 0; i < n; i++ {
		w.screen.tc.SetContent(w.origin.X+x+i, w.origin.Y+y, w.bgRune, nil, st)
	}
}

// Clear paints the window with the background and homes the cursor
func (w *Window) Clear() {
	size := w.Size()
	for y := 0; y < size.Height; y++ {
		w.fill(0, y, size.Width)
	}
	w.pos = geom.Point{}
}

// ClearToEOL blanks from the cursor to the end of its line
func (w *Window) ClearToEOL() {
	size := w.Size()
	w.fill(w.pos.X, w.pos.Y, size.Width-w.pos.X)
}

// ClearToBottom blanks from the cursor to the end of the window
func (w *Window) ClearToBottom() {
	w.ClearToEOL()
	size := w.Size()
	for y := w.pos.Y + 1; y < size.Height; y++ {
		w.fill(0, y, size.Width)
	}
}

// Refresh places the hardware cursor and flushes pending cells
func (w *Window) Refresh() {
	w.showCursor()
	w.screen.tc.Show()
}

func (w *Window) showCursor() {
	w.screen.tc.ShowCursor(w.origin.X+w.pos.X, w.origin.Y+w.pos.Y)
}

// Cell returns the rune drawn at a window-relative point
func (w *Window) Cell(p geom.Point) rune {
	r, _, _, _ := w.screen.tc.GetContent(w.origin.X+p.X, w.origin.Y+p.Y)
	return r
}

// --- Borders ---

// DrawRect draws a heavy border around rect with the current attribute and restores the cursor.
// Panics if rect is smaller than 2x2.
func (w *Window) DrawRect(rect geom.Rect) {
	if rect.Size.Width < 2 || rect.Size.Height < 2 {
		panic("terminal: DrawRect requires at least a 2x2 rect")
	}

	topLeft := glyph.Glyph(false, false, true, true)
	topRight := glyph.Glyph(false, true, true, false)
	bottomLeft := glyph.Glyph(true, false, false, true)
	bottomRight := glyph.Glyph(true, true, false, false)
	horizontal := glyph.Glyph(false, true, false, true)
	vertical := glyph.Glyph(true, false, true, false)

	left := rect.TopLeft.X
	top := rect.TopLeft.Y
	br := rect.BottomRight()

	w.cursor.PushTo(rect.TopLeft)
	defer w.cursor.Pop()

	w.hline(left, top, rect.Size.Width, topLeft, horizontal, topRight)
	for y := top + 1; y < br.Y; y++ {
		w.MoveCursor(geom.Point{X: left, Y: y})
		w.WriteRune(vertical)
		w.MoveCursor(geom.Point{X: br.X, Y: y})
		w.WriteRune(vertical)
	}
	w.hline(left, br.Y, rect.Size.Width, bottomLeft, horizontal, bottomRight)
}

func (w *Window) hline(x, y, width int, first, run, last rune) {
	w.MoveCursor(geom.Point{X: x, Y: y})
	w.WriteRune(first)
	for i := 0; i < width-2; i++ {
		w.WriteRune(run)
	}
	w.WriteRune(last)
}
