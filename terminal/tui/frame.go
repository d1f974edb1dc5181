package tui

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/curses/geom"
	"github.com/lixenwraith/curses/terminal"
)

// Frame draws a heavy border around rect with an optional bold title on the
// top edge and returns the interior. The window cursor is left where it was.
// Panics if rect is smaller than 2x2.
func Frame(w *terminal.Window, rect geom.Rect, title string) geom.Rect {
	w.DrawRect(rect)

	if title != "" && rect.Size.Width > 4 {
		maxTitle := rect.Size.Width - 4
		if runewidth.StringWidth(title) > maxTitle {
			title = runewidth.Truncate(title, maxTitle, "…")
		}
		x := rect.TopLeft.X + (rect.Size.Width-runewidth.StringWidth(title)-2)/2

		w.Cursor().PushTo(geom.Point{X: x, Y: rect.TopLeft.Y})
		prev := w.Attr()
		w.AttrOn(terminal.AttrBold)
		w.Write(" " + title + " ")
		w.AttrSet(prev)
		w.Cursor().Pop()
	}

	return Inset(rect, 1)
}

// Inset shrinks rect by n cells on every side, never below zero size
func Inset(rect geom.Rect, n int) geom.Rect {
	return geom.Rect{
		TopLeft: rect.TopLeft.Offset(n, n),
		Size: geom.Size{
			Width:  max(rect.Size.Width-2*n, 0),
			Height: max(rect.Size.Height-2*n, 0),
		},
	}
}
