package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/curses/cursor"
	"github.com/lixenwraith/curses/geom"
	"github.com/lixenwraith/curses/terminal"
)

// KeySource delivers key events; *terminal.Screen and *session.Session satisfy it
type KeySource interface {
	ReadKey(ctx context.Context) (terminal.Event, error)
}

// Surface is the drawing target of an editor; *terminal.Window satisfies it
type Surface interface {
	cursor.Surface
	Cursor() *cursor.Stack
	Size() geom.Size
	Write(s string)
	Refresh()
}

// Highlighter paints the field with a named pair; *palette.Registry satisfies it
type Highlighter interface {
	Started() bool
	Activate(name string) error
	Deactivate(name string)
}

// pollInterval paces reads while the key source reports no input
const pollInterval = 10 * time.Millisecond

// LineEditor configures a single-line text field
type LineEditor struct {
	Position  geom.Point // field start, window-relative
	MaxLength int        // field width and buffer cap; 0 = to the end of the line, less the caret cell
	Initial   string     // runes that do not fill exactly one cell are dropped

	// Highlight names the pair painted under the field; requires Palette with started colors
	Highlight string
	Palette   Highlighter
}

// Result is the outcome of an edit
type Result struct {
	Text       string
	Terminator terminal.Key // KeyEnter or KeyTab
}

// Editor is a running LineEditor bound to one surface
type Editor struct {
	cfg   LineEditor
	w     Surface
	buf   *EditBuffer
	width int
	done  bool
	term  terminal.Key
}

// Start saves the surface cursor, paints the field and returns the editing state.
// Panics if a highlight is requested without a started color subsystem.
func (c LineEditor) Start(w Surface) *Editor {
	// A field reaching the right edge keeps its last cell for the caret
	avail := w.Size().Width - c.Position.X
	width := avail - 1
	if c.MaxLength > 0 && c.MaxLength < avail {
		width = c.MaxLength
	}
	if width < 0 {
		width = 0
	}

	ed := &Editor{
		cfg:   c,
		w:     w,
		buf:   NewEditBuffer(strings.Map(keepPrintable, c.Initial), width),
		width: width,
	}

	w.Cursor().PushTo(c.Position)

	if c.Highlight != "" {
		if c.Palette == nil || !c.Palette.Started() {
			panic("tui: field highlight requires started colors")
		}
		if err := c.Palette.Activate(c.Highlight); err != nil {
			panic(fmt.Sprintf("tui: field highlight %q: %v", c.Highlight, err))
		}
		w.Write(strings.Repeat(" ", width))
		w.MoveCursor(c.Position)
	}

	if ed.buf.Len() > 0 {
		w.Write(ed.buf.Value())
	}
	ed.place()
	return ed
}

// Buffer exposes the field contents
func (ed *Editor) Buffer() *EditBuffer {
	return ed.buf
}

// Caret returns the on-screen position of the insertion point
func (ed *Editor) Caret() geom.Point {
	return ed.cfg.Position.Offset(ed.buf.Point, 0)
}

// Done reports whether a terminating key was handled
func (ed *Editor) Done() bool {
	return ed.done
}

func (ed *Editor) place() {
	ed.w.MoveCursor(ed.Caret())
}

// Handle applies one key event and reports whether editing is finished
func (ed *Editor) Handle(ev terminal.Event) bool {
	if ed.done || ev.Type != terminal.EventKey {
		return ed.done
	}

	switch ev.Key {
	case terminal.KeyRune:
		if !printable(ev.Rune) {
			return false
		}
		if !ed.buf.Insert(ev.Rune) {
			return false
		}
		ed.w.MoveCursor(ed.cfg.Position.Offset(ed.buf.Point-1, 0))
		ed.w.Write(string(ed.buf.Text[ed.buf.Point-1:]))
		ed.place()

	case terminal.KeySpace:
		return ed.Handle(terminal.RuneEvent(' '))

	case terminal.KeyBackspace:
		if !ed.buf.DeleteBackward() {
			return false
		}
		ed.place()
		ed.w.Write(ed.buf.Tail() + " ")
		ed.place()

	case terminal.KeyLeft:
		if ed.buf.MoveLeft() {
			ed.place()
		}

	case terminal.KeyRight:
		if ed.buf.MoveRight() {
			ed.place()
		}

	case terminal.KeyEnter, terminal.KeyTab:
		ed.done = true
		ed.term = ev.Key
	}
	return ed.done
}

// Finish removes the highlight, restores the cursor saved by Start and returns the contents
func (ed *Editor) Finish() Result {
	if ed.cfg.Highlight != "" {
		ed.cfg.Palette.Deactivate(ed.cfg.Highlight)
	}
	ed.w.Cursor().Pop()
	ed.w.Refresh()
	return Result{Text: ed.buf.Value(), Terminator: ed.term}
}

// Edit runs the field until Enter or Tab. On a read error the cursor is
// restored and the text collected so far is returned with the error.
func (c LineEditor) Edit(ctx context.Context, w Surface, keys KeySource) (Result, error) {
	ed := c.Start(w)
	w.Refresh()

	for !ed.done {
		ev, err := keys.ReadKey(ctx)
		if errors.Is(err, terminal.ErrNoInput) {
			select {
			case <-ctx.Done():
				return ed.Finish(), ctx.Err()
			case <-time.After(pollInterval):
			}
			continue
		}
		if err != nil {
			return ed.Finish(), err
		}
		if ed.Handle(ev) {
			break
		}
		w.Refresh()
	}
	return ed.Finish(), nil
}

// Run is Edit returning only the text
func (c LineEditor) Run(ctx context.Context, w Surface, keys KeySource) (string, error) {
	res, err := c.Edit(ctx, w, keys)
	return res.Text, err
}

// printable accepts runes that occupy exactly one cell, keeping the caret at fieldStart+point
func printable(r rune) bool {
	return unicode.IsPrint(r) && runewidth.RuneWidth(r) == 1
}

// keepPrintable is a strings.Map filter dropping runes printable rejects
func keepPrintable(r rune) rune {
	if printable(r) {
		return r
	}
	return -1
}
