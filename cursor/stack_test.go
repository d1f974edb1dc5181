package cursor

import (
	"testing"

	"github.com/lixenwraith/curses/geom"
)

type fakeSurface struct {
	pos   geom.Point
	moves int
}

func (f *fakeSurface) CursorPosition() geom.Point { return f.pos }
func (f *fakeSurface) MoveCursor(p geom.Point) {
	f.pos = p
	f.moves++
}

func TestStack_PushPopRestores(t *testing.T) {
	s := &fakeSurface{pos: geom.Point{X: 3, Y: 4}}
	st := NewStack(s)

	st.Push()
	s.MoveCursor(geom.Point{X: 10, Y: 10})
	st.Pop()

	if s.pos != (geom.Point{X: 3, Y: 4}) {
		t.Errorf("position after pop = %v, want (3,4)", s.pos)
	}
	if st.Depth() != 0 {
		t.Errorf("depth = %d, want 0", st.Depth())
	}
}

func TestStack_Nesting(t *testing.T) {
	start := geom.Point{X: 1, Y: 1}
	s := &fakeSurface{pos: start}
	st := NewStack(s)

	st.PushTo(geom.Point{X: 5, Y: 5})
	if s.pos != (geom.Point{X: 5, Y: 5}) {
		t.Fatalf("PushTo did not move cursor: %v", s.pos)
	}

	st.PushTo(geom.Point{X: 9, Y: 2})
	st.Push()
	s.MoveCursor(geom.Point{X: 0, Y: 0})

	st.Pop()
	if s.pos != (geom.Point{X: 9, Y: 2}) {
		t.Errorf("after first pop = %v, want (9,2)", s.pos)
	}
	st.Pop()
	if s.pos != (geom.Point{X: 5, Y: 5}) {
		t.Errorf("after second pop = %v, want (5,5)", s.pos)
	}
	st.Pop()
	if s.pos != start {
		t.Errorf("after final pop = %v, want %v", s.pos, start)
	}
}

func TestStack_PushRecordsBeforeMove(t *testing.T) {
	s := &fakeSurface{pos: geom.Point{X: 2, Y: 7}}
	st := NewStack(s)

	st.PushTo(geom.Point{X: 0, Y: 0})
	if s.moves != 1 {
		t.Fatalf("moves = %d, want 1", s.moves)
	}
	st.Pop()
	if s.pos != (geom.Point{X: 2, Y: 7}) {
		t.Errorf("restored %v, want (2,7)", s.pos)
	}
}

func TestStack_PopEmptyPanics(t *testing.T) {
	st := NewStack(&fakeSurface{})

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on empty pop")
		}
	}()
	st.Pop()
}

func TestStack_UnmatchedPopPanics(t *testing.T) {
	st := NewStack(&fakeSurface{})
	st.Push()
	st.Pop()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on pop without matching push")
		}
	}()
	st.Pop()
}
