package glyph

import "testing"

func TestGlyph_AllCombinationsDistinct(t *testing.T) {
	seen := make(map[rune]Spokes, 16)
	for i := 0; i < 16; i++ {
		top := i&8 != 0
		left := i&4 != 0
		bottom := i&2 != 0
		right := i&1 != 0

		g := Glyph(top, left, bottom, right)
		if prev, dup := seen[g]; dup {
			t.Fatalf("glyph %q produced by both %04b and %04b", g, prev, i)
		}
		seen[g] = Spokes(i)

		if got := Of(top, left, bottom, right); got != Spokes(i) {
			t.Errorf("Of(%v,%v,%v,%v) = %d, want %d", top, left, bottom, right, got, i)
		}
	}
}

func TestGlyph_Table(t *testing.T) {
	tests := []struct {
		name                     string
		top, left, bottom, right bool
		want                     rune
	}{
		{"none", false, false, false, false, ' '},
		{"top-left corner", false, false, true, true, '┏'},
		{"top-right corner", false, true, true, false, '┓'},
		{"bottom-left corner", true, false, false, true, '┗'},
		{"bottom-right corner", true, true, false, false, '┛'},
		{"horizontal", false, true, false, true, '━'},
		{"vertical", true, false, true, false, '┃'},
		{"cross", true, true, true, true, '╋'},
		{"tee down", false, true, true, true, '┳'},
		{"tee up", true, true, false, true, '┻'},
		{"tee right", true, false, true, true, '┣'},
		{"tee left", true, true, true, false, '┫'},
		{"stub right", false, false, false, true, '╺'},
		{"stub left", false, true, false, false, '╸'},
		{"stub top", true, false, false, false, '╹'},
		{"stub bottom", false, false, true, false, '╻'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Glyph(tt.top, tt.left, tt.bottom, tt.right); got != tt.want {
				t.Errorf("Glyph() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromEdges(t *testing.T) {
	if got := FromEdges(); got != ' ' {
		t.Errorf("FromEdges() = %q, want blank", got)
	}
	if got := FromEdges(EdgeRight, EdgeBottom); got != '┏' {
		t.Errorf("FromEdges(right,bottom) = %q, want ┏", got)
	}
	if got := FromEdges(EdgeLeft, EdgeLeft, EdgeRight); got != '━' {
		t.Errorf("duplicate edges: got %q, want ━", got)
	}
}

func TestSpokes_Has(t *testing.T) {
	s := Of(true, false, true, false)
	if !s.Has(EdgeTop) || !s.Has(EdgeBottom) {
		t.Error("expected top and bottom present")
	}
	if s.Has(EdgeLeft) || s.Has(EdgeRight) {
		t.Error("expected left and right absent")
	}
	if s != TopBottom {
		t.Errorf("got %d, want TopBottom", s)
	}
}
