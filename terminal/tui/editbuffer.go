package tui

// EditBuffer holds single-line field contents and the insertion point
type EditBuffer struct {
	Text   []rune
	Point  int // Insertion point in [0, len(Text)]
	MaxLen int // 0 = unbounded
}

// NewEditBuffer creates a buffer holding initial with the point at the end
func NewEditBuffer(initial string, maxLen int) *EditBuffer {
	runes := []rune(initial)
	if maxLen > 0 && len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	return &EditBuffer{
		Text:   runes,
		Point:  len(runes),
		MaxLen: maxLen,
	}
}

// --- Value access ---

// Value returns current text as string
func (b *EditBuffer) Value() string {
	return string(b.Text)
}

// Len returns the number of runes held
func (b *EditBuffer) Len() int {
	return len(b.Text)
}

// Full reports whether another rune would exceed MaxLen
func (b *EditBuffer) Full() bool {
	return b.MaxLen > 0 && len(b.Text) >= b.MaxLen
}

// Tail returns the runes from the insertion point to the end
func (b *EditBuffer) Tail() string {
	return string(b.Text[b.Point:])
}

// --- Editing ---

// Insert adds r at the insertion point, returns false when the buffer is full
func (b *EditBuffer) Insert(r rune) bool {
	if b.Full() {
		return false
	}
	b.Text = append(b.Text[:b.Point], append([]rune{r}, b.Text[b.Point:]...)...)
	b.Point++
	return true
}

// DeleteBackward removes the rune before the insertion point
func (b *EditBuffer) DeleteBackward() bool {
	if b.Point > 0 {
		b.Text = append(b.Text[:b.Point-1], b.Text[b.Point:]...)
		b.Point--
		return true
	}
	return false
}

// --- Movement ---

// MoveLeft moves the insertion point back one rune
func (b *EditBuffer) MoveLeft() bool {
	if b.Point > 0 {
		b.Point--
		return true
	}
	return false
}

// MoveRight moves the insertion point forward one rune
func (b *EditBuffer) MoveRight() bool {
	if b.Point < len(b.Text) {
		b.Point++
		return true
	}
	return false
}
