package terminal

// Attr is a window attribute: style bits in the low half, color pair index
// in the high half
type Attr uint32

const (
	AttrNone      Attr = 0
	AttrStandout  Attr = 1 << 0
	AttrUnderline Attr = 1 << 1
	AttrReverse   Attr = 1 << 2
	AttrBlink     Attr = 1 << 3
	AttrDim       Attr = 1 << 4
	AttrBold      Attr = 1 << 5
	AttrInvisible Attr = 1 << 6
	AttrItalic    Attr = 1 << 7
)

// AttrStyle masks only the style bits (excludes pair index)
const AttrStyle Attr = AttrStandout | AttrUnderline | AttrReverse | AttrBlink |
	AttrDim | AttrBold | AttrInvisible | AttrItalic

const pairShift = 16

// AttrPair masks the color pair index
const AttrPair Attr = 0xFFFF << pairShift

// MaxPairIndex is the largest pair index representable in an Attr
const MaxPairIndex = 0xFFFF

// PairAttr returns the attribute value selecting color pair index
func PairAttr(index int) Attr {
	return Attr(index&MaxPairIndex) << pairShift
}

// Pair returns the color pair index carried by a, 0 when none
func (a Attr) Pair() int {
	return int(a >> pairShift)
}

// Style returns a with the pair index stripped
func (a Attr) Style() Attr {
	return a & AttrStyle
}

// on merges other into a; a pair in other replaces the pair in a
func (a Attr) on(other Attr) Attr {
	if other&AttrPair != 0 {
		a &^= AttrPair
	}
	return a | other
}

// off clears the style bits of other from a; any pair in other resets a to pair 0
func (a Attr) off(other Attr) Attr {
	if other&AttrPair != 0 {
		a &^= AttrPair
	}
	return a &^ (other & AttrStyle)
}
