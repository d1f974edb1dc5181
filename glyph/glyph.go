// Package glyph maps the four edge spokes of a grid cell to the heavy
// box-drawing character that connects them.
package glyph

// Spokes is a 4-bit selector: top<<3 | left<<2 | bottom<<1 | right
type Spokes uint8

// Ordering follows the bit layout; table below is indexed by these values
const (
	None Spokes = iota
	Right
	Bottom
	BottomRight
	Left
	LeftRight
	LeftBottom
	LeftBottomRight
	Top
	TopRight
	TopBottom
	TopBottomRight
	TopLeft
	TopLeftRight
	TopLeftBottom
	All
)

// heavy is indexed by Spokes; do not reorder
var heavy = [16]rune{
	None:            ' ',
	Right:           '╺',
	Bottom:          '╻',
	BottomRight:     '┏',
	Left:            '╸',
	LeftRight:       '━',
	LeftBottom:      '┓',
	LeftBottomRight: '┳',
	Top:             '╹',
	TopRight:        '┗',
	TopBottom:       '┃',
	TopBottomRight:  '┣',
	TopLeft:         '┛',
	TopLeftRight:    '┻',
	TopLeftBottom:   '┫',
	All:             '╋',
}

// Edge is a single spoke direction
type Edge uint8

const (
	EdgeTop Edge = iota
	EdgeLeft
	EdgeBottom
	EdgeRight
)

// bit positions within Spokes, indexed by Edge
var edgeBit = [4]Spokes{
	EdgeTop:    1 << 3,
	EdgeLeft:   1 << 2,
	EdgeBottom: 1 << 1,
	EdgeRight:  1 << 0,
}

// Of composes the selector for the given edge flags
func Of(top, left, bottom, right bool) Spokes {
	var s Spokes
	if top {
		s |= edgeBit[EdgeTop]
	}
	if left {
		s |= edgeBit[EdgeLeft]
	}
	if bottom {
		s |= edgeBit[EdgeBottom]
	}
	if right {
		s |= edgeBit[EdgeRight]
	}
	return s
}

// Rune returns the glyph for s. Only the low four bits are significant.
func (s Spokes) Rune() rune {
	return heavy[s&0x0F]
}

// Has reports whether edge e is present in s
func (s Spokes) Has(e Edge) bool {
	return s&edgeBit[e&3] != 0
}

// Glyph returns the glyph joining the present edges
func Glyph(top, left, bottom, right bool) rune {
	return Of(top, left, bottom, right).Rune()
}

// FromEdges is the set form of Glyph; duplicate edges are harmless
func FromEdges(edges ...Edge) rune {
	var s Spokes
	for _, e := range edges {
		s |= edgeBit[e&3]
	}
	return s.Rune()
}
