// Package geom holds the cell-grid value types shared by the driver and the
// drawing primitives. Coordinates are 0-indexed, X grows right, Y grows down.
package geom

import "fmt"

// Point is a cell coordinate
type Point struct {
	X, Y int
}

// Offset returns p translated by dx, dy
func (p Point) Offset(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is a cell extent
type Size struct {
	Width, Height int
}

// Rect is an axis-aligned cell rectangle anchored at its top-left corner
type Rect struct {
	TopLeft Point
	Size    Size
}

// BottomRight returns the last cell inside the rectangle
func (r Rect) BottomRight() Point {
	return Point{
		X: r.TopLeft.X + r.Size.Width - 1,
		Y: r.TopLeft.Y + r.Size.Height - 1,
	}
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	br := r.BottomRight()
	return p.X >= r.TopLeft.X && p.X <= br.X && p.Y >= r.TopLeft.Y && p.Y <= br.Y
}
