package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// MaxIntensity is the upper bound of a color component in thousandths
const MaxIntensity = 1000

// Standard color indices, present on every color terminal
const (
	ColorBlack = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite

	StandardColorCount
)

// StandardColorNames maps standard indices to their canonical names
var StandardColorNames = [StandardColorCount]string{
	ColorBlack:   "black",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
	ColorBlue:    "blue",
	ColorMagenta: "magenta",
	ColorCyan:    "cyan",
	ColorWhite:   "white",
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// FromThousandths converts curses-style [0,1000] components, clamping out-of-range input
func FromThousandths(r, g, b int) RGB {
	c := colorful.Color{
		R: float64(r) / MaxIntensity,
		G: float64(g) / MaxIntensity,
		B: float64(b) / MaxIntensity,
	}.Clamped()
	r8, g8, b8 := c.RGB255()
	return RGB{R: r8, G: g8, B: b8}
}

// Thousandths converts c to curses-style [0,1000] components
func (c RGB) Thousandths() (r, g, b int) {
	cf := c.colorful()
	return scale(cf.R), scale(cf.G), scale(cf.B)
}

// ParseHex parses #rrggbb or #rgb
func ParseHex(s string) (RGB, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, err
	}
	r8, g8, b8 := cf.RGB255()
	return RGB{R: r8, G: g8, B: b8}, nil
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (c RGB) tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func scale(v float64) int {
	return int(math.Round(v * MaxIntensity))
}

// paletteRGB returns the terminal's nominal value for palette slot index
func paletteRGB(index int) RGB {
	r, g, b := tcell.PaletteColor(index).RGB()
	if r < 0 {
		return RGBBlack
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}
