package session

import (
	"fmt"
	"log"
	"os"

	"github.com/lixenwraith/curses/palette"
	"github.com/lixenwraith/curses/terminal"
	"github.com/lixenwraith/curses/toml"
)

// ThemeColor is a [[color]] entry: either hex or all three thousandths components
type ThemeColor struct {
	Name  string `toml:"name"`
	Red   *int   `toml:"red"`
	Green *int   `toml:"green"`
	Blue  *int   `toml:"blue"`
	Hex   string `toml:"hex"`
}

// ThemePair is a [[pair]] entry naming two colors
type ThemePair struct {
	Name       string `toml:"name"`
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
}

// Theme is a set of colors and pairs registered together
type Theme struct {
	Name   string       `toml:"name"`
	Colors []ThemeColor `toml:"color"`
	Pairs  []ThemePair  `toml:"pair"`
}

// Thousandths resolves the entry to [0,1000] components
func (c ThemeColor) Thousandths() (r, g, b int, err error) {
	rgbSet := c.Red != nil || c.Green != nil || c.Blue != nil
	switch {
	case c.Hex != "" && rgbSet:
		return 0, 0, 0, fmt.Errorf("both hex and red/green/blue given")
	case c.Hex != "":
		rgb, err := terminal.ParseHex(c.Hex)
		if err != nil {
			return 0, 0, 0, err
		}
		r, g, b = rgb.Thousandths()
		return r, g, b, nil
	case c.Red == nil || c.Green == nil || c.Blue == nil:
		return 0, 0, 0, fmt.Errorf("red, green and blue are all required without hex")
	}
	return *c.Red, *c.Green, *c.Blue, nil
}

// ParseTheme decodes theme TOML; unknown keys are errors
func ParseTheme(data []byte) (Theme, error) {
	var th Theme
	if err := toml.UnmarshalStrict(data, &th); err != nil {
		return Theme{}, err
	}
	for i, c := range th.Colors {
		if c.Name == "" {
			return Theme{}, fmt.Errorf("color #%d: missing name", i+1)
		}
	}
	for i, p := range th.Pairs {
		if p.Name == "" || p.Foreground == "" || p.Background == "" {
			return Theme{}, fmt.Errorf("pair #%d: name, foreground and background are required", i+1)
		}
	}
	return th, nil
}

// ReadTheme loads and parses a theme file
func ReadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}
	th, err := ParseTheme(data)
	if err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", path, err)
	}
	return th, nil
}

// ApplyTheme registers every color, then every pair, stopping at the first failure.
// Entries registered before the failure stay registered.
func ApplyTheme(reg *palette.Registry, th Theme) error {
	for _, c := range th.Colors {
		r, g, b, err := c.Thousandths()
		if err != nil {
			return fmt.Errorf("theme color %q: %w", c.Name, err)
		}
		if _, err := reg.RegisterColor(c.Name, r, g, b); err != nil {
			return fmt.Errorf("theme color %q: %w", c.Name, err)
		}
	}
	for _, p := range th.Pairs {
		if _, err := reg.RegisterPair(p.Name, p.Foreground, p.Background); err != nil {
			return fmt.Errorf("theme pair %q: %w", p.Name, err)
		}
	}
	log.Printf("Applied theme %q: %d colors, %d pairs", th.Name, len(th.Colors), len(th.Pairs))
	return nil
}

// ApplyTheme registers th into the session palette
func (s *Session) ApplyTheme(th Theme) error {
	return ApplyTheme(s.palette, th)
}

// LoadTheme reads path and registers its entries into the session palette
func (s *Session) LoadTheme(path string) error {
	th, err := ReadTheme(path)
	if err != nil {
		return err
	}
	return s.ApplyTheme(th)
}
