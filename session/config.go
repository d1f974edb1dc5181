package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/curses/terminal"
	"github.com/lixenwraith/curses/toml"
)

// DefaultHalfDelay is the half-delay read timeout when none is configured
const DefaultHalfDelay = 100 * time.Millisecond

// Config controls how a session sets up the terminal
type Config struct {
	MaxPairs    int                  `toml:"max_pairs"`
	Buffering   terminal.Buffering   `toml:"buffering"`
	HalfDelay   time.Duration        `toml:"half_delay"`
	CursorStyle terminal.CursorStyle `toml:"cursor"`
	ThemePath   string               `toml:"theme"` // relative paths resolve against the config file

	// NewScreen creates the tcell device; nil uses tcell.NewScreen
	NewScreen func() (tcell.Screen, error) `toml:"-"`
}

// DefaultConfig returns blocking input, a visible cursor and the default pair table
func DefaultConfig() Config {
	return Config{
		MaxPairs:    terminal.DefaultMaxPairs,
		Buffering:   terminal.BufferingBlocking,
		HalfDelay:   DefaultHalfDelay,
		CursorStyle: terminal.CursorNormal,
	}
}

// LoadConfig reads a TOML config file over the defaults
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.ThemePath != "" && !filepath.IsAbs(cfg.ThemePath) {
		cfg.ThemePath = filepath.Join(filepath.Dir(path), cfg.ThemePath)
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges that the terminal layer would otherwise clamp silently
func (c Config) Validate() error {
	if c.MaxPairs < 0 || c.MaxPairs > terminal.MaxPairIndex+1 {
		return fmt.Errorf("max_pairs %d outside [0,%d]", c.MaxPairs, terminal.MaxPairIndex+1)
	}
	if c.Buffering == terminal.BufferingHalfDelay && c.HalfDelay <= 0 {
		return fmt.Errorf("half_delay must be positive in half-delay mode")
	}
	return nil
}
