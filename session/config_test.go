package session

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/curses/terminal"
)

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "curses.toml", `
max_pairs = 32
buffering = "half-delay"
half_delay = "50ms"
cursor = "invisible"
theme = "themes/amber.toml"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MaxPairs != 32 || cfg.Buffering != terminal.BufferingHalfDelay || cfg.HalfDelay != 50*time.Millisecond {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.CursorStyle != terminal.CursorInvisible {
		t.Errorf("cursor = %v", cfg.CursorStyle)
	}
	if want := filepath.Join(filepath.Dir(path), "themes", "amber.toml"); cfg.ThemePath != want {
		t.Errorf("theme = %q, want %q", cfg.ThemePath, want)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"unknown key", "colour = 1\n", "unknown key"},
		{"bad mode", `buffering = "eager"` + "\n", "buffering"},
		{"zero delay", "buffering = \"half-delay\"\nhalf_delay = \"0s\"\n", "half_delay"},
		{"pairs range", "max_pairs = 70000\n", "max_pairs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "c.toml", tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("err = %v, want %q", err, tt.msg)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}
