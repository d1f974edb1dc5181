package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/lixenwraith/curses/geom"
	"github.com/lixenwraith/curses/palette"
	"github.com/lixenwraith/curses/session"
	"github.com/lixenwraith/curses/terminal"
	"github.com/lixenwraith/curses/terminal/tui"
)

const (
	fieldPair  = "field"
	fieldWidth = 24
	exitCancel = 130
)

var (
	configFlag = flag.String("config", "", "TOML config file")
	themeFlag  = flag.String("theme", "", "theme file, overrides the config")
	labelFlag  = flag.String("label", "Name", "prompt label")
	debugFlag  = flag.Bool("debug", false, "write logs to "+logDir+"/"+logFileName)
)

// demo cancels the prompt on interrupt and records resizes
type demo struct {
	cancel context.CancelFunc
}

func (d *demo) Interrupt() {
	log.Printf("Interrupt, cancelling prompt")
	d.cancel()
}

func (d *demo) WindowChanged(size geom.Size) {
	log.Printf("Window resized to %dx%d", size.Width, size.Height)
}

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "curses-demo: stdin is not a terminal")
		os.Exit(1)
	}

	cfg := session.DefaultConfig()
	if *configFlag != "" {
		var err error
		if cfg, err = session.LoadConfig(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "curses-demo: %v\n", err)
			os.Exit(1)
		}
	}
	if *themeFlag != "" {
		cfg.ThemePath = *themeFlag
	}

	os.Exit(run(cfg, *labelFlag))
}

func run(cfg session.Config, label string) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := session.Start(cfg, &demo{cancel: cancel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "curses-demo: %v\n", err)
		return 1
	}
	defer s.Shutdown()

	// Restore the terminal before printing a crash
	defer func() {
		if r := recover(); r != nil {
			s.Shutdown()
			fmt.Fprintf(os.Stderr, "curses-demo crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	text, err := prompt(ctx, s, label)
	s.Shutdown()

	switch {
	case errors.Is(err, context.Canceled):
		fmt.Println("cancelled")
		return exitCancel
	case err != nil:
		fmt.Fprintf(os.Stderr, "curses-demo: %v\n", err)
		return 1
	}
	fmt.Printf("%s: %q\n", label, text)
	return 0
}

// prompt draws a framed, labelled field and edits it until Enter or Tab
func prompt(ctx context.Context, s *session.Session, label string) (string, error) {
	win := s.Window()
	win.Clear()

	highlight := ensureFieldPair(s.Palette())

	labelWidth := runewidth.StringWidth(label) + 2
	rect := geom.Rect{
		TopLeft: geom.Point{X: 2, Y: 1},
		Size:    geom.Size{Width: labelWidth + fieldWidth + 4, Height: 3},
	}
	inner := tui.Frame(win, rect, "curses")

	win.MoveCursor(inner.TopLeft.Offset(1, 0))
	win.Write(label + ": ")

	win.MoveCursor(geom.Point{X: rect.TopLeft.X, Y: rect.BottomRight().Y + 1})
	win.AttrOn(terminal.AttrDim)
	win.Write("Enter or Tab to finish, Ctrl+C to cancel")
	win.AttrOff(terminal.AttrDim)

	ed := tui.LineEditor{
		Position:  inner.TopLeft.Offset(1+labelWidth, 0),
		MaxLength: fieldWidth,
		Highlight: highlight,
		Palette:   s.Palette(),
	}
	return ed.Run(ctx, win, s)
}

// ensureFieldPair returns the pair name to highlight the field with, or "" on monochrome terminals.
// A theme may define the pair; otherwise black on cyan is registered.
func ensureFieldPair(reg *palette.Registry) string {
	if !reg.Supported() {
		return ""
	}
	if _, err := reg.LookupPair(fieldPair); errors.Is(err, palette.ErrNotFound) {
		if _, err := reg.RegisterPair(fieldPair, palette.Black.Name(), palette.Cyan.Name()); err != nil {
			log.Printf("Field highlight disabled: %v", err)
			return ""
		}
	}
	if !reg.Started() {
		return ""
	}
	return fieldPair
}
