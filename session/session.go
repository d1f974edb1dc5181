// Package session owns the one terminal session a process may run: the
// screen, its color registry and the delivery of interrupt and resize
// notifications.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/curses/geom"
	"github.com/lixenwraith/curses/palette"
	"github.com/lixenwraith/curses/terminal"
)

// ErrAlreadyRunning is returned by Start while another session is live
var ErrAlreadyRunning = errors.New("session: a session is already running")

// running guards the single session per process
var running atomic.Bool

// Handler receives out-of-band notifications. Both methods run inside
// ReadKey, between drawing operations, and must not draw.
type Handler interface {
	Interrupt()
	WindowChanged(size geom.Size)
}

// Session is the live terminal context
type Session struct {
	screen  *terminal.Screen
	palette *palette.Registry

	signals   chan os.Signal
	relayDone chan struct{}
	closed    bool
}

// colorDriver binds the screen's color slots to the standard window's attributes
type colorDriver struct {
	*terminal.Screen
	win *terminal.Window
}

func (d colorDriver) Attr() terminal.Attr     { return d.win.Attr() }
func (d colorDriver) AttrOn(a terminal.Attr)  { d.win.AttrOn(a) }
func (d colorDriver) AttrSet(a terminal.Attr) { d.win.AttrSet(a) }

// Start initializes the terminal. h may be nil, in which case Ctrl+C arrives
// as a key and process signals keep their default behavior.
func Start(cfg Config, h Handler) (*Session, error) {
	if !running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	s, err := start(cfg, h)
	if err != nil {
		running.Store(false)
		return nil, err
	}
	return s, nil
}

func start(cfg Config, h Handler) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}

	newScreen := cfg.NewScreen
	if newScreen == nil {
		newScreen = tcell.NewScreen
	}
	tc, err := newScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}

	scr := terminal.NewScreen(tc, terminal.Options{
		MaxPairs:  cfg.MaxPairs,
		Buffering: cfg.Buffering,
		HalfDelay: cfg.HalfDelay,
	})
	if err := scr.Init(); err != nil {
		return nil, err
	}
	scr.SetCursorStyle(cfg.CursorStyle)

	s := &Session{
		screen:  scr,
		palette: palette.New(colorDriver{Screen: scr, win: scr.Window()}),
	}

	if h != nil {
		scr.OnInterrupt(h.Interrupt)
		scr.OnResize(h.WindowChanged)
		s.relaySignals()
	}

	if cfg.ThemePath != "" {
		if err := s.LoadTheme(cfg.ThemePath); err != nil {
			s.teardown()
			return nil, err
		}
	}

	size := scr.Size()
	log.Printf("Session started: %dx%d, %d colors, %d pairs", size.Width, size.Height, scr.MaxColors(), scr.MaxPairs())
	return s, nil
}

// relaySignals turns shutdown signals into screen interrupts so the handler runs on the reading goroutine
func (s *Session) relaySignals() {
	s.signals = make(chan os.Signal, 1)
	s.relayDone = make(chan struct{})
	signal.Notify(s.signals, shutdownSignals...)

	go func() {
		defer close(s.relayDone)
		for sig := range s.signals {
			log.Printf("Received signal: %v", sig)
			s.screen.PostInterrupt()
		}
	}()
}

// Shutdown restores the terminal and releases the process-wide slot. Safe to call multiple times
func (s *Session) Shutdown() {
	if s.closed {
		return
	}
	s.teardown()
	running.Store(false)
	log.Printf("Session shut down")
}

func (s *Session) teardown() {
	s.closed = true
	if s.signals != nil {
		signal.Stop(s.signals)
		close(s.signals)
		<-s.relayDone
	}
	s.screen.Fini()
}

// Screen returns the underlying device
func (s *Session) Screen() *terminal.Screen {
	return s.screen
}

// Window returns the standard window; palette activation styles this window
func (s *Session) Window() *terminal.Window {
	return s.screen.Window()
}

// NewWindow creates a subwindow at pos
func (s *Session) NewWindow(pos geom.Point, size geom.Size) *terminal.Window {
	return s.screen.NewWindow(pos, size)
}

// Palette returns the session's color registry
func (s *Session) Palette() *palette.Registry {
	return s.palette
}

// Size returns the terminal dimensions
func (s *Session) Size() geom.Size {
	return s.screen.Size()
}

// ReadKey waits for the next key; handlers run from here
func (s *Session) ReadKey(ctx context.Context) (terminal.Event, error) {
	return s.screen.ReadKey(ctx)
}

// SetBuffering changes the key wait mode
func (s *Session) SetBuffering(b terminal.Buffering, halfDelay time.Duration) {
	s.screen.SetBuffering(b, halfDelay)
}
