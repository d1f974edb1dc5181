package terminal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/curses/geom"
)

var (
	// ErrNoInput is returned by ReadKey when no key arrived within the buffering mode's wait
	ErrNoInput = errors.New("terminal: no input available")
	// ErrClosed is returned by ReadKey once the screen is finalized
	ErrClosed = errors.New("terminal: screen closed")
	// ErrColorsUnsupported is returned by StartColor on monochrome terminals
	ErrColorsUnsupported = errors.New("terminal: colors are not supported")
)

// DefaultMaxPairs is the pair table size when Options.MaxPairs is zero
const DefaultMaxPairs = 256

// maxColorSlots caps indexed colors at the xterm palette size
const maxColorSlots = 256

// Buffering selects how ReadKey waits for input
type Buffering uint8

const (
	BufferingBlocking    Buffering = iota // wait until a key arrives
	BufferingHalfDelay                    // wait up to Options.HalfDelay
	BufferingNonBlocking                  // return immediately
)

// CursorStyle controls cursor visibility
type CursorStyle uint8

const (
	CursorInvisible CursorStyle = iota
	CursorNormal
	CursorVeryVisible
)

var bufferingNames = map[string]Buffering{
	"blocking":     BufferingBlocking,
	"half-delay":   BufferingHalfDelay,
	"non-blocking": BufferingNonBlocking,
}

// UnmarshalText parses blocking, half-delay or non-blocking
func (b *Buffering) UnmarshalText(text []byte) error {
	v, ok := bufferingNames[string(text)]
	if !ok {
		return fmt.Errorf("unknown buffering mode %q", text)
	}
	*b = v
	return nil
}

var cursorStyleNames = map[string]CursorStyle{
	"invisible":    CursorInvisible,
	"normal":       CursorNormal,
	"very-visible": CursorVeryVisible,
}

// UnmarshalText parses invisible, normal or very-visible
func (c *CursorStyle) UnmarshalText(text []byte) error {
	v, ok := cursorStyleNames[string(text)]
	if !ok {
		return fmt.Errorf("unknown cursor style %q", text)
	}
	*c = v
	return nil
}

// Options configures a Screen
type Options struct {
	MaxPairs  int
	Buffering Buffering
	HalfDelay time.Duration
}

// colorSlot keeps the thousandths as defined; rgb is the rendered approximation
type colorSlot struct {
	r, g, b int
	rgb     RGB
	custom  bool
}

func newColorSlot(r, g, b int, custom bool) colorSlot {
	r, g, b = clamp(r, 0, MaxIntensity), clamp(g, 0, MaxIntensity), clamp(b, 0, MaxIntensity)
	return colorSlot{r: r, g: g, b: b, rgb: FromThousandths(r, g, b), custom: custom}
}

type pairSlot struct {
	fg, bg int
	set    bool
}

// Screen is the single character-cell device backed by a tcell screen.
// Drawing and key reads must happen on one goroutine; only the internal event pump runs concurrently.
type Screen struct {
	tc   tcell.Screen
	opts Options

	std      *Window
	lastSize geom.Size

	colorStarted bool
	colors       []colorSlot
	pairs        []pairSlot

	events chan tcell.Event
	quit   chan struct{}
	done   chan struct{}

	onResize    func(geom.Size)
	onInterrupt func()

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewScreen wraps tc; call Init before use
func NewScreen(tc tcell.Screen, opts Options) *Screen {
	if opts.MaxPairs <= 0 {
		opts.MaxPairs = DefaultMaxPairs
	}
	if opts.MaxPairs > MaxPairIndex+1 {
		opts.MaxPairs = MaxPairIndex + 1
	}
	return &Screen{
		tc:     tc,
		opts:   opts,
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Init initializes the device, the standard window and the event pump
func (s *Screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := s.tc.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}

	n := s.tc.Colors()
	if n > maxColorSlots {
		n = maxColorSlots
	}
	s.colors = make([]colorSlot, n)
	for i := range s.colors {
		r, g, b := paletteRGB(i).Thousandths()
		s.colors[i] = newColorSlot(r, g, b, false)
	}
	s.pairs = make([]pairSlot, s.opts.MaxPairs)
	if len(s.pairs) > 0 {
		s.pairs[0] = pairSlot{fg: ColorWhite, bg: ColorBlack, set: true}
	}

	s.tc.SetStyle(tcell.StyleDefault)
	s.tc.Clear()

	w, h := s.tc.Size()
	s.lastSize = geom.Size{Width: w, Height: h}
	s.std = newWindow(s, geom.Point{}, geom.Size{}, true)

	go s.pump()

	s.initialized = true
	return nil
}

// Fini restores the terminal. Safe to call multiple times
func (s *Screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return
	}
	close(s.quit)
	s.tc.Fini()
	<-s.done
	s.finalized = true
}

// pump forwards tcell events until the device is finalized; it is the only sender on s.events
func (s *Screen) pump() {
	defer close(s.done)
	defer close(s.events)
	for {
		ev := s.tc.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.quit:
			return
		}
	}
}

// Window returns the standard window covering the whole screen
func (s *Screen) Window() *Window {
	return s.std
}

// NewWindow creates a window at pos; its size is clipped to the screen at draw time
func (s *Screen) NewWindow(pos geom.Point, size geom.Size) *Window {
	return newWindow(s, pos, size, false)
}

// Size returns current terminal dimensions
func (s *Screen) Size() geom.Size {
	w, h := s.tc.Size()
	return geom.Size{Width: w, Height: h}
}

// SetCursorStyle sets cursor visibility
func (s *Screen) SetCursorStyle(cs CursorStyle) {
	switch cs {
	case CursorInvisible:
		s.tc.HideCursor()
		return
	case CursorVeryVisible:
		s.tc.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	default:
		s.tc.SetCursorStyle(tcell.CursorStyleDefault)
	}
	s.std.showCursor()
}

// SetBuffering changes the ReadKey wait mode
func (s *Screen) SetBuffering(b Buffering, halfDelay time.Duration) {
	s.opts.Buffering = b
	s.opts.HalfDelay = halfDelay
}

// OnResize registers fn to run from ReadKey when the terminal size changes
func (s *Screen) OnResize(fn func(geom.Size)) {
	s.onResize = fn
}

// OnInterrupt registers fn to run from ReadKey on Ctrl+C or a posted interrupt.
// With no handler, Ctrl+C is delivered as a key.
func (s *Screen) OnInterrupt(fn func()) {
	s.onInterrupt = fn
}

// PostInterrupt queues an interrupt notification; safe from any goroutine
func (s *Screen) PostInterrupt() {
	_ = s.tc.PostEvent(tcell.NewEventInterrupt(nil))
}

// ReadKey returns the next key event according to the buffering mode.
// Resize and interrupt notifications are dispatched to their handlers here, between primitives.
func (s *Screen) ReadKey(ctx context.Context) (Event, error) {
	var timeout <-chan time.Time
	switch s.opts.Buffering {
	case BufferingHalfDelay:
		t := time.NewTimer(s.opts.HalfDelay)
		defer t.Stop()
		timeout = t.C
	case BufferingNonBlocking:
		t := time.NewTimer(0)
		defer t.Stop()
		timeout = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-timeout:
			// Drain anything that raced with the timer before giving up
			select {
			case ev, ok := <-s.events:
				if e, done, err := s.dispatch(ev, ok); done {
					return e, err
				}
			default:
			}
			return Event{}, ErrNoInput
		case ev, ok := <-s.events:
			if e, done, err := s.dispatch(ev, ok); done {
				return e, err
			}
		}
	}
}

// dispatch handles one tcell event; done reports whether ReadKey should return
func (s *Screen) dispatch(ev tcell.Event, ok bool) (Event, bool, error) {
	if !ok || ev == nil {
		return Event{Type: EventClosed}, true, ErrClosed
	}

	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		size := geom.Size{Width: w, Height: h}
		if size == s.lastSize {
			return Event{}, false, nil
		}
		s.lastSize = size
		s.tc.Sync()
		if s.onResize != nil {
			s.onResize(size)
		}
		return Event{}, false, nil

	case *tcell.EventInterrupt:
		if s.onInterrupt != nil {
			s.onInterrupt()
		}
		return Event{}, false, nil

	case *tcell.EventKey:
		e := translateKey(ev)
		if e.Key == KeyCtrlC && s.onInterrupt != nil {
			s.onInterrupt()
			return Event{}, false, nil
		}
		if e.Key == KeyNone {
			return Event{}, false, nil
		}
		return e, true, nil
	}
	return Event{}, false, nil
}

// --- Color capability ---

// ColorsSupported reports whether the terminal renders color
func (s *Screen) ColorsSupported() bool {
	return len(s.colors) >= StandardColorCount
}

// CustomColorsSupported reports whether color slots can be redefined.
// tcell approximates RGB on palette terminals, so any 256-color terminal qualifies.
func (s *Screen) CustomColorsSupported() bool {
	return len(s.colors) >= maxColorSlots
}

// MaxColors returns the number of color slots
func (s *Screen) MaxColors() int {
	return len(s.colors)
}

// MaxPairs returns the number of pair slots, including pair 0
func (s *Screen) MaxPairs() int {
	return len(s.pairs)
}

// StartColor enables pair attributes. Idempotent
func (s *Screen) StartColor() error {
	if !s.ColorsSupported() {
		return ErrColorsUnsupported
	}
	s.colorStarted = true
	return nil
}

// SetColor redefines slot index; components are thousandths
func (s *Screen) SetColor(index, r, g, b int) {
	if index < 0 || index >= len(s.colors) {
		return
	}
	s.colors[index] = newColorSlot(r, g, b, true)
}

// ColorRGB returns slot index in thousandths
func (s *Screen) ColorRGB(index int) (r, g, b int) {
	if index < 0 || index >= len(s.colors) {
		return 0, 0, 0
	}
	c := s.colors[index]
	return c.r, c.g, c.b
}

// SetPair defines pair index from two color slots
func (s *Screen) SetPair(index, fg, bg int) {
	if index <= 0 || index >= len(s.pairs) {
		return
	}
	s.pairs[index] = pairSlot{fg: fg, bg: bg, set: true}
}

// PairIndices returns the color slots of pair index
func (s *Screen) PairIndices(index int) (fg, bg int) {
	if index < 0 || index >= len(s.pairs) {
		return 0, 0
	}
	p := s.pairs[index]
	return p.fg, p.bg
}

// color resolves a slot to a tcell color
func (s *Screen) color(index int) tcell.Color {
	if index < 0 || index >= len(s.colors) {
		return tcell.ColorDefault
	}
	if s.colors[index].custom {
		return s.colors[index].rgb.tcell()
	}
	return tcell.PaletteColor(index)
}

// pairStyle returns the base style for pair index; pair 0 and unstarted colors use terminal defaults
func (s *Screen) pairStyle(index int) tcell.Style {
	st := tcell.StyleDefault
	if !s.colorStarted || index <= 0 || index >= len(s.pairs) || !s.pairs[index].set {
		return st
	}
	p := s.pairs[index]
	return st.Foreground(s.color(p.fg)).Background(s.color(p.bg))
}
