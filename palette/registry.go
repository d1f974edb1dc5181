// Package palette maps names to terminal color and pair slots and enforces
// LIFO activation of pairs on a drawing surface.
package palette

import (
	"fmt"

	"github.com/lixenwraith/curses/terminal"
)

// Driver is the color capability the registry consumes. Attr, AttrOn and
// AttrSet act on the surface whose styling activation controls.
type Driver interface {
	StartColor() error
	SetColor(index, r, g, b int)
	ColorRGB(index int) (r, g, b int)
	SetPair(index, fg, bg int)
	PairIndices(index int) (fg, bg int)
	MaxColors() int
	MaxPairs() int
	ColorsSupported() bool
	CustomColorsSupported() bool
	Attr() terminal.Attr
	AttrOn(terminal.Attr)
	AttrSet(terminal.Attr)
}

// DefaultPair names pair 0, the terminal's own foreground and background
const DefaultPair = "default"

// StandardColor selects one of the eight pre-registered colors
type StandardColor int

const (
	Black   StandardColor = terminal.ColorBlack
	Red     StandardColor = terminal.ColorRed
	Green   StandardColor = terminal.ColorGreen
	Yellow  StandardColor = terminal.ColorYellow
	Blue    StandardColor = terminal.ColorBlue
	Magenta StandardColor = terminal.ColorMagenta
	Cyan    StandardColor = terminal.ColorCyan
	White   StandardColor = terminal.ColorWhite
)

// Name returns the registered name of c
func (c StandardColor) Name() string {
	if c < 0 || int(c) >= terminal.StandardColorCount {
		return ""
	}
	return terminal.StandardColorNames[c]
}

// Color is a registered color. RGB components are thousandths as last read from the driver
type Color struct {
	Name  string
	Index int
	Red   int
	Green int
	Blue  int
}

// Pair is a registered foreground/background combination
type Pair struct {
	Name       string
	Index      int
	Foreground string
	Background string
}

// Attr returns the attribute value that selects p on a window
func (p Pair) Attr() terminal.Attr {
	return terminal.PairAttr(p.Index)
}

// Registry owns the name tables and the activation stack for one driver.
// Not safe for concurrent use.
type Registry struct {
	drv     Driver
	started bool

	colors     map[string]int
	colorNames map[int]string
	pairs      map[string]int
	pairNames  map[int]string

	active []activation
}

// activation is one stack entry with the attribute it replaced
type activation struct {
	name  string
	saved terminal.Attr
}

// New returns a registry with the standard colors and the default pair pre-registered
func New(drv Driver) *Registry {
	r := &Registry{
		drv:        drv,
		colors:     make(map[string]int),
		colorNames: make(map[int]string),
		pairs:      make(map[string]int),
		pairNames:  make(map[int]string),
	}

	n := min(drv.MaxColors(), terminal.StandardColorCount)
	for i := 0; i < n; i++ {
		r.bindColor(terminal.StandardColorNames[i], i)
	}
	if drv.MaxPairs() > 0 {
		r.bindPair(DefaultPair, 0)
	}
	return r
}

func (r *Registry) bindColor(name string, index int) {
	r.colors[name] = index
	r.colorNames[index] = name
}

func (r *Registry) bindPair(name string, index int) {
	r.pairs[name] = index
	r.pairNames[index] = name
}

// StartUp starts the driver's color subsystem once
func (r *Registry) StartUp() error {
	if r.started {
		return nil
	}
	if err := r.drv.StartColor(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	r.started = true
	return nil
}

// Started reports whether the color subsystem is running
func (r *Registry) Started() bool {
	return r.started
}

// ColorCount returns the number of registered colors, standard colors included
func (r *Registry) ColorCount() int { return len(r.colors) }

// PairCount returns the number of registered pairs, the default pair included
func (r *Registry) PairCount() int { return len(r.pairs) }

// MaxColors returns the driver's color capacity
func (r *Registry) MaxColors() int { return r.drv.MaxColors() }

// MaxPairs returns the driver's pair capacity
func (r *Registry) MaxPairs() int { return r.drv.MaxPairs() }

// Supported reports whether the terminal renders color at all
func (r *Registry) Supported() bool { return r.drv.ColorsSupported() }

// CustomSupported reports whether color slots can be redefined
func (r *Registry) CustomSupported() bool { return r.drv.CustomColorsSupported() }

// RegisterColor assigns the next free slot to name and defines it with the given thousandths.
// Every check runs before the driver is touched, so a failed call changes nothing.
func (r *Registry) RegisterColor(name string, red, green, blue int) (Color, error) {
	const op = "registerColor"

	for _, v := range [...]int{red, green, blue} {
		if v < 0 || v > terminal.MaxIntensity {
			return Color{}, fail(op, name, terminal.MaxIntensity, ErrOutOfRange)
		}
	}
	if limit := r.drv.MaxColors(); len(r.colors) >= limit {
		return Color{}, fail(op, name, limit, ErrCapacityExceeded)
	}
	if !r.drv.ColorsSupported() || !r.drv.CustomColorsSupported() {
		return Color{}, fail(op, name, 0, ErrUnsupported)
	}
	if _, ok := r.colors[name]; ok {
		return Color{}, fail(op, name, 0, ErrDuplicateName)
	}

	if err := r.StartUp(); err != nil {
		return Color{}, fail(op, name, 0, err)
	}

	index := len(r.colors)
	r.drv.SetColor(index, red, green, blue)
	r.bindColor(name, index)

	return Color{Name: name, Index: index, Red: red, Green: green, Blue: blue}, nil
}

// LookupColor returns the color registered as name, reading its RGB back from the driver
func (r *Registry) LookupColor(name string) (Color, error) {
	index, ok := r.colors[name]
	if !ok {
		return Color{}, fail("lookupColor", name, 0, ErrNotFound)
	}
	red, green, blue := r.drv.ColorRGB(index)
	return Color{Name: name, Index: index, Red: red, Green: green, Blue: blue}, nil
}

// Standard returns one of the eight pre-registered colors
func (r *Registry) Standard(c StandardColor) (Color, error) {
	return r.LookupColor(c.Name())
}

// RegisterPair assigns the next free pair slot to name, combining two registered colors
func (r *Registry) RegisterPair(name, foreground, background string) (Pair, error) {
	const op = "registerPair"

	fg, ok := r.colors[foreground]
	if !ok {
		return Pair{}, fail(op, foreground, 0, ErrNotFound)
	}
	bg, ok := r.colors[background]
	if !ok {
		return Pair{}, fail(op, background, 0, ErrNotFound)
	}
	if _, ok := r.pairs[name]; ok {
		return Pair{}, fail(op, name, 0, ErrDuplicateName)
	}
	if limit := r.drv.MaxPairs(); len(r.pairs) >= limit {
		return Pair{}, fail(op, name, limit, ErrCapacityExceeded)
	}

	if err := r.StartUp(); err != nil {
		return Pair{}, fail(op, name, 0, err)
	}

	index := len(r.pairs)
	r.drv.SetPair(index, fg, bg)
	r.bindPair(name, index)

	return Pair{Name: name, Index: index, Foreground: foreground, Background: background}, nil
}

// LookupPair returns the pair registered as name with its color names recovered from the driver's slots.
// Panics if a slot references a color the registry never assigned.
func (r *Registry) LookupPair(name string) (Pair, error) {
	index, ok := r.pairs[name]
	if !ok {
		return Pair{}, fail("lookupPair", name, 0, ErrNotFound)
	}
	fg, bg := r.drv.PairIndices(index)
	return Pair{
		Name:       name,
		Index:      index,
		Foreground: r.colorName(fg, name),
		Background: r.colorName(bg, name),
	}, nil
}

func (r *Registry) colorName(index int, pair string) string {
	name, ok := r.colorNames[index]
	if !ok {
		panic(fmt.Sprintf("palette: pair %q references unregistered color slot %d", pair, index))
	}
	return name
}

// Activate pushes name onto the activation stack and turns its attribute on.
// It does not start colors; an inactive color subsystem renders the pair as the default.
func (r *Registry) Activate(name string) error {
	index, ok := r.pairs[name]
	if !ok {
		return fail("activate", name, 0, ErrNotFound)
	}
	r.active = append(r.active, activation{name: name, saved: r.drv.Attr()})
	r.drv.AttrOn(terminal.PairAttr(index))
	return nil
}

// Deactivate pops name off the activation stack and restores the attribute in
// effect when it was activated. Panics if the stack is empty or name is not on top.
func (r *Registry) Deactivate(name string) {
	n := len(r.active)
	if n == 0 {
		panic(fmt.Sprintf("palette: Deactivate(%q) with no active pair", name))
	}
	top := r.active[n-1]
	if top.name != name {
		panic(fmt.Sprintf("palette: Deactivate(%q) but %q is on top", name, top.name))
	}
	r.active = r.active[:n-1]
	r.drv.AttrSet(top.saved)
}

// Active returns the activation stack, bottom first
func (r *Registry) Active() []string {
	out := make([]string, len(r.active))
	for i, a := range r.active {
		out[i] = a.name
	}
	return out
}

// With runs fn with name active
func (r *Registry) With(name string, fn func()) error {
	if err := r.Activate(name); err != nil {
		return err
	}
	defer r.Deactivate(name)
	fn()
	return nil
}
