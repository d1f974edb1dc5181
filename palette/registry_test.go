package palette

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/curses/terminal"
)

// fakeDriver records slot writes and applies attributes the way a window does
type fakeDriver struct {
	maxColors, maxPairs int
	colors, custom      bool
	startErr            error

	starts int
	calls  int // SetColor and SetPair invocations
	rgb    map[int][3]int
	pairs  map[int][2]int
	attr   terminal.Attr
}

func newFakeDriver(maxColors, maxPairs int) *fakeDriver {
	return &fakeDriver{
		maxColors: maxColors,
		maxPairs:  maxPairs,
		colors:    true,
		custom:    true,
		rgb:       make(map[int][3]int),
		pairs:     make(map[int][2]int),
	}
}

func (f *fakeDriver) StartColor() error {
	f.starts++
	return f.startErr
}

func (f *fakeDriver) SetColor(index, r, g, b int) {
	f.calls++
	f.rgb[index] = [3]int{r, g, b}
}

func (f *fakeDriver) ColorRGB(index int) (int, int, int) {
	c := f.rgb[index]
	return c[0], c[1], c[2]
}

func (f *fakeDriver) SetPair(index, fg, bg int) {
	f.calls++
	f.pairs[index] = [2]int{fg, bg}
}

func (f *fakeDriver) PairIndices(index int) (int, int) {
	p := f.pairs[index]
	return p[0], p[1]
}

func (f *fakeDriver) MaxColors() int              { return f.maxColors }
func (f *fakeDriver) MaxPairs() int               { return f.maxPairs }
func (f *fakeDriver) ColorsSupported() bool       { return f.colors }
func (f *fakeDriver) CustomColorsSupported() bool { return f.custom }

func (f *fakeDriver) AttrOn(a terminal.Attr) {
	if a&terminal.AttrPair != 0 {
		f.attr &^= terminal.AttrPair
	}
	f.attr |= a
}

func (f *fakeDriver) Attr() terminal.Attr     { return f.attr }
func (f *fakeDriver) AttrSet(a terminal.Attr) { f.attr = a }

// screenDriver binds a simulated screen's slots to its standard window
type screenDriver struct {
	*terminal.Screen
	win *terminal.Window
}

func (d screenDriver) Attr() terminal.Attr     { return d.win.Attr() }
func (d screenDriver) AttrOn(a terminal.Attr)  { d.win.AttrOn(a) }
func (d screenDriver) AttrSet(a terminal.Attr) { d.win.AttrSet(a) }

func newScreenDriver(t *testing.T) screenDriver {
	t.Helper()
	scr := terminal.NewScreen(tcell.NewSimulationScreen("UTF-8"), terminal.Options{MaxPairs: 16})
	if err := scr.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(scr.Fini)
	return screenDriver{Screen: scr, win: scr.Window()}
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestRegistry_StandardColorsPreRegistered(t *testing.T) {
	r := New(newFakeDriver(16, 8))

	if r.ColorCount() != terminal.StandardColorCount {
		t.Fatalf("ColorCount = %d, want %d", r.ColorCount(), terminal.StandardColorCount)
	}
	c, err := r.Standard(Blue)
	if err != nil || c.Index != terminal.ColorBlue || c.Name != "blue" {
		t.Errorf("Standard(Blue) = %+v, %v", c, err)
	}
	if r.PairCount() != 1 {
		t.Errorf("PairCount = %d, want 1 (default)", r.PairCount())
	}
}

func TestRegistry_RegisterColor(t *testing.T) {
	drv := newFakeDriver(16, 8)
	r := New(drv)

	c, err := r.RegisterColor("amber", 1000, 750, 0)
	if err != nil {
		t.Fatalf("RegisterColor: %v", err)
	}
	if c.Index != terminal.StandardColorCount {
		t.Errorf("index = %d, want first custom slot %d", c.Index, terminal.StandardColorCount)
	}
	if drv.rgb[c.Index] != [3]int{1000, 750, 0} {
		t.Errorf("driver slot = %v", drv.rgb[c.Index])
	}
	if drv.starts != 1 {
		t.Errorf("StartColor called %d times, want 1", drv.starts)
	}

	if _, err := r.RegisterColor("teal", 0, 500, 500); err != nil {
		t.Fatalf("second RegisterColor: %v", err)
	}
	if drv.starts != 1 {
		t.Errorf("StartColor called %d times after second registration, want 1", drv.starts)
	}
}

func TestRegistry_LookupColorRequeriesDriver(t *testing.T) {
	drv := newFakeDriver(16, 8)
	r := New(drv)

	c, _ := r.RegisterColor("amber", 1000, 750, 0)
	drv.rgb[c.Index] = [3]int{1, 2, 3}

	got, err := r.LookupColor("amber")
	if err != nil {
		t.Fatalf("LookupColor: %v", err)
	}
	if got.Red != 1 || got.Green != 2 || got.Blue != 3 {
		t.Errorf("LookupColor = %+v, want driver values 1,2,3", got)
	}

	if _, err := r.LookupColor("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRegistry_RegisterColorFailures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*fakeDriver, *Registry)
		color   string
		rgb     [3]int
		wantErr error
		limit   int
	}{
		{
			name:    "capacity",
			setup:   func(_ *fakeDriver, r *Registry) { r.RegisterColor("extra", 0, 0, 0) },
			color:   "overflow",
			wantErr: ErrCapacityExceeded,
			limit:   9,
		},
		{
			name:    "duplicate",
			setup:   func(_ *fakeDriver, r *Registry) {},
			color:   "red",
			wantErr: ErrDuplicateName,
		},
		{
			name:    "unsupported",
			setup:   func(f *fakeDriver, _ *Registry) { f.custom = false },
			color:   "amber",
			wantErr: ErrUnsupported,
		},
		{
			name:    "out of range",
			setup:   func(_ *fakeDriver, r *Registry) {},
			color:   "hot",
			rgb:     [3]int{1001, 0, 0},
			wantErr: ErrOutOfRange,
			limit:   terminal.MaxIntensity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drv := newFakeDriver(9, 8)
			r := New(drv)
			tt.setup(drv, r)

			count, calls := r.ColorCount(), drv.calls
			_, err := r.RegisterColor(tt.color, tt.rgb[0], tt.rgb[1], tt.rgb[2])
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}

			var perr *Error
			if !errors.As(err, &perr) || perr.Name != tt.color || perr.Limit != tt.limit {
				t.Errorf("error detail = %+v", perr)
			}
			if r.ColorCount() != count {
				t.Errorf("ColorCount changed from %d to %d", count, r.ColorCount())
			}
			if drv.calls != calls {
				t.Errorf("driver touched by failed registration")
			}
		})
	}
}

func TestRegistry_StartFailureIsUnsupported(t *testing.T) {
	drv := newFakeDriver(16, 8)
	drv.startErr = terminal.ErrColorsUnsupported
	r := New(drv)

	_, err := r.RegisterColor("amber", 0, 0, 0)
	if !errors.Is(err, ErrUnsupported) || !errors.Is(err, terminal.ErrColorsUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported wrapping the driver error", err)
	}
	if r.ColorCount() != terminal.StandardColorCount || r.Started() {
		t.Error("failed start left registry changed")
	}
}

func TestRegistry_PairRoundTrip(t *testing.T) {
	r := New(newFakeDriver(16, 8))
	if _, err := r.RegisterColor("amber", 1000, 750, 0); err != nil {
		t.Fatal(err)
	}

	p, err := r.RegisterPair("warning", "amber", "black")
	if err != nil {
		t.Fatalf("RegisterPair: %v", err)
	}
	if p.Index != 1 {
		t.Errorf("index = %d, want 1", p.Index)
	}
	if p.Attr().Pair() != 1 {
		t.Errorf("Attr pair = %d, want 1", p.Attr().Pair())
	}

	got, err := r.LookupPair("warning")
	if err != nil {
		t.Fatalf("LookupPair: %v", err)
	}
	if got.Foreground != "amber" || got.Background != "black" {
		t.Errorf("LookupPair = %+v, want amber on black", got)
	}
}

func TestRegistry_RegisterPairFailures(t *testing.T) {
	drv := newFakeDriver(16, 2)
	r := New(drv)

	if _, err := r.RegisterPair("p", "nope", "black"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown fg: err = %v", err)
	}
	if _, err := r.RegisterPair("p", "white", "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown bg: err = %v", err)
	}
	if _, err := r.RegisterPair(DefaultPair, "white", "black"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate: err = %v", err)
	}
	if _, err := r.RegisterPair("one", "white", "blue"); err != nil {
		t.Fatalf("RegisterPair: %v", err)
	}

	calls := drv.calls
	_, err := r.RegisterPair("two", "white", "red")
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("capacity: err = %v", err)
	}
	if r.PairCount() != 2 || drv.calls != calls {
		t.Error("failed pair registration changed state")
	}
}

func TestRegistry_LookupPairCorruptionPanics(t *testing.T) {
	drv := newFakeDriver(16, 8)
	r := New(drv)
	p, _ := r.RegisterPair("alert", "red", "black")

	drv.pairs[p.Index] = [2]int{12, 0}
	expectPanic(t, "unassigned slot", func() { r.LookupPair("alert") })
}

func TestRegistry_ActivateDeactivateRestores(t *testing.T) {
	drv := newFakeDriver(16, 8)
	r := New(drv)
	r.RegisterPair("a", "red", "black")
	r.RegisterPair("b", "green", "black")

	drv.attr = terminal.AttrBold
	before := drv.attr

	if err := r.Activate("a"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	r.Deactivate("a")
	if drv.attr != before {
		t.Errorf("attr = %#x after activate/deactivate, want %#x", drv.attr, before)
	}

	// Nested activation restores the outer pair
	r.Activate("a")
	a := drv.attr
	r.Activate("b")
	if drv.attr.Pair() != 2 {
		t.Errorf("inner pair = %d, want 2", drv.attr.Pair())
	}
	r.Deactivate("b")
	if drv.attr != a {
		t.Errorf("attr = %#x after inner deactivate, want %#x", drv.attr, a)
	}
	r.Deactivate("a")
	if drv.attr != before || len(r.Active()) != 0 {
		t.Errorf("attr = %#x, active = %v", drv.attr, r.Active())
	}
}

func TestRegistry_ActivationFaults(t *testing.T) {
	r := New(newFakeDriver(16, 8))
	r.RegisterPair("a", "red", "black")
	r.RegisterPair("b", "green", "black")

	if err := r.Activate("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	expectPanic(t, "empty stack", func() { r.Deactivate("a") })

	r.Activate("a")
	r.Activate("b")
	expectPanic(t, "mismatch", func() { r.Deactivate("a") })
	if got := r.Active(); len(got) != 2 || got[1] != "b" {
		t.Errorf("stack changed by faulting Deactivate: %v", got)
	}
}

func TestRegistry_With(t *testing.T) {
	drv := newFakeDriver(16, 8)
	r := New(drv)
	r.RegisterPair("a", "red", "black")

	var inside int
	if err := r.With("a", func() { inside = drv.attr.Pair() }); err != nil {
		t.Fatalf("With: %v", err)
	}
	if inside != 1 || drv.attr.Pair() != 0 {
		t.Errorf("inside pair = %d, after = %d", inside, drv.attr.Pair())
	}
}

func TestRegistry_ScreenKeepsExactThousandths(t *testing.T) {
	drv := newScreenDriver(t)
	if !drv.CustomColorsSupported() {
		t.Skip("simulation screen cannot redefine colors")
	}
	r := New(drv)

	for _, rgb := range [][3]int{{500, 300, 701}, {1, 999, 333}, {0, 1000, 17}} {
		name := fmt.Sprintf("c%d-%d-%d", rgb[0], rgb[1], rgb[2])
		if _, err := r.RegisterColor(name, rgb[0], rgb[1], rgb[2]); err != nil {
			t.Fatalf("RegisterColor(%s): %v", name, err)
		}
		got, err := r.LookupColor(name)
		if err != nil {
			t.Fatalf("LookupColor(%s): %v", name, err)
		}
		if got.Red != rgb[0] || got.Green != rgb[1] || got.Blue != rgb[2] {
			t.Errorf("%s looked up as %d,%d,%d", name, got.Red, got.Green, got.Blue)
		}
	}
}

func TestRegistry_DeactivateRestoresCallerPair(t *testing.T) {
	drv := newScreenDriver(t)
	if !drv.ColorsSupported() {
		t.Skip("simulation screen reports no colors")
	}
	r := New(drv)
	if _, err := r.RegisterPair("a", "red", "black"); err != nil {
		t.Fatalf("RegisterPair: %v", err)
	}

	// A pair the registry never activated
	before := terminal.PairAttr(2) | terminal.AttrBold
	drv.win.AttrSet(before)

	if err := r.Activate("a"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if drv.win.Attr().Pair() != 1 {
		t.Errorf("active pair = %d, want 1", drv.win.Attr().Pair())
	}
	r.Deactivate("a")
	if got := drv.win.Attr(); got != before {
		t.Errorf("attr = %#x after deactivate, want %#x", got, before)
	}
}

func TestRegistry_ActivateDoesNotStartColors(t *testing.T) {
	drv := newFakeDriver(16, 8)
	r := New(drv)

	if err := r.Activate(DefaultPair); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if drv.starts != 0 || r.Started() {
		t.Errorf("Activate started colors (%d calls)", drv.starts)
	}
	r.Deactivate(DefaultPair)
}
