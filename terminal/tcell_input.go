package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// tcellKeys maps tcell special keys onto the package vocabulary.
// tcell aliases Ctrl+H/I/M to Backspace/Tab/Enter, so only the named forms appear here.
var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyDelete:     KeyDelete,

	tcell.KeyUp:     KeyUp,
	tcell.KeyDown:   KeyDown,
	tcell.KeyLeft:   KeyLeft,
	tcell.KeyRight:  KeyRight,
	tcell.KeyHome:   KeyHome,
	tcell.KeyEnd:    KeyEnd,
	tcell.KeyPgUp:   KeyPageUp,
	tcell.KeyPgDn:   KeyPageDown,
	tcell.KeyInsert: KeyInsert,

	tcell.KeyF1:  KeyF1,
	tcell.KeyF2:  KeyF2,
	tcell.KeyF3:  KeyF3,
	tcell.KeyF4:  KeyF4,
	tcell.KeyF5:  KeyF5,
	tcell.KeyF6:  KeyF6,
	tcell.KeyF7:  KeyF7,
	tcell.KeyF8:  KeyF8,
	tcell.KeyF9:  KeyF9,
	tcell.KeyF10: KeyF10,
	tcell.KeyF11: KeyF11,
	tcell.KeyF12: KeyF12,

	tcell.KeyCtrlSpace:      KeyCtrlSpace,
	tcell.KeyCtrlBackslash:  KeyCtrlBackslash,
	tcell.KeyCtrlRightSq:    KeyCtrlBracketRight,
	tcell.KeyCtrlCarat:      KeyCtrlCaret,
	tcell.KeyCtrlUnderscore: KeyCtrlUnderscore,
}

// translateKey converts a tcell key event
func translateKey(ev *tcell.EventKey) Event {
	e := Event{Type: EventKey, Modifiers: translateMod(ev.Modifiers())}
	k := ev.Key()

	if k == tcell.KeyRune {
		r := ev.Rune()
		// Some tcell versions report Ctrl+letter as a rune with ModCtrl
		if e.Modifiers&ModCtrl != 0 && r < unicode.MaxASCII && unicode.IsLetter(r) {
			e.Key = KeyCtrlA + Key(unicode.ToLower(r)-'a')
			return e
		}
		e.Key = KeyRune
		e.Rune = r
		return e
	}

	if mapped, ok := tcellKeys[k]; ok {
		e.Key = mapped
		return e
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		e.Key = KeyCtrlA + Key(k-tcell.KeyCtrlA)
		return e
	}

	e.Key = KeyNone
	return e
}

func translateMod(m tcell.ModMask) Modifier {
	var mod Modifier
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	return mod
}
