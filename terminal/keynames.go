package terminal

import (
	"strconv"
	"strings"
)

// keyToName maps Key constants to canonical config string names
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeySpace:     "space",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyCtrlSpace:        "ctrl_space",
	KeyCtrlBackslash:    "ctrl_backslash",
	KeyCtrlBracketRight: "ctrl_bracket_right",
	KeyCtrlCaret:        "ctrl_caret",
	KeyCtrlUnderscore:   "ctrl_underscore",
}

// nameToKey is the reverse lookup, built from keyToName
var nameToKey map[string]Key

func init() {
	// Function and Ctrl+letter names follow a fixed pattern
	for i := 0; i < 12; i++ {
		keyToName[KeyF1+Key(i)] = "f" + strconv.Itoa(i+1)
	}
	for i := 0; i < 26; i++ {
		keyToName[KeyCtrlA+Key(i)] = "ctrl_" + string(rune('a'+i))
	}

	nameToKey = make(map[string]Key, len(keyToName))
	for k, v := range keyToName {
		nameToKey[v] = k
	}
	// Aliases
	nameToKey["shift_tab"] = KeyBacktab
	nameToKey["return"] = KeyEnter
}

// KeyName returns the canonical string name for a Key constant
// Returns empty string for KeyNone and KeyRune
func KeyName(k Key) string {
	return keyToName[k]
}

// KeyByName resolves a canonical name to a Key constant, case-insensitive
// Returns KeyNone and false if name is unknown
func KeyByName(name string) (Key, bool) {
	k, ok := nameToKey[strings.ToLower(name)]
	return k, ok
}

// String renders an event for logs
func (e Event) String() string {
	if e.Type == EventClosed {
		return "closed"
	}
	if e.Key == KeyRune {
		return "rune(" + string(e.Rune) + ")"
	}
	if name := KeyName(e.Key); name != "" {
		return name
	}
	return "unknown"
}
