package keys

import (
	"strings"
	"unicode/utf8"
)

// prettyNames maps keysyms onto the names presented to users. Single-glyph
// results are uppercased afterwards.
var prettyNames = map[string]string{
	"Return":      "Enter",
	"Escape":      "Esc",
	"BackSpace":   "Backspace",
	"Prior":       "PageUp",
	"Next":        "PageDown",
	"KP_Add":      "Num+",
	"KP_Subtract": "Num-",
	"KP_Multiply": "Num*",
	"KP_Divide":   "Num/",
	"KP_Enter":    "NumEnter",
	"space":       "Space",
	"minus":       "-",
	"equal":       "=",
	"bracketleft": "[",
	"bracketright": "]",
	"semicolon":  ";",
	"apostrophe": "'",
	"grave":      "`",
	"backslash":  `\`,
	"slash":      "/",
	"comma":      ",",
	"period":     ".",
}

var modifierKeysyms = map[string]struct{}{
	"Shift_L": {}, "Shift_R": {},
	"Control_L": {}, "Control_R": {},
	"Alt_L": {}, "Alt_R": {}, "Option_L": {}, "Option_R": {},
	"Command": {}, "Super_L": {}, "Super_R": {}, "Meta_L": {}, "Meta_R": {},
	"ISO_Level3_Shift": {}, "Mode_switch": {},
}

// IsModifier reports whether the keysym is itself a modifier key rather
// than a base key.
func IsModifier(keysym string) bool {
	_, ok := modifierKeysyms[keysym]
	return ok
}

// Press is a resolved key chord: the base key plus the logical modifiers
// held with it.
type Press struct {
	Base   string
	Mods   Mod
	Keysym string
	State  uint32
}

// String renders the chord as "Ctrl+Shift+A".
func (p Press) String() string {
	if p.Mods == 0 {
		return p.Base
	}
	return strings.Join(append(p.Mods.Names(), p.Base), "+")
}

func normalizeBase(keysym, char string) string {
	if keysym != "" {
		base := keysym
		if pretty, ok := prettyNames[keysym]; ok {
			base = pretty
		}
		if utf8.RuneCountInString(base) == 1 {
			return strings.ToUpper(base)
		}
		return base
	}
	c := strings.TrimSpace(char)
	if c == "" {
		return ""
	}
	if utf8.RuneCountInString(c) == 1 {
		return strings.ToUpper(c)
	}
	return c
}

// ResolvePress builds a Press from the raw parts of a key event. It returns
// false when the pressed key is itself a modifier (callers wait for the base
// key) or when neither keysym nor char yields a usable base.
func ResolvePress(state uint32, keysym, char string, includeCaps bool, platform Platform) (Press, bool) {
	if IsModifier(keysym) {
		return Press{}, false
	}
	base := normalizeBase(keysym, char)
	if base == "" {
		return Press{}, false
	}
	return Press{
		Base:   base,
		Mods:   Decode(state, keysym, includeCaps, platform),
		Keysym: keysym,
		State:  state,
	}, true
}
