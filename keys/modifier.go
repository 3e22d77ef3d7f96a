// Package keys turns raw keyboard state from the native layer into logical
// modifiers and key presses. The raw state word carries platform bits
// (Mod1..Mod5 mean different things on X11, Windows, and macOS); this package
// owns the policy that maps them to the modifiers users actually mean.
package keys

import (
	"runtime"
	"strings"
)

// Raw state bits as reported in the event state word.
const (
	StateShift   uint32 = 0x0001
	StateLock    uint32 = 0x0002
	StateControl uint32 = 0x0004
	StateMod1    uint32 = 0x0008
	StateMod2    uint32 = 0x0010
	StateMod3    uint32 = 0x0020
	StateMod4    uint32 = 0x0040
	StateMod5    uint32 = 0x0080
)

// Mod is a bitmask of logical modifiers. The raw Mod1..Mod5 bits are never
// exposed; they only feed the decoding policy.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModAltGr
	ModCmd
	ModSuper
	ModMeta
	ModCaps
)

var canonicalOrder = []struct {
	bit  Mod
	name string
}{
	{ModShift, "Shift"},
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModAltGr, "AltGr"},
	{ModCmd, "Cmd"},
	{ModSuper, "Super"},
	{ModMeta, "Meta"},
	{ModCaps, "Caps"},
}

// Names returns the set modifiers in canonical order: Shift, Ctrl, Alt,
// AltGr, Cmd, Super, Meta, Caps.
func (m Mod) Names() []string {
	if m == 0 {
		return nil
	}
	out := make([]string, 0, 4)
	for _, c := range canonicalOrder {
		if m&c.bit != 0 {
			out = append(out, c.name)
		}
	}
	return out
}

func (m Mod) String() string {
	if m == 0 {
		return ""
	}
	return strings.Join(m.Names(), "+")
}

// ParseName maps a canonical modifier name back onto its bit. It returns
// false for unknown names.
func ParseName(name string) (Mod, bool) {
	for _, c := range canonicalOrder {
		if c.name == name {
			return c.bit, true
		}
	}
	return 0, false
}

// Has reports whether every bit in mask is set.
func (m Mod) Has(mask Mod) bool { return m&mask == mask }

// Platform selects the modifier decoding policy. It is passed in rather than
// read from the host so the policy stays testable on any machine.
type Platform uint8

const (
	PlatformX11 Platform = iota
	PlatformWindows
	PlatformMac
)

func (p Platform) String() string {
	switch p {
	case PlatformWindows:
		return "windows"
	case PlatformMac:
		return "mac"
	default:
		return "x11"
	}
}

// CurrentPlatform maps the host OS onto a decoding policy.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		return PlatformWindows
	case "darwin":
		return PlatformMac
	default:
		return PlatformX11
	}
}

func altKeysym(keysym string) bool {
	switch keysym {
	case "Alt_L", "Alt_R", "Option_L", "Option_R":
		return true
	}
	return false
}

// altGrWindows spots the Windows convention of reporting AltGr as
// Ctrl+Mod1 on a key that is not itself Alt.
func altGrWindows(state uint32, keysym string, platform Platform) bool {
	return platform == PlatformWindows &&
		state&StateControl != 0 && state&StateMod1 != 0 &&
		!altKeysym(keysym)
}

// Decode resolves the raw state word and keysym into logical modifiers.
// AltGr wins over Ctrl+Alt noise: a level-3 keysym or a Mod5 bit off mac
// means AltGr outright; the Windows Ctrl+Mod1 convention means AltGr with
// the Ctrl bit dropped; only then does an Alt keysym count as Alt. Cmd,
// Super, and Meta come from the keysym alone. Caps is reported only when
// includeCaps is set.
func Decode(state uint32, keysym string, includeCaps bool, platform Platform) Mod {
	var mods Mod
	if state&StateShift != 0 {
		mods |= ModShift
	}
	if state&StateControl != 0 {
		mods |= ModCtrl
	}
	if includeCaps && state&StateLock != 0 {
		mods |= ModCaps
	}

	switch {
	case keysym == "ISO_Level3_Shift" || keysym == "Mode_switch" ||
		(state&StateMod5 != 0 && platform != PlatformMac):
		mods |= ModAltGr
	case altGrWindows(state, keysym, platform):
		mods &^= ModCtrl
		mods |= ModAltGr
	case altKeysym(keysym):
		mods |= ModAlt
	}

	switch keysym {
	case "Command":
		mods |= ModCmd
	case "Super_L", "Super_R":
		mods |= ModSuper
	case "Meta_L", "Meta_R":
		mods |= ModMeta
	}
	return mods
}
