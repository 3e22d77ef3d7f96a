package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	t.Run("shift and ctrl from their bits", func(t *testing.T) {
		mods := Decode(StateShift|StateControl, "a", false, PlatformX11)
		assert.Equal(t, []string{"Shift", "Ctrl"}, mods.Names())
	})

	t.Run("caps only when requested", func(t *testing.T) {
		assert.Zero(t, Decode(StateLock, "a", false, PlatformX11))
		assert.Equal(t, ModCaps, Decode(StateLock, "a", true, PlatformX11))
	})

	t.Run("level3 keysym means altgr", func(t *testing.T) {
		assert.Equal(t, ModAltGr, Decode(0, "ISO_Level3_Shift", false, PlatformMac))
		assert.Equal(t, ModAltGr, Decode(0, "Mode_switch", false, PlatformWindows))
	})

	t.Run("mod5 means altgr off mac", func(t *testing.T) {
		assert.Equal(t, ModAltGr, Decode(StateMod5, "a", false, PlatformX11))
		assert.Zero(t, Decode(StateMod5, "a", false, PlatformMac))
	})

	t.Run("windows ctrl+mod1 collapses to altgr", func(t *testing.T) {
		mods := Decode(StateControl|StateMod1, "q", false, PlatformWindows)
		assert.Equal(t, ModAltGr, mods, "ctrl bit dropped")
	})

	t.Run("windows ctrl+mod1 on an alt keysym stays ctrl+alt", func(t *testing.T) {
		mods := Decode(StateControl|StateMod1, "Alt_L", false, PlatformWindows)
		assert.Equal(t, []string{"Ctrl", "Alt"}, mods.Names())
	})

	t.Run("x11 mod1 is never exposed", func(t *testing.T) {
		mods := Decode(StateControl|StateMod1, "q", false, PlatformX11)
		assert.Equal(t, ModCtrl, mods)
	})

	t.Run("alt from keysym only", func(t *testing.T) {
		assert.Equal(t, ModAlt, Decode(0, "Option_R", false, PlatformMac))
		assert.Zero(t, Decode(StateMod1, "a", false, PlatformMac))
	})

	t.Run("command super meta from keysym", func(t *testing.T) {
		assert.Equal(t, ModCmd, Decode(0, "Command", false, PlatformMac))
		assert.Equal(t, ModSuper, Decode(0, "Super_L", false, PlatformX11))
		assert.Equal(t, ModMeta, Decode(0, "Meta_R", false, PlatformX11))
	})
}

func TestModNames(t *testing.T) {
	t.Run("canonical order regardless of bits", func(t *testing.T) {
		m := ModCaps | ModShift | ModAltGr | ModCtrl
		assert.Equal(t, []string{"Shift", "Ctrl", "AltGr", "Caps"}, m.Names())
		assert.Equal(t, "Shift+Ctrl+AltGr+Caps", m.String())
	})

	t.Run("zero renders empty", func(t *testing.T) {
		assert.Nil(t, Mod(0).Names())
		assert.Empty(t, Mod(0).String())
	})

	t.Run("has checks the full mask", func(t *testing.T) {
		m := ModShift | ModCtrl
		assert.True(t, m.Has(ModShift))
		assert.True(t, m.Has(ModShift|ModCtrl))
		assert.False(t, m.Has(ModShift|ModAlt))
	})
}
