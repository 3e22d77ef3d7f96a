package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternFor(t *testing.T) {
	t.Run("virtual by shape", func(t *testing.T) {
		assert.Equal(t, PatternVirtual, PatternFor("<<Changed>>"))
		assert.Equal(t, PatternVirtual, PatternFor("<<AnythingAtAll>>"))
	})

	t.Run("physical table", func(t *testing.T) {
		for sequence, want := range map[string]Pattern{
			"<KeyPress>":        PatternKey,
			"<KeyRelease-Tab>":  PatternKey,
			"<Button-1>":        PatternButton,
			"<Double-Button-1>": PatternButton,
			"<Button-4>":        PatternButton,
			"<MouseWheel>":      PatternWheel,
			"<B1-Motion>":       PatternMotion,
			"<Configure>":       PatternConfigure,
			"<FocusOut>":        PatternWidget,
			"<Destroy>":         PatternWidget,
		} {
			assert.Equal(t, want, PatternFor(sequence), sequence)
		}
	})

	t.Run("unknown physical is unrecognized not key", func(t *testing.T) {
		assert.Equal(t, PatternUnrecognized, PatternFor("<Gravity>"))
		assert.Equal(t, PatternUnrecognized, PatternFor("garbage"))
	})
}

func TestIsVirtual(t *testing.T) {
	assert.True(t, IsVirtual("<<Changed>>"))
	assert.True(t, IsVirtual("<<>>"))
	assert.False(t, IsVirtual("<Button-1>"))
	assert.False(t, IsVirtual("<<Changed>"))
	assert.False(t, IsVirtual(""))
}

func TestPatternString(t *testing.T) {
	for p, want := range map[Pattern]string{
		PatternKey:          "key",
		PatternButton:       "button",
		PatternMotion:       "motion",
		PatternWheel:        "wheel",
		PatternConfigure:    "configure",
		PatternWidget:       "widget",
		PatternVirtual:      "virtual",
		PatternUnrecognized: "unrecognized",
	} {
		assert.Equal(t, want, p.String())
	}
}
