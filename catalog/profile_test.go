package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkbind/tkbind/events"
)

// The substrings below are the wire contract: the builder zips raw values
// positionally, so any drift here breaks decoding for every consumer.
func TestSubstring(t *testing.T) {
	for pattern, want := range map[events.Pattern]string{
		events.PatternKey:          "%K %A %s %W",
		events.PatternButton:       "%x %y %X %Y %s %W",
		events.PatternMotion:       "%x %y %X %Y %s %W",
		events.PatternWheel:        "%D %x %y %W",
		events.PatternConfigure:    "%w %h %x %y %W",
		events.PatternWidget:       "%W",
		events.PatternVirtual:      "%d [clock seconds] %W",
		events.PatternUnrecognized: "%K %A %s %W",
	} {
		assert.Equal(t, want, Substring(pattern), pattern.String())
	}
}

func TestBindSubstring(t *testing.T) {
	t.Run("data code is brace wrapped", func(t *testing.T) {
		assert.Equal(t, "{%d} [clock seconds] %W", BindSubstring(events.PatternVirtual))
	})

	t.Run("other patterns are unchanged", func(t *testing.T) {
		assert.Equal(t, Substring(events.PatternKey), BindSubstring(events.PatternKey))
		assert.Equal(t, Substring(events.PatternButton), BindSubstring(events.PatternButton))
	})
}

func TestFieldsFor(t *testing.T) {
	fields := FieldsFor(events.PatternVirtual)
	assert.Equal(t, []string{"data", "timestamp", "target"}, fields)

	t.Run("returns a copy", func(t *testing.T) {
		fields[0] = "mutated"
		assert.Equal(t, []string{"data", "timestamp", "target"}, FieldsFor(events.PatternVirtual))
	})
}

func TestEventSubs(t *testing.T) {
	subs := EventSubs()
	require.NotEmpty(t, subs)

	t.Run("wire order is stable", func(t *testing.T) {
		assert.Equal(t, "keysym", subs[0].Name)
		assert.Equal(t, "%K", subs[0].Code)
		assert.Equal(t, "data", subs[len(subs)-1].Name)
		assert.Equal(t, "%d", subs[len(subs)-1].Code)
	})

	t.Run("lookup by name", func(t *testing.T) {
		sub, ok := EventSub("timestamp")
		require.True(t, ok)
		assert.Equal(t, "[clock seconds]", sub.Code)

		_, ok = EventSub("nope")
		assert.False(t, ok)
	})

	t.Run("every profile field has a catalog entry", func(t *testing.T) {
		for _, fields := range profileFields {
			for _, name := range fields {
				_, ok := EventSub(name)
				assert.True(t, ok, name)
			}
		}
	})
}
