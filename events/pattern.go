package events

import "strings"

// Pattern classifies a sequence into the payload variant it produces.
type Pattern uint8

const (
	PatternUnrecognized Pattern = iota
	PatternKey
	PatternButton
	PatternMotion
	PatternWheel
	PatternConfigure
	PatternWidget
	PatternVirtual
)

func (p Pattern) String() string {
	switch p {
	case PatternKey:
		return "key"
	case PatternButton:
		return "button"
	case PatternMotion:
		return "motion"
	case PatternWheel:
		return "wheel"
	case PatternConfigure:
		return "configure"
	case PatternWidget:
		return "widget"
	case PatternVirtual:
		return "virtual"
	default:
		return "unrecognized"
	}
}

// patternTable maps the known physical sequences onto their shapes.
// Button-4/5 are the X11 wheel encoding; they arrive as button events and
// the wheel delta is synthesized downstream when wanted.
var patternTable = map[string]Pattern{
	"<KeyPress>":          PatternKey,
	"<KeyRelease>":        PatternKey,
	"<Return>":            PatternKey,
	"<Tab>":               PatternKey,
	"<Escape>":            PatternKey,
	"<KeyPress-Return>":   PatternKey,
	"<KeyRelease-Return>": PatternKey,
	"<KeyPress-Tab>":      PatternKey,
	"<KeyRelease-Tab>":    PatternKey,
	"<KeyPress-Escape>":   PatternKey,
	"<KeyRelease-Escape>": PatternKey,

	"<Button-1>":        PatternButton,
	"<Button-2>":        PatternButton,
	"<Button-3>":        PatternButton,
	"<Button-4>":        PatternButton,
	"<Button-5>":        PatternButton,
	"<Double-Button-1>": PatternButton,
	"<ButtonPress>":     PatternButton,
	"<ButtonRelease>":   PatternButton,

	"<MouseWheel>": PatternWheel,

	"<Motion>":    PatternMotion,
	"<B1-Motion>": PatternMotion,

	"<Configure>": PatternConfigure,

	"<Enter>":      PatternWidget,
	"<Leave>":      PatternWidget,
	"<FocusIn>":    PatternWidget,
	"<FocusOut>":   PatternWidget,
	"<Map>":        PatternWidget,
	"<Unmap>":      PatternWidget,
	"<Visibility>": PatternWidget,
	"<Expose>":     PatternWidget,
	"<Destroy>":    PatternWidget,
}

// IsVirtual reports whether the sequence uses the double-bracket virtual
// form.
func IsVirtual(sequence string) bool {
	return len(sequence) >= 4 &&
		strings.HasPrefix(sequence, "<<") && strings.HasSuffix(sequence, ">>")
}

// PatternFor classifies a normalized sequence. Physical sequences outside
// the table are reported as PatternUnrecognized; they still bind with the
// keyboard field profile, but the payload makes the guess visible instead
// of posing as a key event.
func PatternFor(sequence string) Pattern {
	if IsVirtual(sequence) {
		return PatternVirtual
	}
	if p, ok := patternTable[sequence]; ok {
		return p
	}
	return PatternUnrecognized
}
