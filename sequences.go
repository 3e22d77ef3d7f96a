package tkbind

import "strings"

// Canonical sequence strings for the toolkit events applications bind most
// often. They are plain strings, so anything On or Emit accepts can also be
// written out by hand; the names exist to keep call sites free of wire
// syntax.
const (
	// Mouse buttons.
	Click       = "<Button-1>"
	RightClick  = "<Button-3>"
	MiddleClick = "<Button-2>"
	DoubleClick = "<Double-Button-1>"
	MouseDown   = "<ButtonPress>"
	MouseUp     = "<ButtonRelease>"

	// Wheel. WheelUp and WheelDown are the X11 button encodings.
	MouseWheel = "<MouseWheel>"
	WheelUp    = "<Button-4>"
	WheelDown  = "<Button-5>"

	// Pointer motion.
	Drag   = "<B1-Motion>"
	Motion = "<Motion>"

	// Crossing. Hover is an alias of Enter.
	Enter = "<Enter>"
	Hover = "<Enter>"
	Leave = "<Leave>"

	// Keyboard.
	KeyDown = "<KeyPress>"
	KeyUp   = "<KeyRelease>"
	Return  = "<Return>"
	Tab     = "<Tab>"
	Escape  = "<Escape>"

	// Key-specific transitions.
	KeyDownEnter = "<KeyPress-Return>"
	KeyUpEnter   = "<KeyRelease-Return>"
	KeyDownEsc   = "<KeyPress-Escape>"
	KeyUpEsc     = "<KeyRelease-Escape>"
	KeyDownTab   = "<KeyPress-Tab>"
	KeyUpTab     = "<KeyRelease-Tab>"

	// Focus, visibility, lifecycle.
	Focus      = "<FocusIn>"
	Blur       = "<FocusOut>"
	Mount      = "<Map>"
	Unmount    = "<Unmap>"
	Visibility = "<Visibility>"
	Redraw     = "<Expose>"
	Destroy    = "<Destroy>"
	Configure  = "<Configure>"

	// Virtual events the stock widgets raise.
	Input              = "<<Input>>"
	Changed            = "<<Changed>>"
	Modified           = "<<Modified>>"
	ThemeChanged       = "<<ThemeChanged>>"
	Complete           = "<<Complete>>"
	WindowActivated    = "<<Activate>>"
	WindowDeactivated  = "<<Deactivate>>"
	MenuSelect         = "<<MenuSelect>>"
	Selection          = "<<Selection>>"
	Selected           = "<<Selected>>"
	Deselected         = "<<Deselected>>"
	ComboboxSelected   = "<<ComboboxSelected>>"
	Increment          = "<<Increment>>"
	Decrement          = "<<Decrement>>"
	Delete             = "<<Delete>>"
	NotebookTabChanged = "<<NotebookTabChanged>>"
	InputMethodChanged = "<<IMChanged>>"
	TreeviewSelect     = "<<TreeviewSelect>>"
	StateChanged       = "<<StateChanged>>"

	// Validation outcomes.
	Invalid   = "<<Invalid>>"
	Valid     = "<<Valid>>"
	Validated = "<<Validated>>"

	// Navigation.
	PageWillMount = "<<PageWillMount>>"
	PageMounted   = "<<PageMounted>>"
	PageUnmounted = "<<PageUnmounted>>"
	PageChanged   = "<<PageChanged>>"
)

// NormalizeSequence wraps a bare event name in angle brackets. Well-formed
// sequences, physical or virtual, pass through untouched.
func NormalizeSequence(sequence string) string {
	if strings.HasPrefix(sequence, "<") {
		return sequence
	}
	return "<" + sequence + ">"
}
