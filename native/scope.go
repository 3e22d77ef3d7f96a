package native

// ScopeKind selects which binding table a script lands in.
type ScopeKind uint8

const (
	// ScopeWidget binds to a single widget path.
	ScopeWidget ScopeKind = iota
	// ScopeAll binds application-wide.
	ScopeAll
	// ScopeClass binds to every widget of a toolkit class.
	ScopeClass
)

// Scope identifies a binding target: one widget, a widget class, or the
// whole application.
type Scope struct {
	Kind   ScopeKind
	Target string
}

// WidgetScope targets a single widget path.
func WidgetScope(path string) Scope {
	return Scope{Kind: ScopeWidget, Target: path}
}

// AllScope targets every widget in the application.
func AllScope() Scope {
	return Scope{Kind: ScopeAll}
}

// ClassScope targets all widgets of a toolkit class, e.g. "TEntry".
func ClassScope(class string) Scope {
	return Scope{Kind: ScopeClass, Target: class}
}

// Key returns a stable map key so widget, class, and application namespaces
// never collide.
func (s Scope) Key() string {
	switch s.Kind {
	case ScopeAll:
		return "all"
	case ScopeClass:
		return "class:" + s.Target
	default:
		return "widget:" + s.Target
	}
}

func (s Scope) String() string {
	if s.Kind == ScopeAll {
		return "all"
	}
	return s.Target
}
