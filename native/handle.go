package native

import "time"

// UnknownField is the sentinel the host runtime substitutes for codes that do
// not apply to the fired event.
const UnknownField = "??"

// Break is the command result that halts further native-side processing of
// the event that triggered the command.
const Break = "break"

// CommandFunc is a callback exposed to the host runtime under a registered
// name. The args are the expanded substitution strings, in script order. The
// returned string is handed back to the host as the script result; returning
// Break stops propagation to later bindings for the same event.
type CommandFunc func(args []string) (string, error)

// Handle is the toolkit boundary. One Handle wraps one interpreter; all
// methods run on its event loop thread, with one exception: AfterIdle must
// also accept calls from other goroutines, making it the entry point for
// work that has to hop back onto the loop.
type Handle interface {
	// Register exposes fn to the host runtime under the given command id.
	// Registering an id that is already taken is an error; callers replace
	// commands with Deregister followed by Register.
	Register(id string, fn CommandFunc) error

	// Deregister removes a command. Unknown ids are a no-op.
	Deregister(id string) error

	// Bind installs a binding script for a sequence at the given scope. With
	// add set, the script is appended to any existing bindings; otherwise it
	// replaces them.
	Bind(scope Scope, sequence, script string, add bool) error

	// Unbind removes every script bound to the sequence at the given scope.
	Unbind(scope Scope, sequence string) error

	// After schedules fn on the event loop once the delay elapses and
	// returns a cancellation token.
	After(delay time.Duration, fn func()) (string, error)

	// AfterIdle schedules fn for the next idle moment of the loop.
	AfterIdle(fn func()) (string, error)

	// CancelAfter cancels a pending timer. Tokens that already fired or were
	// cancelled are a no-op.
	CancelAfter(id string) error

	// SendVirtual synthesizes a virtual event on the target widget, carrying
	// payload as the event's data string.
	SendVirtual(target, sequence string, payload []byte) error

	// SendEvent synthesizes an event on the target widget without a payload.
	SendEvent(target, sequence string) error

	// SetVar writes an interpreter variable, creating it if needed.
	SetVar(name, value string) error

	// GetVar reads an interpreter variable.
	GetVar(name string) (string, error)

	// UnsetVar removes an interpreter variable and its traces.
	UnsetVar(name string) error

	// TraceVar arranges for the named command to be invoked with
	// (name, index, op) whenever the operation touches the variable.
	TraceVar(name, op, commandID string) error

	// UntraceVar removes a variable trace installed by TraceVar.
	UntraceVar(name, op, commandID string) error

	// Destroyed reports whether the widget path no longer refers to a live
	// window. Cleanup paths use this to stay defensive on dead handles.
	Destroyed(path string) bool
}
