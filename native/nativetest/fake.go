// Package nativetest provides an in-memory native.Handle for tests and
// demos. It replays bound scripts the way a real interpreter would: percent
// codes are substituted textually, bracket commands are expanded, and the
// result is tokenized with brace grouping before the registered command is
// invoked. Timers run on a virtual clock advanced explicitly, so timing
// behavior is deterministic without real sleeps.
package nativetest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tkbind/tkbind/native"
)

const (
	clockCommand    = "[clock seconds]"
	toplevelCommand = "[winfo toplevel %W]"
)

type fakeTimer struct {
	id   string
	at   time.Time
	fn   func()
	seq  int
	idle bool
}

// FakeHandle implements native.Handle entirely in memory. It is not safe for
// concurrent use; the interop layer is single-threaded by contract and tests
// must drive it from one goroutine.
type FakeHandle struct {
	commands  map[string]native.CommandFunc
	bindings  map[string][]string
	classes   map[string]string
	toplevels map[string]string
	vars      map[string]string
	traces    map[string][]string
	destroyed map[string]bool

	now    time.Time
	timers []*fakeTimer
	idle   []*fakeTimer
	seq    int

	// FiredErrors collects errors returned by commands during Fire cascades,
	// in occurrence order.
	FiredErrors []error
}

var _ native.Handle = (*FakeHandle)(nil)

// New returns a FakeHandle with the virtual clock at a fixed instant.
func New() *FakeHandle {
	return &FakeHandle{
		commands:  make(map[string]native.CommandFunc),
		bindings:  make(map[string][]string),
		classes:   make(map[string]string),
		toplevels: make(map[string]string),
		vars:      make(map[string]string),
		traces:    make(map[string][]string),
		destroyed: make(map[string]bool),
		now:       time.Unix(1_700_000_000, 0).UTC(),
	}
}

// ---------------------------------------------------------------- commands

func (h *FakeHandle) Register(id string, fn native.CommandFunc) error {
	if fn == nil {
		return fmt.Errorf("nativetest: nil command %q", id)
	}
	if _, ok := h.commands[id]; ok {
		return fmt.Errorf("nativetest: command already exists: %q", id)
	}
	h.commands[id] = fn
	return nil
}

func (h *FakeHandle) Deregister(id string) error {
	delete(h.commands, id)
	return nil
}

// HasCommand reports whether a command id is currently registered.
func (h *FakeHandle) HasCommand(id string) bool {
	_, ok := h.commands[id]
	return ok
}

// Invoke calls a registered command directly, bypassing script expansion.
func (h *FakeHandle) Invoke(id string, args ...string) (string, error) {
	fn, ok := h.commands[id]
	if !ok {
		return "", fmt.Errorf("nativetest: unknown command %q", id)
	}
	return fn(args)
}

// CommandCount returns the number of registered commands.
func (h *FakeHandle) CommandCount() int { return len(h.commands) }

// ---------------------------------------------------------------- bindings

func bindKey(scope native.Scope, sequence string) string {
	return scope.Key() + "|" + sequence
}

func (h *FakeHandle) Bind(scope native.Scope, sequence, script string, add bool) error {
	if scope.Kind == native.ScopeWidget && h.destroyed[scope.Target] {
		return fmt.Errorf("nativetest: bad window path name %q", scope.Target)
	}
	key := bindKey(scope, sequence)
	if add {
		h.bindings[key] = append(h.bindings[key], script)
	} else {
		h.bindings[key] = []string{script}
	}
	return nil
}

func (h *FakeHandle) Unbind(scope native.Scope, sequence string) error {
	delete(h.bindings, bindKey(scope, sequence))
	return nil
}

// Scripts returns a copy of the scripts bound to a sequence at a scope.
func (h *FakeHandle) Scripts(scope native.Scope, sequence string) []string {
	src := h.bindings[bindKey(scope, sequence)]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Bound reports whether any script is bound to the sequence at the scope.
func (h *FakeHandle) Bound(scope native.Scope, sequence string) bool {
	return len(h.bindings[bindKey(scope, sequence)]) > 0
}

// SetClass records the toolkit class of a widget path so class bindings
// participate in Fire cascades.
func (h *FakeHandle) SetClass(path, class string) { h.classes[path] = class }

// SetToplevel overrides the toplevel reported for a widget path. The default
// is ".".
func (h *FakeHandle) SetToplevel(path, top string) { h.toplevels[path] = top }

// ------------------------------------------------------------------ timers

func (h *FakeHandle) After(delay time.Duration, fn func()) (string, error) {
	if delay < 0 {
		delay = 0
	}
	h.seq++
	t := &fakeTimer{
		id:  "after#" + strconv.Itoa(h.seq),
		at:  h.now.Add(delay),
		fn:  fn,
		seq: h.seq,
	}
	h.timers = append(h.timers, t)
	return t.id, nil
}

func (h *FakeHandle) AfterIdle(fn func()) (string, error) {
	h.seq++
	t := &fakeTimer{
		id:   "idle#" + strconv.Itoa(h.seq),
		fn:   fn,
		seq:  h.seq,
		idle: true,
	}
	h.idle = append(h.idle, t)
	return t.id, nil
}

func (h *FakeHandle) CancelAfter(id string) error {
	for i, t := range h.timers {
		if t.id == id {
			h.timers = append(h.timers[:i], h.timers[i+1:]...)
			return nil
		}
	}
	for i, t := range h.idle {
		if t.id == id {
			h.idle = append(h.idle[:i], h.idle[i+1:]...)
			return nil
		}
	}
	return nil
}

// PendingAfters returns the number of timers that have not fired yet,
// excluding idle callbacks.
func (h *FakeHandle) PendingAfters() int { return len(h.timers) }

// Now returns the current virtual time.
func (h *FakeHandle) Now() time.Time { return h.now }

// Advance moves the virtual clock forward, firing due timers in deadline
// order. Callbacks may schedule new timers or advance the clock themselves;
// new timers fire too when they fall inside the window and the clock never
// moves backwards.
func (h *FakeHandle) Advance(d time.Duration) {
	target := h.now.Add(d)
	for {
		idx := -1
		for i, t := range h.timers {
			if t.at.After(target) {
				continue
			}
			if idx == -1 || t.at.Before(h.timers[idx].at) ||
				(t.at.Equal(h.timers[idx].at) && t.seq < h.timers[idx].seq) {
				idx = i
			}
		}
		if idx == -1 {
			break
		}
		t := h.timers[idx]
		h.timers = append(h.timers[:idx], h.timers[idx+1:]...)
		if t.at.After(h.now) {
			h.now = t.at
		}
		t.fn()
	}
	if target.After(h.now) {
		h.now = target
	}
}

// RunIdle drains the idle queue once. Callbacks queued during the drain run
// on the next call.
func (h *FakeHandle) RunIdle() {
	batch := h.idle
	h.idle = nil
	sort.SliceStable(batch, func(i, j int) bool { return batch[i].seq < batch[j].seq })
	for _, t := range batch {
		t.fn()
	}
}

// ------------------------------------------------------------------ events

func (h *FakeHandle) SendVirtual(target, sequence string, payload []byte) error {
	if h.destroyed[target] {
		return fmt.Errorf("nativetest: bad window path name %q", target)
	}
	_, err := h.Fire(target, sequence, map[string]string{"%d": string(payload)})
	return err
}

func (h *FakeHandle) SendEvent(target, sequence string) error {
	if h.destroyed[target] {
		return fmt.Errorf("nativetest: bad window path name %q", target)
	}
	_, err := h.Fire(target, sequence, nil)
	return err
}

// Fire synthesizes an event on a widget and replays every matching binding
// in bindtag order: widget, class, application. The subs map provides raw
// substitution values by code ("%K", "%s", ...); %W and the bracket commands
// are filled in automatically. It returns true when a handler stopped
// propagation.
func (h *FakeHandle) Fire(target, sequence string, subs map[string]string) (bool, error) {
	if h.destroyed[target] {
		return false, fmt.Errorf("nativetest: bad window path name %q", target)
	}

	merged := map[string]string{"%W": target}
	for k, v := range subs {
		merged[k] = v
	}

	scopes := []native.Scope{native.WidgetScope(target)}
	if class, ok := h.classes[target]; ok {
		scopes = append(scopes, native.ClassScope(class))
	}
	scopes = append(scopes, native.AllScope())

	var firstErr error
	for _, scope := range scopes {
		scripts := h.Scripts(scope, sequence)
		for _, script := range scripts {
			stopped, err := h.runScript(script, target, merged)
			if err != nil {
				h.FiredErrors = append(h.FiredErrors, err)
				if firstErr == nil {
					firstErr = err
				}
			}
			if stopped {
				return true, firstErr
			}
		}
	}
	return false, firstErr
}

func (h *FakeHandle) runScript(script, target string, subs map[string]string) (bool, error) {
	expanded := h.expandBrackets(script, target)
	expanded = substitute(expanded, subs)
	tokens := splitScript(expanded)
	if len(tokens) == 0 {
		return false, nil
	}
	fn, ok := h.commands[tokens[0]]
	if !ok {
		return false, fmt.Errorf("nativetest: unknown command %q in script %q", tokens[0], script)
	}
	result, err := fn(tokens[1:])
	if err != nil {
		return false, err
	}
	return result == native.Break, nil
}

func (h *FakeHandle) expandBrackets(script, target string) string {
	top, ok := h.toplevels[target]
	if !ok {
		top = "."
	}
	out := strings.ReplaceAll(script, toplevelCommand, top)
	out = strings.ReplaceAll(out, clockCommand, strconv.FormatInt(h.now.Unix(), 10))
	return out
}

// substitute performs a single left-to-right pass over the script, replacing
// every %<char> with the provided value or the unknown-field sentinel.
// Substituted values are never rescanned, matching interpreter behavior.
func substitute(script string, subs map[string]string) string {
	var b strings.Builder
	b.Grow(len(script))
	for i := 0; i < len(script); i++ {
		c := script[i]
		if c != '%' || i+1 >= len(script) {
			b.WriteByte(c)
			continue
		}
		next := script[i+1]
		if next == '%' {
			b.WriteByte('%')
			i++
			continue
		}
		if v, ok := subs[script[i:i+2]]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(native.UnknownField)
		}
		i++
	}
	return b.String()
}

// splitScript tokenizes an expanded script on spaces, grouping brace-wrapped
// segments into single tokens with nesting. Brace counting does not know
// about string literals, exactly like the host interpreter; payloads with
// unbalanced braces swallow the rest of the script as one token.
func splitScript(s string) []string {
	var out []string
	i, n := 0, len(s)
	for i < n {
		for i < n && s[i] == ' ' {
			i++
		}
		if i >= n {
			break
		}
		if s[i] == '{' {
			depth := 0
			j := i
			for ; j < n; j++ {
				switch s[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth == 0 {
					j++
					break
				}
			}
			if depth != 0 {
				out = append(out, s[i+1:])
				i = n
				break
			}
			out = append(out, s[i+1:j-1])
			i = j
		} else {
			j := i
			for j < n && s[j] != ' ' {
				j++
			}
			out = append(out, s[i:j])
			i = j
		}
	}
	return out
}

// --------------------------------------------------------------- variables

func varKey(name, op string) string { return name + "|" + op }

func (h *FakeHandle) SetVar(name, value string) error {
	h.vars[name] = value
	h.fireTraces(name, "write")
	return nil
}

func (h *FakeHandle) GetVar(name string) (string, error) {
	v, ok := h.vars[name]
	if !ok {
		return "", fmt.Errorf("nativetest: no such variable %q", name)
	}
	h.fireTraces(name, "read")
	return v, nil
}

func (h *FakeHandle) UnsetVar(name string) error {
	delete(h.vars, name)
	h.fireTraces(name, "unset")
	for key := range h.traces {
		if strings.HasPrefix(key, name+"|") {
			delete(h.traces, key)
		}
	}
	return nil
}

func (h *FakeHandle) TraceVar(name, op, commandID string) error {
	key := varKey(name, op)
	h.traces[key] = append(h.traces[key], commandID)
	return nil
}

func (h *FakeHandle) UntraceVar(name, op, commandID string) error {
	key := varKey(name, op)
	ids := h.traces[key]
	for i, id := range ids {
		if id == commandID {
			h.traces[key] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (h *FakeHandle) fireTraces(name, op string) {
	ids := h.traces[varKey(name, op)]
	for _, id := range append([]string(nil), ids...) {
		if fn, ok := h.commands[id]; ok {
			if _, err := fn([]string{name, "", op}); err != nil {
				h.FiredErrors = append(h.FiredErrors, err)
			}
		}
	}
}

// ----------------------------------------------------------------- windows

// DestroyWidget fires <Destroy> for the widget, then marks the path dead and
// drops its widget-scope bindings, mirroring interpreter cleanup.
func (h *FakeHandle) DestroyWidget(path string) {
	if h.destroyed[path] {
		return
	}
	_, _ = h.Fire(path, "<Destroy>", nil)
	h.destroyed[path] = true
	prefix := native.WidgetScope(path).Key() + "|"
	for key := range h.bindings {
		if strings.HasPrefix(key, prefix) {
			delete(h.bindings, key)
		}
	}
}

func (h *FakeHandle) Destroyed(path string) bool { return h.destroyed[path] }
