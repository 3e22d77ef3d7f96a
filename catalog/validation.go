package catalog

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/tkbind/tkbind/native"
)

// Validation carries the positional arguments of an entry validation
// callback in typed form.
type Validation struct {
	ActionType int    // 1 insert, 0 delete, -1 revalidation
	CharIndex  int    // index of the edit, -1 when not applicable
	Value      string // the value if the edit is allowed
	Current    string // the value before the edit
	Insert     string // the text being inserted or deleted
	State      string
	Condition  string // focus, focusin, focusout, key, or forced
	Widget     string
}

// validationSubs is the validation catalog in wire order.
var validationSubs = buildValidationSubs()

func buildValidationSubs() *orderedmap.OrderedMap[string, Sub] {
	m := orderedmap.New[string, Sub]()
	add := func(name, code string, convert ConvertFunc) {
		m.Set(name, Sub{Name: name, Code: code, Convert: convert})
	}

	add("action_type", "%d", convertInt)
	add("char_index", "%i", convertInt)
	add("validation_value", "%P", convertString)
	add("current_value", "%s", convertString)
	add("insert_value", "%S", convertString)
	add("state", "%v", convertString)
	add("condition", "%V", convertString)
	add("widget", "%W", convertString)

	return m
}

// ValidationSubs returns the validation catalog entries in wire order.
func ValidationSubs() []Sub {
	out := make([]Sub, 0, validationSubs.Len())
	for pair := validationSubs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// ValidationSubstring returns the substitution codes requested for
// validation callbacks, space joined in wire order.
func ValidationSubstring() string {
	parts := make([]string, 0, validationSubs.Len())
	for pair := validationSubs.Oldest(); pair != nil; pair = pair.Next() {
		parts = append(parts, pair.Value.Code)
	}
	return strings.Join(parts, " ")
}

// BuildValidation zips the raw values against the validation catalog.
// Sentinel and malformed values leave the zero value in place.
func (b *Builder) BuildValidation(raw []string) Validation {
	var v Validation
	i := 0
	for pair := validationSubs.Oldest(); pair != nil; pair = pair.Next() {
		if i >= len(raw) {
			break
		}
		value := raw[i]
		i++
		if value == native.UnknownField {
			continue
		}
		converted, err := pair.Value.Convert(value)
		if err != nil {
			continue
		}
		switch pair.Key {
		case "action_type":
			v.ActionType, _ = converted.(int)
		case "char_index":
			v.CharIndex, _ = converted.(int)
		case "validation_value":
			v.Value, _ = converted.(string)
		case "current_value":
			v.Current, _ = converted.(string)
		case "insert_value":
			v.Insert, _ = converted.(string)
		case "state":
			v.State, _ = converted.(string)
		case "condition":
			v.Condition, _ = converted.(string)
		case "widget":
			ref, _ := converted.(string)
			v.Widget = b.resolve(ref)
		}
	}
	return v
}
