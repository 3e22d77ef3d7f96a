package reflectx

import (
	"reflect"
	"runtime"
	"strings"
)

func IsFunction(fn any) bool {
	if fn == nil {
		return false
	}

	ftpe := reflect.TypeOf(fn)
	isFunc := ftpe.Kind() == reflect.Func

	return isFunc
}

// FunctionName resolves a human-readable name for a function value: the type
// name for named function types, otherwise the runtime symbol with its
// package path and method suffix stripped.
func FunctionName(fn any) string {
	if !IsFunction(fn) {
		return ""
	}

	val := reflect.ValueOf(fn)
	typ := val.Type()

	if typ.Name() != "" {
		return typ.String()
	}

	name := typ.String()
	if rf := runtime.FuncForPC(val.Pointer()); rf != nil {
		name = rf.Name()
		if lastDot := strings.LastIndex(name, "."); lastDot >= 0 {
			name = strings.TrimSuffix(name[lastDot+1:], "-fm")
		}
	}
	return name
}

// FunctionPointer returns the code pointer of a function value, or zero for
// non-functions. Two references to the same declared function or closure
// literal share a pointer, which makes it usable as a stable dedup key for
// repeat registrations of the same handler.
func FunctionPointer(fn any) uintptr {
	if !IsFunction(fn) {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}
