package commands

import (
	"fmt"
	"log/slog"

	"github.com/tkbind/tkbind/pkg/slogx"
)

// Origin tags where a callback failure came from.
type Origin string

const (
	OriginCommand    Origin = "command"
	OriginTrace      Origin = "trace"
	OriginEvent      Origin = "event"
	OriginValidation Origin = "validation"
)

// ErrorHandler intercepts callback failures. The error is still returned to
// the native layer afterwards; the handler is for reporting, not recovery.
type ErrorHandler func(err error, origin Origin, details []any)

func (r *Registry) dispatchError(err error, origin Origin, details ...any) {
	if r.onError == nil {
		slog.Error("callback failed",
			slogx.Error(err),
			slog.String("origin", string(origin)),
			slog.Any("details", details),
		)
		return
	}

	defer func() {
		if p := recover(); p != nil {
			slog.Error("error handler panicked",
				slog.Any("panic", p),
				slog.String("origin", string(origin)),
			)
			slog.Error("callback failed",
				slogx.Error(err),
				slog.String("origin", string(origin)),
				slog.Any("details", details),
			)
		}
	}()
	r.onError(err, origin, details)
}

// guard invokes fn, converting a panic into a plain error so the native
// runtime always gets a result back instead of unwinding its loop.
func guard[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("callback panic: %v", p)
		}
	}()
	return fn()
}
