package spanerr

import (
	"fmt"
	"io"
	"reflect"

	"go.uber.org/zap/zapcore"

	"github.com/next-trace/scg-spanerr/contract"
	"github.com/next-trace/scg-spanerr/span"
)

// SpanErr pairs an error with the span.Trace captured when it was wrapped.
//
// Fields:
//   - Err:  the original error, owned by the wrapper
//   - Span: the frames active at the construction call site; never re-captured
//
// SpanErr is itself an error, so a *SpanErr can be returned wherever an error
// is expected. Use Wrap (or InCurrentSpan) to avoid stacking a second trace on
// an error that already has one.
type SpanErr[E error] struct {
	Err  E
	Span span.Trace
}

// compile-time guarantee that *SpanErr implements contract.Spanned
var _ contract.Spanned = (*SpanErr[error])(nil)

// ------ standard error interface

// Error returns the wrapped error's text unchanged; the trace is not part of it.
func (e *SpanErr[E]) Error() string {
	if e == nil || isNil(e.Err) {
		return "<nil>"
	}

	return e.Err.Error()
}

func (e *SpanErr[E]) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

// Cause makes github.com/pkg/errors.Cause see through the wrapper.
func (e *SpanErr[E]) Cause() error { return e.Unwrap() }

// SpanTrace returns the trace captured at construction.
func (e *SpanErr[E]) SpanTrace() span.Trace {
	if e == nil {
		return span.Trace{}
	}

	return e.Span
}

// Format implements fmt.Formatter. %s, %v and %q print the wrapped error only;
// %+v prints the wrapped error in its own verbose form followed by the trace.
func (e *SpanErr[E]) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') && e != nil && !isNil(e.Err) {
			fmt.Fprintf(s, "%+v", e.Err)

			if !e.Span.IsEmpty() {
				_, _ = io.WriteString(s, "\n")
				_, _ = io.WriteString(s, e.Span.String())
			}

			return
		}

		fallthrough
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// MarshalLogObject implements zapcore.ObjectMarshaler for zap.Object.
func (e *SpanErr[E]) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("message", e.Error())

	if e == nil || e.Span.IsEmpty() {
		return nil
	}

	return enc.AddArray("span", e.Span)
}

// isNil also catches typed nils such as a nil *MyError stored in E.
func isNil(err error) bool {
	if err == nil {
		return true
	}

	switch v := reflect.ValueOf(err); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
