// Package contract exposes the minimal interfaces other packages depend on.
//
// Implementations of Spanned must delegate Error() to the wrapped error
// unchanged and support errors.Unwrap so standard error helpers keep working.
package contract

import (
	"context"

	"github.com/next-trace/scg-spanerr/span"
)

// Spanned is an error that carries the diagnostic trace captured when it was
// first wrapped.
//
// Implementations must:
//   - Return exactly the wrapped error's text from Error().
//   - Return the same Trace from every SpanTrace() call (it is never re-captured).
//   - Support errors.Unwrap via Unwrap().
type Spanned interface {
	error
	SpanTrace() span.Trace
	Unwrap() error
}

// Capturer snapshots the diagnostic frames active in a context.
// Capture must not block and must not fail.
type Capturer interface {
	Capture(ctx context.Context) span.Trace
}

// CapturerFunc adapts an ordinary function to Capturer.
type CapturerFunc func(ctx context.Context) span.Trace

// Capture calls f(ctx).
func (f CapturerFunc) Capture(ctx context.Context) span.Trace { return f(ctx) }
