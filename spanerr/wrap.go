package spanerr

import (
	"context"
	"errors"

	"github.com/next-trace/scg-spanerr/contract"
	"github.com/next-trace/scg-spanerr/span"
)

var defaultCapturer contract.Capturer = contract.CapturerFunc(span.Capture)

// New wraps err together with the frames active in ctx.
// The trace is captured exactly once, here, and New always succeeds.
func New[E error](ctx context.Context, err E) *SpanErr[E] {
	return NewWith(defaultCapturer, ctx, err)
}

// NewWith is New with an explicit Capturer. A nil Capturer falls back to
// span.Capture.
func NewWith[E error](c contract.Capturer, ctx context.Context, err E) *SpanErr[E] {
	if c == nil {
		c = defaultCapturer
	}

	return &SpanErr[E]{Err: err, Span: c.Capture(ctx)}
}

// Wrap is the untyped entry point for code that deals in plain errors.
//
// Behavior:
//   - nil input => nil output
//   - err already carries a trace anywhere in its chain => returned as-is
//   - otherwise wrapped with the frames active in ctx
func Wrap(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var s contract.Spanned
	if errors.As(err, &s) {
		return err
	}

	return New(ctx, err)
}

// TraceOf returns the first trace found in err's chain.
func TraceOf(err error) (span.Trace, bool) {
	var s contract.Spanned
	if errors.As(err, &s) {
		return s.SpanTrace(), true
	}

	return span.Trace{}, false
}

// Map replaces the wrapped error with f(w.Err) and carries w.Span forward
// untouched; nothing is re-captured. Map(nil, f) is nil and f is not called.
func Map[E, F error](w *SpanErr[E], f func(E) F) *SpanErr[F] {
	if w == nil {
		return nil
	}

	return &SpanErr[F]{Err: f(w.Err), Span: w.Span}
}
