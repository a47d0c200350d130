// Package spanerr attaches the active diagnostic trace to errors at the point
// where they first cross a failure boundary.
//
// A SpanErr pairs an error with a span.Trace captured from a context.Context.
// It prints exactly like the error it wraps and integrates with the standard
// library's errors helpers (Is/As) via Unwrap.
//
// Key characteristics:
//   - New captures the trace once, at its call site
//   - Map swaps the wrapped error and keeps the original trace
//   - Wrap is nil-safe and leaves errors that already carry a trace alone
//   - Result, InCurrentSpan and SpannedMapErr apply the above to the failure
//     branch only, so they can be chained directly after a fallible call
//   - %+v and zap.Object render the trace; Error() never does
//
// Typed nesting (SpanErr[*SpanErr[E]]) is possible through New because Go
// constraints cannot exclude a type, but it is always visible in the type.
package spanerr
