package spanerr

import (
	"context"
	"errors"
)

// ErrNilFailure is what Unpack reports for a failed Result whose error is nil,
// so a failure never turns into a success at the (value, error) boundary.
var ErrNilFailure = errors.New("spanerr: failed result carries a nil error")

// Result holds either a success value or a failure error.
//
// It exists so that failure-branch combinators can be chained inline:
//
//	n, err := spanerr.InCurrentSpan(ctx, spanerr.From(strconv.Atoi(s))).Unpack()
type Result[T any, E error] struct {
	value  T
	err    E
	failed bool
}

// Ok returns a successful Result.
func Ok[T any, E error](v T) Result[T, E] { return Result[T, E]{value: v} }

// Fail returns a failed Result carrying err. err should be non-nil; a nil
// err still yields a failure (see ErrNilFailure).
func Fail[T any, E error](err E) Result[T, E] { return Result[T, E]{err: err, failed: true} }

// From converts a Go (value, error) pair. A non-nil err makes the Result a
// failure and v is dropped.
func From[T any](v T, err error) Result[T, error] {
	if err != nil {
		return Fail[T](err)
	}

	return Ok[T, error](v)
}

// IsOk reports whether r holds a success value.
func (r Result[T, E]) IsOk() bool { return !r.failed }

// Value returns the success value, or the zero T on failure.
func (r Result[T, E]) Value() T { return r.value }

// Err returns the failure error, or the zero E on success.
func (r Result[T, E]) Err() E { return r.err }

// Get returns both halves as stored, without any nil normalization.
func (r Result[T, E]) Get() (T, E) { return r.value, r.err }

// Unpack converts back to a Go (value, error) pair. On success the error is
// an untyped nil, so err != nil checks behave even when E is a pointer type.
// On failure the error is never nil: a nil E is reported as ErrNilFailure.
func (r Result[T, E]) Unpack() (T, error) {
	if r.failed {
		if isNil(r.err) {
			return r.value, ErrNilFailure
		}

		return r.value, r.err
	}

	return r.value, nil
}

// InCurrentSpan wraps a failure with the frames active in ctx. A success
// passes through unchanged and nothing is captured.
func InCurrentSpan[T any, E error](ctx context.Context, r Result[T, E]) Result[T, *SpanErr[E]] {
	if !r.failed {
		return Ok[T, *SpanErr[E]](r.value)
	}

	return Fail[T](New(ctx, r.err))
}

// SpannedMapErr applies Map to an already wrapped failure. A success passes
// through unchanged and f is not called.
func SpannedMapErr[T any, E, F error](r Result[T, *SpanErr[E]], f func(E) F) Result[T, *SpanErr[F]] {
	if !r.failed {
		return Ok[T, *SpanErr[F]](r.value)
	}

	return Fail[T](Map(r.err, f))
}
