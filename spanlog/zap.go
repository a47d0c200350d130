// Package spanlog lets logging sinks surface the trace carried by errors
// built with spanerr. It never writes anything itself.
package spanlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/next-trace/scg-spanerr/spanerr"
)

// Trace returns a field holding the trace found in err's chain, or zap.Skip
// when there is none.
func Trace(err error, opts ...Option) zap.Field {
	t, ok := spanerr.TraceOf(err)
	if !ok || t.IsEmpty() {
		return zap.Skip()
	}

	return zap.Array(newConfig(opts).key, t)
}

// Error returns zap.Error(err) followed by Trace(err).
func Error(err error, opts ...Option) []zap.Field {
	return []zap.Field{zap.Error(err), Trace(err, opts...)}
}

// WrapCore returns a zap option that appends the trace to every entry whose
// error field carries one, so call sites can keep using zap.Error.
//
// The logger's core must be a leaf core (optionally behind a sampler). A tee
// writes every accepted entry to all of its members, so wrap each member with
// NewCore before passing them to zapcore.NewTee instead.
func WrapCore(opts ...Option) zap.Option {
	return zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return NewCore(c, opts...)
	})
}

// NewCore wraps a single core the same way WrapCore does.
func NewCore(c zapcore.Core, opts ...Option) zapcore.Core {
	return &core{Core: c, key: newConfig(opts).key}
}

type core struct {
	zapcore.Core
	key string
}

func (c *core) With(fields []zapcore.Field) zapcore.Core {
	return &core{Core: c.Core.With(c.enrich(fields)), key: c.key}
}

func (c *core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	// The wrapped core decides, so samplers keep counting.
	if c.Core.Check(ent, nil) != nil {
		return ce.AddCore(ent, c)
	}

	return ce
}

func (c *core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(ent, c.enrich(fields))
}

func (c *core) enrich(fields []zapcore.Field) []zapcore.Field {
	for _, f := range fields {
		if f.Type != zapcore.ErrorType {
			continue
		}

		err, ok := f.Interface.(error)
		if !ok {
			continue
		}

		t, ok := spanerr.TraceOf(err)
		if !ok || t.IsEmpty() {
			continue
		}

		out := make([]zapcore.Field, 0, len(fields)+1)
		out = append(out, fields...)

		return append(out, zap.Array(c.key, t))
	}

	return fields
}
