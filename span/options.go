package span

import (
	"maps"
	"slices"
)

// Option configures a frame during Enter.
type Option func(*config)

type config struct {
	target string
	skip   int
	fields []Field
}

// WithField attaches a single structured attribute to the frame.
func WithField(key string, value any) Option {
	return func(c *config) { c.fields = append(c.fields, Field{Key: key, Value: value}) }
}

// WithFields attaches every entry of m, ordered by key.
// The map is copied; later changes to m do not reach the frame.
func WithFields(m map[string]any) Option {
	return func(c *config) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			c.fields = append(c.fields, Field{Key: k, Value: m[k]})
		}
	}
}

// WithTarget overrides the function name recorded for the frame.
func WithTarget(target string) Option { return func(c *config) { c.target = target } }

// WithCallerSkip records the call site skip frames above the caller of Enter.
// Helpers that enter frames on behalf of their callers use WithCallerSkip(1).
func WithCallerSkip(skip int) Option { return func(c *config) { c.skip = skip } }
