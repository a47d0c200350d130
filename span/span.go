// Package span keeps the stack of active diagnostic frames inside a
// context.Context and captures it on demand as an immutable Trace.
//
// Frames are pushed with Enter as a call tree is descended. Capture reads
// whatever frames are active in a context at the instant of the call; the
// returned Trace never changes afterwards, so it can be stored in errors and
// shared between goroutines freely.
package span

import (
	"context"
	"fmt"
	"runtime"
	"strings"
)

type ctxKey struct{}

// node is one entry of the frame stack. Nodes are never mutated after Enter
// returns, so a pointer to the innermost node is a complete snapshot.
type node struct {
	frame  Frame
	parent *node
	depth  int
}

// Frame describes one entered diagnostic frame.
type Frame struct {
	Name   string  // human name given to Enter
	Target string  // fully qualified function that entered the frame
	File   string  // source file of the Enter call site
	Line   int     // source line of the Enter call site
	Fields []Field // structured attributes, in the order given
}

// Field is a single structured attribute of a frame.
type Field struct {
	Key   string
	Value any
}

func (f Field) String() string { return fmt.Sprintf("%s=%v", f.Key, f.Value) }

// Location returns "file:line", or "" when the call site is unknown.
func (f Frame) Location() string {
	if f.File == "" {
		return ""
	}

	return fmt.Sprintf("%s:%d", f.File, f.Line)
}

// Enter returns a copy of ctx in which a new frame named name is active on
// top of the frames already active in ctx. ctx itself is left untouched.
func Enter(ctx context.Context, name string, opts ...Option) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}

	f := Frame{Name: name, Target: cfg.target, Fields: cfg.fields}
	if pc, file, line, ok := runtime.Caller(cfg.skip + 1); ok {
		f.File, f.Line = file, line
		if f.Target == "" {
			if fn := runtime.FuncForPC(pc); fn != nil {
				f.Target = fn.Name()
			}
		}
	}

	parent := current(ctx)
	n := &node{frame: f, parent: parent, depth: 1}
	if parent != nil {
		n.depth = parent.depth + 1
	}

	return context.WithValue(ctx, ctxKey{}, n)
}

// Capture snapshots the frames active in ctx. It never blocks and never
// fails; a context without frames (or a nil context) yields the empty Trace.
func Capture(ctx context.Context) Trace {
	return Trace{leaf: current(ctx)}
}

func current(ctx context.Context) *node {
	if ctx == nil {
		return nil
	}

	n, _ := ctx.Value(ctxKey{}).(*node)

	return n
}

// Trace is an immutable snapshot of the frame stack.
//
// Trace values are comparable: two traces are == only when they were captured
// from the same active frame, which makes identity checks trivial.
type Trace struct {
	leaf *node
}

// Len reports the number of frames in the trace.
func (t Trace) Len() int {
	if t.leaf == nil {
		return 0
	}

	return t.leaf.depth
}

// IsEmpty reports whether no frame was active at capture time.
func (t Trace) IsEmpty() bool { return t.leaf == nil }

// Current returns the innermost frame.
func (t Trace) Current() (Frame, bool) {
	if t.leaf == nil {
		return Frame{}, false
	}

	return cloneFrame(t.leaf.frame), true
}

// Frames returns the captured frames in call order, outermost first.
// The slice is a fresh copy on every call.
func (t Trace) Frames() []Frame {
	if t.leaf == nil {
		return nil
	}

	out := make([]Frame, t.leaf.depth)
	for n := t.leaf; n != nil; n = n.parent {
		out[n.depth-1] = cloneFrame(n.frame)
	}

	return out
}

// Path joins frame names in call order, e.g. "handle > load > parse".
func (t Trace) Path() string {
	frames := t.Frames()
	names := make([]string, len(frames))

	for i, f := range frames {
		names[i] = f.Name
	}

	return strings.Join(names, " > ")
}

// String renders the trace backtrace-style, innermost frame first:
//
//	   0: parse
//	           with input=abc
//	             at /src/app/parse.go:12
//	   1: handle
//	             at /src/app/main.go:40
func (t Trace) String() string {
	var b strings.Builder

	i := 0
	for n := t.leaf; n != nil; n = n.parent {
		if i > 0 {
			b.WriteByte('\n')
		}

		fmt.Fprintf(&b, "%4d: %s", i, n.frame.Name)

		if len(n.frame.Fields) > 0 {
			parts := make([]string, len(n.frame.Fields))
			for j, fl := range n.frame.Fields {
				parts[j] = fl.String()
			}

			fmt.Fprintf(&b, "\n           with %s", strings.Join(parts, ", "))
		}

		if loc := n.frame.Location(); loc != "" {
			fmt.Fprintf(&b, "\n             at %s", loc)
		}

		i++
	}

	return b.String()
}

func cloneFrame(f Frame) Frame {
	if len(f.Fields) > 0 {
		f.Fields = append([]Field(nil), f.Fields...)
	}

	return f
}
