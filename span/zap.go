package span

import "go.uber.org/zap/zapcore"

var (
	_ zapcore.ObjectMarshaler = Frame{}
	_ zapcore.ArrayMarshaler  = Trace{}
)

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (f Frame) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("name", f.Name)

	if f.Target != "" {
		enc.AddString("target", f.Target)
	}

	if loc := f.Location(); loc != "" {
		enc.AddString("at", loc)
	}

	if len(f.Fields) == 0 {
		return nil
	}

	return enc.AddObject("fields", fieldSet(f.Fields))
}

type fieldSet []Field

func (fs fieldSet) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for _, f := range fs {
		if err := enc.AddReflected(f.Key, f.Value); err != nil {
			return err
		}
	}

	return nil
}

// MarshalLogArray implements zapcore.ArrayMarshaler; frames are appended in
// call order, outermost first.
func (t Trace) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, f := range t.Frames() {
		if err := enc.AppendObject(f); err != nil {
			return err
		}
	}

	return nil
}
