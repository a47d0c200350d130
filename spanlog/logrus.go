package spanlog

import (
	"github.com/sirupsen/logrus"

	"github.com/next-trace/scg-spanerr/spanerr"
)

// LogrusHook adds the frame path of a spanned error to logrus entries.
// Only the error stored under logrus.ErrorKey (see Entry.WithError) is inspected.
type LogrusHook struct {
	key string
}

var _ logrus.Hook = (*LogrusHook)(nil)

// NewLogrusHook builds a hook; register it with Logger.AddHook.
func NewLogrusHook(opts ...Option) *LogrusHook {
	return &LogrusHook{key: newConfig(opts).key}
}

// Levels fires the hook for every level.
func (h *LogrusHook) Levels() []logrus.Level { return logrus.AllLevels }

// Fire stores the trace path under the configured key; it never fails.
func (h *LogrusHook) Fire(e *logrus.Entry) error {
	err, ok := e.Data[logrus.ErrorKey].(error)
	if !ok {
		return nil
	}

	t, ok := spanerr.TraceOf(err)
	if !ok || t.IsEmpty() {
		return nil
	}

	e.Data[h.key] = t.Path()

	return nil
}
