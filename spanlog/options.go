package spanlog

// DefaultKey is the field name used for traces unless WithKey overrides it.
const DefaultKey = "span"

// Option configures the field builders, the zap core wrapper and the logrus hook.
type Option func(*config)

type config struct {
	key string
}

// WithKey sets the field name the trace is written under.
func WithKey(key string) Option { return func(c *config) { c.key = key } }

func newConfig(opts []Option) config {
	c := config{key: DefaultKey}
	for _, o := range opts {
		o(&c)
	}

	if c.key == "" {
		c.key = DefaultKey
	}

	return c
}
