package splice

import "go.uber.org/zap"

type Options struct {
	Log    *zap.Logger
	Strict bool
}

type Option func(*Options)

// WithLogger traces attach and detach through log at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(o *Options) {
		o.Log = log
	}
}

// Strict turns caller contract violations into panics: adding a node that
// is already linked, and releasing a splice while a later one is still
// attached or after the chain was changed behind its back.
func Strict() Option {
	return func(o *Options) {
		o.Strict = true
	}
}

func getOptions(opts []Option) Options {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return o
}
