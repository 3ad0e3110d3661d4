package extract

import "go.uber.org/zap"

type Options struct {
	Log         *zap.Logger
	CheckCycles bool
}

type Option func(*Options)

// WithLogger reports skipped records through log.
func WithLogger(log *zap.Logger) Option {
	return func(o *Options) {
		o.Log = log
	}
}

// WithCycleCheck makes Extract panic with chain.ErrCycle instead of looping
// forever on a malformed chain.
func WithCycleCheck() Option {
	return func(o *Options) {
		o.CheckCycles = true
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
