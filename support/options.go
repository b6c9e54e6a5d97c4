package support

import "log/slog"

// Option adjusts how Build, BuildAll and Prune run.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes the debug trace of a build or prune to the given
// logger. Without it the trace is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
