package collide

import "log/slog"

// Option configures a Manager during creation.
//
// Example:
//
//	m, err := collide.NewManager(collide.Vector{}, 1024, 768,
//		collide.WithDepth(6),
//		collide.WithLogger(slog.Default()))
type Option func(*options)

type options struct {
	depth  int
	logger *slog.Logger
}

func defaultOptions() options {
	return options{
		depth:  DefaultDepth,
		logger: nil, // package logger
	}
}

// WithDepth sets the quad tree depth. Zero gives a single node; MaxDepth is the limit.
func WithDepth(depth int) Option {
	return func(o *options) {
		o.depth = depth
	}
}

// WithLogger routes the manager's and its tree's log output to l instead of
// the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
