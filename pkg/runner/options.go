package runner

import "log/slog"

// Options configures runner behavior.
type Options struct {
	// Logger receives per-example outcomes at Debug level and hook
	// anomalies at Warn level. If nil, the logger embedded in the run
	// context (or the slog default) is used.
	Logger *slog.Logger

	// Tags restricts the run to examples whose effective tag set is a
	// superset of these tags. Empty means no tag filtering.
	Tags []string
}

// Option is a functional option for configuring a Runner.
type Option func(*Options)

// WithLogger sets the logger used for run diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithTags restricts the run to examples carrying the given tags.
func WithTags(tags []string) Option {
	return func(o *Options) {
		o.Tags = tags
	}
}
