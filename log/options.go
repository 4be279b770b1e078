package log

import (
	"github.com/rs/zerolog"

	"github.com/kochabx/vetclinic/log/desensitize"
)

// Option configures a Logger
type Option func(*Logger)

// WithLevel sets the minimum level
func WithLevel(level zerolog.Level) Option {
	return func(l *Logger) {
		l.Logger = l.Logger.Level(level)
	}
}

// WithCaller adds the caller to every entry
func WithCaller() Option {
	return func(l *Logger) {
		l.Logger = l.Logger.With().Caller().Logger()
	}
}

// WithDesensitize masks sensitive values before they reach the writer
func WithDesensitize(hook *desensitize.Hook) Option {
	return func(l *Logger) {
		l.desensitizeHook = hook
	}
}

// WithComponent tags every entry with a component name
func WithComponent(name string) Option {
	return func(l *Logger) {
		l.Logger = l.Logger.With().Str("component", name).Logger()
	}
}
