package log

import (
	"github.com/rs/zerolog"
)

var (
	// G is the process wide logger
	G *Logger
)

func init() {
	G = New(WithDesensitize(DefaultHook()))
}

// SetGlobalLogger replaces the global logger
func SetGlobalLogger(logger *Logger) {
	G = logger
}

// SetGlobalLevel sets the level of the global logger
func SetGlobalLevel(level zerolog.Level) {
	G.Logger = G.Logger.Level(level)
}

func Debug() *zerolog.Event {
	return G.Debug()
}

func Info() *zerolog.Event {
	return G.Info()
}

func Warn() *zerolog.Event {
	return G.Warn()
}

// Error returns an error level event with stack
func Error() *zerolog.Event {
	return G.Error().Stack()
}

func Debugf(format string, args ...any) {
	G.Debug().Msgf(format, args...)
}

func Infof(format string, args ...any) {
	G.Info().Msgf(format, args...)
}

func Warnf(format string, args ...any) {
	G.Warn().Msgf(format, args...)
}

func Errorf(format string, args ...any) {
	G.Error().Stack().Msgf(format, args...)
}
