package log

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/kochabx/vetclinic/log/desensitize"
	"github.com/kochabx/vetclinic/log/writer"
)

// Logger wraps zerolog with an optional desensitize hook and a closable sink
type Logger struct {
	zerolog.Logger
	desensitizeHook *desensitize.Hook
	writer          io.Writer
	closer          io.Closer
}

// GetDesensitizeHook returns the hook, nil when masking is off
func (l *Logger) GetDesensitizeHook() *desensitize.Hook {
	return l.desensitizeHook
}

// Close releases the file sink, if any
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func init() {
	zerolog.TimeFieldFormat = time.DateTime
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// DefaultHook masks credentials and session tokens
func DefaultHook() *desensitize.Hook {
	return desensitize.NewHook(desensitize.Credentials()...)
}

func newLogger(w io.Writer, opts ...Option) *Logger {
	logger := &Logger{writer: w}

	// the hook has to be known before the zerolog sink is built
	scratch := &Logger{Logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(scratch)
	}
	logger.desensitizeHook = scratch.desensitizeHook

	sink := w
	if logger.desensitizeHook != nil {
		sink = desensitize.NewWriter(w, logger.desensitizeHook)
	}
	logger.Logger = zerolog.New(sink).With().Timestamp().Logger()

	for _, opt := range opts {
		opt(logger)
	}
	return logger
}

// New creates a console logger
func New(opts ...Option) *Logger {
	return newLogger(writer.Console(), opts...)
}

// NewWriter creates a logger on an arbitrary writer
func NewWriter(w io.Writer, opts ...Option) *Logger {
	return newLogger(w, opts...)
}

// NewFromConfig creates a console logger, teeing to a rotating file when enabled.
// Credentials and tokens are always masked.
func NewFromConfig(c Config, opts ...Option) (*Logger, error) {
	hook := DefaultHook()
	if c.MaskEmails {
		hook.Add(desensitize.EmailRule)
	}
	opts = append([]Option{WithDesensitize(hook), WithLevel(ParseLevel(c.Level))}, opts...)
	if !c.File.Enabled {
		return New(opts...), nil
	}

	wc, err := c.File.toWriterConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}
	fw, err := writer.File(wc)
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}

	logger := newLogger(zerolog.MultiLevelWriter(fw, writer.Console()), opts...)
	logger.closer = fw
	return logger, nil
}
