package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option customises the logger built by New.
type Option func(*options)

type options struct {
	level       zapcore.Level
	development bool
	outputPaths []string
}

// WithLevel sets the minimum enabled level.
func WithLevel(level zapcore.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithDevelopment switches to human-readable console output with caller and
// stack information on warnings.
func WithDevelopment(enabled bool) Option {
	return func(o *options) {
		o.development = enabled
	}
}

// WithOutputPaths overrides where log entries are written. The default is
// stderr so that command output on stdout stays machine-readable.
func WithOutputPaths(paths ...string) Option {
	return func(o *options) {
		o.outputPaths = paths
	}
}

// ParseLevel converts a level name such as "debug" or "warn".
func ParseLevel(text string) (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(text)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

// New creates a structured logger. By default it writes JSON at info level.
func New(opts ...Option) (*zap.Logger, error) {
	o := options{
		level:       zapcore.InfoLevel,
		outputPaths: []string{"stderr"},
	}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := zap.NewProductionConfig()
	if o.development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg.Encoding = "json"
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.StacktraceKey = "stacktrace"
	}
	cfg.Level = zap.NewAtomicLevelAt(o.level)
	cfg.OutputPaths = o.outputPaths
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
