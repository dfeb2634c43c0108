// Package pebbleutil plugs zap into Pebble.
package pebbleutil

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger sends Pebble logs to a zap logger.
// Events are logged at debug level.
type Logger struct {
	l *zap.SugaredLogger
}

// NewLogger returns a Logger writing to a child of l named "pebble".
func NewLogger(l *zap.Logger) Logger {
	return Logger{
		l: l.Named("pebble").WithOptions(zap.AddCallerSkip(1)).Sugar(),
	}
}

// Infof implements pebble.Logger.
func (l Logger) Infof(format string, args ...interface{}) {
	l.l.Infof(format, args...)
}

// Errorf implements pebble.Logger.
func (l Logger) Errorf(format string, args ...interface{}) {
	l.l.Errorf(format, args...)
}

// Fatalf implements pebble.Logger.
func (l Logger) Fatalf(format string, args ...interface{}) {
	l.l.Fatalf(format, args...)
}

// Eventf implements pebble.LoggerAndTracer.
func (l Logger) Eventf(ctx context.Context, format string, args ...interface{}) {
	l.l.Debugf(format, args...)
}

// IsTracingEnabled implements pebble.LoggerAndTracer.
func (l Logger) IsTracingEnabled(ctx context.Context) bool {
	return l.l.Desugar().Core().Enabled(zapcore.DebugLevel)
}

// NoopLogger does no logging and tracing.
type NoopLogger struct{}

// Infof implements pebble.Logger.
func (l NoopLogger) Infof(format string, args ...interface{}) {}

// Errorf implements pebble.Logger.
func (l NoopLogger) Errorf(format string, args ...interface{}) {}

// Fatalf implements pebble.Logger.
func (l NoopLogger) Fatalf(format string, args ...interface{}) {}

// Eventf implements pebble.LoggerAndTracer.
func (l NoopLogger) Eventf(ctx context.Context, format string, args ...interface{}) {
}

// IsTracingEnabled implements pebble.LoggerAndTracer.
func (l NoopLogger) IsTracingEnabled(ctx context.Context) bool {
	return false
}
