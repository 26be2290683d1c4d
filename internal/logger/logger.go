// Package logger is the service's structured logging surface. Call sites pass
// fields as a map; the zap backend turns them into typed fields.
package logger

import (
	"sort"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// ServiceName is attached to every entry written by New
const ServiceName = "decorlens-backend"

type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger
}

// New builds the process logger. "json" selects the production encoder;
// any other format gets the console encoder with ISO8601 timestamps.
// Unknown levels fall back to info.
func New(levelStr, format string) *zap.Logger {
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if format == "json" {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.InitialFields = map[string]interface{}{"service": ServiceName}

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

type fieldLogger struct {
	z *zap.Logger
}

func (f *fieldLogger) Debug(msg string, fields map[string]interface{}) {
	f.z.Debug(msg, zapFields(fields)...)
}

func (f *fieldLogger) Info(msg string, fields map[string]interface{}) {
	f.z.Info(msg, zapFields(fields)...)
}

func (f *fieldLogger) Warn(msg string, fields map[string]interface{}) {
	f.z.Warn(msg, zapFields(fields)...)
}

func (f *fieldLogger) Error(msg string, fields map[string]interface{}) {
	f.z.Error(msg, zapFields(fields)...)
}

func (f *fieldLogger) WithFields(fields map[string]interface{}) Logger {
	return &fieldLogger{z: f.z.With(zapFields(fields)...)}
}

func (f *fieldLogger) WithError(err error) Logger {
	return &fieldLogger{z: f.z.With(zap.Error(err))}
}

// zapFields converts in key order so repeated entries read the same
func zapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		if err, ok := fields[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

func NewStructured(levelStr, format string) Logger {
	return NewZapAdapter(New(levelStr, format))
}

// NewZapAdapter exposes an existing zap logger through Logger
func NewZapAdapter(z *zap.Logger) Logger {
	return &fieldLogger{z: z}
}

// NewTestLogger routes output to t.Log
func NewTestLogger(t testing.TB) Logger {
	return NewZapAdapter(zaptest.NewLogger(t))
}

func NewNoOpLogger() Logger {
	return NewZapAdapter(zap.NewNop())
}
