// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package logging provides the loggers used by the
// command-line tools.
package logging

import (
	"context"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKeyType string

const loggerKey = loggerKeyType("logger")

var rootLogger = zap.NewNop()

// New creates a logger that writes to out.
// In dev mode it uses a console encoder and logs debug
// messages; otherwise it writes JSON from info level on.
func New(dev bool, out io.Writer) *zap.Logger {
	var (
		enc zapcore.Encoder
		lvl zapcore.Level
	)
	if dev {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		lvl = zapcore.DebugLevel
	} else {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		lvl = zapcore.InfoLevel
	}
	filter := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= lvl })
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(out)), filter)
	return zap.New(core).With(zap.Bool("devmode", dev))
}

// Init sets the root logger to New(dev, out) and
// returns it.
func Init(dev bool, out io.Writer) *zap.Logger {
	rootLogger = New(dev, out)
	rootLogger.Debug("Logging initialized")
	return rootLogger
}

// From returns the logger of the current context, if no logger is available, returns the root logger
func From(ctx context.Context) *zap.Logger {
	l := ctx.Value(loggerKey)
	if l == nil {
		return rootLogger
	}
	return l.(*zap.Logger)
}

// SubFrom returns a named child of the logger of ctx and a
// context holding it.
func SubFrom(ctx context.Context, name string) (*zap.Logger, context.Context) {
	logger := From(ctx).Named(name)
	return logger, Context(ctx, logger)
}

// Context returns a copy of ctx holding logger.
// A nil logger means the root logger.
func Context(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		logger = rootLogger
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromWithFields is like SubFrom but adds fields to the
// logger instead of a name.
func FromWithFields(ctx context.Context, fields ...zapcore.Field) (*zap.Logger, context.Context) {
	logger := From(ctx).With(fields...)
	ctx = Context(ctx, logger)
	return logger, ctx
}
