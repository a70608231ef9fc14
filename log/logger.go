package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the node logger. Messages carry structured zap fields.
type Logger struct {
	Level string
	zap   *zap.Logger
}

// NewLogger builds a console logger at the given level (debug, info, warn, error).
// Unknown levels fall back to info.
func NewLogger(level string) *Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true

	z, err := cfg.Build()
	if err != nil {
		z = zap.NewNop()
	}
	return &Logger{Level: lvl.String(), zap: z}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Level: zapcore.InfoLevel.String(), zap: zap.NewNop()}
}

// FromZap wraps an existing zap logger.
func FromZap(z *zap.Logger) *Logger {
	return &Logger{Level: z.Level().String(), zap: z}
}

// Named returns a child logger for a module. Names nest: node.rpc.
func (l *Logger) Named(module string) *Logger {
	return &Logger{Level: l.Level, zap: l.zap.Named(module)}
}

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Level: l.Level, zap: l.zap.With(fields...)}
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, fields...)
}

func (l *Logger) Sync() error {
	return l.zap.Sync()
}
