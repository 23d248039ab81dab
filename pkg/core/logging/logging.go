// Package logging builds the process logger. Console encoding with ISO8601
// timestamps; debug level is opt-in.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop().Sugar()
)

// New builds a sugared console logger writing to stdout.
func New(debug bool) *zap.SugaredLogger {
	return NewTo(debug, zapcore.Lock(os.Stdout))
}

// NewTo is New with an explicit sink. Command line tools pass stderr so
// logs never mix with their output.
func NewTo(debug bool, out zapcore.WriteSyncer) *zap.SugaredLogger {
	atom := zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		atom.SetLevel(zap.DebugLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.StacktraceKey = "stack"
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	zl := zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		out,
		atom,
	),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.AddCaller(),
	)
	return zl.Sugar()
}

// Init installs a logger as the process-wide one returned by L.
func Init(debug bool) *zap.SugaredLogger {
	l := New(debug)
	Set(l)
	return l
}

// Set replaces the process-wide logger. Tests use it with zaptest or observer loggers.
func Set(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	global = l
}

// L returns the process-wide logger; a no-op logger until Init is called.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}
