package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogFile = "authorview.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	logger       *zap.Logger
	closeSink    func()
)

// Error writes errors to the shared log file regardless of the trace setting.
func Error(err error) {
	if err == nil {
		return
	}
	current().Error("error", zap.Error(err))
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are currently written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	if payload == nil {
		current().Debug(event)
		return
	}
	current().Debug(event, zap.Any("payload", payload))
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	resetLocked()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Sync flushes and closes the log file. The next entry reopens it.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	resetLocked()
}

func resetLocked() {
	if logger != nil {
		_ = logger.Sync()
		logger = nil
	}
	if closeSink != nil {
		closeSink()
		closeSink = nil
	}
}

func current() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		return logger
	}
	sink, closeFn, err := zap.Open(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return zap.NewNop()
	}
	encoder := zap.NewProductionEncoderConfig()
	encoder.TimeKey = "time"
	encoder.MessageKey = "event"
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoder), sink, zapcore.DebugLevel)
	logger = zap.New(core)
	closeSink = closeFn
	return logger
}
