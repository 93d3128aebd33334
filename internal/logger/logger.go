package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/universe.log"

// MaxLines is how many recent lines are kept in memory for the overlay.
const MaxLines = 200

// Options configures New.
type Options struct {
	// Path is the JSON log file. Empty means LogFilePath; "-" disables the file.
	Path string
	// Level is the minimum level written anywhere.
	Level zapcore.Level
	// Console also writes human-readable lines to stderr.
	Console bool
}

// Logger is a zap logger that also keeps the most recent lines in memory, so the window can
// show them without reading the file back.
type Logger struct {
	mu    sync.Mutex
	lines []string
	zap   *zap.Logger
	file  *os.File
}

// New returns a Logger and ensures the log directory exists. If the file cannot be opened,
// logging continues in memory (and on the console when enabled) and the error is returned
// alongside the usable Logger.
func New(opts Options) (*Logger, error) {
	l := &Logger{lines: make([]string, 0, MaxLines)}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(l), opts.Level),
	}
	if opts.Console {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), opts.Level))
	}

	var fileErr error
	path := opts.Path
	if path == "" {
		path = LogFilePath
	}
	if path != "-" {
		l.file, fileErr = openAppend(path)
		if fileErr == nil {
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(l.file), opts.Level))
		}
	}
	l.zap = zap.New(zapcore.NewTee(cores...))
	return l, fileErr
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// Write receives encoded entries from the in-memory core.
func (l *Logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte{'\n'}) {
		l.lines = append(l.lines, string(line))
	}
	if over := len(l.lines) - MaxLines; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	return len(p), nil
}

// Log records a plain info-level line.
func (l *Logger) Log(line string) {
	l.zap.Info(line)
}

// Zap returns the underlying logger for structured logging. Components take this, not *Logger.
func (l *Logger) Zap() *zap.Logger { return l.zap }

// Lines returns a copy of the most recent lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	_ = l.zap.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
