package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logbook persists client activity to a text file the TUI can tail into its
// log panel. Entries go through zap so levels and structured fields come for
// free; the file stays plain console lines so Tail can render them as-is.
// All methods are safe on a nil receiver.
type Logbook struct {
	path  string
	sugar *zap.SugaredLogger
}

// New creates a logbook writing to the provided path at the given level.
func New(path, level string) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logbook: open log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(file),
		parseLevel(level),
	)
	return &Logbook{path: path, sugar: zap.New(core).Sugar()}, nil
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Info appends an informational entry with optional key/value pairs.
func (l *Logbook) Info(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	l.sugar.Infow(msg, keyvals...)
}

// Warn appends a warning entry.
func (l *Logbook) Warn(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	l.sugar.Warnw(msg, keyvals...)
}

// Error appends an error entry.
func (l *Logbook) Error(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	l.sugar.Errorw(msg, keyvals...)
}

// Sync flushes buffered entries.
func (l *Logbook) Sync() error {
	if l == nil {
		return nil
	}
	return l.sugar.Sync()
}

// Tail returns up to maxLines of the most recent log entries.
func (l *Logbook) Tail(maxLines int) []string {
	if l == nil || maxLines <= 0 {
		return nil
	}
	_ = l.sugar.Sync()
	file, err := os.Open(l.path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
