package logbook

import (
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestTailReturnsMostRecentEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recruit.log")
	log, err := New(path, "info")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info("first", "key", "value")
	log.Info("second")
	log.Warn("third")

	lines := log.Tail(2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "second") || !strings.Contains(lines[1], "third") {
		t.Fatalf("expected most recent entries in order, got %v", lines)
	}
	if !strings.Contains(lines[1], "WARN") {
		t.Fatalf("expected level in line, got %q", lines[1])
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recruit.log")
	log, err := New(path, "warn")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info("hidden")
	log.Error("visible")

	lines := log.Tail(10)
	if len(lines) != 1 || !strings.Contains(lines[0], "visible") {
		t.Fatalf("expected only the error entry, got %v", lines)
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var log *Logbook
	log.Info("ignored")
	log.Warn("ignored")
	log.Error("ignored")
	if err := log.Sync(); err != nil {
		t.Fatalf("nil sync: %v", err)
	}
	if got := log.Path(); got != "" {
		t.Fatalf("nil path = %q", got)
	}
	if lines := log.Tail(5); lines != nil {
		t.Fatalf("nil tail = %v", lines)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
