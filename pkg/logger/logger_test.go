package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for input, want := range tests {
		if got := parseLogLevel(input); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestAppLogger_LevelFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := NewLoggerWithCore(core)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message", "page", 2)

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry above warn, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "warn message" {
		t.Fatalf("unexpected message: %s", entry.Message)
	}
	if entry.ContextMap()["page"] != int64(2) {
		t.Fatalf("expected page field, got %v", entry.ContextMap())
	}
}

func TestAppLogger_ErrorCarriesCause(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewLoggerWithCore(core)

	log.Error("generation failed", errors.New("boom"), "backend", "huggingface")

	entries := logs.FilterMessage("generation failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["error"] != "boom" {
		t.Fatalf("expected error field boom, got %v", fields["error"])
	}
	if fields["backend"] != "huggingface" {
		t.Fatalf("expected backend field, got %v", fields["backend"])
	}
}
