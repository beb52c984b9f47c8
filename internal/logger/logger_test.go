package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestZapLoggerWritesObjectField(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewFromCore(core)

	log.DebugObj("hidden", "k", 1)
	log.InfoObj("lookup completed", "lookup", map[string]any{"kind": "graph"})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry above debug, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	got, ok := fields["lookup"].(map[string]interface{})
	if !ok || got["kind"] != "graph" {
		t.Fatalf("unexpected fields %#v", fields)
	}
}

func TestPackageHelpersNoopBeforeInit(t *testing.T) {
	S = nil
	InfoObj("ignored", "k", "v")
	if err := Close(); err != nil {
		t.Fatalf("Close before init: %v", err)
	}
}
