package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Re-initialization must be safe
	if err := Init(); err != nil {
		t.Fatalf("failed to re-initialize logger: %v", err)
	}
}

// Basic logging test (slog-backed)
func TestLoggerBasic(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil")
	}

	ctx := context.Background()
	logger.Info(ctx, "test message", String("k", "v"))
	logger.Debug(ctx, "test message", Int("n", 1), Bool("b", true))
	logger.Warn(ctx, "test message", Duration("d", time.Second))
	logger.Error(ctx, "test message", Error(errors.New("boom")))
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	nested := namedLogger.Named("inner")
	if nested == nil {
		t.Fatal("nested named logger is nil")
	}

	ctx := context.Background()
	nested.Info(ctx, "test message", Any("payload", map[string]int{"a": 1}))
}

func TestLoggerFields(t *testing.T) {
	now := time.Now()
	cases := []struct {
		field Field
		key   string
	}{
		{String("s", "v"), "s"},
		{Int("i", 42), "i"},
		{Bool("b", true), "b"},
		{Time("t", now), "t"},
		{Duration("d", time.Minute), "d"},
		{Any("a", struct{}{}), "a"},
		{Error(errors.New("boom")), "error"},
	}
	for _, c := range cases {
		if c.field.Key != c.key {
			t.Errorf("expected key %q, got %q", c.key, c.field.Key)
		}
	}
}

func TestLoggerSetLevel(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	if err := SetLevelString("debug"); err != nil {
		t.Fatalf("failed to set debug level: %v", err)
	}
	if err := SetLevelString("nope"); err == nil {
		t.Error("expected error for unknown level")
	}

	SetLevel(slog.LevelInfo)
}
