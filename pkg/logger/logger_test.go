package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerInitNilWriter(t *testing.T) {
	if err := InitWithWriter(nil); err == nil {
		t.Fatal("expected error for nil writer")
	}
}

func TestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().Info(ctx, "ranked students", String("k", "v"), Int("students", 3))

	out := buf.String()
	for _, want := range []string{"ranked students", "k=v", "students=3", "source=logger_test.go:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output %q", want, out)
		}
	}
}

func TestLoggerWithAndNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Named("app").With(String("run_id", "abc")).Warn(ctx, "test message", Error(errors.New("boom")))

	out := buf.String()
	if !strings.Contains(out, "app.run_id=abc") {
		t.Errorf("expected grouped run_id in %q", out)
	}
	if !strings.Contains(out, "app.error=boom") {
		t.Errorf("expected grouped error in %q", out)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer SetLevel(slog.LevelInfo)

	if err := SetLevelString("warn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	Get().Info(ctx, "hidden")
	Get().Debug(ctx, "hidden too")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}

	Get().Error(ctx, "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected error entry, got %q", buf.String())
	}
}

func TestSetLevelString(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q) returned error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}
