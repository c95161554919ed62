// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package graph

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNopHandlerDisabledAtEveryLevel(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := logger()
	if l == nil {
		t.Fatal("logger() returned nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should not be enabled for LevelError")
	}
}

func TestSetLoggerCapturesOutput(t *testing.T) {
	orig := logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger().Debug("reachability ordered", "passes", 3)
	if !strings.Contains(buf.String(), "reachability ordered") {
		t.Errorf("log output = %q, want it to contain the message", buf.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	if logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

func TestBakeLogsFailureStage(t *testing.T) {
	orig := logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	g := NewGraph()
	g.SetBackbufferSource("back")
	if _, err := g.Bake(); err == nil {
		t.Fatal("Bake() = nil error, want ErrUnreachableBackbuffer")
	}
	if !strings.Contains(buf.String(), "bake failed") {
		t.Errorf("log output = %q, want a bake-failed warning", buf.String())
	}
}
