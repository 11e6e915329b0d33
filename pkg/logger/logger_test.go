package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Close()

	Info("info %d", 1)
	Warn("warn %d", 2)
	Error("error %d", 3)
	Debug("debug %d", 4)

	out := buf.String()
	for _, want := range []string{"[INFO] info 1", "[WARN] warn 2", "[ERROR] error 3", "[DEBUG] debug 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCapture(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Close()

	Info("before capture")
	StartCapture()
	Warn("inside capture")
	Info("also inside")
	lines := StopCapture()
	Info("after capture")

	if len(lines) != 2 {
		t.Fatalf("captured %d lines, want 2: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "inside capture") {
		t.Errorf("lines[0] = %q", lines[0])
	}
	if !strings.Contains(lines[1], "also inside") {
		t.Errorf("lines[1] = %q", lines[1])
	}

	// Captured lines still reach the writer.
	if !strings.Contains(buf.String(), "inside capture") {
		t.Error("captured lines should also be written out")
	}
}

func TestStopCaptureWithoutStart(t *testing.T) {
	if lines := StopCapture(); lines != nil {
		t.Errorf("expected nil, got %v", lines)
	}
}

func TestLoggingWithoutInitIsSafe(t *testing.T) {
	Close()
	Info("should not panic")
}
