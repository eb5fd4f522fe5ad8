package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesJSONToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf, Service: "mlb-fantasy"})

	logger.Debug("hidden")
	logger.Error("roster save failed", "position", "SS", "error", errors.New("disk full"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered at info level: %s", out)
	}
	for _, want := range []string{`"msg":"roster save failed"`, `"position":"SS"`, `"error":"disk full"`, `"service":"mlb-fantasy"`, `"level":"ERROR"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log output: %s", want, out)
		}
	}
}

func TestOpenFile(t *testing.T) {
	w, closeFn, err := OpenFile("")
	if err != nil {
		t.Fatalf("open stderr: %v", err)
	}
	if w != os.Stderr {
		t.Fatalf("expected stderr for empty path")
	}
	_ = closeFn()

	path := filepath.Join(t.TempDir(), "logs", "mlbfantasy.log")
	w, closeFn, err = OpenFile(path)
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	logger := New(Options{Level: LevelWarn, Output: w})
	logger.Warn("stats request failed", "player_id", 660271)
	_ = logger.Sync()
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), `"player_id":660271`) {
		t.Fatalf("unexpected log file content: %s", raw)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("With on nil logger must return a usable logger")
	}
}
