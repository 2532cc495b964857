package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesStderrAndFile(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "server.log")
	if err := os.WriteFile(path, []byte("previous\n"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	log, err := New(Options{LogFile: path, Level: slog.LevelInfo, Stderr: &stderr})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("server starting", slog.String("config", "tools.yaml"))
	log.Debug("hidden")
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if !strings.Contains(stderr.String(), "server starting") || strings.Contains(stderr.String(), "hidden") {
		t.Fatalf("stderr: %q", stderr.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.HasPrefix(string(data), "previous\n") {
		t.Fatalf("log file was truncated: %q", data)
	}
	if !strings.Contains(string(data), "config=tools.yaml") {
		t.Fatalf("log file missing record: %q", data)
	}
}

func TestNew_LevelVar(t *testing.T) {
	var stderr bytes.Buffer
	log, err := New(Options{Level: slog.LevelWarn, Stderr: &stderr})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("quiet")
	log.Level.Set(slog.LevelDebug)
	log.Debug("loud")
	if strings.Contains(stderr.String(), "quiet") || !strings.Contains(stderr.String(), "loud") {
		t.Fatalf("level handling: %q", stderr.String())
	}
}

func TestNew_BadLogFile(t *testing.T) {
	_, err := New(Options{LogFile: filepath.Join(t.TempDir(), "missing-dir", "x.log")})
	if err == nil {
		t.Fatalf("want error for unopenable log file")
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseLevel(%q): want %v, got %v (%v)", tc.in, tc.want, got, err)
		}
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Fatalf("want error for unknown level")
	}
}
