package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
		err  bool
	}{
		{"", zapcore.WarnLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.err {
			if err == nil {
				t.Errorf("ParseLevel(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestDebugEnabled(t *testing.T) {
	for _, v := range []string{"1", "true", "ON"} {
		t.Setenv(DebugEnv, v)
		if !DebugEnabled() {
			t.Errorf("%s=%s should enable debug", DebugEnv, v)
		}
	}
	t.Setenv(DebugEnv, "0")
	if DebugEnabled() {
		t.Errorf("%s=0 should not enable debug", DebugEnv)
	}
}

func TestNewLevel(t *testing.T) {
	t.Setenv(DebugEnv, "")
	l, err := New(Config{Level: "error"})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if l.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("warn enabled at error level")
	}
	if !l.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("error not enabled at error level")
	}

	t.Setenv(DebugEnv, "on")
	l, err = New(Config{Level: "error", Development: true})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("%s=on did not force debug", DebugEnv)
	}

	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Fatalf("expected error for bad level")
	}
}

func TestNewWritesFile(t *testing.T) {
	t.Setenv(DebugEnv, "")
	path := filepath.Join(t.TempDir(), "jvmasm.log")
	l, err := New(Config{Level: "info", File: path})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	l.Info("class written")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "class written") {
		t.Fatalf("log file = %q, want message", data)
	}
}
