package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]int{
		"DEBUG":   LevelDebug,
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"WARN":    LevelWarn,
		"warning": LevelWarn,
		"ERROR":   LevelError,
		"":        LevelInfo,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestLoggerWritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir, LevelInfo)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Infof("hello %s", "world")
	l.Debugf("filtered out")
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	path := filepath.Join(dir, "gengar_"+time.Now().Format("20060102")+".log")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(data), "INFO hello world") {
		t.Fatalf("info line missing:\n%s", data)
	}
	if strings.Contains(string(data), "filtered out") {
		t.Fatalf("debug line should be filtered at info level:\n%s", data)
	}
}

func TestNopLoggerIsSilentAndSafe(t *testing.T) {
	l := NewNop()
	l.Debugf("a")
	l.Infof("b")
	l.Warnf("c")
	l.Errorf("d")
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
