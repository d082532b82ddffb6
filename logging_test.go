package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExtractLogTimestamp(t *testing.T) {
	ts, ok := extractLogTimestamp(`time=2025-02-28T12:00:00.123+01:00 level=INFO msg="Report mailed" app=hddwarn`)
	if !ok {
		t.Fatalf("expected timestamp")
	}
	if ts.Year() != 2025 || ts.Month() != time.February {
		t.Fatalf("unexpected timestamp %v", ts)
	}

	if _, ok := extractLogTimestamp(`time="2025-02-28T12:00:00Z" msg=x`); !ok {
		t.Fatalf("expected quoted timestamp to parse")
	}
	if _, ok := extractLogTimestamp("no timestamp here"); ok {
		t.Fatalf("expected no timestamp")
	}
	if _, ok := extractLogTimestamp("time=yesterday msg=x"); ok {
		t.Fatalf("expected garbage timestamp to be rejected")
	}
}

func TestPruneLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hddwarn.log")
	lines := []string{
		"time=2020-01-01T00:00:00Z level=INFO msg=old",
		"continuation line without timestamp",
		"time=2030-01-01T00:00:00Z level=INFO msg=new",
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	if err := pruneLogFile(path, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("pruneLogFile: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	want := lines[1] + "\n" + lines[2] + "\n"
	if string(got) != want {
		t.Fatalf("pruned log = %q, want %q", string(got), want)
	}
}

func TestPruneLogFileMissing(t *testing.T) {
	if err := pruneLogFile(filepath.Join(t.TempDir(), "absent.log"), time.Now()); err != nil {
		t.Fatalf("missing log should not be an error: %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupLoggerWritesPersistentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	t.Setenv("HDDWARN_LOG_FILE", path)
	prev := slog.Default()
	t.Cleanup(func() {
		closeLogger()
		slog.SetDefault(prev)
	})

	setupLogger("info")
	slog.Info("hello from test")
	closeLogger()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "app=hddwarn") || !strings.Contains(string(data), "hello from test") {
		t.Fatalf("unexpected log content %q", string(data))
	}
}
