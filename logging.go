package main

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	persistentLogFile *os.File
	persistentLogPath string
	loggingMu         sync.Mutex
)

func defaultPersistentLogPath() string {
	logPath := os.Getenv("HDDWARN_LOG_FILE")
	if logPath == "" {
		logPath = "hddwarn.log"
	}
	return logPath
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogger initializes the structured logger. Records go to stderr and,
// when it can be opened, the persistent log file.
func setupLogger(level string) {
	loggingMu.Lock()
	defer loggingMu.Unlock()
	setupLoggerLocked(parseLogLevel(level))
}

var currentLevel = slog.LevelInfo

func setupLoggerLocked(level slog.Level) {
	currentLevel = level
	if persistentLogFile != nil {
		_ = persistentLogFile.Sync()
		_ = persistentLogFile.Close()
		persistentLogFile = nil
	}

	logPath := defaultPersistentLogPath()
	persistentLogPath = logPath

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		logFile = nil
	}

	var out io.Writer = os.Stderr
	if logFile != nil {
		persistentLogFile = logFile
		out = io.MultiWriter(os.Stderr, logFile)
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("app", "hddwarn"))

	if logFile == nil {
		slog.Debug("Persistent logging disabled: failed to open log file", "file", logPath)
	}
}

func closeLogger() {
	loggingMu.Lock()
	defer loggingMu.Unlock()
	closeLoggerLocked()
}

func closeLoggerLocked() {
	if persistentLogFile == nil {
		return
	}
	_ = persistentLogFile.Sync()
	_ = persistentLogFile.Close()
	persistentLogFile = nil
}

// prunePersistentLogs drops log lines older than the configured retention.
func prunePersistentLogs(cfg *Config) {
	if cfg == nil || cfg.Logging.RetentionDays <= 0 {
		return
	}
	retention := time.Duration(cfg.Logging.RetentionDays) * 24 * time.Hour
	if err := prunePersistentLogsOlderThan(retention); err != nil {
		slog.Error("Failed to prune persistent logs", "err", err, "retention", retention.String())
	}
}

func prunePersistentLogsOlderThan(retention time.Duration) error {
	cutoff := time.Now().Add(-retention)

	loggingMu.Lock()
	defer loggingMu.Unlock()

	if persistentLogFile == nil {
		return nil
	}
	logPath := persistentLogPath

	closeLoggerLocked()
	defer setupLoggerLocked(currentLevel)

	return pruneLogFile(logPath, cutoff)
}

// pruneLogFile rewrites path keeping lines stamped at or after cutoff and
// lines without a readable timestamp.
func pruneLogFile(logPath string, cutoff time.Time) error {
	in, err := os.Open(logPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer in.Close()

	tmpPath := logPath + ".tmp"
	out, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	fail := func(err error) error {
		_ = out.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)
	writer := bufio.NewWriter(out)

	for scanner.Scan() {
		line := scanner.Text()
		if ts, ok := extractLogTimestamp(line); ok && ts.Before(cutoff) {
			continue
		}
		if _, err := writer.WriteString(line + "\n"); err != nil {
			return fail(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fail(err)
	}
	if err := writer.Flush(); err != nil {
		return fail(err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	// Windows refuses to rename over an open file.
	_ = in.Close()
	if err := os.Rename(tmpPath, logPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

func extractLogTimestamp(line string) (time.Time, bool) {
	idx := strings.Index(line, "time=")
	if idx < 0 {
		return time.Time{}, false
	}

	valuePart := line[idx+len("time="):]
	if valuePart == "" {
		return time.Time{}, false
	}

	var raw string
	if valuePart[0] == '"' {
		end := strings.IndexByte(valuePart[1:], '"')
		if end < 0 {
			return time.Time{}, false
		}
		raw = valuePart[1 : end+1]
	} else {
		end := strings.IndexByte(valuePart, ' ')
		if end < 0 {
			raw = valuePart
		} else {
			raw = valuePart[:end]
		}
	}

	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
