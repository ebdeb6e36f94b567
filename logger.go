package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"launchpad/internal/config"
)

// Log is the global structured logger instance.
var Log = slog.New(slog.DiscardHandler)

// logLevelVar allows changing the log level at runtime.
var logLevelVar slog.LevelVar

// InitLogger initializes the global structured logger.
// level: "error" (default), "info", or "debug".
// Returns the log file handle (caller should defer Close) and any error.
func InitLogger(level string, console bool) (*os.File, error) {
	setLogLevelVar(level)

	// Log file: ~/.launchpad/logs/launchpad_YYYYMMDD_HHMMSS.log
	logDir := LogDir()
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}
	logFile := filepath.Join(logDir, "launchpad_"+time.Now().Format("20060102_150405")+".log")

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	var w io.Writer = f
	if console {
		w = io.MultiWriter(f, os.Stderr)
	}
	Log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &logLevelVar}))
	return f, nil
}

// SetLogLevel changes the log level at runtime without restarting.
func SetLogLevel(level string) {
	setLogLevelVar(level)
}

// GetLogLevel returns the current log level as a string.
func GetLogLevel() string {
	switch logLevelVar.Level() {
	case slog.LevelDebug:
		return "debug"
	case slog.LevelInfo:
		return "info"
	default:
		return "error"
	}
}

// LogDir returns the path to the log directory.
func LogDir() string {
	return filepath.Join(config.DataDir(), "logs")
}

func setLogLevelVar(level string) {
	switch strings.ToLower(level) {
	case "debug":
		logLevelVar.Set(slog.LevelDebug)
	case "info":
		logLevelVar.Set(slog.LevelInfo)
	default:
		logLevelVar.Set(slog.LevelError)
	}
}
