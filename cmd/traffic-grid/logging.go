package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	logDir      = "logs"
	logFileName = "traffic-grid.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging returns a file logger when debug is set, otherwise a discarding one
// The terminal belongs to the UI, so nothing is ever written to stdout or stderr
// The returned file is nil when logging is disabled or the file could not be opened
func setupLogging(debug bool) (*log.Logger, *os.File) {
	if !debug {
		return log.New(io.Discard), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return log.New(io.Discard), nil
	}

	logPath := filepath.Join(logDir, logFileName)
	rotateLog(logPath)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return log.New(io.Discard), nil
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.StampMilli,
		Level:           log.DebugLevel,
		Prefix:          "traffic-grid",
	})
	return logger, f
}

// rotateLog renames an oversized log to a timestamped sibling
func rotateLog(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	rotated := filepath.Join(filepath.Dir(path),
		fmt.Sprintf("traffic-grid-%s.log", time.Now().Format("20060102-150405")))
	_ = os.Rename(path, rotated)
}
