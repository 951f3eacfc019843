package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// openLogger writes text-formatted entries to path. The TUI owns the
// terminal, so nothing is logged to stderr while it runs.
func openLogger(path, level string, debug bool) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           parseLevel(level, debug),
		Formatter:       log.TextFormatter,
	})
	return logger, file, nil
}

func parseLevel(level string, debug bool) log.Level {
	if debug {
		return log.DebugLevel
	}
	parsed, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}
