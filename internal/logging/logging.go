// Package logging builds the structured logger shared by the CLI and frontends.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matatu/internal/core"
)

// New returns a logger writing to w at the named level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		lvl = parsed
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "matatu",
		Level:           lvl,
	}), nil
}

// OpenFile creates (or appends to) a log file, making parent directories.
// The caller closes the returned file.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: cannot open %s: %w", path, err)
	}
	return f, nil
}

// LogEvents writes simulation events. Notable ones go out at info, the rest at debug.
func LogEvents(logger *log.Logger, events []core.Event) {
	if logger == nil {
		return
	}
	for _, e := range events {
		keyvals := make([]any, 0, len(e.Attrs)+2)
		keyvals = append(keyvals, "tick", e.Tick)
		keyvals = append(keyvals, e.Attrs...)
		if e.Notable {
			logger.Info(e.Kind, keyvals...)
		} else {
			logger.Debug(e.Kind, keyvals...)
		}
	}
}
