// Package logging configures charmbracelet/log for tasktabs.
//
// The terminal belongs to the dashboard while it runs, so log output is
// usually sent to a file (or discarded) with SetOutput before any component
// logger is created. Loggers copy the default logger's settings when New is
// called; later changes do not reach them.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Setup sets the global level and formatter. quiet wins over verbose.
func Setup(verbose, quiet, jsonFormat bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.ErrorLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(true)

	if jsonFormat {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New returns a logger prefixed with component.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// SetOutput redirects the default logger.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// OpenFile opens path for appending log output. An empty path yields
// io.Discard and a no-op closer.
func OpenFile(path string) (io.Writer, func() error, error) {
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
