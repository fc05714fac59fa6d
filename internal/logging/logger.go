// Package logging provides component loggers for Etcher.
//
// The terminal belongs to the UI, so log output always goes to a file (or is
// discarded when no file can be opened).
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Options configure the shared logger.
type Options struct {
	File  string
	Level string
}

var (
	base     = newDiscardLogger()
	loggers  = make(map[string]*logrus.Entry)
	mu       sync.Mutex
	openFile *os.File
)

func newDiscardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// Setup configures the shared logger. Component loggers created before Setup
// pick up the new output and level because they share the same base logger.
func Setup(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	levelStr := "info"
	if env := strings.TrimSpace(os.Getenv("ETCHER_LOG_LEVEL")); env != "" {
		levelStr = env
	} else if opts.Level != "" {
		levelStr = opts.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	base.SetLevel(level)
	base.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if strings.TrimSpace(opts.File) == "" {
		base.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if openFile != nil {
		_ = openFile.Close()
	}
	openFile = file
	base.SetOutput(file)
	return nil
}

// Close releases the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if openFile != nil {
		base.SetOutput(io.Discard)
		_ = openFile.Close()
		openFile = nil
	}
}

// NewLogger returns the logger for a component. It uses a singleton per
// component so repeated calls share fields.
func NewLogger(component string) *logrus.Entry {
	mu.Lock()
	defer mu.Unlock()

	if logger, ok := loggers[component]; ok {
		return logger
	}
	logger := base.WithField("component", component)
	loggers[component] = logger
	return logger
}
