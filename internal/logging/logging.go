// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options selects where logs go and how verbose they are.
type Options struct {
	Level   string // logrus level name; empty means info
	File    string // append logs here when set
	Verbose bool   // forces debug level
	// Interactive routes logs away from the terminal so they do not corrupt
	// the alt-screen. Without a File they are discarded.
	Interactive bool
}

// Setup configures logger according to opts. The returned closer releases
// the log file, if one was opened.
func Setup(logger *logrus.Logger, opts Options) (io.Closer, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}
	if opts.Verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
		return f, nil
	}

	if opts.Interactive {
		logger.SetOutput(io.Discard)
		return nopCloser{}, nil
	}

	// Route logs to stderr to avoid polluting stdout.
	logger.SetOutput(os.Stderr)
	return nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
