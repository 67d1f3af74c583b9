// Package logger configures the structured logger shared by the CLI,
// the journal and the renderers.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// EnvLevel overrides the configured level when set.
const EnvLevel = "NODESIM_LOG_LEVEL"

// Fields is an alias for logrus.Fields.
type Fields = logrus.Fields

// Log wraps logrus.Logger.
type Log struct {
	*logrus.Logger

	// out is the file output opened by Configure, nil for stdout/stderr.
	out io.Closer
}

var (
	globalMu sync.RWMutex
	global   = New()
)

// New returns a text logger writing to stderr at info level, or at the
// level named by NODESIM_LOG_LEVEL.
func New() *Log {
	l := &Log{Logger: logrus.New()}
	l.Logger.SetOutput(os.Stderr)
	l.Logger.SetLevel(logrus.InfoLevel)
	if lvl, err := logrus.ParseLevel(strings.ToLower(os.Getenv(EnvLevel))); err == nil {
		l.Logger.SetLevel(lvl)
	}
	l.Logger.SetFormatter(textFormatter())
	return l
}

// Get returns the process logger.
func Get() *Log {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// Set replaces the process logger, mostly for tests.
func Set(l *Log) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = l
}

// WithComponent tags entries with the emitting component.
func (l *Log) WithComponent(component string) *logrus.Entry {
	return l.Logger.WithField("component", component)
}

// Options selects level, format and destination.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	// Output is stdout, stderr or a file path. Files are rotated when
	// MaxAgeDays is positive.
	Output     string
	MaxAgeDays int
}

// Configure applies opts. NODESIM_LOG_LEVEL wins over opts.Level.
func (l *Log) Configure(opts Options) error {
	level := opts.Level
	if env := os.Getenv(EnvLevel); env != "" {
		level = env
	}
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level '%s'", level)
	}
	l.Logger.SetLevel(lvl)

	switch strings.ToLower(opts.Format) {
	case "", "text":
		l.Logger.SetFormatter(textFormatter())
	case "json":
		l.Logger.SetReportCaller(true)
		l.Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
			CallerPrettyfier: callerPrettyfier,
		})
	default:
		return fmt.Errorf("invalid log format '%s'", opts.Format)
	}

	w, err := openOutput(opts.Output, opts.MaxAgeDays)
	if err != nil {
		return err
	}
	l.Logger.SetOutput(w)

	prev := l.out
	l.out = nil
	if c, ok := w.(io.Closer); ok && w != os.Stderr && w != os.Stdout {
		l.out = c
	}
	if prev != nil {
		if err := prev.Close(); err != nil {
			return fmt.Errorf("close previous log output: %w", err)
		}
	}
	return nil
}

// Close releases a file output and sends further entries to stderr.
func (l *Log) Close() error {
	if l.out == nil {
		return nil
	}
	l.Logger.SetOutput(os.Stderr)
	err := l.out.Close()
	l.out = nil
	return err
}

func openOutput(output string, maxAge int) (io.Writer, error) {
	switch output {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	}

	if maxAge > 0 {
		return &lumberjack.Logger{
			Filename: output,
			MaxAge:   maxAge,
			MaxSize:  100,
			Compress: true,
		}, nil
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file '%s': %w", output, err)
	}
	return f, nil
}

func textFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		FullTimestamp:    true,
		TimestampFormat:  time.RFC3339,
		CallerPrettyfier: callerPrettyfier,
	}
}

func callerPrettyfier(f *runtime.Frame) (string, string) {
	return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
}
