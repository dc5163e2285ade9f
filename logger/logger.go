package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultDir is where the terminal client writes its log; the screen owns stdout
	DefaultDir  = "logs"
	DefaultFile = "skirmish.log"

	// maxLogSize triggers rotation of an existing log file on startup
	maxLogSize = 10 * 1024 * 1024
)

// Log is the process-wide logger; usable before Init (discards output)
var Log = newDiscard()

// Options selects level, format and destination
type Options struct {
	Level  string // logrus level name, "info" when empty or invalid
	Format string // "json" or "text"

	// Output: Stdout wins over Dir; with neither set, logs are discarded
	Stdout bool
	Dir    string
	File   string
}

// Init configures the global logger
// Returns the opened log file, nil when logging to stdout or discarding; caller closes it
func Init(opts Options) (*os.File, error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(opts.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   opts.Stdout,
		})
	}

	var file *os.File
	switch {
	case opts.Stdout:
		l.SetOutput(os.Stdout)
	case opts.Dir != "":
		file, err = openLogFile(opts.Dir, opts.File)
		if err != nil {
			return nil, err
		}
		l.SetOutput(file)
	default:
		l.SetOutput(io.Discard)
	}

	Log = l
	return file, nil
}

// openLogFile creates dir and opens name for append, rotating it first if oversized
func openLogFile(dir, name string) (*os.File, error) {
	if name == "" {
		name = DefaultFile
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(name)
		rotated := filepath.Join(dir, fmt.Sprintf("%s-%s%s",
			strings.TrimSuffix(name, ext), time.Now().Format("20060102-150405"), ext))
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Component returns an entry tagged with the subsystem name
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
