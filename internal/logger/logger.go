package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
)

// TimeLayout is the fixed second-resolution timestamp used in diagnostics
const TimeLayout = "2006-01-02 15:04:05"

// FileConfig configures the rotating diagnostic log file
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	Stderr     bool
}

// Logger writes leveled diagnostic lines: "<time> - <LEVEL> - <message>"
type Logger struct {
	out *log.Logger
	now func() time.Time
}

// New creates a logger writing to w
func New(w io.Writer) *Logger {
	return &Logger{
		out: log.New(w, "", 0),
		now: time.Now,
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New(io.Discard)
}

// NewFile creates a logger backed by a rotating file.
// The returned closer releases the file handle.
func NewFile(cfg FileConfig) (*Logger, io.Closer, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	}

	var w io.Writer = file
	if cfg.Stderr {
		w = io.MultiWriter(file, os.Stderr)
	}

	return New(w), file, nil
}

// Info logs an informational message
func (l *Logger) Info(format string, v ...interface{}) {
	l.write("INFO", format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.write("ERROR", format, v...)
}

func (l *Logger) write(level, format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.out.Printf("%s - %s - %s", l.now().Format(TimeLayout), level, fmt.Sprintf(format, v...))
}
