// Package logging provides the levelled logger used across the pipeline
// stages and the dashboard.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Level enumerates log severity tiers.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// Logger is a concurrency safe levelled logger.  Frame skip diagnostics are
// logged at debug level so normal runs stay quiet.
type Logger struct {
	mu    sync.Mutex
	level Level
	inner *log.Logger
	file  *os.File
}

// New creates a Logger writing to stdout at the given minimum level.  When
// logFile is non empty, output is also appended to that file.
func New(minLevel Level, logFile string) *Logger {

	writers := []io.Writer{os.Stdout}

	var f *os.File

	if logFile != "" {
		var err error
		f, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)

		if err == nil {
			writers = append(writers, f)
		} else {
			log.Printf("[WARN] could not open log file %s: %v", logFile, err)
		}
	}

	return &Logger{
		level: minLevel,
		inner: log.New(io.MultiWriter(writers...), "", 0),
		file:  f,
	}
}

var (
	defaultLogger *Logger
	defaultOnce   sync.Once
)

// Default returns the process wide logger, creating a stdout only logger at
// info level on first use.
func Default() *Logger {
	defaultOnce.Do(func() {
		if defaultLogger == nil {
			defaultLogger = New(LevelInfo, "")
		}
	})
	return defaultLogger
}

// SetDefault replaces the process wide logger.  Call before Default.
func SetDefault(l *Logger) {
	defaultLogger = l
}

// SetLevel changes the minimum level of the logger.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		_ = l.file.Close()
	}
}

func (l *Logger) log(lvl Level, format string, args ...any) {

	l.mu.Lock()
	defer l.mu.Unlock()

	if lvl < l.level {
		return
	}

	ts := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	l.inner.Printf("[%s] %s - %s", lvl, ts, msg)
}

func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }
