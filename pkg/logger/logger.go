// Package logger provides leveled logging for the harness. Besides the
// log destination it keeps an optional capture buffer so the orchestrator
// can attach the lines emitted during one test to that test's result.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

var (
	globalLogger *log.Logger
	logFile      *os.File
	captured     []string
	capturing    bool
	mu           sync.Mutex
)

// Init initializes the global logger with the specified log file path.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	logFile = f
	globalLogger = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// InitWriter points the global logger at an arbitrary writer. Used by the
// CLI for stderr output and by tests.
func InitWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	globalLogger = log.New(w, "", log.Ltime|log.Lmicroseconds)
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	globalLogger = nil
}

// StartCapture begins collecting formatted log lines in addition to
// writing them out. Collection is not nested; a second call restarts it.
func StartCapture() {
	mu.Lock()
	defer mu.Unlock()
	captured = nil
	capturing = true
}

// StopCapture ends collection and returns the lines captured since
// StartCapture.
func StopCapture() []string {
	mu.Lock()
	defer mu.Unlock()
	lines := captured
	captured = nil
	capturing = false
	return lines
}

func emit(level, format string, v ...interface{}) {
	line := fmt.Sprintf("["+level+"] "+format, v...)
	if capturing {
		captured = append(captured, line)
	}
	if globalLogger != nil {
		globalLogger.Print(line)
	}
}

// Info logs an info message.
func Info(format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	emit("INFO", format, v...)
}

// Debug logs a debug message.
func Debug(format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	emit("DEBUG", format, v...)
}

// Warn logs a warning message.
func Warn(format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	emit("WARN", format, v...)
}

// Error logs an error message.
func Error(format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	emit("ERROR", format, v...)
}
