// Package logger provides the leveled logging used across the generator.
// Messages always go to stderr; a log file can be configured in addition
// for debugging generation runs inside build systems.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	logFile  *os.File
	logMutex sync.Mutex
	verbose  bool
	debug    bool
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// SetLogFile sets the log file for writing logs
func SetLogFile(filename string) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		logFile.Close()
	}

	// Ensure directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logFile = file
	return nil
}

// SetVerbose enables info-level output on stderr
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug enables debug-level output
func SetDebug(d bool) {
	debug = d
}

// Debug logs a debug message
func Debug(msg string) {
	logWithLevel(LogLevelDebug, msg)
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	logWithLevel(LogLevelDebug, fmt.Sprintf(format, args...))
}

// Info logs an info message
func Info(msg string) {
	logWithLevel(LogLevelInfo, msg)
}

// Infof logs a formatted info message
func Infof(format string, args ...interface{}) {
	logWithLevel(LogLevelInfo, fmt.Sprintf(format, args...))
}

// Warn logs a warning message
func Warn(msg string) {
	logWithLevel(LogLevelWarn, msg)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logWithLevel(LogLevelWarn, fmt.Sprintf(format, args...))
}

// Error logs an error message
func Error(msg string) {
	logWithLevel(LogLevelError, msg)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logWithLevel(LogLevelError, fmt.Sprintf(format, args...))
}

// Fatalf logs a formatted fatal message and exits the program
func Fatalf(format string, args ...interface{}) {
	logWithLevel(LogLevelFatal, fmt.Sprintf(format, args...))
	os.Exit(1)
}

// logWithLevel logs a message at the specified level
func logWithLevel(level LogLevel, msg string) {
	if level == LogLevelDebug && !debug {
		return
	}
	if level == LogLevelInfo && !verbose && !debug {
		// info is opt-in on stderr but still lands in the log file
		logToFile(level, msg)
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logMessage := fmt.Sprintf("[%s] %s: %s", timestamp, levelString(level), msg)

	fmt.Fprintf(os.Stderr, "%s\n", logMessage)
	logToFile(level, msg)
}

// logToFile appends a message to the log file if one is configured
func logToFile(level LogLevel, msg string) {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile == nil {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(logFile, "[%s] %s: %s\n", timestamp, levelString(level), msg)
}

// levelString returns the string representation of a log level
func levelString(level LogLevel) string {
	switch level {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Close closes the log file
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// GetLogFile returns the current log file path
func GetLogFile() string {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		return logFile.Name()
	}
	return ""
}
