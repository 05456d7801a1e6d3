// Package logger wraps charmbracelet/log with a package-level logger shared
// by the whole application.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

var std = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Level:           log.InfoLevel,
})

// SetDebug toggles debug-level output.
func SetDebug(debug bool) {
	if debug {
		std.SetLevel(log.DebugLevel)
	} else {
		std.SetLevel(log.InfoLevel)
	}
}

// Debug writes a message at DEBUG level.
func Debug(message string, keyvals ...any) {
	std.Debug(message, keyvals...)
}

// Info writes a message at INFO level.
func Info(message string, keyvals ...any) {
	std.Info(message, keyvals...)
}

// Warn writes a message at WARN level.
func Warn(message string, keyvals ...any) {
	std.Warn(message, keyvals...)
}

// Error writes a message at ERROR level.
func Error(message string, keyvals ...any) {
	std.Error(message, keyvals...)
}

// Fatal writes a message at FATAL level and terminates the program.
func Fatal(message string, keyvals ...any) {
	std.Fatal(message, keyvals...)
}
