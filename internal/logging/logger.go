package logging

import (
	"log"
	"os"
)

// Logger is a minimal leveled logger. Everything it writes goes to
// stderr: in stdio mode stdout carries the MCP protocol stream and must
// stay clean.
type Logger struct {
	debugEnabled bool
	out          *log.Logger
}

var globalLogger *Logger

// Initialize sets up the global logger. Debug messages are dropped
// unless debugMode is set.
func Initialize(debugMode bool) {
	globalLogger = &Logger{
		debugEnabled: debugMode,
		out:          log.New(os.Stderr, "", log.LstdFlags),
	}
}

// Info logs operational messages.
func Info(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.out.Printf(format, args...)
	}
}

// Debug logs verbose diagnostics, shown only in debug mode.
func Debug(format string, args ...interface{}) {
	if globalLogger != nil && globalLogger.debugEnabled {
		globalLogger.out.Printf("DEBUG: "+format, args...)
	}
}

// Error logs failures. Always shown.
func Error(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.out.Printf("ERROR: "+format, args...)
	}
}

// IsDebugEnabled reports whether debug logging is on.
func IsDebugEnabled() bool {
	return globalLogger != nil && globalLogger.debugEnabled
}
