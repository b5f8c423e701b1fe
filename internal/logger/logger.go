// Package logger provides verbose logging for the passman CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to show what the store and services are doing.
//
// Long-running servers use NewSlog for structured request logs instead.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

var (
	debugPrefix = prefix{color.New(color.FgHiBlack), "[DEBUG]"}
	infoPrefix  = prefix{color.New(color.FgCyan), "[INFO]"}
	warnPrefix  = prefix{color.New(color.FgYellow), "[WARN]"}
	errorPrefix = prefix{color.New(color.FgRed, color.Bold), "[ERROR]"}
)

// prefix is a level tag that is coloured unless colour is disabled.
type prefix struct {
	color *color.Color
	text  string
}

func (p prefix) String() string {
	if noColor() {
		return p.text
	}
	return p.color.Sprint(p.text)
}

// noColor returns true if colour output should be disabled.
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(p prefix, always bool, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose || always {
		fmt.Fprintf(output, p.String()+" "+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(debugPrefix, false, format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(infoPrefix, false, format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf(warnPrefix, false, format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	logf(errorPrefix, true, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// NewSlog builds a structured logger writing to w.
// format is "json" or "text"; verbose lowers the level to debug.
func NewSlog(w io.Writer, format string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
