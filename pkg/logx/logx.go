package logx

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents logging level
type Level uint8

const (
	// LevelDebug for debugging information
	LevelDebug Level = iota
	// LevelInfo for informational messages
	LevelInfo
	// LevelWarn for warning messages
	LevelWarn
	// LevelError for error messages
	LevelError
	// LevelFatal for fatal messages (will exit)
	LevelFatal
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level, defaulting to info.
func ParseLevel(level string) Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "FATAL":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Fields is a set of structured key/value pairs attached to a log line.
type Fields map[string]interface{}

// Format represents the output format
type Format string

const (
	// FormatConsole outputs human-readable console logs (default)
	FormatConsole Format = "console"
	// FormatJSON outputs JSON formatted logs
	FormatJSON Format = "json"
)

// Logger writes leveled, optionally structured log lines.
type Logger struct {
	mu     sync.Mutex
	level  Level
	format Format
	out    *os.File
}

// NewLogger creates a logger reading LOG_LEVEL and LOG_FORMAT from the
// environment.
func NewLogger() *Logger {
	l := &Logger{
		level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		format: FormatConsole,
		out:    os.Stdout,
	}
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		l.format = FormatJSON
	}
	return l
}

// SetLevel sets the minimum level the logger emits.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetOutput sets the output destination.
func (l *Logger) SetOutput(w *os.File) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

func (l *Logger) log(level Level, msg string, fields Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	now := time.Now().Format(time.RFC3339)

	switch l.format {
	case FormatJSON:
		payload := map[string]interface{}{
			"time":    now,
			"level":   level.String(),
			"message": msg,
		}
		for k, v := range fields {
			payload[k] = v
		}
		if b, err := json.Marshal(payload); err == nil {
			fmt.Fprintln(l.out, string(b))
		}
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%s [%s] %s", now, level.String(), msg)
		if len(fields) > 0 {
			keys := make([]string, 0, len(fields))
			for k := range fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(&b, " %s=%v", k, fields[k])
			}
		}
		fmt.Fprintln(l.out, b.String())
	}
}

func (l *Logger) exit(code int) { os.Exit(code) }
