package logx

import "fmt"

var defaultLogger = NewLogger()

// SetDefaultLogger sets the default logger.
func SetDefaultLogger(logger *Logger) { defaultLogger = logger }

// SetLevel sets the log level for the default logger.
func SetLevel(level Level) { defaultLogger.SetLevel(level) }

// Debug logs a debug level message
func Debug(msg string) { defaultLogger.log(LevelDebug, msg, nil) }

// Info logs an info level message
func Info(msg string) { defaultLogger.log(LevelInfo, msg, nil) }

// Warn logs a warning message
func Warn(msg string) { defaultLogger.log(LevelWarn, msg, nil) }

// Error logs an error level message
func Error(msg string) { defaultLogger.log(LevelError, msg, nil) }

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	defaultLogger.log(LevelDebug, fmt.Sprintf(format, args...), nil)
}

// Infof logs a formatted info message
func Infof(format string, args ...interface{}) {
	defaultLogger.log(LevelInfo, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	defaultLogger.log(LevelWarn, fmt.Sprintf(format, args...), nil)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	defaultLogger.log(LevelError, fmt.Sprintf(format, args...), nil)
}

// Fatalf logs a formatted fatal message and exits
func Fatalf(format string, args ...interface{}) {
	defaultLogger.log(LevelFatal, fmt.Sprintf(format, args...), nil)
	defaultLogger.exit(1)
}

// Entry accumulates fields before emitting a line.
type Entry struct {
	logger *Logger
	fields Fields
}

// WithFields creates an entry with the given fields on the default logger.
func WithFields(fields Fields) *Entry {
	e := &Entry{logger: defaultLogger, fields: make(Fields, len(fields))}
	for k, v := range fields {
		e.fields[k] = v
	}
	return e
}

// WithField adds a single field to the entry (chainable).
func (e *Entry) WithField(key string, value interface{}) *Entry {
	e.fields[key] = value
	return e
}

// WithError adds an error field (chainable).
func (e *Entry) WithError(err error) *Entry {
	if err != nil {
		e.fields["error"] = err.Error()
	}
	return e
}

// Debug emits the entry at debug level.
func (e *Entry) Debug(msg string) { e.logger.log(LevelDebug, msg, e.fields) }

// Info emits the entry at info level.
func (e *Entry) Info(msg string) { e.logger.log(LevelInfo, msg, e.fields) }

// Warn emits the entry at warn level.
func (e *Entry) Warn(msg string) { e.logger.log(LevelWarn, msg, e.fields) }

// Error emits the entry at error level.
func (e *Entry) Error(msg string) { e.logger.log(LevelError, msg, e.fields) }
