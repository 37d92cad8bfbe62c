package types

// Logger defines methods for structured logging.
//
// The engine ships a log/slog adapter, exposed as spinpick.NewSlogLogger.
// All methods accept alternating key-value pairs for structured fields.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg string, keysAndValues ...any)

	// Info logs a message at info level.
	Info(msg string, keysAndValues ...any)

	// Warn logs a message at warn level.
	Warn(msg string, keysAndValues ...any)

	// Error logs a message at error level.
	Error(msg string, keysAndValues ...any)

	// Fatal logs a message at fatal level and then terminates the process.
	Fatal(msg string, keysAndValues ...any)
}
