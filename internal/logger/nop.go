package logger

// NoOpLogger discards everything. Tests use it to silence components
// that take a Logger.
type NoOpLogger struct{}

// NewNop returns a logger that discards all output.
func NewNop() Logger {
	return &NoOpLogger{}
}

// Debug discards the entry.
func (l *NoOpLogger) Debug(msg string, fields ...Field) {}

// Info discards the entry.
func (l *NoOpLogger) Info(msg string, fields ...Field) {}

// Warn discards the entry.
func (l *NoOpLogger) Warn(msg string, fields ...Field) {}

// Error discards the entry.
func (l *NoOpLogger) Error(msg string, fields ...Field) {}

// Fatal discards the entry without exiting.
func (l *NoOpLogger) Fatal(msg string, fields ...Field) {}

// With returns the receiver; fields are dropped.
func (l *NoOpLogger) With(fields ...Field) Logger {
	return l
}

// Sync is a no-op.
func (l *NoOpLogger) Sync() error {
	return nil
}
