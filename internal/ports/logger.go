package ports

import "context"

// Logger is the journal's logging contract. Adapters decide the backend and
// the line format; callers pass an optional single map of structured fields.
type Logger interface {
	// Debug logs a message at Debug level.
	Debug(ctx context.Context, msg string, fields ...map[string]interface{})
	// Info logs a message at Info level.
	Info(ctx context.Context, msg string, fields ...map[string]interface{})
	// Warn logs a message at Warning level.
	Warn(ctx context.Context, msg string, fields ...map[string]interface{})
	// Error logs an error with an accompanying message at Error level.
	Error(ctx context.Context, err error, msg string, fields ...map[string]interface{})
}
