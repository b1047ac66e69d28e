// Package logging is the structured logger handed to services and the
// storage layer. SlogLogger, backed by log/slog, is the only implementation.
package logging

import "context"

// Logger writes leveled records. Args alternate keys and values:
//
//	log.Warn(ctx, "password rehash failed", "username", username, "error", err)
//
// The context is passed through to the handler.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	// Error is reserved for failures and data integrity anomalies such as
	// an unreadable stored hash.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every record.
	With(args ...any) Logger
}
