package oteladapters

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// SlogBridgeLogger implements loanstore.ContextualLogger with the OpenTelemetry slog bridge,
// so log records carry the trace and span ids of the context they are written with.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a logger on the global OpenTelemetry LoggerProvider.
func NewSlogBridgeLogger(name string) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name)}
}

// NewSlogBridgeLoggerWithProvider creates a logger on the given LoggerProvider.
func NewSlogBridgeLoggerWithProvider(name string, provider log.LoggerProvider) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name, otelslog.WithLoggerProvider(provider))}
}

// DebugContext logs at debug level.
func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

// InfoContext logs at info level.
func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

// WarnContext logs at warn level.
func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

// ErrorContext logs at error level.
func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

var _ loanstore.ContextualLogger = (*SlogBridgeLogger)(nil)

// TeeLogger writes every record to all of its loggers, e.g. the process JSON log and the slog bridge.
type TeeLogger []loanstore.ContextualLogger

// DebugContext logs at debug level.
func (t TeeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	for _, l := range t {
		l.DebugContext(ctx, msg, args...)
	}
}

// InfoContext logs at info level.
func (t TeeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	for _, l := range t {
		l.InfoContext(ctx, msg, args...)
	}
}

// WarnContext logs at warn level.
func (t TeeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	for _, l := range t {
		l.WarnContext(ctx, msg, args...)
	}
}

// ErrorContext logs at error level.
func (t TeeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	for _, l := range t {
		l.ErrorContext(ctx, msg, args...)
	}
}

var _ loanstore.ContextualLogger = TeeLogger(nil)
