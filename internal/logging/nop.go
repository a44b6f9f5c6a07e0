package logging

import "github.com/calendario/shiftboard/types"

// NopLogger discards all log output.
//
// This is the default when no logger is provided, eliminating nil checks at
// every log site.
type NopLogger struct{}

// Compile-time assertion that NopLogger implements Logger.
var _ types.Logger = (*NopLogger)(nil)

// NewNop creates a new no-op logger.
func NewNop() *NopLogger {
	return &NopLogger{}
}

// Debug discards the message.
func (l *NopLogger) Debug(_ string, _ ...any) {}

// Info discards the message.
func (l *NopLogger) Info(_ string, _ ...any) {}

// Warn discards the message.
func (l *NopLogger) Warn(_ string, _ ...any) {}

// Error discards the message.
func (l *NopLogger) Error(_ string, _ ...any) {}

// Fatal discards the message. Unlike real loggers it does not exit, which
// keeps the nop logger safe for tests.
func (l *NopLogger) Fatal(_ string, _ ...any) {}
