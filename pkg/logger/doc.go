// Package logger builds slog loggers from service configuration.
//
// Two output formats are supported: text for development consoles and JSON
// for log aggregation. The zero-value Config produces a text logger at info
// level writing to stderr.
package logger
