// Package logger provides structured logging with configurable log levels on
// top of log/slog. Every record carries the service name and environment.
package logger
