// Package httpserver runs the task runner's HTTP surface with validated
// addresses, bounded timeouts and graceful shutdown.
package httpserver
