// Package handler implements the HTTP surface of the task runner: running a task
// from a free-text description and reading arbitrary files. It translates
// dispatcher and file reader errors into status codes and JSON error bodies.
package handler
