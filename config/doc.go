// Package config loads the task runner configuration from an optional YAML
// file and environment variables. It covers the HTTP server, logging, the data
// directory, external tool pins, the bootstrap script, the optional extraction
// service and its circuit breaker.
package config
