// Package tasks implements the file-processing handlers behind the task runner.
//
// Every handler reads its inputs from the locations described by Paths, performs a
// single pass over them and writes one output artifact. A missing input is reported
// as an *OpError of kind KindNotFound; handlers never retry and never roll back a
// partially written output.
//
// Handlers that have no real implementation return a Result with NotImplemented set
// instead of an error.
package tasks
