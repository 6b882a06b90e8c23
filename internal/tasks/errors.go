package tasks

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrNotFound is matched by errors.Is for any missing handler input.
var ErrNotFound = errors.New("not found")

type ErrorKind string

const (
	KindNotFound  ErrorKind = "not_found"
	KindParse     ErrorKind = "parse"
	KindExecution ErrorKind = "execution"
)

// OpError wraps a handler failure with the operation name and a coarse kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := e.Op
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *OpError) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

// IsKind reports whether err carries an *OpError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

func notFound(op, path string) error {
	return &OpError{Op: op, Kind: KindNotFound, Path: path, Err: fmt.Errorf("%s not found", baseName(path))}
}

func parseError(op, path string, err error) error {
	return &OpError{Op: op, Kind: KindParse, Path: path, Err: err}
}

func execError(op, path string, err error) error {
	return &OpError{Op: op, Kind: KindExecution, Path: path, Err: err}
}

func requireFile(op, path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return notFound(op, path)
	}
	if err != nil {
		return execError(op, path, err)
	}
	if info.IsDir() {
		return execError(op, path, fmt.Errorf("%s is a directory", baseName(path)))
	}
	return nil
}

func requireDir(op, path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return notFound(op, path)
	}
	if err != nil {
		return execError(op, path, err)
	}
	if !info.IsDir() {
		return execError(op, path, fmt.Errorf("%s is not a directory", baseName(path)))
	}
	return nil
}
