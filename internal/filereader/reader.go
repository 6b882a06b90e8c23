// Package filereader returns the text content of arbitrary files, trying an
// ordered list of candidate encodings until one decodes cleanly.
package filereader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf16"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	ErrNotFound            = errors.New("file not found")
	ErrUnsupportedEncoding = errors.New("file encoding not supported")
)

// Candidate is one encoding attempt. Decode must fail rather than substitute
// replacement characters.
type Candidate struct {
	Name   string
	Decode func([]byte) (string, error)
}

// DefaultCandidates is UTF-8 followed by BOM-aware UTF-16 (little-endian when
// no BOM is present).
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Name: "utf-8", Decode: decodeUTF8},
		{Name: "utf-16", Decode: decodeUTF16},
	}
}

type Reader struct {
	candidates []Candidate
}

func New(candidates ...Candidate) *Reader {
	if len(candidates) == 0 {
		candidates = DefaultCandidates()
	}
	return &Reader{candidates: candidates}
}

// Read returns the decoded content of path and the name of the encoding that
// succeeded.
func (r *Reader) Read(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", "", fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}

	var errs []error
	for _, c := range r.candidates {
		text, err := c.Decode(data)
		if err == nil {
			return text, c.Name, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
	}

	return "", "", fmt.Errorf("%s: %w: %w", path, ErrUnsupportedEncoding, errors.Join(errs...))
}

func decodeUTF8(data []byte) (string, error) {
	out, _, err := transform.Bytes(encoding.UTF8Validator, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeUTF16(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", errors.New("truncated data")
	}

	// The decoder substitutes U+FFFD for unpaired surrogates instead of
	// failing, so surrogates are paired up on the raw code units first.
	if err := checkSurrogates(data); err != nil {
		return "", err
	}

	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func checkSurrogates(data []byte) error {
	bigEndian := false
	switch {
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		bigEndian = true
		data = data[2:]
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		data = data[2:]
	}

	unit := func(i int) rune {
		if bigEndian {
			return rune(data[i])<<8 | rune(data[i+1])
		}
		return rune(data[i+1])<<8 | rune(data[i])
	}

	for i := 0; i < len(data); i += 2 {
		u := unit(i)
		if !utf16.IsSurrogate(u) {
			continue
		}
		if u >= 0xDC00 {
			return fmt.Errorf("unpaired low surrogate at byte %d", i)
		}
		if i+2 >= len(data) || !isLowSurrogate(unit(i+2)) {
			return fmt.Errorf("unpaired high surrogate at byte %d", i)
		}
		i += 2
	}

	return nil
}

func isLowSurrogate(u rune) bool {
	return u >= 0xDC00 && u <= 0xDFFF
}
