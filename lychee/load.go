package lychee

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/edsrzf/mmap-go"
)

var (
	// ErrPathNotFound is returned when the log file does not exist.
	ErrPathNotFound = errors.New("lychee log not found")
	// ErrMalformedLog is returned when the log is not valid JSON or lacks required keys.
	ErrMalformedLog = errors.New("malformed lychee log")
)

// Exists reports whether path names an existing file. It returns an error
// wrapping ErrPathNotFound otherwise.
func Exists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrPathNotFound, path)
	}
	return nil
}

// Load memory-maps the log at path read-only and decodes it.
func Load(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}
	// mmap rejects zero-length files
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrMalformedLog, path)
	}

	mapped, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap log: %w", err)
	}

	doc, decodeErr := Decode(mapped)
	if err := mapped.Unmap(); err != nil && decodeErr == nil {
		return nil, fmt.Errorf("unmap log: %w", err)
	}
	return doc, decodeErr
}
