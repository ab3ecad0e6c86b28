package rag

import (
	"errors"
	"fmt"
)

// ErrNoPages is returned when a source directory holds no .html pages.
var ErrNoPages = errors.New("no .html pages")

// FileError is a page or vector file that cannot be read or written.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Kind returns the error category.
func (e *FileError) Kind() string { return "io" }
