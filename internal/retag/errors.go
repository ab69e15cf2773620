package retag

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to classify an error returned by Manager.Run.
var (
	// ErrScan means the directory tree could not be enumerated.
	ErrScan = errors.New("scan failed")

	// ErrParse means a file's tag could not be read.
	ErrParse = errors.New("cannot read tag")

	// ErrApply means a changed tag or a playlist could not be written.
	ErrApply = errors.New("cannot write tag")
)

// FileError is a failure tied to one file. It matches both its Kind and
// the underlying error with errors.Is.
type FileError struct {
	Kind error
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%v: %v in file: %s", e.Kind, e.Err, e.Path)
}

func (e *FileError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
